// SPDX-FileCopyrightText: 2024 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package timer implements a repeating timer with reference-counted arming.

A RepeatingTimer invokes its handler immediately when armed and then at a fixed
interval:

	t, err := timer.New(10*time.Second, func() {
		// periodic work
	}, timer.WithName("refresh"))

	if err == nil {
		t.Start()
		defer t.Dispose()
	}

Start, Stop, and Dispose are safe for concurrent use.  Overlapping Start calls join
a single armed state, and only the Stop matching the arming Start disarms.  Once
disposed, a timer cannot be used again.

Timers are usually created through a Factory, which can share options such as a
Scheduler or listeners across many timers:

	f := timer.NewFactory(timer.WithLogger(logrus.StandardLogger()))
	r := f.Create(time.Minute, refresh, true)
	if !r.OK() {
		return r.Err()
	}

See the timermetrics package for prometheus instrumentation and the timermock
package for a testify-based Scheduler.
*/
package timer
