// SPDX-FileCopyrightText: 2024 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package timer

import (
	"sync"
	"time"

	"github.com/xmidt-org/timeaux"
)

// Handle is a scheduled periodic callback.  Destroy cancels it.
type Handle interface {
	// Destroy cancels any future callbacks.  This method must be idempotent,
	// must not block waiting on an in-flight callback, and cannot fail.
	//
	// A callback that was already dispatched may still complete after Destroy returns.
	Destroy()
}

// Scheduler is the strategy used to run a callback once after a delay and then
// repeatedly at a fixed period until cancelled.
type Scheduler interface {
	// Schedule arranges for callback to be invoked after initialDelay and then every
	// period thereafter.  Implementations may fail, e.g. on resource exhaustion.
	Schedule(initialDelay, period time.Duration, callback func()) (Handle, error)
}

// SchedulerFunc is a function type that implements Scheduler
type SchedulerFunc func(time.Duration, time.Duration, func()) (Handle, error)

// Schedule invokes this function
func (sf SchedulerFunc) Schedule(initialDelay, period time.Duration, callback func()) (Handle, error) {
	return sf(initialDelay, period, callback)
}

var _ Scheduler = SchedulerFunc(nil)

// TickerScheduler is the default Scheduler.  Each Handle is a goroutine driven
// by a time.Ticker.
//
// Callbacks for a given Handle never overlap.  If a callback runs longer than the
// period, the ticks it overlaps are dropped in the same way that time.Ticker drops them.
type TickerScheduler struct{}

var _ Scheduler = TickerScheduler{}

// Schedule starts a goroutine that invokes callback.  The period must be positive
// and the initialDelay cannot be negative.
func (TickerScheduler) Schedule(initialDelay, period time.Duration, callback func()) (Handle, error) {
	const op = "timer.TickerScheduler.Schedule"
	switch {
	case period <= 0:
		return nil, timeaux.InvalidArgument(op, "period must be positive")

	case initialDelay < 0:
		return nil, timeaux.InvalidArgument(op, "initial delay cannot be negative")

	case callback == nil:
		return nil, timeaux.InvalidArgument(op, "callback cannot be nil")
	}

	th := &tickerHandle{
		stop: make(chan struct{}),
	}

	go th.run(initialDelay, period, callback)
	return th, nil
}

type tickerHandle struct {
	once sync.Once
	stop chan struct{}
}

func (th *tickerHandle) Destroy() {
	th.once.Do(func() {
		close(th.stop)
	})
}

func (th *tickerHandle) stopped() bool {
	select {
	case <-th.stop:
		return true
	default:
		return false
	}
}

func (th *tickerHandle) run(initialDelay, period time.Duration, callback func()) {
	if initialDelay > 0 {
		t := time.NewTimer(initialDelay)
		select {
		case <-th.stop:
			t.Stop()
			return

		case <-t.C:
		}
	}

	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		// a Destroy that raced with the last tick wins
		if th.stopped() {
			return
		}

		callback()

		select {
		case <-th.stop:
			return

		case <-ticker.C:
		}
	}
}
