// SPDX-FileCopyrightText: 2024 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package timer

import (
	"github.com/sirupsen/logrus"
)

// OnRecover is a callback that receives information about a recovered handler panic.
// Both the argument passed to panic and the debug stack trace are passed to this closure.
type OnRecover func(r interface{}, stack []byte)

// Option is a configurable option for a RepeatingTimer.
type Option interface {
	apply(*RepeatingTimer)
}

type optionFunc func(*RepeatingTimer)

func (of optionFunc) apply(t *RepeatingTimer) { of(t) }

// WithName sets the optional name of a timer.  The timer itself does not use this
// value.  It distinguishes timers in logs and metrics.
func WithName(name string) Option {
	return optionFunc(func(t *RepeatingTimer) {
		t.name = name
	})
}

// WithScheduler sets a custom Scheduler.  A nil Scheduler is ignored, and
// TickerScheduler is used when no scheduler is set.
func WithScheduler(s Scheduler) Option {
	return optionFunc(func(t *RepeatingTimer) {
		if s != nil {
			t.scheduler = s
		}
	})
}

// WithListeners adds zero or more Listener callbacks.  This option is cumulative.
func WithListeners(l ...Listener) Option {
	return optionFunc(func(t *RepeatingTimer) {
		for _, f := range l {
			if f != nil {
				t.listeners = append(t.listeners, f)
			}
		}
	})
}

// WithLogger adds a Listener that logs timer events to the given logger.
// A nil logger is ignored.
func WithLogger(l logrus.FieldLogger) Option {
	return optionFunc(func(t *RepeatingTimer) {
		if l != nil {
			t.listeners = append(t.listeners, NewLogListener(l))
		}
	})
}

// WithRecovery causes the timer to recover handler panics instead of letting them
// crash the process.  Each recovered panic is passed to the OnRecover callbacks and
// dispatched to listeners as an EventPanic.  The timer keeps ticking afterward.
//
// This option is cumulative: callbacks from multiple calls are all invoked.
func WithRecovery(f ...OnRecover) Option {
	return optionFunc(func(t *RepeatingTimer) {
		t.recoverPanics = true
		for _, r := range f {
			if r != nil {
				t.onRecover = append(t.onRecover, r)
			}
		}
	})
}
