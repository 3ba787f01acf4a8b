// SPDX-FileCopyrightText: 2024 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package timer

import (
	"time"

	"github.com/xmidt-org/timeaux"
)

// Factory creates Timer instances.
type Factory interface {
	// Create builds a Timer with the given interval and handler.  If autoStart is
	// true, the Timer is started before it is returned.
	//
	// Construction failures and start failures are returned as a failed Result.
	Create(interval time.Duration, handler func(), autoStart bool) timeaux.Result[Timer]
}

// DefaultFactory is the canonical Factory.  It holds a set of options that are
// applied to every timer it creates, e.g. a shared Scheduler or listeners.
type DefaultFactory struct {
	options []Option
}

var _ Factory = (*DefaultFactory)(nil)

// NewFactory creates a DefaultFactory that applies the given options to every timer.
func NewFactory(options ...Option) *DefaultFactory {
	return &DefaultFactory{
		options: append([]Option{}, options...),
	}
}

func (f *DefaultFactory) Create(interval time.Duration, handler func(), autoStart bool) timeaux.Result[Timer] {
	return f.CreateWithOptions(interval, handler, autoStart)
}

// CreateWithOptions is like Create, but allows per-timer options.  The factory's own
// options are applied first, followed by more.
//
// If autoStart is true and Start fails, the timer is disposed before the failure
// is returned.
func (f *DefaultFactory) CreateWithOptions(interval time.Duration, handler func(), autoStart bool, more ...Option) timeaux.Result[Timer] {
	options := make([]Option, 0, len(f.options)+len(more))
	options = append(options, f.options...)
	options = append(options, more...)

	t, err := New(interval, handler, options...)
	if err != nil {
		return timeaux.Fail[Timer](err)
	}

	if autoStart {
		if err := t.Start(); err != nil {
			t.Dispose()
			return timeaux.Fail[Timer](err)
		}
	}

	return timeaux.Succeed[Timer](t)
}
