// SPDX-FileCopyrightText: 2024 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package timer

import (
	"fmt"
	"runtime/debug"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/xmidt-org/timeaux"
)

const (
	opNew   = "timer.New"
	opStart = "timer.Start"
	opStop  = "timer.Stop"
)

// Timer is the behavior exposed by a repeating timer.  All methods are safe for
// concurrent access, including from within the timer's own handler.
type Timer interface {
	// Start arms this timer.  Only the call that moves the timer from unarmed to
	// armed schedules anything.  Calls against an already armed timer join it and
	// succeed without doing anything.
	//
	// Start returns an error wrapping timeaux.ErrObjectDisposed if the timer has
	// been disposed, or timeaux.ErrUnderlyingResource if the scheduler failed.
	Start() error

	// Stop disarms this timer.  Only the call matching the arming Start does any
	// work.  A Stop without a matching Start succeeds without doing anything.
	//
	// Stop returns an error wrapping timeaux.ErrObjectDisposed if the timer has
	// been disposed.
	Stop() error

	// Dispose tears down this timer.  Only the first call does any work.  This method
	// is idempotent and never fails.  After it is called, Start and Stop always fail.
	Dispose()
}

// RepeatingTimer is the canonical Timer.  It invokes a handler immediately upon
// being armed and then at a fixed interval until it is disarmed or disposed.
//
// Arming and disarming are guarded by an atomic reference count, so overlapping
// Start/Stop pairs from different callers compose: exactly one Start in any
// concurrent batch arms the underlying Handle and exactly one matching Stop
// destroys it.
type RepeatingTimer struct {
	id            uuid.UUID
	name          string
	interval      time.Duration
	handler       func()
	scheduler     Scheduler
	listeners     Listeners
	recoverPanics bool
	onRecover     []OnRecover

	// startCount is 1 while armed and 0 otherwise
	startCount atomic.Int64

	// disposeCount is monotonic.  The timer is disposed once it is positive.
	disposeCount atomic.Int64

	// handleLock guards handle.  It is only held while scheduling or destroying.
	handleLock sync.Mutex
	handle     Handle
}

var _ Timer = (*RepeatingTimer)(nil)

// New creates an unarmed RepeatingTimer.  The interval must be positive and the
// handler must be non-nil, or an error wrapping timeaux.ErrInvalidArgument is returned.
func New(interval time.Duration, handler func(), options ...Option) (*RepeatingTimer, error) {
	switch {
	case interval <= 0:
		return nil, timeaux.InvalidArgument(opNew, fmt.Sprintf("interval must be positive: %s", interval))

	case handler == nil:
		return nil, timeaux.InvalidArgument(opNew, "handler cannot be nil")
	}

	t := &RepeatingTimer{
		id:        uuid.New(),
		interval:  interval,
		handler:   handler,
		scheduler: TickerScheduler{},
	}

	for _, o := range options {
		o.apply(t)
	}

	return t, nil
}

// ID returns the unique identifier assigned to this timer when it was created
func (t *RepeatingTimer) ID() uuid.UUID {
	return t.id
}

// Name returns the optional name of this timer
func (t *RepeatingTimer) Name() string {
	return t.name
}

// Interval returns the fixed repetition interval
func (t *RepeatingTimer) Interval() time.Duration {
	return t.interval
}

// String returns a human-readable representation of this timer.
func (t *RepeatingTimer) String() string {
	var state string
	switch {
	case t.isDisposed():
		state = "disposed"

	case t.startCount.Load() > 0:
		state = "armed"

	default:
		state = "unarmed"
	}

	var b strings.Builder
	b.WriteString("timer[")
	if len(t.name) > 0 {
		b.WriteString(t.name)
	} else {
		b.WriteString(t.id.String())
	}

	b.WriteString("]: ")
	b.WriteString(state)
	return b.String()
}

func (t *RepeatingTimer) isDisposed() bool {
	return t.disposeCount.Load() > 0
}

func (t *RepeatingTimer) newEvent(et EventType) Event {
	return Event{
		Type:     et,
		TimerID:  t.id,
		Name:     t.name,
		Interval: t.interval,
	}
}

func (t *RepeatingTimer) Start() error {
	if t.isDisposed() {
		return timeaux.ObjectDisposed(opStart, t.String())
	}

	for {
		count := t.startCount.Load()
		if count > 0 {
			// join the caller that armed this timer
			return nil
		}

		if t.startCount.CompareAndSwap(count, count+1) {
			break
		}
	}

	return t.reconcile(opStart)
}

func (t *RepeatingTimer) Stop() error {
	if t.isDisposed() {
		return timeaux.ObjectDisposed(opStop, t.String())
	}

	for {
		count := t.startCount.Load()
		if count < 1 {
			// unmatched Stop
			return nil
		}

		if t.startCount.CompareAndSwap(count, count-1) {
			break
		}
	}

	return t.reconcile(opStop)
}

// reconcile brings the handle in line with the start count.  Every winning Start
// or Stop calls this, and because the count is reread under the lock the last
// caller through always leaves the handle matching the most recent count.  When
// arming fails, the count is reset to 0 before the lock is released.
func (t *RepeatingTimer) reconcile(op string) (err error) {
	var events []Event
	defer func() {
		for _, e := range events {
			t.listeners.On(e)
		}
	}()

	defer t.handleLock.Unlock()
	t.handleLock.Lock()

	if t.isDisposed() {
		// Dispose already released the handle, or will once it gets the lock
		if op == opStart {
			t.startCount.CompareAndSwap(1, 0)
			err = timeaux.ObjectDisposed(op, t.String())
		}

		return
	}

	shouldArm := t.startCount.Load() > 0
	switch {
	case shouldArm && t.handle == nil:
		var h Handle
		h, err = t.scheduler.Schedule(0, t.interval, t.tick)
		if err != nil {
			// roll back while holding the lock, so the count never disagrees
			// with the handle once the lock is released
			t.startCount.CompareAndSwap(1, 0)
			err = timeaux.UnderlyingResource(op, err)
			e := t.newEvent(EventArmFailed)
			e.Err = err
			events = append(events, e)
			return
		}

		t.handle = h
		events = append(events, t.newEvent(EventArmed))

	case !shouldArm && t.handle != nil:
		t.handle.Destroy()
		t.handle = nil
		events = append(events, t.newEvent(EventDisarmed))
	}

	return
}

func (t *RepeatingTimer) Dispose() {
	if t.disposeCount.Add(1) > 1 {
		return
	}

	t.handleLock.Lock()
	h := t.handle
	t.handle = nil
	t.handleLock.Unlock()

	if h != nil {
		h.Destroy()
	}

	t.listeners.On(t.newEvent(EventDisposed))
}

// Close disposes this timer.  It always returns nil, and exists so that a
// RepeatingTimer can be used as an io.Closer.
func (t *RepeatingTimer) Close() error {
	t.Dispose()
	return nil
}

// tick is the callback handed to the Scheduler
func (t *RepeatingTimer) tick() {
	// drop ticks that were dispatched before a Stop or Dispose took effect
	if t.isDisposed() || t.startCount.Load() < 1 {
		return
	}

	var (
		start = time.Now()
		err   = t.invoke()
		e     = t.newEvent(EventTick)
	)

	e.Duration = time.Since(start)
	if err != nil {
		e.Type = EventPanic
		e.Err = err
	}

	t.listeners.On(e)
}

// invoke runs the handler, recovering a panic if so configured
func (t *RepeatingTimer) invoke() (err error) {
	if t.recoverPanics {
		defer func() {
			if r := recover(); r != nil {
				stack := debug.Stack()
				for _, f := range t.onRecover {
					f(r, stack)
				}

				err = &PanicError{Value: r, Stack: stack}
			}
		}()
	}

	t.handler()
	return
}

// PanicError describes a recovered handler panic
type PanicError struct {
	// Value is the argument passed to panic
	Value interface{}

	// Stack is the debug stack trace captured during recovery
	Stack []byte
}

// Error satisfies the error interface
func (pe *PanicError) Error() string {
	return fmt.Sprintf("timer handler panic: %v", pe.Value)
}
