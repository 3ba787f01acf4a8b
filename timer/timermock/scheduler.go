// SPDX-FileCopyrightText: 2024 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package timermock

import (
	"sync"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/xmidt-org/timeaux/timer"
)

const (
	// ScheduleMethodName is the name of the timer.Scheduler.Schedule method.
	// Used to start fluent expectation chains.
	ScheduleMethodName = "Schedule"

	// DestroyMethodName is the name of the timer.Handle.Destroy method.
	DestroyMethodName = "Destroy"
)

// ScheduleCall is syntactic sugar around a Schedule *mock.Call.
// This type provides some typesafe expectation behavior.
type ScheduleCall struct {
	*mock.Call
}

// Return establishes the return values for this Schedule invocation.
func (sc *ScheduleCall) Return(h timer.Handle, err error) *ScheduleCall {
	sc.Call = sc.Call.Return(h, err)
	return sc
}

// ReturnHandle is shorthand for Return(h, nil)
func (sc *ScheduleCall) ReturnHandle(h timer.Handle) *ScheduleCall {
	return sc.Return(h, nil)
}

// ReturnError is shorthand for Return(nil, err)
func (sc *ScheduleCall) ReturnError(err error) *ScheduleCall {
	return sc.Return(nil, err)
}

// Scheduler is a mocked timer.Scheduler.  Instances should be created with
// NewScheduler or NewSchedulerSuite.
//
// Callbacks passed to successful Schedule calls are recorded instead of run.  Tests
// drive ticks explicitly with Fire, which makes timer behavior deterministic.
type Scheduler struct {
	mock.Mock

	t mock.TestingT

	lock      sync.Mutex
	callbacks []func()
}

var _ timer.Scheduler = (*Scheduler)(nil)

// NewScheduler returns a mock timer.Scheduler for the given test.
func NewScheduler(t mock.TestingT) *Scheduler {
	m := new(Scheduler)
	m.Test(t)
	return m
}

// NewSchedulerSuite returns a mock timer.Scheduler for the given suite.
func NewSchedulerSuite(s suite.TestingSuite) *Scheduler {
	return NewScheduler(s.T())
}

// Test changes the test instance on this mock.
func (m *Scheduler) Test(t mock.TestingT) {
	m.Mock.Test(t)
	m.t = t
}

// Schedule implements timer.Scheduler and is driven by the mock's expectations.
// The callback is not an argument to the mocked call, since functions cannot be
// compared.
func (m *Scheduler) Schedule(initialDelay, period time.Duration, callback func()) (timer.Handle, error) {
	arguments := m.Called(initialDelay, period)

	var (
		h, _   = arguments.Get(0).(timer.Handle)
		err, _ = arguments.Get(1).(error)
	)

	if err == nil {
		m.lock.Lock()
		m.callbacks = append(m.callbacks, callback)
		m.lock.Unlock()
	}

	return h, err
}

// OnSchedule starts a fluent chain that expects a Schedule call with exactly
// the given delay and period.
func (m *Scheduler) OnSchedule(initialDelay, period time.Duration) *ScheduleCall {
	return &ScheduleCall{
		Call: m.On(ScheduleMethodName, initialDelay, period),
	}
}

// OnAnySchedule starts a fluent chain that expects a Schedule call with any arguments.
func (m *Scheduler) OnAnySchedule() *ScheduleCall {
	return &ScheduleCall{
		Call: m.On(ScheduleMethodName, mock.Anything, mock.Anything),
	}
}

// Scheduled returns how many callbacks have been successfully scheduled
func (m *Scheduler) Scheduled() int {
	m.lock.Lock()
	defer m.lock.Unlock()
	return len(m.callbacks)
}

// Fire invokes the most recently scheduled callback, as if its scheduler ticked.
// This method returns false if nothing has been scheduled.
func (m *Scheduler) Fire() bool {
	m.lock.Lock()
	var callback func()
	if len(m.callbacks) > 0 {
		callback = m.callbacks[len(m.callbacks)-1]
	}

	m.lock.Unlock()
	if callback == nil {
		return false
	}

	callback()
	return true
}

// AssertExpectations uses the TestingT instance set at construction or with Test
// to assert all the calls have been executed.
func (m *Scheduler) AssertExpectations() {
	m.Mock.AssertExpectations(m.t)
}

// Handle is a mocked timer.Handle.
type Handle struct {
	mock.Mock

	t mock.TestingT
}

var _ timer.Handle = (*Handle)(nil)

// NewHandle returns a mock timer.Handle for the given test.
func NewHandle(t mock.TestingT) *Handle {
	m := new(Handle)
	m.Mock.Test(t)
	m.t = t
	return m
}

// Destroy implements timer.Handle and is driven by this mock's expectations.
func (m *Handle) Destroy() {
	m.Called()
}

// OnDestroy starts a fluent chain for defining a Destroy expectation.
func (m *Handle) OnDestroy() *mock.Call {
	return m.On(DestroyMethodName)
}

// AssertExpectations uses the TestingT instance set at construction
// to assert all the calls have been executed.
func (m *Handle) AssertExpectations() {
	m.Mock.AssertExpectations(m.t)
}
