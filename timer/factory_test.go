package timer_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xmidt-org/timeaux"
	"github.com/xmidt-org/timeaux/timer"
	"github.com/xmidt-org/timeaux/timer/timermock"
)

func testFactoryInvalid(t *testing.T) {
	var (
		assert = assert.New(t)
		f      = timer.NewFactory()
	)

	r := f.Create(0, func() {}, false)
	assert.False(r.OK())
	assert.ErrorIs(r.Err(), timeaux.ErrInvalidArgument)

	r = f.Create(time.Second, nil, true)
	assert.False(r.OK())
	assert.ErrorIs(r.Err(), timeaux.ErrInvalidArgument)
}

func testFactoryNoAutoStart(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)

		scheduler = timermock.NewScheduler(t)
		f         = timer.NewFactory(timer.WithScheduler(scheduler))
	)

	r := f.Create(time.Second, func() {}, false)
	require.True(r.OK())

	tm, ok := r.Value().(*timer.RepeatingTimer)
	require.True(ok)
	assert.Zero(tm.StartCount())
	assert.Zero(scheduler.Scheduled())

	tm.Dispose()
	scheduler.AssertExpectations()
}

func testFactoryAutoStart(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)

		scheduler = timermock.NewScheduler(t)
		handle    = timermock.NewHandle(t)
		events    = new(eventRecorder)
		f         = timer.NewFactory(
			timer.WithScheduler(scheduler),
			timer.WithListeners(events.On),
		)
	)

	scheduler.OnSchedule(0, time.Second).ReturnHandle(handle).Once()
	handle.OnDestroy().Once()

	r := f.CreateWithOptions(time.Second, func() {}, true, timer.WithName("auto"))
	require.True(r.OK())

	tm, ok := r.Value().(*timer.RepeatingTimer)
	require.True(ok)
	assert.Equal("auto", tm.Name())
	assert.Equal(int64(1), tm.StartCount())
	assert.Equal([]timer.EventType{timer.EventArmed}, events.Types())

	tm.Dispose()
	scheduler.AssertExpectations()
	handle.AssertExpectations()
}

func testFactoryAutoStartFailure(t *testing.T) {
	var (
		assert = assert.New(t)

		expectedErr = errors.New("expected")
		scheduler   = timermock.NewScheduler(t)
		events      = new(eventRecorder)
		f           = timer.NewFactory(
			timer.WithScheduler(scheduler),
			timer.WithListeners(events.On),
		)
	)

	scheduler.OnAnySchedule().ReturnError(expectedErr).Once()

	r := f.Create(time.Second, func() {}, true)
	assert.False(r.OK())
	assert.ErrorIs(r.Err(), timeaux.ErrUnderlyingResource)
	assert.ErrorIs(r.Err(), expectedErr)

	// the timer that failed to start is torn down
	assert.Equal([]timer.EventType{timer.EventArmFailed, timer.EventDisposed}, events.Types())
	scheduler.AssertExpectations()
}

func testFactoryInterface(t *testing.T) {
	var (
		assert = assert.New(t)

		f     timer.Factory = timer.NewFactory()
		ticks               = make(chan struct{}, 10)
	)

	r := f.Create(10*time.Millisecond, func() {
		select {
		case ticks <- struct{}{}:
		default:
		}
	}, true)

	if assert.True(r.OK()) {
		defer r.Value().Dispose()

		select {
		case <-ticks:
		case <-time.After(time.Second):
			assert.Fail("the timer did not tick")
		}

		assert.NoError(r.Value().Stop())
	}
}

func TestFactory(t *testing.T) {
	t.Run("Invalid", testFactoryInvalid)
	t.Run("NoAutoStart", testFactoryNoAutoStart)
	t.Run("AutoStart", testFactoryAutoStart)
	t.Run("AutoStartFailure", testFactoryAutoStartFailure)
	t.Run("Interface", testFactoryInterface)
}
