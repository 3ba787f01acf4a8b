package timermock

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type SchedulerTestSuite struct {
	suite.Suite
}

func (suite *SchedulerTestSuite) TestReturnHandle() {
	var (
		s = NewSchedulerSuite(suite)
		h = NewHandle(suite.T())

		calls int
	)

	s.OnSchedule(0, time.Second).ReturnHandle(h).Once()
	h.OnDestroy().Once()

	suite.False(s.Fire(), "nothing has been scheduled yet")

	actual, err := s.Schedule(0, time.Second, func() { calls++ })
	suite.NoError(err)
	suite.Same(h, actual)
	suite.Equal(1, s.Scheduled())

	suite.True(s.Fire())
	suite.True(s.Fire())
	suite.Equal(2, calls)

	actual.Destroy()

	s.AssertExpectations()
	h.AssertExpectations()
}

func (suite *SchedulerTestSuite) TestReturnError() {
	var (
		s           = NewScheduler(suite.T())
		expectedErr = errors.New("expected")
	)

	s.OnAnySchedule().ReturnError(expectedErr).Once()

	actual, err := s.Schedule(5*time.Millisecond, time.Minute, func() {})
	suite.Nil(actual)
	suite.Same(expectedErr, err)
	suite.Zero(s.Scheduled())
	suite.False(s.Fire())

	s.AssertExpectations()
}

func TestScheduler(t *testing.T) {
	suite.Run(t, new(SchedulerTestSuite))
}
