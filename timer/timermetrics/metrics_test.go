package timermetrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"github.com/xmidt-org/timeaux/timer"
	"github.com/xmidt-org/timeaux/timer/timermock"
)

type MetricsTestSuite struct {
	suite.Suite

	registry *prometheus.Registry
	metrics  *Metrics
}

func (suite *MetricsTestSuite) SetupTest() {
	suite.registry = prometheus.NewPedanticRegistry()
	suite.metrics = New(Config{
		Registerer: suite.registry,
		Namespace:  "test",
	})
}

func (suite *MetricsTestSuite) TestDefaults() {
	var (
		registry = prometheus.NewPedanticRegistry()
		m        = New(Config{Registerer: registry})
	)

	m.Listener()(timer.Event{Type: timer.EventArmed, Name: "x"})
	count, err := testutil.GatherAndCount(registry, "timer_armed", "timer_events_total")
	suite.NoError(err)
	suite.Equal(2, count)

	suite.Panics(func() {
		// same names, same registry
		New(Config{
			Registerer: suite.registry,
			Namespace:  "test",
		})
	})
}

func (suite *MetricsTestSuite) TestEvents() {
	l := suite.metrics.Listener()

	l(timer.Event{Type: timer.EventArmed, Name: "a"})
	suite.Equal(1.0, testutil.ToFloat64(suite.metrics.armed.WithLabelValues("a")))

	l(timer.Event{Type: timer.EventTick, Name: "a", Duration: time.Millisecond})
	l(timer.Event{Type: timer.EventPanic, Name: "a", Duration: time.Millisecond})
	suite.Equal(2.0, testutil.ToFloat64(suite.metrics.ticks.WithLabelValues("a")))

	l(timer.Event{Type: timer.EventDisarmed, Name: "a"})
	suite.Zero(testutil.ToFloat64(suite.metrics.armed.WithLabelValues("a")))

	l(timer.Event{Type: timer.EventArmFailed, Name: "a"})
	l(timer.Event{Type: timer.EventDisposed, Name: "a"})

	suite.Equal(1.0, testutil.ToFloat64(suite.metrics.events.WithLabelValues("a", "armed")))
	suite.Equal(1.0, testutil.ToFloat64(suite.metrics.events.WithLabelValues("a", "disarmed")))
	suite.Equal(1.0, testutil.ToFloat64(suite.metrics.events.WithLabelValues("a", "armFailed")))
	suite.Equal(1.0, testutil.ToFloat64(suite.metrics.events.WithLabelValues("a", "disposed")))
	suite.Equal(1.0, testutil.ToFloat64(suite.metrics.events.WithLabelValues("a", "panic")))
	suite.Zero(testutil.ToFloat64(suite.metrics.events.WithLabelValues("a", "tick")))

	suite.Equal(1, testutil.CollectAndCount(suite.metrics.duration, "test_timer_handler_duration_seconds"))
}

func (suite *MetricsTestSuite) TestWithTimer() {
	var (
		scheduler = timermock.NewSchedulerSuite(suite)
		handle    = timermock.NewHandle(suite.T())
	)

	scheduler.OnSchedule(0, time.Second).ReturnHandle(handle).Once()
	handle.OnDestroy().Once()

	f := timer.NewFactory(
		timer.WithScheduler(scheduler),
		timer.WithListeners(suite.metrics.Listener()),
	)

	r := f.CreateWithOptions(time.Second, func() {}, true, timer.WithName("instrumented"))
	suite.Require().True(r.OK())
	suite.Equal(1.0, testutil.ToFloat64(suite.metrics.armed.WithLabelValues("instrumented")))

	scheduler.Fire()
	scheduler.Fire()
	suite.Equal(2.0, testutil.ToFloat64(suite.metrics.ticks.WithLabelValues("instrumented")))

	r.Value().Dispose()
	suite.Zero(testutil.ToFloat64(suite.metrics.armed.WithLabelValues("instrumented")))
	suite.Equal(1.0, testutil.ToFloat64(suite.metrics.events.WithLabelValues("instrumented", "disposed")))

	scheduler.AssertExpectations()
	handle.AssertExpectations()
}

func TestMetrics(t *testing.T) {
	suite.Run(t, new(MetricsTestSuite))
}
