package timer

import (
	"errors"

	"github.com/sirupsen/logrus"
)

// errorFielder is implemented by errors that can describe themselves as
// structured fields, such as *timeaux.Error.
type errorFielder interface {
	ErrorFields() []interface{}
}

// NewLogListener creates a Listener that writes timer events to a logrus logger.
// Lifecycle transitions are logged at debug, ticks at trace, and failures at error.
func NewLogListener(logger logrus.FieldLogger) Listener {
	return func(e Event) {
		entry := logger.WithFields(logrus.Fields{
			"timer":    e.Name,
			"timerID":  e.TimerID.String(),
			"interval": e.Interval.String(),
			"event":    e.Type.String(),
		})

		if e.Err != nil {
			entry = entry.WithError(e.Err)

			var ef errorFielder
			if errors.As(e.Err, &ef) {
				entry = entry.WithFields(navFields(ef.ErrorFields()))
			}
		}

		switch e.Type {
		case EventArmed:
			entry.Debug("timer armed")

		case EventDisarmed:
			entry.Debug("timer disarmed")

		case EventDisposed:
			entry.Debug("timer disposed")

		case EventArmFailed:
			entry.Error("timer could not be armed")

		case EventTick:
			entry.WithField("duration", e.Duration.String()).Trace("timer tick")

		case EventPanic:
			entry.WithField("duration", e.Duration.String()).Error("timer handler panicked")
		}
	}
}

// navFields converts a {name1, value1, name2, value2, ...} sequence into logrus.Fields.
// Non-string names are skipped, and a trailing name has a nil value.
func navFields(nav []interface{}) logrus.Fields {
	f := make(logrus.Fields, len(nav)/2)
	for i, j := 0, 1; i < len(nav); i, j = i+2, j+2 {
		name, ok := nav[i].(string)
		if !ok {
			continue
		}

		var value interface{}
		if j < len(nav) {
			value = nav[j]
		}

		f[name] = value
	}

	return f
}
