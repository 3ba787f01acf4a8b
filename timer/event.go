package timer

import (
	"time"

	"github.com/google/uuid"
)

// EventType identifies a lifecycle transition or activity of a RepeatingTimer
type EventType int

const (
	// EventArmed indicates that the underlying Handle was scheduled
	EventArmed EventType = iota

	// EventDisarmed indicates that the underlying Handle was destroyed by Stop
	EventDisarmed

	// EventDisposed indicates that the timer was torn down
	EventDisposed

	// EventArmFailed indicates that the Scheduler could not create a Handle.
	// Event.Err holds the failure.
	EventArmFailed

	// EventTick indicates that the handler ran to completion.  Event.Duration
	// holds how long the handler took.
	EventTick

	// EventPanic indicates that the handler panicked and the panic was recovered.
	// Event.Err describes the panic.
	EventPanic
)

var eventTypeText = [...]string{
	EventArmed:     "armed",
	EventDisarmed:  "disarmed",
	EventDisposed:  "disposed",
	EventArmFailed: "armFailed",
	EventTick:      "tick",
	EventPanic:     "panic",
}

// String returns a human-readable name for this event type.  This value is
// suitable for metric labels.
func (et EventType) String() string {
	if et >= 0 && int(et) < len(eventTypeText) {
		return eventTypeText[et]
	}

	return "unknown"
}

// Event describes something that happened to a RepeatingTimer
type Event struct {
	// Type is the kind of event
	Type EventType

	// TimerID is the unique identifier of the timer
	TimerID uuid.UUID

	// Name is the optional, configured name of the timer
	Name string

	// Interval is the timer's repetition interval
	Interval time.Duration

	// Duration is the time taken by the handler.  Only set for EventTick and EventPanic.
	Duration time.Duration

	// Err is the error associated with this event, if any
	Err error
}

// Listener is a callback that receives timer events.  Listeners are invoked
// synchronously, never while the timer holds internal locks.  A Listener may
// safely call Start, Stop, or Dispose.
//
// Tick and panic events are delivered on the scheduler's goroutine, so listeners
// should be fast.
type Listener func(Event)

// Listeners is a convenient slice type for sequences of Listener callbacks
type Listeners []Listener

// On invokes each listener with the given event
func (ls Listeners) On(e Event) {
	for _, l := range ls {
		l(e)
	}
}
