// Package telemetry provides population tracking, windowed statistics,
// death events, bookmarks and CSV output.
package telemetry

// EventType identifies a death event.
type EventType uint8

const (
	EventKill EventType = iota
	EventStarvation
)

// String returns the event name.
func (t EventType) String() string {
	switch t {
	case EventKill:
		return "kill"
	case EventStarvation:
		return "starvation"
	default:
		return "unknown"
	}
}

// MarshalCSV writes the event name into CSV output.
func (t EventType) MarshalCSV() (string, error) {
	return t.String(), nil
}

// Event records one bird's death.
type Event struct {
	Tick   int32     `csv:"tick"`
	Type   EventType `csv:"type"`
	Bird   int       `csv:"bird"`
	Killer int       `csv:"killer"` // -1 unless Type is EventKill
}

// NewKillEvent creates an event for a prey caught by a predator.
func NewKillEvent(tick int32, predator, prey int) Event {
	return Event{Tick: tick, Type: EventKill, Bird: prey, Killer: predator}
}

// NewStarvationEvent creates an event for a predator that ran out of energy.
func NewStarvationEvent(tick int32, predator int) Event {
	return Event{Tick: tick, Type: EventStarvation, Bird: predator, Killer: -1}
}
