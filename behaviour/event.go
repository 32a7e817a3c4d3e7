package behaviour

import (
	"time"

	"github.com/jacube/cube/orientation"
)

// State is where the behaviour loop is.
type State int

const (
	Starting State = iota
	Pacified
	Oriented
	Misoriented
)

func (s State) String() string {
	switch s {
	case Starting:
		return "starting"
	case Pacified:
		return "pacified"
	case Oriented:
		return "oriented"
	case Misoriented:
		return "misoriented"
	}
	return "unknown"
}

// EventKind says what an Event records.
type EventKind string

const (
	EventStep       EventKind = "step"
	EventAnimation  EventKind = "animation"
	EventNoseChange EventKind = "nose"
	EventApoplexy   EventKind = "apoplexy"
	EventCalmed     EventKind = "calmed"
	EventPoked      EventKind = "poked"
	EventEnable     EventKind = "enable"
	EventReadError  EventKind = "read_error"
)

// Event is something that happened in the behaviour loop.
type Event struct {
	Time        time.Time
	Kind        EventKind
	State       State
	Orientation orientation.State
	Unhappiness int
	// Note is free text, e.g. the animation name.
	Note string
	// Count is a kind specific number, e.g. enable attempts.
	Count int
}

// Observer is told about every Event. It is called from the behaviour
// goroutine and must not block for long.
type Observer interface {
	Observe(e Event)
}

// Observers fans events out to several observers.
type Observers []Observer

func (o Observers) Observe(e Event) {
	for _, ob := range o {
		ob.Observe(e)
	}
}
