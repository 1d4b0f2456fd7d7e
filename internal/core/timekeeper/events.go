package timekeeper

import (
	"time"

	"focuslog/internal/core/model"
)

// State represents the current TimeKeeper mode.
type State = model.TimerState

const (
	StateIdle       = model.StateIdle
	StateWork       = model.StateWork
	StateShortBreak = model.StateShortBreak
	StateLongBreak  = model.StateLongBreak
	StatePaused     = model.StatePaused
)

// EventType defines the type of TimeKeeper event.
type EventType string

const (
	EventStateChange EventType = "state_change"
	EventProgress    EventType = "progress"
)

// Event represents a TimeKeeper update for observers.
// From is only meaningful for EventStateChange.
type Event struct {
	Type      EventType
	From      State
	State     State
	Remaining time.Duration
	Progress  float64
	At        time.Time
}
