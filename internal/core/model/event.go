package model

import "time"

// TimerState is the name of a timer mode as it appears in the event log.
type TimerState string

const (
	StateIdle       TimerState = "idle"
	StateWork       TimerState = "work"
	StateShortBreak TimerState = "short_break"
	StateLongBreak  TimerState = "long_break"
	StatePaused     TimerState = "paused"
)

// EventKind is the discriminant stored in the "type" field of every log record.
type EventKind string

const (
	KindAppStart   EventKind = "appstart"
	KindTransition EventKind = "transition"
)

// LogEvent is one immutable record of the event log.
// The concrete type is either AppStart or Transition.
type LogEvent interface {
	Kind() EventKind
	At() time.Time
}

// AppStart marks an application launch.
type AppStart struct {
	Timestamp time.Time
}

func (AppStart) Kind() EventKind { return KindAppStart }

func (event AppStart) At() time.Time { return event.Timestamp }

// Transition records a timer state change. Project is empty for legacy records.
type Transition struct {
	Timestamp time.Time
	From      TimerState
	To        TimerState
	Project   string
}

func (Transition) Kind() EventKind { return KindTransition }

func (event Transition) At() time.Time { return event.Timestamp }

// CompletedWorkSession is a [Start, End) work interval attributed to one project.
// End is always strictly after Start.
type CompletedWorkSession struct {
	Start   time.Time
	End     time.Time
	Project string
}

// Duration returns End - Start.
func (session CompletedWorkSession) Duration() time.Duration {
	return session.End.Sub(session.Start)
}
