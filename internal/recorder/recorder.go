// Package recorder writes timekeeper state changes to the event log.
package recorder

import (
	"time"

	"focuslog/internal/core/model"
	"focuslog/internal/core/timekeeper"

	"go.uber.org/zap"
)

// Appender is the write side of the event log.
type Appender interface {
	Append(event model.LogEvent) error
}

// ProjectSource runs fn with the project new transitions are attributed to.
// Deleting that project must wait until fn returns.
type ProjectSource interface {
	WithSelectedProject(fn func(name string) error) error
}

// Recorder tags every state change with the selected project and appends it.
// Append failures are logged and never stop the timer.
type Recorder struct {
	log      Appender
	projects ProjectSource
	logger   *zap.Logger
}

// New creates a Recorder.
func New(log Appender, projects ProjectSource, logger *zap.Logger) *Recorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recorder{log: log, projects: projects, logger: logger}
}

// RecordAppStart appends the launch marker.
func (recorder *Recorder) RecordAppStart(at time.Time) {
	if err := recorder.log.Append(model.AppStart{Timestamp: at}); err != nil {
		recorder.logger.Error("append app start", zap.Error(err))
	}
}

// Record appends a transition for state-change events and ignores the rest.
func (recorder *Recorder) Record(event timekeeper.Event) {
	if event.Type != timekeeper.EventStateChange || event.From == event.State {
		return
	}
	at := event.At
	if at.IsZero() {
		at = time.Now()
	}

	transition := model.Transition{
		Timestamp: at,
		From:      event.From,
		To:        event.State,
	}
	err := recorder.projects.WithSelectedProject(func(name string) error {
		transition.Project = name
		return recorder.log.Append(transition)
	})
	if err != nil {
		recorder.logger.Error("append transition",
			zap.String("from", string(transition.From)),
			zap.String("to", string(transition.To)),
			zap.String("project", transition.Project),
			zap.Error(err),
		)
	}
}

// Run records events until the channel is closed.
func (recorder *Recorder) Run(events <-chan timekeeper.Event) {
	for event := range events {
		recorder.Record(event)
	}
}
