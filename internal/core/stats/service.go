package stats

import (
	"time"

	"focuslog/internal/core/model"
	"focuslog/internal/core/session"
)

// EventReader returns every well-formed transition in the log.
type EventReader interface {
	ReadAll() []model.Transition
}

// Service answers statistics queries by replaying the log on every call.
type Service struct {
	reader EventReader
	now    func() time.Time
}

// View is everything a statistics screen needs for one refresh.
type View struct {
	Options []FilterOption
	Summary Summary
}

// NewService creates a Service over reader.
func NewService(reader EventReader, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{reader: reader, now: now}
}

// Sessions reconstructs all completed work sessions from the log.
func (service *Service) Sessions() []model.CompletedWorkSession {
	return session.Reconstruct(service.reader.ReadAll())
}

// Query aggregates the log for a project filter and range.
func (service *Service) Query(filter *string, window DateRange) Summary {
	return Aggregate(service.Sessions(), filter, window)
}

// Refresh builds the picker options and the summary in one pass over the log.
func (service *Service) Refresh(projects []string, filter *string, window DateRange) View {
	sessions := service.Sessions()
	return View{
		Options: FilterOptions(projects, sessions),
		Summary: Aggregate(sessions, filter, window),
	}
}

// Today is the range for the current day.
func (service *Service) Today() DateRange {
	return Today(service.now())
}
