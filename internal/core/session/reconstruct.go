// Package session rebuilds completed work intervals from logged timer transitions.
package session

import (
	"slices"
	"time"

	"focuslog/internal/core/model"
	"focuslog/internal/core/project"
)

// Reconstruct pairs "entered work" with the next "left work" transition of the
// same project. Input order does not matter; events are replayed by timestamp.
//
// A new work entry replaces any pending start for that project, and a work exit
// that is not strictly after its start is dropped. Untagged events are
// attributed to project.LegacyName.
func Reconstruct(transitions []model.Transition) []model.CompletedWorkSession {
	ordered := make([]model.Transition, len(transitions))
	for i, transition := range transitions {
		transition.Project = project.OrLegacy(transition.Project)
		ordered[i] = transition
	}
	slices.SortStableFunc(ordered, func(a, b model.Transition) int {
		return a.Timestamp.Compare(b.Timestamp)
	})

	var sessions []model.CompletedWorkSession
	activeWorkStart := make(map[string]time.Time)
	for _, transition := range ordered {
		if transition.To == model.StateWork {
			activeWorkStart[transition.Project] = transition.Timestamp
		}
		if transition.From != model.StateWork {
			continue
		}
		start, ok := activeWorkStart[transition.Project]
		delete(activeWorkStart, transition.Project)
		if ok && transition.Timestamp.After(start) {
			sessions = append(sessions, model.CompletedWorkSession{
				Start:   start,
				End:     transition.Timestamp,
				Project: transition.Project,
			})
		}
	}
	return sessions
}
