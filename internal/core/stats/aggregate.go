// Package stats turns reconstructed work sessions into totals for a project
// filter and a date range.
//
// Every query replays the whole event log, so cost grows linearly with the
// log. That is fine for a single user's local history and is not cached.
package stats

import (
	"time"

	"focuslog/internal/core/model"
)

// Summary is the aggregate view for one filter and range.
type Summary struct {
	Total     time.Duration
	Completed int
}

// TotalSeconds returns Total in seconds.
func (summary Summary) TotalSeconds() float64 {
	return summary.Total.Seconds()
}

// Aggregate sums the part of each matching session that overlaps the range.
// A nil filter matches every project; otherwise the match is exact.
// Only sessions with a positive overlap are counted as completed.
func Aggregate(sessions []model.CompletedWorkSession, filter *string, window DateRange) Summary {
	var summary Summary
	for _, session := range sessions {
		if filter != nil && session.Project != *filter {
			continue
		}
		overlap := window.Overlap(session.Start, session.End)
		if overlap <= 0 {
			continue
		}
		summary.Total += overlap
		summary.Completed++
	}
	return summary
}
