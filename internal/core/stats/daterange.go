package stats

import "time"

// DateRange is a half-open [Start, End) window covering whole days.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange spans from the start of the earlier day through the end of the
// later day, whichever order a and b are given in.
func NewDateRange(a, b time.Time) DateRange {
	if b.Before(a) {
		a, b = b, a
	}
	return DateRange{
		Start: startOfDay(a),
		End:   startOfDay(b).AddDate(0, 0, 1),
	}
}

// Today covers the calendar day containing now.
func Today(now time.Time) DateRange {
	return NewDateRange(now, now)
}

// LastDays covers the n calendar days ending with the day containing now.
func LastDays(now time.Time, days int) DateRange {
	if days < 1 {
		days = 1
	}
	return NewDateRange(now.AddDate(0, 0, -(days-1)), now)
}

// Contains reports whether t falls inside the range.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && t.Before(r.End)
}

// Overlap returns how much of [start, end) lies inside the range, never negative.
func (r DateRange) Overlap(start, end time.Time) time.Duration {
	if start.Before(r.Start) {
		start = r.Start
	}
	if end.After(r.End) {
		end = r.End
	}
	if !end.After(start) {
		return 0
	}
	return end.Sub(start)
}

func startOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// Preset is a named range offered by the UI and the CLI.
type Preset struct {
	Name  string
	Range DateRange
}

// Presets returns Today, Last 7 days and Last 30 days relative to now.
func Presets(now time.Time) []Preset {
	return []Preset{
		{Name: "Today", Range: Today(now)},
		{Name: "Last 7 days", Range: LastDays(now, 7)},
		{Name: "Last 30 days", Range: LastDays(now, 30)},
	}
}

// ParseDay parses a YYYY-MM-DD date in loc.
func ParseDay(value string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(time.DateOnly, value, loc)
}
