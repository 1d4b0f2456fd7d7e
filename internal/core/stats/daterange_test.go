package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(year int, month time.Month, dayOfMonth, hour int) time.Time {
	return time.Date(year, month, dayOfMonth, hour, 0, 0, 0, time.UTC)
}

func TestNewDateRange_CoversWholeDays(t *testing.T) {
	window := NewDateRange(day(2026, 3, 14, 15), day(2026, 3, 10, 9))

	assert.Equal(t, day(2026, 3, 10, 0), window.Start)
	assert.Equal(t, day(2026, 3, 15, 0), window.End)
}

func TestToday(t *testing.T) {
	window := Today(day(2026, 12, 31, 23))

	assert.Equal(t, day(2026, 12, 31, 0), window.Start)
	assert.Equal(t, day(2027, 1, 1, 0), window.End)
}

func TestLastDays(t *testing.T) {
	now := day(2026, 3, 10, 12)

	week := LastDays(now, 7)
	assert.Equal(t, day(2026, 3, 4, 0), week.Start)
	assert.Equal(t, day(2026, 3, 11, 0), week.End)

	assert.Equal(t, Today(now), LastDays(now, 0))
}

func TestDateRange_Contains(t *testing.T) {
	window := Today(day(2026, 3, 10, 12))

	assert.True(t, window.Contains(day(2026, 3, 10, 0)))
	assert.True(t, window.Contains(day(2026, 3, 10, 23)))
	assert.False(t, window.Contains(day(2026, 3, 11, 0)))
	assert.False(t, window.Contains(day(2026, 3, 9, 23)))
}

func TestDateRange_Overlap(t *testing.T) {
	window := DateRange{Start: time.Unix(100, 0), End: time.Unix(200, 0)}

	tests := []struct {
		name       string
		start, end int64
		want       time.Duration
	}{
		{name: "inside", start: 120, end: 150, want: 30 * time.Second},
		{name: "clamped start", start: 50, end: 130, want: 30 * time.Second},
		{name: "clamped end", start: 180, end: 260, want: 20 * time.Second},
		{name: "spans range", start: 0, end: 500, want: 100 * time.Second},
		{name: "before", start: 10, end: 100, want: 0},
		{name: "after", start: 200, end: 300, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, window.Overlap(time.Unix(tt.start, 0), time.Unix(tt.end, 0)))
		})
	}
}

func TestPresets(t *testing.T) {
	now := day(2026, 3, 10, 12)
	presets := Presets(now)

	require.Len(t, presets, 3)
	assert.Equal(t, "Today", presets[0].Name)
	assert.Equal(t, Today(now), presets[0].Range)
	assert.Equal(t, "Last 7 days", presets[1].Name)
	assert.Equal(t, LastDays(now, 30), presets[2].Range)
}

func TestParseDay(t *testing.T) {
	parsed, err := ParseDay("2026-03-10", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, day(2026, 3, 10, 0), parsed)

	_, err = ParseDay("10/03/2026", time.UTC)
	assert.Error(t, err)
}
