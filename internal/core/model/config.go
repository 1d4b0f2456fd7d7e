package model

import "time"

// TimerConfig contains runtime settings for the TimeKeeper state machine.
type TimerConfig struct {
	Work           time.Duration
	ShortBreak     time.Duration
	LongBreak      time.Duration
	LongBreakEvery int
}

// DefaultTimerConfig returns a 25/5 cycle with a long break every fourth round.
func DefaultTimerConfig() TimerConfig {
	return TimerConfig{
		Work:           25 * time.Minute,
		ShortBreak:     5 * time.Minute,
		LongBreak:      15 * time.Minute,
		LongBreakEvery: 4,
	}
}
