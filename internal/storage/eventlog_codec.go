package storage

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"focuslog/internal/core/model"
)

// Record structs list their fields in sorted key order so every line is
// written with sorted keys.
type transitionRecord struct {
	FromState string  `json:"fromState,omitempty"`
	Project   string  `json:"project,omitempty"`
	Timestamp float64 `json:"timestamp"`
	ToState   string  `json:"toState,omitempty"`
	Type      string  `json:"type"`
}

type appStartRecord struct {
	Timestamp float64 `json:"timestamp"`
	Type      string  `json:"type"`
}

type genericRecord struct {
	FromState string   `json:"fromState"`
	Project   string   `json:"project"`
	Timestamp *float64 `json:"timestamp"`
	ToState   string   `json:"toState"`
	Type      string   `json:"type"`
}

// EncodeEvent renders one log line without the trailing newline.
func EncodeEvent(event model.LogEvent) ([]byte, error) {
	var record any
	switch typed := event.(type) {
	case model.AppStart:
		record = appStartRecord{
			Timestamp: toEpochSeconds(typed.Timestamp),
			Type:      string(model.KindAppStart),
		}
	case model.Transition:
		record = transitionRecord{
			FromState: string(typed.From),
			Project:   typed.Project,
			Timestamp: toEpochSeconds(typed.Timestamp),
			ToState:   string(typed.To),
			Type:      string(model.KindTransition),
		}
	default:
		return nil, fmt.Errorf("encode event: unsupported kind %T", event)
	}

	line, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("encode event: %w", err)
	}
	return line, nil
}

// DecodeTransition parses a transition line. Anything else reports false.
func DecodeTransition(line []byte) (model.Transition, bool) {
	var record genericRecord
	if err := json.Unmarshal(line, &record); err != nil {
		return model.Transition{}, false
	}
	if model.EventKind(record.Type) != model.KindTransition || record.Timestamp == nil {
		return model.Transition{}, false
	}
	return model.Transition{
		Timestamp: fromEpochSeconds(*record.Timestamp),
		From:      model.TimerState(record.FromState),
		To:        model.TimerState(record.ToState),
		Project:   record.Project,
	}, true
}

func toEpochSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}

func fromEpochSeconds(seconds float64) time.Time {
	whole := math.Floor(seconds)
	nanos := math.Round((seconds - whole) * float64(time.Second))
	return time.Unix(int64(whole), int64(nanos))
}
