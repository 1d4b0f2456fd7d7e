package storage

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"unicode/utf8"

	"focuslog/internal/core/model"
	"focuslog/internal/core/project"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// ErrLogDisabled is reported by Err when the log file could not be opened.
var ErrLogDisabled = errors.New("event log disabled")

const eventLogFileMode = 0o600

// EventLog is the append-only, newline-delimited JSON record of timer activity.
// It owns the only write handle; every operation is serialized by one mutex.
type EventLog struct {
	mu       sync.Mutex
	path     string
	file     *os.File
	openErr  error
	readOnly bool
	logger   *zap.Logger
}

// OpenEventLog opens or creates the log at path for appending.
// When that fails the log stays usable but every Append becomes a no-op.
func OpenEventLog(path string, logger *zap.Logger) *EventLog {
	if logger == nil {
		logger = zap.NewNop()
	}
	eventLog := &EventLog{path: path, logger: logger}
	if err := eventLog.open(); err != nil {
		eventLog.openErr = fmt.Errorf("%w: %w", ErrLogDisabled, err)
		logger.Warn("event log writes disabled", zap.String("path", path), zap.Error(err))
	}
	return eventLog
}

// NewEventLogReader returns a log that never opens a write handle.
// Append is a no-op; ReadAll works as usual.
func NewEventLogReader(path string, logger *zap.Logger) *EventLog {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventLog{
		path:     path,
		openErr:  fmt.Errorf("%w: opened read-only", ErrLogDisabled),
		readOnly: true,
		logger:   logger,
	}
}

func (eventLog *EventLog) open() error {
	if eventLog.path == "" {
		return errors.New("open event log: empty path")
	}
	if err := os.MkdirAll(filepath.Dir(eventLog.path), 0o755); err != nil {
		return fmt.Errorf("create event log directory: %w", err)
	}
	file, err := os.OpenFile(eventLog.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, eventLogFileMode)
	if err != nil {
		return fmt.Errorf("open event log: %w", err)
	}
	eventLog.file = file
	return nil
}

// Path returns the log file location.
func (eventLog *EventLog) Path() string {
	return eventLog.path
}

// Err returns the reason writes are disabled, or nil.
func (eventLog *EventLog) Err() error {
	eventLog.mu.Lock()
	defer eventLog.mu.Unlock()
	return eventLog.openErr
}

// Append writes one event as a single line and syncs it to disk.
func (eventLog *EventLog) Append(event model.LogEvent) error {
	line, err := EncodeEvent(event)
	if err != nil {
		return err
	}
	line = append(line, '\n')

	eventLog.mu.Lock()
	defer eventLog.mu.Unlock()
	if eventLog.file == nil {
		return nil
	}
	if _, err := eventLog.file.Write(line); err != nil {
		return fmt.Errorf("append event: %w", err)
	}
	if err := eventLog.file.Sync(); err != nil {
		return fmt.Errorf("sync event log: %w", err)
	}
	return nil
}

// ReadAll returns every well-formed transition in file order.
// A missing, unreadable or non-UTF-8 log reads as empty.
func (eventLog *EventLog) ReadAll() []model.Transition {
	eventLog.mu.Lock()
	data, err := eventLog.readLocked()
	eventLog.mu.Unlock()
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			eventLog.logger.Warn("read event log", zap.String("path", eventLog.path), zap.Error(err))
		}
		return nil
	}
	if !utf8.Valid(data) {
		eventLog.logger.Warn("event log is not valid UTF-8", zap.String("path", eventLog.path))
		return nil
	}

	var transitions []model.Transition
	for number, line := range splitLines(data) {
		transition, ok := DecodeTransition(line)
		if !ok {
			eventLog.logger.Debug("skip event log line", zap.Int("line", number+1))
			continue
		}
		transitions = append(transitions, transition)
	}
	return transitions
}

// RemoveEvents drops every line whose "project" field matches name ignoring case.
// Every other byte is kept as it was, blank lines and a missing final newline
// included.
// The kept lines replace the log through a temp file and an atomic rename.
func (eventLog *EventLog) RemoveEvents(name string) error {
	target := strings.TrimSpace(name)
	if target == "" {
		return nil
	}

	eventLog.mu.Lock()
	defer eventLog.mu.Unlock()
	if eventLog.readOnly {
		return eventLog.openErr
	}

	data, err := eventLog.readLocked()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read event log: %w", err)
	}

	var kept bytes.Buffer
	removed, total := 0, 0
	for _, line := range bytes.SplitAfter(data, []byte{'\n'}) {
		if len(line) == 0 {
			continue
		}
		total++
		if belongsTo(bytes.TrimSuffix(line, []byte{'\n'}), target) {
			removed++
			continue
		}
		kept.Write(line)
	}
	if removed == 0 {
		return nil
	}

	if err := eventLog.replaceLocked(kept.Bytes()); err != nil {
		return err
	}
	eventLog.logger.Info("purged project history",
		zap.String("project", target),
		zap.Int("removed", removed),
		zap.Int("kept", total-removed),
	)
	return nil
}

// Close releases the write handle.
func (eventLog *EventLog) Close() error {
	eventLog.mu.Lock()
	defer eventLog.mu.Unlock()
	if eventLog.file == nil {
		return nil
	}
	err := eventLog.file.Close()
	eventLog.file = nil
	return err
}

func (eventLog *EventLog) readLocked() ([]byte, error) {
	if eventLog.path == "" {
		return nil, os.ErrNotExist
	}
	return os.ReadFile(eventLog.path)
}

// replaceLocked swaps the log contents and reopens the append handle.
func (eventLog *EventLog) replaceLocked(contents []byte) error {
	dir := filepath.Dir(eventLog.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(eventLog.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create purge file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(contents); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write purge file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("sync purge file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close purge file: %w", err)
	}
	if err := os.Chmod(tmpPath, eventLogFileMode); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("chmod purge file: %w", err)
	}
	// The append handle is released before the rename so the swap also works
	// where open files cannot be replaced.
	if eventLog.file != nil {
		_ = eventLog.file.Close()
		eventLog.file = nil
	}
	renameErr := os.Rename(tmpPath, eventLog.path)
	if renameErr != nil {
		os.Remove(tmpPath)
	}
	if err := eventLog.open(); err != nil {
		eventLog.openErr = fmt.Errorf("%w: %w", ErrLogDisabled, err)
		eventLog.logger.Warn("event log writes disabled", zap.String("path", eventLog.path), zap.Error(err))
		return errors.Join(renameErr, err)
	}
	eventLog.openErr = nil
	if renameErr != nil {
		return fmt.Errorf("replace event log: %w", renameErr)
	}
	return nil
}

// belongsTo reads only the top-level "project" field so any line shape is tolerated.
func belongsTo(line []byte, target string) bool {
	if !gjson.ValidBytes(line) {
		return false
	}
	field := gjson.GetBytes(line, "project")
	if field.Type != gjson.String {
		return false
	}
	value := strings.TrimSpace(field.String())
	return value != "" && project.EqualFold(value, target)
}

// splitLines returns the non-empty lines of data without their terminators.
func splitLines(data []byte) [][]byte {
	var lines [][]byte
	for _, line := range bytes.Split(data, []byte{'\n'}) {
		if len(line) == 0 {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
