// Package config loads FocusLog settings from YAML and FOCUSLOG_* environment variables.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"focuslog/internal/core/model"
	"focuslog/internal/core/project"
)

const (
	AppName          = "FocusLog"
	ConfigFileName   = "config.yaml"
	defaultLogFile   = "events.jsonl"
	defaultStateFile = "state.yaml"
)

// Config is the full application configuration.
type Config struct {
	DataDir        string        `koanf:"data_dir"`
	LogFile        string        `koanf:"log_file"`
	StateFile      string        `koanf:"state_file"`
	DefaultProject string        `koanf:"default_project"`
	Logging        LoggingConfig `koanf:"logging"`
	Timer          TimerConfig   `koanf:"timer"`
}

// LoggingConfig selects the zap level and encoder.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// TimerConfig holds the work/break cycle in minutes.
type TimerConfig struct {
	WorkMinutes      int `koanf:"work_minutes"`
	BreakMinutes     int `koanf:"break_minutes"`
	LongBreakMinutes int `koanf:"long_break_minutes"`
	LongEvery        int `koanf:"long_every"`
}

// EventLogPath resolves LogFile against DataDir.
func (cfg *Config) EventLogPath() string {
	return resolve(cfg.DataDir, cfg.LogFile)
}

// StatePath resolves StateFile against DataDir.
func (cfg *Config) StatePath() string {
	return resolve(cfg.DataDir, cfg.StateFile)
}

// TimerModel converts the minute-based settings for the timekeeper.
func (cfg *Config) TimerModel() model.TimerConfig {
	return model.TimerConfig{
		Work:           time.Duration(cfg.Timer.WorkMinutes) * time.Minute,
		ShortBreak:     time.Duration(cfg.Timer.BreakMinutes) * time.Minute,
		LongBreak:      time.Duration(cfg.Timer.LongBreakMinutes) * time.Minute,
		LongBreakEvery: cfg.Timer.LongEvery,
	}
}

// Validate rejects settings the application cannot run with.
func (cfg *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(cfg.DataDir) == "" {
		errs = append(errs, errors.New("data_dir is required"))
	}
	if strings.TrimSpace(cfg.DefaultProject) == "" {
		errs = append(errs, errors.New("default_project is required"))
	} else if project.IsReserved(cfg.DefaultProject) {
		errs = append(errs, fmt.Errorf("default_project %q is reserved", cfg.DefaultProject))
	}
	if cfg.Timer.WorkMinutes <= 0 {
		errs = append(errs, errors.New("timer.work_minutes must be positive"))
	}
	if cfg.Timer.BreakMinutes <= 0 {
		errs = append(errs, errors.New("timer.break_minutes must be positive"))
	}
	if cfg.Timer.LongBreakMinutes <= 0 {
		errs = append(errs, errors.New("timer.long_break_minutes must be positive"))
	}
	if cfg.Timer.LongEvery < 0 {
		errs = append(errs, errors.New("timer.long_every must not be negative"))
	}
	switch cfg.Logging.Format {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("logging.format %q must be json or console", cfg.Logging.Format))
	}
	return errors.Join(errs...)
}

func applyDefaults(cfg *Config, dataDir string) {
	if cfg.DataDir == "" {
		cfg.DataDir = dataDir
	}
	if cfg.LogFile == "" {
		cfg.LogFile = defaultLogFile
	}
	if cfg.StateFile == "" {
		cfg.StateFile = defaultStateFile
	}
	if cfg.DefaultProject == "" {
		cfg.DefaultProject = project.DefaultName
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}

	timer := model.DefaultTimerConfig()
	if cfg.Timer.WorkMinutes == 0 {
		cfg.Timer.WorkMinutes = int(timer.Work / time.Minute)
	}
	if cfg.Timer.BreakMinutes == 0 {
		cfg.Timer.BreakMinutes = int(timer.ShortBreak / time.Minute)
	}
	if cfg.Timer.LongBreakMinutes == 0 {
		cfg.Timer.LongBreakMinutes = int(timer.LongBreak / time.Minute)
	}
	if cfg.Timer.LongEvery == 0 {
		cfg.Timer.LongEvery = timer.LongBreakEvery
	}
}

func resolve(dir, name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(dir, name)
}
