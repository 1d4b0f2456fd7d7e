// Package app wires configuration, logging, storage and the core services
// shared by the tray application and the command line tool.
package app

import (
	"errors"
	"fmt"

	"focuslog/internal/config"
	"focuslog/internal/core/project"
	"focuslog/internal/core/stats"
	"focuslog/internal/logging"
	"focuslog/internal/platform"
	"focuslog/internal/storage"

	"go.uber.org/zap"
)

// Options controls how much of the application is opened.
type Options struct {
	ConfigPath string
	// Writer acquires the process-wide writer lock and opens the registry.
	// Without it only read access to the log and state file is available.
	Writer bool
}

// App owns the long-lived resources of one process.
type App struct {
	Config   *config.Config
	Logger   *zap.Logger
	Log      *storage.EventLog
	State    *storage.StateFile
	Registry *project.Registry
	Stats    *stats.Service
	lock     *platform.WriterLock
}

// Open loads configuration and opens storage.
func Open(options Options) (*App, error) {
	cfg, err := config.Load(options.ConfigPath)
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, err
	}

	application := &App{
		Config: cfg,
		Logger: logger,
		State:  storage.NewStateFile(cfg.StatePath()),
	}

	if options.Writer {
		lock, err := platform.AcquireWriterLock(config.AppName + ":" + cfg.DataDir)
		if err != nil {
			return nil, err
		}
		application.lock = lock
		application.Log = storage.OpenEventLog(cfg.EventLogPath(), logger.Named("eventlog"))
		application.Registry = project.NewRegistry(application.State, application.Log, project.Options{
			DefaultName: cfg.DefaultProject,
			Logger:      logger.Named("projects"),
		})
	} else {
		application.Log = storage.NewEventLogReader(cfg.EventLogPath(), logger.Named("eventlog"))
	}
	application.Stats = stats.NewService(application.Log, nil)

	logger.Debug("application opened",
		zap.String("data_dir", cfg.DataDir),
		zap.String("event_log", cfg.EventLogPath()),
		zap.Bool("writer", options.Writer),
	)
	return application, nil
}

// Projects returns the registered projects. Read-only opens normalize the
// persisted list without writing it back.
func (application *App) Projects() ([]string, error) {
	if application.Registry != nil {
		return application.Registry.Projects(), nil
	}
	state, err := application.State.Load()
	if err != nil {
		return nil, fmt.Errorf("load project state: %w", err)
	}
	projects := project.Normalize(state.Projects)
	if len(projects) == 0 {
		projects = []string{application.Config.DefaultProject}
	}
	return projects, nil
}

// Close releases the log handle, the registry subscribers and the writer lock.
func (application *App) Close() error {
	var errs []error
	if application.Registry != nil {
		application.Registry.Close()
	}
	if application.Log != nil {
		if err := application.Log.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close event log: %w", err))
		}
	}
	if err := application.lock.Release(); err != nil {
		errs = append(errs, fmt.Errorf("release writer lock: %w", err))
	}
	if err := logging.Sync(application.Logger); err != nil {
		errs = append(errs, fmt.Errorf("sync logger: %w", err))
	}
	return errors.Join(errs...)
}
