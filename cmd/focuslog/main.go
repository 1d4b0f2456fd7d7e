package main

import (
	"errors"
	"fmt"
	"log"
	"time"

	"focuslog/internal/app"
	"focuslog/internal/core/stats"
	"focuslog/internal/core/timekeeper"
	"focuslog/internal/platform"
	"focuslog/internal/recorder"
	"focuslog/internal/ui/projects"
	"focuslog/internal/ui/statistics"
	"focuslog/internal/ui/tray"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"
)

func main() {
	application, err := app.Open(app.Options{Writer: true})
	if err != nil {
		if errors.Is(err, platform.ErrAlreadyRunning) {
			log.Printf("focuslog is already running")
			return
		}
		log.Printf("start focuslog: %v", err)
		return
	}
	defer func() {
		if err := application.Close(); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()
	logger := application.Logger
	registry := application.Registry

	fyneApp := fyneapp.NewWithID("com.focuslog.app")
	fyneApp.SetIcon(theme.HistoryIcon())
	desktopApp, ok := fyneApp.(desktop.App)
	if !ok {
		logger.Error("system tray unsupported on this platform")
		return
	}

	trayWindow := fyneApp.NewWindow("FocusLog")
	trayWindow.SetContent(widget.NewLabel("FocusLog is running in the system tray."))
	trayWindow.SetCloseIntercept(func() {
		trayWindow.Hide()
	})
	trayWindow.Hide()
	desktopApp.SetSystemTrayWindow(trayWindow)

	keeper := timekeeper.New(application.Config.TimerModel(), timekeeper.Config{TickInterval: time.Second})

	rec := recorder.New(application.Log, registry, logger.Named("recorder"))
	rec.RecordAppStart(time.Now())
	recorded := make(chan struct{})
	transitions := keeper.SubscribeStateChanges(16)
	go func() {
		rec.Run(transitions)
		close(recorded)
	}()

	projectsWindow := projects.New(fyneApp, registry)
	statsWindow := statistics.New(fyneApp, application.Stats, registry, nil)

	idleIcon := theme.MediaPlayIcon()
	workIcon := theme.HistoryIcon()
	pausedIcon := theme.MediaPauseIcon()

	var trayManager *tray.Manager
	refreshToday := func() {
		summary := application.Stats.Query(nil, application.Stats.Today())
		trayManager.SetToday(fmt.Sprintf("%s, %s", stats.DurationString(summary.Total), statistics.SessionCount(summary.Completed)))
	}

	trayManager = tray.New(desktopApp, tray.Callbacks{
		OnToggleTimer: func() {
			if keeper.State() == timekeeper.StateIdle {
				keeper.Start()
				return
			}
			keeper.Stop()
		},
		OnTogglePause: func() {
			if keeper.State() == timekeeper.StatePaused {
				keeper.Resume()
			} else {
				keeper.Pause()
			}
		},
		OnSkipBreak: func() {
			keeper.SkipBreak()
		},
		OnForceLong: func() {
			keeper.ForceBreak(timekeeper.StateLongBreak)
		},
		OnSelectProject: func(name string) {
			registry.Select(name)
		},
		OnProjects: func() {
			projectsWindow.Show()
		},
		OnStatistics: func() {
			statsWindow.Show()
		},
		OnQuit: func() {
			fyneApp.Quit()
		},
	})
	trayManager.SetProjects(registry.Projects(), registry.Selected())
	desktopApp.SetSystemTrayIcon(idleIcon)
	refreshToday()

	updates := keeper.Subscribe(16)
	go func() {
		for event := range updates {
			if event.Type != timekeeper.EventStateChange {
				continue
			}
			fyne.Do(func() {
				trayManager.SetRunning(event.State != timekeeper.StateIdle)
				trayManager.SetPaused(event.State == timekeeper.StatePaused)
				trayManager.SetInBreak(event.State == timekeeper.StateShortBreak || event.State == timekeeper.StateLongBreak)
				trayManager.SetStatus(stateLabel(event.State))
				switch event.State {
				case timekeeper.StateWork:
					desktopApp.SetSystemTrayIcon(workIcon)
				case timekeeper.StatePaused:
					desktopApp.SetSystemTrayIcon(pausedIcon)
				default:
					desktopApp.SetSystemTrayIcon(idleIcon)
				}
				refreshToday()
			})
		}
	}()

	changes := registry.Subscribe()
	go func() {
		for state := range changes {
			fyne.Do(func() {
				trayManager.SetProjects(state.Projects, state.Selected)
				projectsWindow.Refresh()
				refreshToday()
			})
		}
	}()

	logger.Info("focuslog started",
		zap.String("event_log", application.Log.Path()),
		zap.String("project", registry.SelectedProjectForLog()),
		zap.Strings("projects", registry.Projects()),
	)

	fyneApp.Run()

	keeper.Close()
	<-recorded
}

func stateLabel(state timekeeper.State) string {
	switch state {
	case timekeeper.StateWork:
		return "working"
	case timekeeper.StateShortBreak:
		return "short break"
	case timekeeper.StateLongBreak:
		return "long break"
	case timekeeper.StatePaused:
		return "paused"
	}
	return "stopped"
}
