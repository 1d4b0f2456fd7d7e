package tray

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

const menuTitle = "FocusLog"

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnToggleTimer   func()
	OnTogglePause   func()
	OnSkipBreak     func()
	OnForceLong     func()
	OnSelectProject func(name string)
	OnProjects      func()
	OnStatistics    func()
	OnQuit          func()
}

// Manager handles system tray state.
type Manager struct {
	app         desktop.App
	callbacks   Callbacks
	running     bool
	paused      bool
	inBreak     bool
	statusLabel string
	projects    []string
	selected    string
	today       string
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:         app,
		callbacks:   callbacks,
		statusLabel: "stopped",
	}
	manager.refreshMenu()
	return manager
}

// SetStatus updates the status label.
func (manager *Manager) SetStatus(status string) {
	manager.statusLabel = status
	manager.refreshMenu()
}

// SetRunning toggles the start/stop item.
func (manager *Manager) SetRunning(running bool) {
	manager.running = running
	if !running {
		manager.paused = false
		manager.inBreak = false
	}
	manager.refreshMenu()
}

// SetPaused updates pause state.
func (manager *Manager) SetPaused(paused bool) {
	manager.paused = paused
	manager.refreshMenu()
}

// SetInBreak toggles break-related menu items.
func (manager *Manager) SetInBreak(inBreak bool) {
	manager.inBreak = inBreak
	manager.refreshMenu()
}

// SetProjects replaces the project submenu.
func (manager *Manager) SetProjects(projects []string, selected string) {
	manager.projects = projects
	manager.selected = selected
	manager.refreshMenu()
}

// SetToday shows today's tracked total.
func (manager *Manager) SetToday(summary string) {
	manager.today = summary
	manager.refreshMenu()
}

// StatusText is the label of the first, disabled menu item.
func StatusText(status, project string, paused bool) string {
	if paused {
		status = fmt.Sprintf("%s (paused)", status)
	}
	if project == "" {
		return fmt.Sprintf("Status: %s", status)
	}
	return fmt.Sprintf("Status: %s · %s", status, project)
}

func (manager *Manager) refreshMenu() {
	if manager.app == nil {
		return
	}

	statusItem := fyne.NewMenuItem(StatusText(manager.statusLabel, manager.selected, manager.paused), nil)
	statusItem.Disabled = true

	todayLabel := "Today: -"
	if manager.today != "" {
		todayLabel = "Today: " + manager.today
	}
	todayItem := fyne.NewMenuItem(todayLabel, nil)
	todayItem.Disabled = true

	timerLabel := "Start"
	if manager.running {
		timerLabel = "Stop"
	}
	timerItem := fyne.NewMenuItem(timerLabel, call(manager.callbacks.OnToggleTimer))

	pauseLabel := "Pause"
	if manager.paused {
		pauseLabel = "Resume"
	}
	pauseItem := fyne.NewMenuItem(pauseLabel, call(manager.callbacks.OnTogglePause))
	pauseItem.Disabled = !manager.running

	skipItem := fyne.NewMenuItem("Skip break", call(manager.callbacks.OnSkipBreak))
	skipItem.Disabled = !manager.inBreak

	forceLong := fyne.NewMenuItem("Take a long break now", call(manager.callbacks.OnForceLong))
	forceLong.Disabled = !manager.running || manager.inBreak || manager.paused

	projectItems := make([]*fyne.MenuItem, 0, len(manager.projects))
	for _, name := range manager.projects {
		item := fyne.NewMenuItem(name, func() {
			if manager.callbacks.OnSelectProject != nil {
				manager.callbacks.OnSelectProject(name)
			}
		})
		item.Checked = name == manager.selected
		projectItems = append(projectItems, item)
	}
	quitItem := fyne.NewMenuItem("Quit", call(manager.callbacks.OnQuit))
	quitItem.IsQuit = true

	projectMenu := fyne.NewMenuItem("Project", nil)
	projectMenu.ChildMenu = fyne.NewMenu("", projectItems...)

	manager.app.SetSystemTrayMenu(fyne.NewMenu(menuTitle,
		statusItem,
		todayItem,
		fyne.NewMenuItemSeparator(),
		timerItem,
		pauseItem,
		skipItem,
		forceLong,
		fyne.NewMenuItemSeparator(),
		projectMenu,
		fyne.NewMenuItem("Manage projects...", call(manager.callbacks.OnProjects)),
		fyne.NewMenuItem("Statistics...", call(manager.callbacks.OnStatistics)),
		fyne.NewMenuItemSeparator(),
		quitItem,
	))
}

func call(callback func()) func() {
	return func() {
		if callback != nil {
			callback()
		}
	}
}
