// Package projects is the window for adding, selecting and deleting projects.
package projects

import (
	"fmt"
	"strings"

	"focuslog/internal/core/project"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Registry is the subset of project.Registry the window drives.
type Registry interface {
	Projects() []string
	Selected() string
	Select(name string) string
	AddProject(rawName string) project.AddResult
	DeleteSelectedProject() project.DeleteResult
}

// Window handles the projects UI.
type Window struct {
	window   fyne.Window
	registry Registry
	nameIn   *widget.Entry
	choices  *widget.RadioGroup
	message  *widget.Label
	syncing  bool
}

// New creates a projects window.
func New(app fyne.App, registry Registry) *Window {
	window := app.NewWindow("FocusLog Projects")

	view := &Window{
		window:   window,
		registry: registry,
		nameIn:   widget.NewEntry(),
		message:  widget.NewLabel(""),
	}
	view.nameIn.SetPlaceHolder("New project name")
	view.nameIn.OnSubmitted = func(string) { view.handleAdd() }
	view.choices = widget.NewRadioGroup(nil, view.handleSelect)

	addButton := widget.NewButton("Add", view.handleAdd)
	deleteButton := widget.NewButton("Delete selected", view.confirmDelete)
	closeButton := widget.NewButton("Close", window.Hide)

	form := container.NewVBox(
		widget.NewLabelWithStyle("Projects", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewBorder(nil, nil, nil, addButton, view.nameIn),
		container.NewVScroll(view.choices),
		view.message,
	)
	buttons := container.NewHBox(deleteButton, layout.NewSpacer(), closeButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(360, 420))
	window.SetCloseIntercept(window.Hide)

	view.Refresh()
	return view
}

// Show displays the projects window.
func (view *Window) Show() {
	view.Refresh()
	view.window.Show()
	view.window.RequestFocus()
}

// Refresh reloads the list and selection from the registry.
func (view *Window) Refresh() {
	view.syncing = true
	view.choices.Options = view.registry.Projects()
	view.choices.SetSelected(view.registry.Selected())
	view.choices.Refresh()
	view.syncing = false
}

func (view *Window) handleSelect(name string) {
	if view.syncing || name == "" {
		return
	}
	view.registry.Select(name)
	view.message.SetText("")
}

func (view *Window) handleAdd() {
	result := view.registry.AddProject(view.nameIn.Text)
	view.message.SetText(AddMessage(result, view.nameIn.Text))
	if result == project.Added {
		view.nameIn.SetText("")
	}
	view.Refresh()
}

// Deleting a project erases its history, so the user confirms first.
func (view *Window) confirmDelete() {
	selected := view.registry.Selected()
	dialog.ShowConfirm(
		"Delete project",
		fmt.Sprintf("Delete %q and permanently erase all of its recorded work sessions?", selected),
		func(confirmed bool) {
			if !confirmed {
				return
			}
			result := view.registry.DeleteSelectedProject()
			view.message.SetText(DeleteMessage(result, selected))
			view.Refresh()
		},
		view.window,
	)
}

// AddMessage is the user-facing text for an add result.
func AddMessage(result project.AddResult, rawName string) string {
	switch result {
	case project.Added:
		return fmt.Sprintf("Added and selected %q.", strings.TrimSpace(rawName))
	case project.Empty:
		return "Enter a project name."
	case project.Duplicate:
		return "A project with that name already exists."
	case project.Reserved:
		return fmt.Sprintf("%q is reserved for untagged history.", project.LegacyName)
	}
	return ""
}

// DeleteMessage is the user-facing text for a delete result.
func DeleteMessage(result project.DeleteResult, name string) string {
	switch result {
	case project.Deleted:
		return fmt.Sprintf("Deleted %q and its history.", name)
	case project.LastProject:
		return "The last project cannot be deleted."
	case project.NotFound:
		return fmt.Sprintf("Project %q no longer exists.", name)
	}
	return ""
}
