package projects

import (
	"slices"
	"testing"

	"focuslog/internal/core/project"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
)

type fakeRegistry struct {
	projects []string
	selected string
}

func (registry *fakeRegistry) Projects() []string { return slices.Clone(registry.projects) }
func (registry *fakeRegistry) Selected() string   { return registry.selected }

func (registry *fakeRegistry) Select(name string) string {
	if slices.Contains(registry.projects, name) {
		registry.selected = name
	}
	return registry.selected
}

func (registry *fakeRegistry) AddProject(rawName string) project.AddResult {
	if rawName == "" {
		return project.Empty
	}
	registry.projects = append(registry.projects, rawName)
	registry.selected = rawName
	return project.Added
}

func (registry *fakeRegistry) DeleteSelectedProject() project.DeleteResult {
	return project.LastProject
}

func TestWindow_AddSelectsNewProject(t *testing.T) {
	registry := &fakeRegistry{projects: []string{"General"}, selected: "General"}
	view := New(test.NewTempApp(t), registry)
	assert.Equal(t, []string{"General"}, view.choices.Options)

	view.nameIn.SetText("Beta")
	view.handleAdd()

	assert.Equal(t, []string{"General", "Beta"}, view.choices.Options)
	assert.Equal(t, "Beta", view.choices.Selected)
	assert.Empty(t, view.nameIn.Text)
	assert.Equal(t, `Added and selected "Beta".`, view.message.Text)
}

func TestWindow_RefreshDoesNotReselect(t *testing.T) {
	registry := &fakeRegistry{projects: []string{"General", "Beta"}, selected: "Beta"}
	view := New(test.NewTempApp(t), registry)

	registry.selected = "General"
	view.Refresh()
	assert.Equal(t, "General", view.choices.Selected)

	view.choices.SetSelected("Beta")
	assert.Equal(t, "Beta", registry.selected)
}

func TestAddMessage(t *testing.T) {
	assert.Equal(t, "Enter a project name.", AddMessage(project.Empty, "  "))
	assert.Equal(t, "A project with that name already exists.", AddMessage(project.Duplicate, "work"))
	assert.Equal(t, `"Uncategorized" is reserved for untagged history.`, AddMessage(project.Reserved, "uncategorized"))
	assert.Equal(t, `Added and selected "Work".`, AddMessage(project.Added, " Work "))
}

func TestDeleteMessage(t *testing.T) {
	assert.Equal(t, `Deleted "A" and its history.`, DeleteMessage(project.Deleted, "A"))
	assert.Equal(t, "The last project cannot be deleted.", DeleteMessage(project.LastProject, "Solo"))
	assert.Equal(t, `Project "X" no longer exists.`, DeleteMessage(project.NotFound, "X"))
}
