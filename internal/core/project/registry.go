package project

import (
	"slices"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// State is the persisted form of the registry.
type State struct {
	Projects []string
	Selected string
}

// Store persists registry state. Save must write both fields together.
type Store interface {
	Load() (State, error)
	Save(State) error
}

// Purger removes every logged event attributed to a project.
type Purger interface {
	RemoveEvents(project string) error
}

// AddResult is the outcome of AddProject.
type AddResult int

const (
	Added AddResult = iota
	Empty
	Duplicate
	Reserved
)

func (result AddResult) String() string {
	switch result {
	case Added:
		return "added"
	case Empty:
		return "empty"
	case Duplicate:
		return "duplicate"
	case Reserved:
		return "reserved"
	}
	return "unknown"
}

// DeleteResult is the outcome of DeleteSelectedProject.
type DeleteResult int

const (
	Deleted DeleteResult = iota
	LastProject
	NotFound
)

func (result DeleteResult) String() string {
	switch result {
	case Deleted:
		return "deleted"
	case LastProject:
		return "last_project"
	case NotFound:
		return "not_found"
	}
	return "unknown"
}

// Options configures a Registry.
type Options struct {
	DefaultName string
	Logger      *zap.Logger
}

// Registry is the ordered list of projects plus the selected one.
// It is never empty and the selection is always a member of the list.
type Registry struct {
	mu          sync.Mutex
	store       Store
	purger      Purger
	logger      *zap.Logger
	defaultName string
	projects    []string
	selected    string
	subscribers []chan State
}

// NewRegistry loads persisted state, normalizes it and writes back any correction.
// A load failure is logged and the registry starts from the default project
// without touching the stored state.
func NewRegistry(store Store, purger Purger, options Options) *Registry {
	defaultName := strings.TrimSpace(options.DefaultName)
	if defaultName == "" || IsReserved(defaultName) {
		defaultName = DefaultName
	}
	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	registry := &Registry{
		store:       store,
		purger:      purger,
		logger:      logger,
		defaultName: defaultName,
	}
	registry.load()
	return registry
}

func (registry *Registry) load() {
	persisted, err := registry.store.Load()
	if err != nil {
		// The unreadable file is left as it is; the defaults live in memory only.
		registry.logger.Error("load project state", zap.Error(err))
		registry.projects = []string{registry.defaultName}
		registry.selected = registry.defaultName
		return
	}

	projects := Normalize(persisted.Projects)
	if len(projects) == 0 {
		projects = []string{registry.defaultName}
	}
	selected := persisted.Selected
	if !slices.Contains(projects, selected) {
		selected = projects[0]
	}

	registry.projects = projects
	registry.selected = selected

	if !slices.Equal(projects, persisted.Projects) || selected != persisted.Selected {
		registry.logger.Info("normalized project state",
			zap.Strings("projects", projects),
			zap.String("selected", selected),
		)
		registry.saveLocked(State{Projects: projects, Selected: selected})
	}
}

// Projects returns a copy of the ordered project list.
func (registry *Registry) Projects() []string {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	return slices.Clone(registry.projects)
}

// Selected returns the current selection.
func (registry *Registry) Selected() string {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	return registry.selected
}

// SelectedProjectForLog returns a name that is guaranteed to be in the list.
func (registry *Registry) SelectedProjectForLog() string {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	return registry.resolveLocked(registry.selected)
}

// WithSelectedProject calls fn with the log project while holding the registry
// lock. Appends made inside fn cannot interleave with DeleteSelectedProject, so
// nothing tagged with a deleted project is written after its purge.
func (registry *Registry) WithSelectedProject(fn func(name string) error) error {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	return fn(registry.resolveLocked(registry.selected))
}

// Select changes the selection. Unknown names fall back to the first project.
// The effective selection is returned.
func (registry *Registry) Select(name string) string {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	selected := registry.resolveLocked(name)
	if selected == registry.selected {
		return selected
	}
	registry.commitLocked(registry.projects, selected)
	return selected
}

// AddProject appends a trimmed, unique, non-reserved name and selects it.
func (registry *Registry) AddProject(rawName string) AddResult {
	name := strings.TrimSpace(rawName)
	if name == "" {
		return Empty
	}

	registry.mu.Lock()
	defer registry.mu.Unlock()

	if registry.indexLocked(name) >= 0 {
		return Duplicate
	}
	if IsReserved(name) {
		return Reserved
	}

	projects := append(slices.Clone(registry.projects), name)
	registry.commitLocked(projects, name)
	return Added
}

// DeleteSelectedProject removes the selected project and purges its history.
// The last remaining project cannot be deleted.
func (registry *Registry) DeleteSelectedProject() DeleteResult {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	if len(registry.projects) <= 1 {
		return LastProject
	}
	target := registry.selected
	index := slices.Index(registry.projects, target)
	if index < 0 {
		return NotFound
	}

	projects := slices.Delete(slices.Clone(registry.projects), index, index+1)
	selected := target
	if !slices.Contains(projects, selected) {
		selected = firstOr(projects, registry.defaultName)
	}
	registry.commitLocked(projects, selected)

	if registry.purger != nil {
		if err := registry.purger.RemoveEvents(target); err != nil {
			registry.logger.Error("purge project history",
				zap.String("project", target),
				zap.Error(err),
			)
		}
	}
	return Deleted
}

// Subscribe returns a channel that receives the latest state after every change.
// Slow readers only miss intermediate states.
func (registry *Registry) Subscribe() <-chan State {
	ch := make(chan State, 1)
	registry.mu.Lock()
	registry.subscribers = append(registry.subscribers, ch)
	registry.mu.Unlock()
	return ch
}

// Close closes all subscriber channels.
func (registry *Registry) Close() {
	registry.mu.Lock()
	subscribers := registry.subscribers
	registry.subscribers = nil
	registry.mu.Unlock()

	for _, ch := range subscribers {
		close(ch)
	}
}

// commitLocked persists first, then publishes the new in-memory state.
func (registry *Registry) commitLocked(projects []string, selected string) {
	state := State{Projects: projects, Selected: selected}
	registry.saveLocked(state)
	registry.projects = projects
	registry.selected = selected
	registry.notifyLocked(state)
}

func (registry *Registry) saveLocked(state State) {
	if err := registry.store.Save(State{Projects: slices.Clone(state.Projects), Selected: state.Selected}); err != nil {
		registry.logger.Error("save project state", zap.Error(err))
	}
}

func (registry *Registry) notifyLocked(state State) {
	for _, ch := range registry.subscribers {
		update := State{Projects: slices.Clone(state.Projects), Selected: state.Selected}
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- update:
		default:
		}
	}
}

func (registry *Registry) resolveLocked(name string) string {
	if slices.Contains(registry.projects, name) {
		return name
	}
	return firstOr(registry.projects, registry.defaultName)
}

func (registry *Registry) indexLocked(name string) int {
	return slices.IndexFunc(registry.projects, func(existing string) bool {
		return EqualFold(existing, name)
	})
}

func firstOr(projects []string, fallback string) string {
	if len(projects) == 0 {
		return fallback
	}
	return projects[0]
}
