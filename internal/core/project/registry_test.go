package project

import (
	"errors"
	"slices"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type memoryStore struct {
	mu      sync.Mutex
	state   State
	loadErr error
	saveErr error
	saves   []State
}

func (store *memoryStore) Load() (State, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	if store.loadErr != nil {
		return State{}, store.loadErr
	}
	return State{Projects: slices.Clone(store.state.Projects), Selected: store.state.Selected}, nil
}

func (store *memoryStore) Save(state State) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.saves = append(store.saves, state)
	if store.saveErr != nil {
		return store.saveErr
	}
	store.state = state
	return nil
}

func (store *memoryStore) saveCount() int {
	store.mu.Lock()
	defer store.mu.Unlock()
	return len(store.saves)
}

type recordingPurger struct {
	removed []string
	err     error
}

func (purger *recordingPurger) RemoveEvents(project string) error {
	purger.removed = append(purger.removed, project)
	return purger.err
}

func newTestRegistry(t *testing.T, state State) (*Registry, *memoryStore, *recordingPurger) {
	t.Helper()
	store := &memoryStore{state: state}
	purger := &recordingPurger{}
	registry := NewRegistry(store, purger, Options{DefaultName: DefaultName})
	t.Cleanup(registry.Close)
	return registry, store, purger
}

func assertInvariants(t *testing.T, registry *Registry) {
	t.Helper()
	projects := registry.Projects()
	require.NotEmpty(t, projects)
	assert.Contains(t, projects, registry.Selected())
	assert.Equal(t, Normalize(projects), projects)
}

func TestNewRegistry_SeedsDefault(t *testing.T) {
	registry, store, _ := newTestRegistry(t, State{})

	assert.Equal(t, []string{DefaultName}, registry.Projects())
	assert.Equal(t, DefaultName, registry.Selected())
	assert.Equal(t, State{Projects: []string{DefaultName}, Selected: DefaultName}, store.state)
}

func TestNewRegistry_NormalizesPersistedState(t *testing.T) {
	registry, store, _ := newTestRegistry(t, State{
		Projects: []string{" Alpha ", "alpha", "", "Uncategorized", "Beta"},
		Selected: "Gone",
	})

	assert.Equal(t, []string{"Alpha", "Beta"}, registry.Projects())
	assert.Equal(t, "Alpha", registry.Selected())
	assert.Equal(t, []string{"Alpha", "Beta"}, store.state.Projects)
	assert.Equal(t, "Alpha", store.state.Selected)
	assertInvariants(t, registry)
}

func TestNewRegistry_CleanStateIsNotRewritten(t *testing.T) {
	_, store, _ := newTestRegistry(t, State{Projects: []string{"Alpha", "Beta"}, Selected: "Beta"})
	assert.Zero(t, store.saveCount())
}

func TestNewRegistry_LoadFailureFallsBackToDefault(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	store := &memoryStore{loadErr: errors.New("corrupt")}
	registry := NewRegistry(store, nil, Options{Logger: zap.New(core)})

	assert.Equal(t, []string{DefaultName}, registry.Projects())
	assert.Equal(t, DefaultName, registry.Selected())
	assert.Equal(t, 1, logs.FilterMessage("load project state").Len())
	assert.Zero(t, store.saveCount(), "an unreadable state must not be overwritten")
}

func TestWithSelectedProject(t *testing.T) {
	registry, _, _ := newTestRegistry(t, State{Projects: []string{"Alpha", "Beta"}, Selected: "Beta"})

	var got string
	require.NoError(t, registry.WithSelectedProject(func(name string) error {
		got = name
		return nil
	}))
	assert.Equal(t, "Beta", got)

	failure := errors.New("append failed")
	assert.ErrorIs(t, registry.WithSelectedProject(func(string) error { return failure }), failure)
}

func TestNewRegistry_ReservedDefaultIsReplaced(t *testing.T) {
	registry := NewRegistry(&memoryStore{}, nil, Options{DefaultName: "uncategorized"})
	assert.Equal(t, []string{DefaultName}, registry.Projects())
}

func TestAddProject(t *testing.T) {
	registry, store, _ := newTestRegistry(t, State{Projects: []string{"Alpha"}, Selected: "Alpha"})

	assert.Equal(t, Added, registry.AddProject("  Beta  "))
	assert.Equal(t, []string{"Alpha", "Beta"}, registry.Projects())
	assert.Equal(t, "Beta", registry.Selected())
	assert.Equal(t, State{Projects: []string{"Alpha", "Beta"}, Selected: "Beta"}, store.state)
	assertInvariants(t, registry)
}

func TestAddProject_Rejections(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  AddResult
	}{
		{name: "empty", input: "", want: Empty},
		{name: "whitespace", input: "   ", want: Empty},
		{name: "exact duplicate", input: "Alpha", want: Duplicate},
		{name: "case duplicate", input: " ALPHA ", want: Duplicate},
		{name: "reserved", input: "Uncategorized", want: Reserved},
		{name: "reserved other case", input: "uncategorized", want: Reserved},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry, store, _ := newTestRegistry(t, State{Projects: []string{"Alpha"}, Selected: "Alpha"})

			assert.Equal(t, tt.want, registry.AddProject(tt.input))
			assert.Equal(t, []string{"Alpha"}, registry.Projects())
			assert.Equal(t, "Alpha", registry.Selected())
			assert.Zero(t, store.saveCount())
		})
	}
}

func TestDeleteSelectedProject_PurgesAndReselects(t *testing.T) {
	registry, store, purger := newTestRegistry(t, State{Projects: []string{"Alpha", "Beta"}, Selected: "Beta"})

	assert.Equal(t, Deleted, registry.DeleteSelectedProject())
	assert.Equal(t, []string{"Alpha"}, registry.Projects())
	assert.Equal(t, "Alpha", registry.Selected())
	assert.Equal(t, []string{"Beta"}, purger.removed)
	assert.Equal(t, State{Projects: []string{"Alpha"}, Selected: "Alpha"}, store.state)
}

func TestDeleteSelectedProject_LastProject(t *testing.T) {
	registry, store, purger := newTestRegistry(t, State{Projects: []string{"Solo"}, Selected: "Solo"})

	assert.Equal(t, LastProject, registry.DeleteSelectedProject())
	assert.Equal(t, []string{"Solo"}, registry.Projects())
	assert.Empty(t, purger.removed)
	assert.Zero(t, store.saveCount())
}

func TestDeleteSelectedProject_PurgeErrorIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	store := &memoryStore{state: State{Projects: []string{"Alpha", "Beta"}, Selected: "Alpha"}}
	purger := &recordingPurger{err: errors.New("disk full")}
	registry := NewRegistry(store, purger, Options{Logger: zap.New(core)})

	assert.Equal(t, Deleted, registry.DeleteSelectedProject())
	assert.Equal(t, []string{"Beta"}, registry.Projects())
	require.Equal(t, 1, logs.FilterMessage("purge project history").Len())
}

func TestSaveFailureStillUpdatesMemory(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	store := &memoryStore{state: State{Projects: []string{"Alpha"}, Selected: "Alpha"}}
	registry := NewRegistry(store, nil, Options{Logger: zap.New(core)})
	store.saveErr = errors.New("read-only")

	assert.Equal(t, Added, registry.AddProject("Beta"))
	assert.Equal(t, "Beta", registry.Selected())
	assert.Equal(t, 1, logs.FilterMessage("save project state").Len())
}

func TestSelect(t *testing.T) {
	registry, store, _ := newTestRegistry(t, State{Projects: []string{"Alpha", "Beta"}, Selected: "Alpha"})

	assert.Equal(t, "Beta", registry.Select("Beta"))
	assert.Equal(t, "Beta", store.state.Selected)

	saves := store.saveCount()
	assert.Equal(t, "Beta", registry.Select("Beta"))
	assert.Equal(t, saves, store.saveCount())

	assert.Equal(t, "Alpha", registry.Select("missing"))
	assert.Equal(t, "Alpha", registry.SelectedProjectForLog())
}

func TestSubscribeKeepsLatestState(t *testing.T) {
	registry, _, _ := newTestRegistry(t, State{Projects: []string{"Alpha"}, Selected: "Alpha"})
	updates := registry.Subscribe()

	require.Equal(t, Added, registry.AddProject("Beta"))
	require.Equal(t, Added, registry.AddProject("Gamma"))

	state := <-updates
	assert.Equal(t, State{Projects: []string{"Alpha", "Beta", "Gamma"}, Selected: "Gamma"}, state)
	select {
	case extra := <-updates:
		t.Fatalf("unexpected extra update %+v", extra)
	default:
	}

	registry.Close()
	_, ok := <-updates
	assert.False(t, ok)
}

// Scenario: add, switch and delete keep the list non-empty with a valid selection.
func TestRegistryInvariantsAcrossOperations(t *testing.T) {
	registry, _, purger := newTestRegistry(t, State{})

	registry.AddProject("Alpha")
	registry.AddProject("Beta")
	registry.Select("Alpha")
	assertInvariants(t, registry)

	assert.Equal(t, Deleted, registry.DeleteSelectedProject())
	assertInvariants(t, registry)
	assert.Equal(t, Deleted, registry.DeleteSelectedProject())
	assertInvariants(t, registry)
	assert.Equal(t, LastProject, registry.DeleteSelectedProject())
	assertInvariants(t, registry)

	assert.Equal(t, []string{"Beta"}, registry.Projects())
	assert.Equal(t, []string{"Alpha", DefaultName}, purger.removed)
}

func TestResultStrings(t *testing.T) {
	assert.Equal(t, "duplicate", Duplicate.String())
	assert.Equal(t, "last_project", LastProject.String())
	assert.Equal(t, "not_found", NotFound.String())
}

func TestDeleteSelectedProject_SelectsRemainingProject(t *testing.T) {
	registry, _, purger := newTestRegistry(t, State{Projects: []string{"A", "B"}, Selected: "A"})

	assert.Equal(t, Deleted, registry.DeleteSelectedProject())
	assert.Equal(t, []string{"B"}, registry.Projects())
	assert.Equal(t, "B", registry.Selected())
	assert.Equal(t, []string{"A"}, purger.removed)
}
