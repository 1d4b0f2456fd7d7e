package storage

import (
	"os"
	"path/filepath"
	"testing"

	"focuslog/internal/core/project"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.yaml")
	stateFile := NewStateFile(path)

	state := project.State{Projects: []string{"General", "Side project"}, Selected: "Side project"}
	require.NoError(t, stateFile.Save(state))

	loaded, err := stateFile.Load()
	require.NoError(t, err)
	assert.Equal(t, state, loaded)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "selectedProject: Side project")
	assert.NoFileExists(t, path+".tmp")
}

func TestStateFile_MissingFileIsEmpty(t *testing.T) {
	state, err := NewStateFile(filepath.Join(t.TempDir(), "state.yaml")).Load()
	require.NoError(t, err)
	assert.Equal(t, project.State{}, state)
}

func TestStateFile_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.yaml")
	require.NoError(t, os.WriteFile(path, []byte("projects: [unterminated"), 0o644))

	_, err := NewStateFile(path).Load()
	assert.Error(t, err)
}

func TestStateFile_RegistryKeepsUnreadableState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.yaml")
	broken := []byte("projects: [Alpha, Beta\nselectedProject: Beta\n")
	require.NoError(t, os.WriteFile(path, broken, 0o644))

	registry := project.NewRegistry(NewStateFile(path), nil, project.Options{})
	defer registry.Close()

	assert.Equal(t, []string{project.DefaultName}, registry.Projects())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, broken, data)
}
