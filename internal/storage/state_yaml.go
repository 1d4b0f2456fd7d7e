package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"focuslog/internal/core/project"

	"gopkg.in/yaml.v3"
)

type yamlState struct {
	Projects        []string `yaml:"projects"`
	SelectedProject string   `yaml:"selectedProject"`
}

// StateFile persists the project registry as a two-key YAML document.
type StateFile struct {
	path string
}

// NewStateFile returns a store backed by the YAML file at path.
func NewStateFile(path string) *StateFile {
	return &StateFile{path: path}
}

// Load reads the persisted state. A missing file is an empty state.
func (stateFile *StateFile) Load() (project.State, error) {
	rawData, err := os.ReadFile(stateFile.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return project.State{}, nil
		}
		return project.State{}, fmt.Errorf("read state file: %w", err)
	}

	var fileData yamlState
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return project.State{}, fmt.Errorf("parse state yaml: %w", err)
	}
	return project.State{
		Projects: fileData.Projects,
		Selected: fileData.SelectedProject,
	}, nil
}

// Save writes both keys in one atomic replace.
func (stateFile *StateFile) Save(state project.State) error {
	if err := os.MkdirAll(filepath.Dir(stateFile.path), 0o755); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}

	serialized, err := yaml.Marshal(yamlState{
		Projects:        state.Projects,
		SelectedProject: state.Selected,
	})
	if err != nil {
		return fmt.Errorf("marshal state yaml: %w", err)
	}

	tmpPath := stateFile.path + ".tmp"
	if err := os.WriteFile(tmpPath, serialized, 0o644); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}
	if err := os.Rename(tmpPath, stateFile.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename state file: %w", err)
	}
	return nil
}
