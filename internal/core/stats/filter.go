package stats

import (
	"slices"

	"focuslog/internal/core/model"
	"focuslog/internal/core/project"
)

// AllProjectsID identifies the option without a project filter.
const AllProjectsID = "all"

// FilterOption is one entry of the statistics project picker.
type FilterOption struct {
	ID      string
	Title   string
	Project *string
}

// FilterOptions lists "all projects", then every registered project, then the
// legacy label, then any project that only survives in history.
func FilterOptions(projects []string, sessions []model.CompletedWorkSession) []FilterOption {
	options := []FilterOption{{ID: AllProjectsID, Title: "All Projects"}}
	seen := make(map[string]struct{})
	add := func(name string) {
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		options = append(options, projectOption(name))
	}

	for _, name := range projects {
		add(name)
	}
	add(project.LegacyName)

	var historical []string
	for _, session := range sessions {
		if _, ok := seen[session.Project]; ok || slices.Contains(historical, session.Project) {
			continue
		}
		historical = append(historical, session.Project)
	}
	slices.Sort(historical)
	for _, name := range historical {
		add(name)
	}
	return options
}

// FindOption returns the option with id, or the "all projects" option.
func FindOption(options []FilterOption, id string) FilterOption {
	for _, option := range options {
		if option.ID == id {
			return option
		}
	}
	return FilterOption{ID: AllProjectsID, Title: "All Projects"}
}

// OptionID returns the option id for a project name.
func OptionID(name string) string {
	return "project:" + name
}

func projectOption(name string) FilterOption {
	filter := name
	return FilterOption{ID: OptionID(name), Title: name, Project: &filter}
}
