package main

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"focuslog/internal/core/project"

	"github.com/spf13/cobra"
)

func newProjectsCmd(options *rootOptions) *cobra.Command {
	projectsCmd := &cobra.Command{
		Use:   "projects",
		Short: "List and edit projects",
	}
	projectsCmd.AddCommand(
		newProjectsListCmd(options),
		newProjectsAddCmd(options),
		newProjectsSelectCmd(options),
		newProjectsDeleteCmd(options),
	)
	return projectsCmd
}

func newProjectsListCmd(options *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the projects; the selected one is marked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := options.open(false)
			if err != nil {
				return err
			}
			defer application.Close()

			projects, err := application.Projects()
			if err != nil {
				return err
			}
			state, err := application.State.Load()
			if err != nil {
				return fmt.Errorf("load project state: %w", err)
			}
			selected := state.Selected
			if !slices.Contains(projects, selected) {
				selected = projects[0]
			}

			out := cmd.OutOrStdout()
			for _, name := range projects {
				if name == selected {
					fmt.Fprintln(out, styles.Selected.Render("* "+name))
					continue
				}
				fmt.Fprintln(out, "  "+name)
			}
			return nil
		},
	}
}

func newProjectsAddCmd(options *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Add a project and select it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := options.open(true)
			if err != nil {
				return err
			}
			defer application.Close()

			result := application.Registry.AddProject(args[0])
			switch result {
			case project.Added:
				fmt.Fprintln(cmd.OutOrStdout(), styles.Success.Render(fmt.Sprintf("added %q", application.Registry.Selected())))
				return nil
			case project.Empty:
				return errors.New("project name is empty")
			case project.Duplicate:
				return fmt.Errorf("project %q already exists", args[0])
			case project.Reserved:
				return fmt.Errorf("%q is reserved for untagged history", project.LegacyName)
			}
			return fmt.Errorf("add project: %s", result)
		},
	}
}

func newProjectsSelectCmd(options *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "select <name>",
		Short: "Attribute new transitions to a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := options.open(true)
			if err != nil {
				return err
			}
			defer application.Close()

			name, err := lookupProject(application.Registry.Projects(), args[0])
			if err != nil {
				return err
			}
			selected := application.Registry.Select(name)
			fmt.Fprintln(cmd.OutOrStdout(), styles.Success.Render(fmt.Sprintf("selected %q", selected)))
			return nil
		},
	}
}

func newProjectsDeleteCmd(options *rootOptions) *cobra.Command {
	var (
		name string
		yes  bool
	)
	deleteCmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete the selected project and erase its history",
		Long: `Delete removes the selected project (or the one named with --project) and
permanently erases every logged event attributed to it. This cannot be undone,
so --yes is required.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := options.open(true)
			if err != nil {
				return err
			}
			defer application.Close()
			registry := application.Registry

			target := registry.Selected()
			if name != "" {
				if target, err = lookupProject(registry.Projects(), name); err != nil {
					return err
				}
			}
			if !yes {
				return fmt.Errorf("deleting %q erases its history; rerun with --yes to confirm", target)
			}

			switch result := deleteProject(registry, target); result {
			case project.Deleted:
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, styles.Success.Render(fmt.Sprintf("deleted %q and its history", target)))
				fmt.Fprintln(out, styles.Muted.Render(fmt.Sprintf("selected %q", registry.Selected())))
				return nil
			case project.LastProject:
				return errors.New("the last project cannot be deleted")
			default:
				return fmt.Errorf("delete %q: %s", target, result)
			}
		},
	}
	deleteCmd.Flags().StringVar(&name, "project", "", "project to delete instead of the selected one")
	deleteCmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm that the project history will be erased")
	return deleteCmd
}

// projectDeleter is the part of project.Registry that deleteProject drives.
type projectDeleter interface {
	Selected() string
	Select(name string) string
	DeleteSelectedProject() project.DeleteResult
}

// deleteProject deletes target and leaves the previous selection in place
// unless it was target itself.
func deleteProject(registry projectDeleter, target string) project.DeleteResult {
	previous := registry.Selected()
	registry.Select(target)
	result := registry.DeleteSelectedProject()
	if previous != target {
		registry.Select(previous)
	}
	return result
}

// lookupProject resolves name against the list ignoring case.
func lookupProject(projects []string, name string) (string, error) {
	name = strings.TrimSpace(name)
	for _, existing := range projects {
		if project.EqualFold(existing, name) {
			return existing, nil
		}
	}
	return "", fmt.Errorf("unknown project %q", name)
}
