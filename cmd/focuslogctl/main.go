// Command focuslogctl manages FocusLog projects and reports tracked work
// from the command line.
package main

import (
	"os"

	"focuslog/internal/app"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type rootOptions struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	options := &rootOptions{}
	rootCmd := &cobra.Command{
		Use:   "focuslogctl",
		Short: "Manage FocusLog projects and statistics",
		Long: `focuslogctl reads the FocusLog event log to report completed work sessions
and edits the project list shared with the tray application.

Commands that change projects need the writer lock, so they fail while the
tray application is running.`,
		Version:      version,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&options.configPath, "config", "", "config file (default <user config dir>/FocusLog/config.yaml)")

	rootCmd.AddCommand(newProjectsCmd(options))
	rootCmd.AddCommand(newStatsCmd(options))
	rootCmd.AddCommand(newSessionsCmd(options))
	return rootCmd
}

func (options *rootOptions) open(writer bool) (*app.App, error) {
	return app.Open(app.Options{ConfigPath: options.configPath, Writer: writer})
}
