package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"focuslog/internal/core/model"
	"focuslog/internal/core/stats"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// rangeFlags selects a date range from a preset or explicit days.
type rangeFlags struct {
	preset string
	from   string
	to     string
}

func (flags *rangeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flags.preset, "range", "today", "preset range: today, 7d or 30d")
	cmd.Flags().StringVar(&flags.from, "from", "", "first day (YYYY-MM-DD); overrides --range")
	cmd.Flags().StringVar(&flags.to, "to", "", "last day (YYYY-MM-DD); overrides --range")
}

// resolve returns the selected range. Explicit days win over the preset and a
// missing side defaults to today.
func (flags *rangeFlags) resolve(now time.Time) (stats.DateRange, error) {
	if strings.TrimSpace(flags.from) != "" || strings.TrimSpace(flags.to) != "" {
		start, err := parseDayOr(flags.from, now)
		if err != nil {
			return stats.DateRange{}, fmt.Errorf("invalid --from: %w", err)
		}
		end, err := parseDayOr(flags.to, now)
		if err != nil {
			return stats.DateRange{}, fmt.Errorf("invalid --to: %w", err)
		}
		return stats.NewDateRange(start, end), nil
	}

	switch strings.ToLower(strings.TrimSpace(flags.preset)) {
	case "", "today":
		return stats.Today(now), nil
	case "7d", "week":
		return stats.LastDays(now, 7), nil
	case "30d", "month":
		return stats.LastDays(now, 30), nil
	}
	return stats.DateRange{}, fmt.Errorf("unknown range %q (want today, 7d or 30d)", flags.preset)
}

func parseDayOr(value string, now time.Time) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return now, nil
	}
	return stats.ParseDay(value, now.Location())
}

// projectFilter maps the --project flag onto a stats filter; empty means all.
func projectFilter(name string) *string {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	return &name
}

func newStatsCmd(options *rootOptions) *cobra.Command {
	var (
		dateRange rangeFlags
		name      string
	)
	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show tracked work time for a project and date range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			window, err := dateRange.resolve(time.Now())
			if err != nil {
				return err
			}
			application, err := options.open(false)
			if err != nil {
				return err
			}
			defer application.Close()

			projects, err := application.Projects()
			if err != nil {
				return err
			}
			sessions := application.Stats.Sessions()
			filter := projectFilter(name)
			renderStats(cmd.OutOrStdout(), window, filter, stats.Aggregate(sessions, filter, window),
				breakdown(stats.FilterOptions(projects, sessions), sessions, window))
			return nil
		},
	}
	dateRange.register(statsCmd)
	statsCmd.Flags().StringVar(&name, "project", "", "only count this project (exact name)")
	return statsCmd
}

// projectTotal is one line of the per-project breakdown.
type projectTotal struct {
	Name    string
	Summary stats.Summary
}

// breakdown totals every project option that has time in the window.
func breakdown(options []stats.FilterOption, sessions []model.CompletedWorkSession, window stats.DateRange) []projectTotal {
	var totals []projectTotal
	for _, option := range options {
		if option.Project == nil {
			continue
		}
		summary := stats.Aggregate(sessions, option.Project, window)
		if summary.Completed == 0 {
			continue
		}
		totals = append(totals, projectTotal{Name: option.Title, Summary: summary})
	}
	return totals
}

func renderStats(out io.Writer, window stats.DateRange, filter *string, summary stats.Summary, totals []projectTotal) {
	scope := "All Projects"
	if filter != nil {
		scope = *filter
	}
	lines := []string{
		styles.Title.Render("FocusLog statistics"),
		row("Project", scope),
		row("Range", describeRange(window)),
		row("Total", stats.DurationString(summary.Total)),
		row("Completed", sessionCount(summary.Completed)),
	}
	fmt.Fprintln(out, styles.Box.Render(lipgloss.JoinVertical(lipgloss.Left, lines...)))

	if filter != nil || len(totals) == 0 {
		return
	}
	for _, total := range totals {
		fmt.Fprintf(out, "  %s %s %s\n",
			styles.Label.Render(total.Name),
			styles.Value.Render(stats.DurationString(total.Summary.Total)),
			styles.Muted.Render(sessionCount(total.Summary.Completed)),
		)
	}
}

// describeRange prints the inclusive days covered by window.
func describeRange(window stats.DateRange) string {
	first := window.Start.Format(time.DateOnly)
	last := window.End.AddDate(0, 0, -1).Format(time.DateOnly)
	if first == last {
		return first
	}
	return first + " .. " + last
}

func sessionCount(count int) string {
	if count == 1 {
		return "1 session"
	}
	return fmt.Sprintf("%d sessions", count)
}

func newSessionsCmd(options *rootOptions) *cobra.Command {
	var (
		dateRange rangeFlags
		name      string
	)
	sessionsCmd := &cobra.Command{
		Use:   "sessions",
		Short: "List completed work sessions that overlap a date range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			window, err := dateRange.resolve(time.Now())
			if err != nil {
				return err
			}
			application, err := options.open(false)
			if err != nil {
				return err
			}
			defer application.Close()

			sessions := filterSessions(application.Stats.Sessions(), projectFilter(name), window)
			out := cmd.OutOrStdout()
			if len(sessions) == 0 {
				fmt.Fprintln(out, styles.Muted.Render("no completed sessions"))
				return nil
			}
			for _, session := range sessions {
				fmt.Fprintf(out, "%s  %s  %s\n",
					session.Start.Local().Format("2006-01-02 15:04:05"),
					styles.Value.Render(fmt.Sprintf("%8s", stats.DurationString(session.Duration()))),
					session.Project,
				)
			}
			return nil
		},
	}
	dateRange.register(sessionsCmd)
	sessionsCmd.Flags().StringVar(&name, "project", "", "only list this project (exact name)")
	return sessionsCmd
}

// filterSessions keeps sessions of the filtered project that overlap window.
func filterSessions(sessions []model.CompletedWorkSession, filter *string, window stats.DateRange) []model.CompletedWorkSession {
	var matched []model.CompletedWorkSession
	for _, session := range sessions {
		if filter != nil && session.Project != *filter {
			continue
		}
		if window.Overlap(session.Start, session.End) <= 0 {
			continue
		}
		matched = append(matched, session)
	}
	return matched
}
