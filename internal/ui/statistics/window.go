// Package statistics is the window showing tracked work per project and range.
package statistics

import (
	"fmt"
	"strings"
	"time"

	"focuslog/internal/core/stats"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const customRange = "Custom"

// Source supplies the data for one refresh.
type Source interface {
	Refresh(projects []string, filter *string, window stats.DateRange) stats.View
}

// ProjectLister returns the registered projects.
type ProjectLister interface {
	Projects() []string
}

// Window renders a statistics summary. It reloads the log on every refresh.
type Window struct {
	window   fyne.Window
	source   Source
	projects ProjectLister
	now      func() time.Time
	options  []stats.FilterOption
	optionID string
	filter   *widget.Select
	ranges   *widget.Select
	from     *widget.Entry
	to       *widget.Entry
	total    *widget.Label
	count    *widget.Label
	message  *widget.Label
	syncing  bool
}

// New creates a statistics window.
func New(app fyne.App, source Source, projects ProjectLister, now func() time.Time) *Window {
	if now == nil {
		now = time.Now
	}
	window := app.NewWindow("FocusLog Statistics")

	view := &Window{
		window:   window,
		source:   source,
		projects: projects,
		now:      now,
		optionID: stats.AllProjectsID,
		from:     widget.NewEntry(),
		to:       widget.NewEntry(),
		total:    widget.NewLabelWithStyle("0s", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		count:    widget.NewLabel("0 sessions"),
		message:  widget.NewLabel(""),
	}
	view.from.SetPlaceHolder(time.DateOnly)
	view.to.SetPlaceHolder(time.DateOnly)

	view.filter = widget.NewSelect(nil, func(title string) {
		if view.syncing {
			return
		}
		for _, option := range view.options {
			if option.Title == title {
				view.optionID = option.ID
			}
		}
		view.Refresh()
	})

	rangeNames := make([]string, 0, 4)
	for _, preset := range stats.Presets(now()) {
		rangeNames = append(rangeNames, preset.Name)
	}
	rangeNames = append(rangeNames, customRange)
	view.ranges = widget.NewSelect(rangeNames, func(string) {
		if !view.syncing {
			view.Refresh()
		}
	})
	view.syncing = true
	view.ranges.SetSelected(rangeNames[0])
	view.syncing = false

	refreshButton := widget.NewButton("Refresh", view.Refresh)
	form := container.NewVBox(
		widget.NewLabelWithStyle("Statistics", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewGridWithColumns(2, widget.NewLabel("Project"), view.filter),
		container.NewGridWithColumns(2, widget.NewLabel("Range"), view.ranges),
		container.NewGridWithColumns(4, widget.NewLabel("From"), view.from, widget.NewLabel("To"), view.to),
		container.NewGridWithColumns(2, widget.NewLabel("Total"), view.total),
		container.NewGridWithColumns(2, widget.NewLabel("Completed"), view.count),
		view.message,
	)

	window.SetContent(container.NewBorder(nil, refreshButton, nil, nil, form))
	window.Resize(fyne.NewSize(420, 320))
	window.SetCloseIntercept(window.Hide)
	return view
}

// Show displays the window with fresh numbers.
func (view *Window) Show() {
	view.Refresh()
	view.window.Show()
	view.window.RequestFocus()
}

// Refresh replays the log and updates every widget.
func (view *Window) Refresh() {
	dateRange, err := view.selectedRange()
	if err != nil {
		view.message.SetText(err.Error())
		return
	}
	view.message.SetText("")

	filter := stats.FindOption(view.options, view.optionID).Project
	result := view.source.Refresh(view.projects.Projects(), filter, dateRange)
	view.options = result.Options
	selected := stats.FindOption(result.Options, view.optionID)
	view.optionID = selected.ID

	titles := make([]string, 0, len(result.Options))
	for _, option := range result.Options {
		titles = append(titles, option.Title)
	}
	view.syncing = true
	view.filter.Options = titles
	view.filter.SetSelected(selected.Title)
	view.syncing = false

	view.total.SetText(stats.DurationString(result.Summary.Total))
	view.count.SetText(SessionCount(result.Summary.Completed))
}

func (view *Window) selectedRange() (stats.DateRange, error) {
	now := view.now()
	if view.ranges.Selected != customRange {
		for _, preset := range stats.Presets(now) {
			if preset.Name == view.ranges.Selected {
				return preset.Range, nil
			}
		}
		return stats.Today(now), nil
	}
	return CustomRange(view.from.Text, view.to.Text, now)
}

// CustomRange parses the From/To entries; a blank side defaults to today.
func CustomRange(from, to string, now time.Time) (stats.DateRange, error) {
	start, end := now, now
	if value := strings.TrimSpace(from); value != "" {
		parsed, err := stats.ParseDay(value, now.Location())
		if err != nil {
			return stats.DateRange{}, fmt.Errorf("invalid from date %q", value)
		}
		start = parsed
	}
	if value := strings.TrimSpace(to); value != "" {
		parsed, err := stats.ParseDay(value, now.Location())
		if err != nil {
			return stats.DateRange{}, fmt.Errorf("invalid to date %q", value)
		}
		end = parsed
	}
	return stats.NewDateRange(start, end), nil
}

// SessionCount renders the completed-session count.
func SessionCount(count int) string {
	if count == 1 {
		return "1 session"
	}
	return fmt.Sprintf("%d sessions", count)
}
