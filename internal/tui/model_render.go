package tui

import (
	"fmt"
	"image/color"
	"strings"

	lipgloss "charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/colonyops/taskboard/internal/core/dates"
	"github.com/colonyops/taskboard/internal/core/styles"
	"github.com/colonyops/taskboard/internal/core/task"
	"github.com/colonyops/taskboard/internal/core/view"
	"github.com/colonyops/taskboard/internal/tui/components"
)

const (
	chromeHeight   = 5 // title, tabs, filters, divider, footer
	rowHeight      = 2
	statsWidth     = 36
	minSplitWidth  = 90
	chartBarWidth  = statsWidth - 6
	progressBarLen = 12
)

var periodLabels = map[view.Period]string{
	view.PeriodAll:   "All",
	view.PeriodToday: "Today",
	view.PeriodWeek:  "This Week",
	view.PeriodMonth: "This Month",
}

func (m Model) visibleRows() int {
	_, h := m.size()
	return max((h-chromeHeight)/rowHeight, 1)
}

func (m Model) renderMain(w, h int) string {
	listW := w
	var stats string
	if w >= minSplitWidth {
		listW = w - statsWidth - 1
		stats = m.renderStats(h - chromeHeight + 1)
	}

	list := m.renderList(listW, h-chromeHeight)
	body := list
	if stats != "" {
		body = lipgloss.JoinHorizontal(lipgloss.Top, lipgloss.NewStyle().Width(listW).Render(list), " ", stats)
	}
	body = lipgloss.NewStyle().Height(h - chromeHeight).MaxHeight(h - chromeHeight).Render(body)

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderTitle(w),
		m.renderTabs(w),
		m.renderFilters(w),
		styles.DividerStyle.Render(strings.Repeat("─", w)),
		body,
		ansi.Truncate(styles.MutedStyle.Render(footerHint), w, "…"),
	)
}

func (m Model) renderTitle(w int) string {
	left := styles.TitleStyle.Render("taskboard")

	s := m.snapshot.Stats
	right := styles.MutedStyle.Render(fmt.Sprintf("%d tasks · %d%% done · %s · %s",
		s.Total, s.Percent, styles.CurrentMode, dates.FormatDate(m.snapshot.Now)))

	gap := max(w-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return ansi.Truncate(left+components.Pad(gap)+right, w, "")
}

func (m Model) renderTabs(w int) string {
	tabs := make([]string, 0, len(view.Periods()))
	for _, p := range view.Periods() {
		style := styles.TabInactiveStyle
		if p == m.snapshot.State.Period {
			style = styles.TabActiveStyle
		}
		tabs = append(tabs, style.Render(periodLabels[p]))
	}
	return ansi.Truncate(lipgloss.JoinHorizontal(lipgloss.Top, tabs...), w, "")
}

func (m Model) renderFilters(w int) string {
	st := m.snapshot.State
	parts := []string{
		styles.StatLabelStyle.Render("status ") + styles.HeaderStyle.Render(string(st.Status)),
		styles.StatLabelStyle.Render("sort ") + styles.HeaderStyle.Render(st.Sort.Label()),
	}

	switch {
	case m.uiState == stateSearching:
		parts = append(parts, m.search.View())
	case st.Query != "":
		parts = append(parts, styles.StatLabelStyle.Render("search ")+styles.HeaderStyle.Render(fmt.Sprintf("%q", st.Query)))
	}

	line := " " + strings.Join(parts, styles.MutedStyle.Render("  ·  "))
	return ansi.Truncate(line, w, "…")
}

func (m Model) renderList(w, h int) string {
	rows := m.snapshot.Tasks
	if len(rows) == 0 {
		return lipgloss.Place(w, max(h, 3), lipgloss.Center, lipgloss.Center,
			lipgloss.JoinVertical(lipgloss.Center,
				styles.HeaderStyle.Render("No tasks found"),
				styles.MutedStyle.Render("Add a new task to get started!"),
			))
	}

	end := min(m.offset+m.visibleRows(), len(rows))
	lines := make([]string, 0, (end-m.offset)*rowHeight)
	for i := m.offset; i < end; i++ {
		lines = append(lines, m.renderRow(rows[i], i == m.cursor, w)...)
	}
	return strings.Join(lines, "\n")
}

// renderRow renders a task as a header line (checkbox, text, type badge)
// and a meta line (priority, deadline, creation label).
func (m Model) renderRow(row view.TaskRow, selected bool, w int) []string {
	t := row.Task

	textStyle := styles.RowNormalStyle
	if t.Completed {
		textStyle = styles.RowCompletedStyle
	}

	cursor := "  "
	if selected {
		cursor = styles.HeaderStyle.Render("▌ ")
	}

	header := cursor +
		styles.Checkbox(t.Completed, m.nerdFonts) + " " +
		textStyle.Render(t.Text) + "  " +
		styles.BadgeStyle.Render("["+capitalize(string(t.Type))+"]")

	deadline := styles.MutedStyle.Render(row.DeadlineText)
	if row.Overdue {
		marker := "!"
		if m.nerdFonts {
			marker = styles.IconOverdue
		}
		deadline = styles.OverdueStyle.Render(marker + " " + row.DeadlineText + " overdue")
	}

	sep := styles.MutedStyle.Render(" · ")
	meta := "      " +
		styles.PriorityStyle(t.Priority).Render(priorityLabel(t.Priority)) + sep +
		deadline + sep +
		styles.MutedStyle.Render("Added "+row.CreatedLabel)

	if selected {
		header = styles.RowSelectedStyle.Render(header)
	}

	return []string{
		ansi.Truncate(header, w, "…"),
		ansi.Truncate(meta, w, "…"),
	}
}

func priorityLabel(p task.Priority) string {
	if p == "" {
		return "No priority"
	}
	return capitalize(string(p)) + " priority"
}

func (m Model) renderStats(h int) string {
	s := m.snapshot.Stats
	label := styles.StatLabelStyle.Render
	value := styles.StatValueStyle.Render

	overview := []string{
		styles.HeaderStyle.Render("Overview"),
		fmt.Sprintf("%s %s  %s %s  %s %s",
			label("total"), value(fmt.Sprint(s.Total)),
			label("active"), value(fmt.Sprint(s.Active)),
			label("done"), value(fmt.Sprint(s.Completed))),
		fmt.Sprintf("%s %s %s", label("overall"),
			progressBar(s.Percent, progressBarLen, styles.ColorPrimary, styles.ColorMuted), value(fmt.Sprintf("%d%%", s.Percent))),
		bucketLine("today  ", s.Daily),
		bucketLine("week   ", s.Weekly),
	}

	completion := []string{
		styles.HeaderStyle.Render("Completion") + styles.MutedStyle.Render(" · "+string(s.Completion.Chart)),
		stackedBar(
			[]int{s.Completion.Completed, s.Completion.Pending},
			[]color.Color{styles.ColorSuccess, styles.ColorMuted},
			chartBarWidth,
		),
		fmt.Sprintf("%s %d completed  %s %d pending",
			lipgloss.NewStyle().Foreground(styles.ColorSuccess).Render(barFull), s.Completion.Completed,
			lipgloss.NewStyle().Foreground(styles.ColorMuted).Render(barFull), s.Completion.Pending),
	}

	counts := make([]int, len(s.Priorities))
	colors := make([]color.Color, len(s.Priorities))
	legend := make([]string, len(s.Priorities))
	for i, pc := range s.Priorities {
		counts[i] = pc.Count
		colors[i] = styles.PriorityColor(pc.Priority)
		legend[i] = styles.PriorityStyle(pc.Priority).Render(barFull) + fmt.Sprintf(" %s %d", pc.Priority, pc.Count)
	}

	priority := []string{
		styles.HeaderStyle.Render("Priority"),
		stackedBar(counts, colors, chartBarWidth),
		strings.Join(legend[:2], "  "),
		strings.Join(legend[2:], "  "),
	}

	sections := []string{
		strings.Join(overview, "\n"),
		strings.Join(completion, "\n"),
		strings.Join(priority, "\n"),
	}

	return styles.PanelStyle.
		Width(statsWidth).
		MaxHeight(max(h, 1)).
		Render(strings.Join(sections, "\n\n"))
}

func bucketLine(name string, b view.Bucket) string {
	return fmt.Sprintf("%s %s %s",
		styles.StatLabelStyle.Render(name),
		styles.StatValueStyle.Render(fmt.Sprintf("%3d%%", b.Percent)),
		styles.MutedStyle.Render(fmt.Sprintf("%d/%d tasks", b.Completed, b.Total)))
}
