package tui

import (
	"github.com/colonyops/taskboard/internal/core/view"
	"github.com/colonyops/taskboard/internal/tui/components"
)

// Key strings as reported by tea.KeyPressMsg.String().
const (
	keyCtrlC    = "ctrl+c"
	keyQuit     = "q"
	keyEsc      = "esc"
	keyEnter    = "enter"
	keyUp       = "up"
	keyDown     = "down"
	keyHome     = "home"
	keyEnd      = "end"
	keyTab      = "tab"
	keyShiftTab = "shift+tab"
	keySpace    = "space"
)

// periodKeys maps the number keys to period tabs.
var periodKeys = map[string]view.Period{
	"1": view.PeriodAll,
	"2": view.PeriodToday,
	"3": view.PeriodWeek,
	"4": view.PeriodMonth,
}

func helpSections() []components.HelpDialogSection {
	return []components.HelpDialogSection{
		{
			Title: "Tasks",
			Entries: []components.HelpEntry{
				{Key: "a", Desc: "add a task"},
				{Key: "space / x", Desc: "toggle completed"},
				{Key: "e", Desc: "edit the selected task"},
				{Key: "d", Desc: "delete the selected task"},
			},
		},
		{
			Title: "View",
			Entries: []components.HelpEntry{
				{Key: "tab / 1-4", Desc: "period: all, today, this week, this month"},
				{Key: "f", Desc: "cycle status filter"},
				{Key: "s", Desc: "cycle sort order"},
				{Key: "/", Desc: "search (esc clears)"},
				{Key: "c", Desc: "cycle completion chart: daily, weekly, all"},
				{Key: "t", Desc: "toggle light/dark theme"},
			},
		},
		{
			Title: "Navigation",
			Entries: []components.HelpEntry{
				{Key: "j / k", Desc: "move down / up"},
				{Key: "g / G", Desc: "first / last task"},
				{Key: "?", Desc: "show this help"},
				{Key: "q", Desc: "quit"},
			},
		},
		{
			Title: "Forms",
			Entries: []components.HelpEntry{
				{Key: "tab / enter", Desc: "next field, submits on the last"},
				{Key: "ctrl+s", Desc: "submit"},
				{Key: "esc", Desc: "cancel"},
			},
		},
	}
}

func newHelpDialog(width int) *components.HelpDialog {
	return components.NewHelpDialog("Keyboard Shortcuts", helpSections(), min(width, 72))
}

// footerHint is the one-line reminder under the list.
const footerHint = "a add  space toggle  e edit  d delete  / search  f status  s sort  ? help  q quit"
