// Package dates provides calendar bucketing helpers used by the view pipeline.
// Every function is pure; the current time is always passed in by the caller.
package dates

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the layout used for date-only user input and display.
const DateLayout = "2006-01-02"

// friendlyLayout mirrors the en-US short date form (month/day/year).
const friendlyLayout = "1/2/2006"

// DateOnly truncates t to midnight in t's location.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar day.
// b is converted into a's location first.
func SameDay(a, b time.Time) bool {
	b = b.In(a.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// StartOfWeek returns midnight of the Monday on or before t.
// Sunday maps 6 days back.
func StartOfWeek(t time.Time) time.Time {
	day := DateOnly(t)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// EndOfWeek returns midnight of the Sunday closing t's week.
func EndOfWeek(t time.Time) time.Time {
	return StartOfWeek(t).AddDate(0, 0, 6)
}

// SameWeek reports whether a's calendar day falls within the Monday..Sunday
// week containing b (inclusive on both ends).
func SameWeek(a, b time.Time) bool {
	day := DateOnly(a.In(b.Location()))
	start := StartOfWeek(b)
	end := EndOfWeek(b)
	return !day.Before(start) && !day.After(end)
}

// SameMonth reports whether a and b share year and month.
func SameMonth(a, b time.Time) bool {
	b = b.In(a.Location())
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// DaysBetween returns the number of calendar days from a to b. Positive when
// b is later. Computed on calendar dates so DST shifts never round it off.
func DaysBetween(a, b time.Time) int {
	b = b.In(a.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	ua := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	ub := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}

// FriendlyLabel renders a past date relative to now: "today", "yesterday",
// "N days ago" for 2..6 days, otherwise the absolute short date.
func FriendlyLabel(date, now time.Time) string {
	diff := DaysBetween(date, now)
	switch {
	case diff == 0:
		return "today"
	case diff == 1:
		return "yesterday"
	case diff > 1 && diff < 7:
		return fmt.Sprintf("%d days ago", diff)
	default:
		return DateOnly(date).Format(friendlyLayout)
	}
}

// FormatDate renders t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD string as local midnight in loc.
// Empty input returns nil without error.
func ParseDate(s string, loc *time.Location) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", s, err)
	}
	return &t, nil
}
