// Package timeutil holds the pure display helpers for durations and dates.
package timeutil

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// FormatDuration renders a second count for display: "42s" under a
// minute, "3m 20s" under an hour, "2h 5m" beyond that.
func FormatDuration(seconds int) string {
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}

	minutes := seconds / 60
	if minutes < 60 {
		return fmt.Sprintf("%dm %ds", minutes, seconds%60)
	}

	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

// FormatClock normalizes a "HH:MM" or "HH:MM:SS" string to "HH:MM".
func FormatClock(t string) string {
	if t == "" {
		return ""
	}
	parts := strings.Split(t, ":")
	if len(parts) >= 2 {
		return parts[0] + ":" + parts[1]
	}
	return t
}

// FormatDate renders a date for display, e.g. "Mar 2, 2026".
func FormatDate(t time.Time) string {
	return t.Format("Jan 2, 2006")
}

// Ago renders a timestamp as a relative label, e.g. "4 minutes ago".
func Ago(t time.Time) string {
	return humanize.Time(t)
}

// IsToday reports whether t falls on the current calendar day.
func IsToday(t time.Time, now time.Time) bool {
	y1, m1, d1 := t.Date()
	y2, m2, d2 := now.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// IsTomorrow reports whether t falls on the calendar day after now.
func IsTomorrow(t time.Time, now time.Time) bool {
	return IsToday(t, now.AddDate(0, 0, 1))
}

// RelativeDateLabel renders a scheduled date as "Today", "Tomorrow", a
// formatted date, or "No date" when unset.
func RelativeDateLabel(t *time.Time, now time.Time) string {
	if t == nil {
		return "No date"
	}
	if IsToday(*t, now) {
		return "Today"
	}
	if IsTomorrow(*t, now) {
		return "Tomorrow"
	}
	return FormatDate(*t)
}
