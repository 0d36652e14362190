// Package stats derives read-only rollups from a task snapshot. All
// functions are pure: they take the collections and "now" and hold no
// state of their own.
package stats

import (
	"math"
	"time"

	"github.com/kgrange/tempo/internal/models"
)

// CategoryTime is one slice of the time-per-category distribution.
type CategoryTime struct {
	CategoryID     string
	Name           string
	Color          string
	TotalSeconds   int
	TaskCount      int
	CompletedCount int
}

// CategoryDistribution sums tracked time per category. Categories with
// no logged time are omitted; ordering follows the category collection.
func CategoryDistribution(tasks []models.Task, categories []models.Category) []CategoryTime {
	var out []CategoryTime
	for _, c := range categories {
		ct := CategoryTime{CategoryID: c.ID, Name: c.Name, Color: c.Color}
		for _, t := range tasks {
			if t.CategoryID != c.ID {
				continue
			}
			ct.TaskCount++
			if t.Completed {
				ct.CompletedCount++
			}
			ct.TotalSeconds += t.TotalDuration()
		}
		if ct.TotalSeconds > 0 {
			out = append(out, ct)
		}
	}
	return out
}

// Weekly summarizes one calendar week of activity.
//
// CompletedCount approximates "completed this week" by UpdatedAt, since
// tasks carry no dedicated completion timestamp.
type Weekly struct {
	WeekStart      time.Time
	CreatedCount   int
	CompletedCount int
	TrackedSeconds int
	// ProductivityScore is CompletedCount over CreatedCount as a
	// rounded percentage, 0 when nothing was created.
	ProductivityScore int
}

// WeekRange returns the bounds of the calendar week containing now.
// Weeks start Monday at 00:00 local time.
func WeekRange(now time.Time) (start, end time.Time) {
	offset := (int(now.Weekday()) + 6) % 7 // Monday = 0
	y, m, d := now.AddDate(0, 0, -offset).Date()
	start = time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	return start, start.AddDate(0, 0, 7)
}

// WeeklyStats rolls up the week containing now: tasks created, tasks
// completed (by UpdatedAt), and seconds tracked by logs started in the
// window.
func WeeklyStats(tasks []models.Task, now time.Time) Weekly {
	start, end := WeekRange(now)
	w := Weekly{WeekStart: start}

	for _, t := range tasks {
		if inWindow(t.CreatedAt, start, end) {
			w.CreatedCount++
		}
		if t.Completed && inWindow(t.UpdatedAt, start, end) {
			w.CompletedCount++
		}
		for _, l := range t.TimeLogs {
			if inWindow(l.StartTime, start, end) {
				w.TrackedSeconds += l.Duration
			}
		}
	}

	if w.CreatedCount > 0 {
		w.ProductivityScore = int(math.Round(float64(w.CompletedCount) / float64(w.CreatedCount) * 100))
	}
	return w
}

// DayActivity is one bar of the daily activity histogram.
type DayActivity struct {
	Date           time.Time
	ScheduledCount int
	CompletedCount int
}

// DailyActivity returns per-day counts for the last 7 calendar days,
// oldest first, ending with today. Completion is attributed to the day
// of UpdatedAt.
func DailyActivity(tasks []models.Task, now time.Time) []DayActivity {
	out := make([]DayActivity, 7)
	for i := range out {
		day := now.AddDate(0, 0, i-6)
		y, m, d := day.Date()
		out[i].Date = time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	}

	for _, t := range tasks {
		for i := range out {
			if t.ScheduledDate != nil && sameDay(*t.ScheduledDate, out[i].Date) {
				out[i].ScheduledCount++
			}
			if t.Completed && sameDay(t.UpdatedAt, out[i].Date) {
				out[i].CompletedCount++
			}
		}
	}
	return out
}

// TodayTrackedSeconds sums the durations of logs started today.
func TodayTrackedSeconds(tasks []models.Task, now time.Time) int {
	total := 0
	for _, t := range tasks {
		for _, l := range t.TimeLogs {
			if sameDay(l.StartTime, now) {
				total += l.Duration
			}
		}
	}
	return total
}

func inWindow(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}

func sameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
