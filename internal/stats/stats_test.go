package stats

import (
	"testing"
	"time"

	"github.com/kgrange/tempo/internal/models"
)

func ts(day int, hour int) time.Time {
	return time.Date(2026, 3, day, hour, 0, 0, 0, time.UTC)
}

func closedLog(start time.Time, seconds int) models.TimeLog {
	end := start.Add(time.Duration(seconds) * time.Second)
	return models.TimeLog{StartTime: start, EndTime: &end, Duration: seconds}
}

func TestWeekRange(t *testing.T) {
	cases := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{"wednesday", ts(4, 15), ts(2, 0)}, // 2026-03-02 is a Monday
		{"monday", ts(2, 0), ts(2, 0)},
		{"sunday", ts(8, 23), ts(2, 0)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			start, end := WeekRange(tc.now)
			if !start.Equal(tc.want) {
				t.Errorf("start = %v, want %v", start, tc.want)
			}
			if !end.Equal(tc.want.AddDate(0, 0, 7)) {
				t.Errorf("end = %v, want a 7-day window", end)
			}
		})
	}
}

func TestWeeklyStats(t *testing.T) {
	now := ts(4, 12)
	tasks := []models.Task{
		{CreatedAt: ts(2, 9), UpdatedAt: ts(3, 9), Completed: true,
			TimeLogs: []models.TimeLog{closedLog(ts(3, 10), 600)}},
		{CreatedAt: ts(3, 9), UpdatedAt: ts(3, 9)},
		// Created the previous week, untouched since.
		{CreatedAt: ts(1, 9), UpdatedAt: ts(1, 9),
			TimeLogs: []models.TimeLog{closedLog(ts(1, 10), 900)}},
	}

	w := WeeklyStats(tasks, now)
	if w.CreatedCount != 2 {
		t.Errorf("CreatedCount = %d, want 2", w.CreatedCount)
	}
	if w.CompletedCount != 1 {
		t.Errorf("CompletedCount = %d, want 1", w.CompletedCount)
	}
	if w.TrackedSeconds != 600 {
		t.Errorf("TrackedSeconds = %d, want 600 (last week's log excluded)", w.TrackedSeconds)
	}
	if w.ProductivityScore != 50 {
		t.Errorf("ProductivityScore = %d, want 50", w.ProductivityScore)
	}
}

func TestWeeklyStatsEmpty(t *testing.T) {
	w := WeeklyStats(nil, ts(4, 12))
	if w.ProductivityScore != 0 {
		t.Errorf("score on empty week = %d, want 0", w.ProductivityScore)
	}
}

func TestCategoryDistribution(t *testing.T) {
	categories := []models.Category{
		{ID: "work", Name: "Work", Color: "#4f46e5"},
		{ID: "idle", Name: "Idle", Color: "#10b981"},
	}
	tasks := []models.Task{
		{CategoryID: "work", Completed: true, TimeLogs: []models.TimeLog{closedLog(ts(2, 9), 300)}},
		{CategoryID: "work", TimeLogs: []models.TimeLog{closedLog(ts(2, 10), 120)}},
		{CategoryID: "idle"}, // no logged time
	}

	got := CategoryDistribution(tasks, categories)
	if len(got) != 1 {
		t.Fatalf("got %d slices, want 1 (categories without time omitted)", len(got))
	}
	w := got[0]
	if w.CategoryID != "work" || w.TotalSeconds != 420 || w.TaskCount != 2 || w.CompletedCount != 1 {
		t.Errorf("work slice = %+v", w)
	}
	if w.Name != "Work" || w.Color != "#4f46e5" {
		t.Errorf("category metadata not carried: %+v", w)
	}
}

func TestDailyActivity(t *testing.T) {
	now := ts(8, 12)
	sched := ts(6, 0)
	tasks := []models.Task{
		{ScheduledDate: &sched, UpdatedAt: ts(6, 18), Completed: true},
		{UpdatedAt: ts(8, 9), Completed: true},
		{UpdatedAt: ts(1, 9), Completed: true}, // outside the 7-day window
	}

	days := DailyActivity(tasks, now)
	if len(days) != 7 {
		t.Fatalf("got %d days, want 7", len(days))
	}
	if !days[0].Date.Equal(ts(2, 0)) || !days[6].Date.Equal(ts(8, 0)) {
		t.Errorf("window = [%v, %v], want Mar 2 through Mar 8", days[0].Date, days[6].Date)
	}

	byDay := map[int]DayActivity{}
	for _, d := range days {
		byDay[d.Date.Day()] = d
	}
	if d := byDay[6]; d.ScheduledCount != 1 || d.CompletedCount != 1 {
		t.Errorf("Mar 6 = %+v, want 1 scheduled and 1 completed", d)
	}
	if d := byDay[8]; d.CompletedCount != 1 {
		t.Errorf("Mar 8 = %+v, want 1 completed", d)
	}
	total := 0
	for _, d := range days {
		total += d.CompletedCount
	}
	if total != 2 {
		t.Errorf("completions in window = %d, want 2", total)
	}
}

func TestTodayTrackedSeconds(t *testing.T) {
	now := ts(4, 20)
	tasks := []models.Task{
		{TimeLogs: []models.TimeLog{
			closedLog(ts(4, 9), 300),
			closedLog(ts(3, 9), 999),
			{StartTime: ts(4, 19), Duration: 45}, // open, live value counts
		}},
	}
	if got := TodayTrackedSeconds(tasks, now); got != 345 {
		t.Errorf("TodayTrackedSeconds = %d, want 345", got)
	}
}
