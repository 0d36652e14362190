package models

import "time"

// User identifies who owns the data currently loaded in the store.
type User struct {
	ID      string
	Name    string
	Email   string
	Picture string
}

// Category is a user-defined grouping for tasks. A category cannot be
// deleted while any task still references it.
type Category struct {
	ID    string
	Name  string
	Color string
}

// Tag is a free-form label. Deleting a tag detaches it from every task.
type Tag struct {
	ID   string
	Name string
}

// TimeLog is one start/stop interval of tracked time on a task.
// EndTime is nil while the interval is still open. Duration is seconds:
// fixed once the log is closed, refreshed on every tick while open.
type TimeLog struct {
	ID        string
	TaskID    string
	StartTime time.Time
	EndTime   *time.Time
	Duration  int
}

// Open reports whether the log is still accumulating time.
func (l TimeLog) Open() bool {
	return l.EndTime == nil
}

// Task is a trackable unit of work. Tasks own their time logs; deleting
// a task deletes the logs with it.
type Task struct {
	ID          string
	Title       string
	Description string
	CategoryID  string
	Completed   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Deadline           *time.Time
	ScheduledDate      *time.Time
	ScheduledStartTime *string // "HH:MM"
	ScheduledEndTime   *string // "HH:MM"

	Tags []string // tag IDs, membership only

	IsRecurring         bool
	RecurrencePattern   *string
	RecurrenceFrequency *int
	RecurrenceInterval  *string
	RecurrenceEndDate   *time.Time

	TimeLogs []TimeLog
}

// TotalDuration returns the task's total tracked seconds: the sum of all
// log durations, including the live value of an open log.
func (t Task) TotalDuration() int {
	total := 0
	for _, l := range t.TimeLogs {
		total += l.Duration
	}
	return total
}

// OpenLog returns the task's open time log, or nil if none exists.
func (t Task) OpenLog() *TimeLog {
	for i := range t.TimeLogs {
		if t.TimeLogs[i].Open() {
			return &t.TimeLogs[i]
		}
	}
	return nil
}

// HasTag reports whether the task carries the given tag id.
func (t Task) HasTag(tagID string) bool {
	for _, id := range t.Tags {
		if id == tagID {
			return true
		}
	}
	return false
}

// Scheduled reports whether the task has a scheduled date.
func (t Task) Scheduled() bool {
	return t.ScheduledDate != nil
}
