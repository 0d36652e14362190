package store

import (
	"time"

	"github.com/google/uuid"
	"github.com/kgrange/tempo/internal/models"
)

// TaskDraft carries the caller-supplied fields for a new task. The
// store assigns id, timestamps and an empty log sequence.
type TaskDraft struct {
	Title       string
	Description string
	CategoryID  string

	Deadline           *time.Time
	ScheduledDate      *time.Time
	ScheduledStartTime *string
	ScheduledEndTime   *string

	Tags []string

	IsRecurring         bool
	RecurrencePattern   *string
	RecurrenceFrequency *int
	RecurrenceInterval  *string
	RecurrenceEndDate   *time.Time
}

// TaskUpdate is a partial task mutation. Nil fields are left untouched.
// ClearDeadline and ClearSchedule remove the respective nullable fields.
type TaskUpdate struct {
	Title       *string
	Description *string
	CategoryID  *string
	Completed   *bool

	Deadline      *time.Time
	ClearDeadline bool

	ScheduledDate      *time.Time
	ScheduledStartTime *string
	ScheduledEndTime   *string
	ClearSchedule      bool

	Tags *[]string

	IsRecurring         *bool
	RecurrencePattern   *string
	RecurrenceFrequency *int
	RecurrenceInterval  *string
	RecurrenceEndDate   *time.Time
}

// AddTask creates a task from the draft and appends it to the
// collection. The local add always succeeds; a backend failure is
// reported via ErrNotPersisted.
func (s *Store) AddTask(d TaskDraft) (models.Task, error) {
	now := s.clock.Now()
	task := models.Task{
		ID:                  uuid.NewString(),
		Title:               d.Title,
		Description:         d.Description,
		CategoryID:          d.CategoryID,
		CreatedAt:           now,
		UpdatedAt:           now,
		Deadline:            d.Deadline,
		ScheduledDate:       d.ScheduledDate,
		ScheduledStartTime:  d.ScheduledStartTime,
		ScheduledEndTime:    d.ScheduledEndTime,
		Tags:                append([]string(nil), d.Tags...),
		IsRecurring:         d.IsRecurring,
		RecurrencePattern:   d.RecurrencePattern,
		RecurrenceFrequency: d.RecurrenceFrequency,
		RecurrenceInterval:  d.RecurrenceInterval,
		RecurrenceEndDate:   d.RecurrenceEndDate,
	}
	s.tasks = append(s.tasks, task)

	if s.backend != nil {
		if err := s.backend.InsertTask(s.userID, cloneTask(task)); err != nil {
			return cloneTask(task), persistErr("task", err)
		}
		if len(task.Tags) > 0 {
			if err := s.backend.SetTaskTags(task.ID, task.Tags); err != nil {
				return cloneTask(task), persistErr("task tags", err)
			}
		}
	}
	return cloneTask(task), nil
}

// UpdateTask merges the partial update into the task and refreshes
// UpdatedAt. Returns ErrNotFound for an unknown id.
func (s *Store) UpdateTask(id string, u TaskUpdate) (models.Task, error) {
	i := s.taskIndex(id)
	if i < 0 {
		return models.Task{}, ErrNotFound
	}
	t := &s.tasks[i]

	if u.Title != nil {
		t.Title = *u.Title
	}
	if u.Description != nil {
		t.Description = *u.Description
	}
	if u.CategoryID != nil {
		t.CategoryID = *u.CategoryID
	}
	if u.Completed != nil {
		t.Completed = *u.Completed
	}
	if u.ClearDeadline {
		t.Deadline = nil
	} else if u.Deadline != nil {
		t.Deadline = u.Deadline
	}
	if u.ClearSchedule {
		t.ScheduledDate = nil
		t.ScheduledStartTime = nil
		t.ScheduledEndTime = nil
	} else {
		if u.ScheduledDate != nil {
			t.ScheduledDate = u.ScheduledDate
		}
		if u.ScheduledStartTime != nil {
			t.ScheduledStartTime = u.ScheduledStartTime
		}
		if u.ScheduledEndTime != nil {
			t.ScheduledEndTime = u.ScheduledEndTime
		}
	}
	tagsChanged := false
	if u.Tags != nil {
		t.Tags = append([]string(nil), (*u.Tags)...)
		tagsChanged = true
	}
	if u.IsRecurring != nil {
		t.IsRecurring = *u.IsRecurring
	}
	if u.RecurrencePattern != nil {
		t.RecurrencePattern = u.RecurrencePattern
	}
	if u.RecurrenceFrequency != nil {
		t.RecurrenceFrequency = u.RecurrenceFrequency
	}
	if u.RecurrenceInterval != nil {
		t.RecurrenceInterval = u.RecurrenceInterval
	}
	if u.RecurrenceEndDate != nil {
		t.RecurrenceEndDate = u.RecurrenceEndDate
	}
	t.UpdatedAt = s.clock.Now()

	if s.backend != nil {
		if err := s.backend.UpdateTask(cloneTask(*t)); err != nil {
			return cloneTask(*t), persistErr("task", err)
		}
		if tagsChanged {
			if err := s.backend.SetTaskTags(t.ID, t.Tags); err != nil {
				return cloneTask(*t), persistErr("task tags", err)
			}
		}
	}
	return cloneTask(*t), nil
}

// DeleteTask removes the task and, by composition, every time log it
// owns. Returns ErrNotFound for an unknown id.
func (s *Store) DeleteTask(id string) error {
	i := s.taskIndex(id)
	if i < 0 {
		return ErrNotFound
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)

	if s.backend != nil {
		if err := s.backend.DeleteTask(id); err != nil {
			return persistErr("task", err)
		}
	}
	return nil
}

// ToggleTaskCompletion flips the completed flag and refreshes
// UpdatedAt. Tracking state is untouched: a task may be completed while
// its timer keeps running.
func (s *Store) ToggleTaskCompletion(id string) (models.Task, error) {
	i := s.taskIndex(id)
	if i < 0 {
		return models.Task{}, ErrNotFound
	}
	t := &s.tasks[i]
	t.Completed = !t.Completed
	t.UpdatedAt = s.clock.Now()

	if s.backend != nil {
		if err := s.backend.UpdateTask(cloneTask(*t)); err != nil {
			return cloneTask(*t), persistErr("task", err)
		}
	}
	return cloneTask(*t), nil
}

// OpenLog opens a new time log on the task at the given instant. The
// tracker is responsible for closing any other open log first.
func (s *Store) OpenLog(taskID string, at time.Time) (models.TimeLog, error) {
	i := s.taskIndex(taskID)
	if i < 0 {
		return models.TimeLog{}, ErrNotFound
	}
	log := models.TimeLog{
		ID:        uuid.NewString(),
		TaskID:    taskID,
		StartTime: at,
	}
	s.tasks[i].TimeLogs = append(s.tasks[i].TimeLogs, log)

	if s.backend != nil {
		if err := s.backend.InsertTimeLog(s.userID, log); err != nil {
			return log, persistErr("time log", err)
		}
	}
	return log, nil
}

// CloseLog closes the task's open time log at the given instant, fixing
// its duration to whole elapsed seconds. Returns ErrNoOpenLog when the
// task has no open log.
func (s *Store) CloseLog(taskID string, at time.Time) (models.TimeLog, error) {
	i := s.taskIndex(taskID)
	if i < 0 {
		return models.TimeLog{}, ErrNotFound
	}
	t := &s.tasks[i]
	for j := range t.TimeLogs {
		if !t.TimeLogs[j].Open() {
			continue
		}
		end := at
		t.TimeLogs[j].EndTime = &end
		t.TimeLogs[j].Duration = int(at.Sub(t.TimeLogs[j].StartTime) / time.Second)
		closed := t.TimeLogs[j]

		if s.backend != nil {
			if err := s.backend.UpdateTimeLog(closed); err != nil {
				return closed, persistErr("time log", err)
			}
		}
		return closed, nil
	}
	return models.TimeLog{}, ErrNoOpenLog
}

// RefreshOpenLog recomputes the open log's live duration as whole
// seconds elapsed since its start. Purely local display state; nothing
// is persisted on a tick.
func (s *Store) RefreshOpenLog(taskID string, at time.Time) (int, error) {
	i := s.taskIndex(taskID)
	if i < 0 {
		return 0, ErrNotFound
	}
	t := &s.tasks[i]
	for j := range t.TimeLogs {
		if t.TimeLogs[j].Open() {
			d := int(at.Sub(t.TimeLogs[j].StartTime) / time.Second)
			t.TimeLogs[j].Duration = d
			return d, nil
		}
	}
	return 0, ErrNoOpenLog
}

func (s *Store) taskIndex(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneTask(t models.Task) models.Task {
	t.Tags = append([]string(nil), t.Tags...)
	t.TimeLogs = append([]models.TimeLog(nil), t.TimeLogs...)
	return t
}
