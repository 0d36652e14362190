package persist

import (
	"database/sql"
	"time"

	"github.com/kgrange/tempo/internal/models"
)

// Tasks returns all of the user's tasks with tag sets and time logs
// populated, ordered by creation time.
func (db *SQLite) Tasks(userID string) ([]models.Task, error) {
	rows, err := db.Query(`
		SELECT id, title, description, category_id, completed, created_at, updated_at,
		       deadline, scheduled_date, scheduled_start_time, scheduled_end_time,
		       is_recurring, recurrence_pattern, recurrence_frequency,
		       recurrence_interval, recurrence_end_date
		FROM tasks
		WHERE user_id = ?
		ORDER BY created_at
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var t models.Task
		var deadline, scheduledDate, recurrenceEnd sql.NullTime
		var startTime, endTime, pattern, interval sql.NullString
		var frequency sql.NullInt64
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.CategoryID, &t.Completed,
			&t.CreatedAt, &t.UpdatedAt, &deadline, &scheduledDate, &startTime, &endTime,
			&t.IsRecurring, &pattern, &frequency, &interval, &recurrenceEnd); err != nil {
			return nil, err
		}
		t.Deadline = nullTime(deadline)
		t.ScheduledDate = nullTime(scheduledDate)
		t.ScheduledStartTime = nullString(startTime)
		t.ScheduledEndTime = nullString(endTime)
		t.RecurrencePattern = nullString(pattern)
		t.RecurrenceInterval = nullString(interval)
		t.RecurrenceEndDate = nullTime(recurrenceEnd)
		if frequency.Valid {
			f := int(frequency.Int64)
			t.RecurrenceFrequency = &f
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range tasks {
		tags, err := db.taskTags(tasks[i].ID)
		if err != nil {
			return nil, err
		}
		tasks[i].Tags = tags

		logs, err := db.taskLogs(tasks[i].ID)
		if err != nil {
			return nil, err
		}
		tasks[i].TimeLogs = logs
	}

	return tasks, nil
}

// InsertTask stores a new task for the user.
func (db *SQLite) InsertTask(userID string, t models.Task) error {
	_, err := db.Exec(`
		INSERT INTO tasks (id, user_id, title, description, category_id, completed,
			created_at, updated_at, deadline, scheduled_date, scheduled_start_time,
			scheduled_end_time, is_recurring, recurrence_pattern, recurrence_frequency,
			recurrence_interval, recurrence_end_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, t.ID, userID, t.Title, t.Description, t.CategoryID, t.Completed,
		t.CreatedAt, t.UpdatedAt, t.Deadline, t.ScheduledDate, t.ScheduledStartTime,
		t.ScheduledEndTime, t.IsRecurring, t.RecurrencePattern, t.RecurrenceFrequency,
		t.RecurrenceInterval, t.RecurrenceEndDate)
	return err
}

// UpdateTask rewrites a task's mutable columns.
func (db *SQLite) UpdateTask(t models.Task) error {
	_, err := db.Exec(`
		UPDATE tasks SET title = ?, description = ?, category_id = ?, completed = ?,
			updated_at = ?, deadline = ?, scheduled_date = ?, scheduled_start_time = ?,
			scheduled_end_time = ?, is_recurring = ?, recurrence_pattern = ?,
			recurrence_frequency = ?, recurrence_interval = ?, recurrence_end_date = ?
		WHERE id = ?
	`, t.Title, t.Description, t.CategoryID, t.Completed, t.UpdatedAt, t.Deadline,
		t.ScheduledDate, t.ScheduledStartTime, t.ScheduledEndTime, t.IsRecurring,
		t.RecurrencePattern, t.RecurrenceFrequency, t.RecurrenceInterval,
		t.RecurrenceEndDate, t.ID)
	return err
}

// DeleteTask deletes a task; its tag links and time logs cascade.
func (db *SQLite) DeleteTask(id string) error {
	_, err := db.Exec("DELETE FROM tasks WHERE id = ?", id)
	return err
}

// SetTaskTags replaces a task's tag set.
func (db *SQLite) SetTaskTags(taskID string, tagIDs []string) error {
	if _, err := db.Exec("DELETE FROM task_tags WHERE task_id = ?", taskID); err != nil {
		return err
	}
	for _, tagID := range tagIDs {
		if _, err := db.Exec(`
			INSERT OR IGNORE INTO task_tags (task_id, tag_id) VALUES (?, ?)
		`, taskID, tagID); err != nil {
			return err
		}
	}
	return nil
}

// InsertTimeLog stores a new time log.
func (db *SQLite) InsertTimeLog(userID string, l models.TimeLog) error {
	_, err := db.Exec(`
		INSERT INTO time_logs (id, user_id, task_id, start_time, end_time, duration)
		VALUES (?, ?, ?, ?, ?, ?)
	`, l.ID, userID, l.TaskID, l.StartTime, l.EndTime, l.Duration)
	return err
}

// UpdateTimeLog rewrites a log's end time and duration. Called at stop
// boundaries only, never on ticks.
func (db *SQLite) UpdateTimeLog(l models.TimeLog) error {
	_, err := db.Exec(`
		UPDATE time_logs SET end_time = ?, duration = ? WHERE id = ?
	`, l.EndTime, l.Duration, l.ID)
	return err
}

func (db *SQLite) taskTags(taskID string) ([]string, error) {
	rows, err := db.Query("SELECT tag_id FROM task_tags WHERE task_id = ?", taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (db *SQLite) taskLogs(taskID string) ([]models.TimeLog, error) {
	rows, err := db.Query(`
		SELECT id, task_id, start_time, end_time, duration
		FROM time_logs WHERE task_id = ? ORDER BY start_time
	`, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []models.TimeLog
	for rows.Next() {
		var l models.TimeLog
		var end sql.NullTime
		if err := rows.Scan(&l.ID, &l.TaskID, &l.StartTime, &end, &l.Duration); err != nil {
			return nil, err
		}
		l.EndTime = nullTime(end)
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

func nullTime(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time
	return &t
}

func nullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}
