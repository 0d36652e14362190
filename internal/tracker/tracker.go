// Package tracker owns the time-tracking state machine: which task, if
// any, currently holds the open time log.
//
// The engine is synchronous. It never schedules anything itself; an
// outside timer (the UI's 1s tick) calls Tick while tracking. All
// transitions go through Start and Stop, which is what keeps the
// at-most-one-open-log invariant: the store only ever opens a log here,
// and Start closes any other open log first.
package tracker

import (
	"errors"

	"github.com/kgrange/tempo/internal/models"
	"github.com/kgrange/tempo/internal/store"
)

// Tracker is the per-store tracking engine. Zero or one task is
// tracked at a time, identified by activeTaskID.
type Tracker struct {
	store        *store.Store
	clock        store.Clock
	activeTaskID string
}

// New creates an idle tracker over the given store. clock may be nil
// to use the system clock.
func New(s *store.Store, clock store.Clock) *Tracker {
	if clock == nil {
		clock = store.SystemClock{}
	}
	return &Tracker{store: s, clock: clock}
}

// Tracking reports whether a task is currently being tracked.
func (t *Tracker) Tracking() bool {
	return t.CurrentTaskID() != ""
}

// CurrentTaskID returns the tracked task's id, or "" when idle. A task
// deleted out from under the tracker drops the engine back to idle.
func (t *Tracker) CurrentTaskID() string {
	if t.activeTaskID == "" {
		return ""
	}
	if _, ok := t.store.TaskByID(t.activeTaskID); !ok {
		t.activeTaskID = ""
	}
	return t.activeTaskID
}

// CurrentTask returns the tracked task, or false when idle.
func (t *Tracker) CurrentTask() (models.Task, bool) {
	id := t.CurrentTaskID()
	if id == "" {
		return models.Task{}, false
	}
	return t.store.TaskByID(id)
}

// Start begins tracking taskID. If a different task is being tracked
// its open log is closed first; starting the already-tracked task is a
// no-op. Returns the open log. Persistence failures from either the
// implicit stop or the new log are joined into a non-fatal warning.
func (t *Tracker) Start(taskID string) (models.TimeLog, error) {
	if _, ok := t.store.TaskByID(taskID); !ok {
		return models.TimeLog{}, store.ErrNotFound
	}

	current := t.CurrentTaskID()
	if current == taskID {
		if task, ok := t.store.TaskByID(taskID); ok {
			if open := task.OpenLog(); open != nil {
				return *open, nil
			}
		}
	}

	var warn error
	if current != "" && current != taskID {
		if _, _, err := t.Stop(current); err != nil {
			warn = err
		}
	}

	log, err := t.store.OpenLog(taskID, t.clock.Now())
	if err != nil && !errors.Is(err, store.ErrNotPersisted) {
		return models.TimeLog{}, err
	}
	t.activeTaskID = taskID
	return log, errors.Join(warn, err)
}

// Stop closes taskID's open log at the current instant and returns it.
// Stopping a task that is not being tracked, or that has no open log,
// changes nothing and reports false.
func (t *Tracker) Stop(taskID string) (models.TimeLog, bool, error) {
	if t.CurrentTaskID() != taskID {
		return models.TimeLog{}, false, nil
	}

	log, err := t.store.CloseLog(taskID, t.clock.Now())
	t.activeTaskID = ""
	if errors.Is(err, store.ErrNoOpenLog) || errors.Is(err, store.ErrNotFound) {
		return models.TimeLog{}, false, nil
	}
	if err != nil && !errors.Is(err, store.ErrNotPersisted) {
		return models.TimeLog{}, false, err
	}
	return log, true, err
}

// Restart closes the current interval on taskID and immediately opens
// a fresh one. The elapsed time so far stays in the closed log; the
// new session starts over at zero.
func (t *Tracker) Restart(taskID string) (models.TimeLog, error) {
	if _, _, err := t.Stop(taskID); err != nil && !errors.Is(err, store.ErrNotPersisted) {
		return models.TimeLog{}, err
	}
	return t.Start(taskID)
}

// Tick refreshes the tracked task's live duration and returns it in
// whole seconds. Reports false when idle. Ticks are display-side only;
// nothing is persisted here.
func (t *Tracker) Tick() (int, bool) {
	id := t.CurrentTaskID()
	if id == "" {
		return 0, false
	}
	d, err := t.store.RefreshOpenLog(id, t.clock.Now())
	if err != nil {
		t.activeTaskID = ""
		return 0, false
	}
	return d, true
}
