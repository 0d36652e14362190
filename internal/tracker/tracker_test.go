package tracker

import (
	"testing"
	"time"

	"github.com/kgrange/tempo/internal/store"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func setup() (*store.Store, *Tracker, *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)}
	s := store.New(nil, clock)
	return s, New(s, clock), clock
}

func openLogCount(s *store.Store) int {
	n := 0
	for _, task := range s.Tasks() {
		for _, l := range task.TimeLogs {
			if l.Open() {
				n++
			}
		}
	}
	return n
}

func TestStartStop(t *testing.T) {
	s, tr, clock := setup()
	task, _ := s.AddTask(store.TaskDraft{Title: "Focus", CategoryID: "c1"})

	log, err := tr.Start(task.ID)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !log.Open() {
		t.Fatal("started log is not open")
	}
	if tr.CurrentTaskID() != task.ID {
		t.Errorf("CurrentTaskID = %q, want %q", tr.CurrentTaskID(), task.ID)
	}

	clock.Advance(5 * time.Second)
	closed, stopped, err := tr.Stop(task.ID)
	if err != nil || !stopped {
		t.Fatalf("Stop: stopped=%v err=%v", stopped, err)
	}
	if closed.Duration != 5 {
		t.Errorf("closed duration = %d, want 5", closed.Duration)
	}
	if closed.EndTime == nil || !closed.EndTime.Equal(clock.now) {
		t.Errorf("end time = %v, want %v", closed.EndTime, clock.now)
	}
	if tr.Tracking() {
		t.Error("tracker still tracking after stop")
	}
}

func TestAtMostOneOpenLog(t *testing.T) {
	s, tr, clock := setup()
	a, _ := s.AddTask(store.TaskDraft{Title: "A", CategoryID: "c1"})
	b, _ := s.AddTask(store.TaskDraft{Title: "B", CategoryID: "c1"})

	sequence := []func(){
		func() { tr.Start(a.ID) },
		func() { tr.Start(a.ID) }, // same task again
		func() { tr.Start(b.ID) }, // switch
		func() { tr.Stop(a.ID) },  // wrong task, no-op
		func() { tr.Start(a.ID) },
		func() { tr.Stop(a.ID) },
		func() { tr.Stop(a.ID) }, // already idle
	}
	for i, step := range sequence {
		step()
		clock.Advance(time.Second)
		if n := openLogCount(s); n > 1 {
			t.Fatalf("after step %d: %d open logs across the store", i, n)
		}
	}
}

func TestAutoStopOnSwitch(t *testing.T) {
	s, tr, clock := setup()
	a, _ := s.AddTask(store.TaskDraft{Title: "A", CategoryID: "c1"})
	b, _ := s.AddTask(store.TaskDraft{Title: "B", CategoryID: "c1"})

	tr.Start(a.ID)
	clock.Advance(3 * time.Second)

	if d, ok := tr.Tick(); !ok || d != 3 {
		t.Fatalf("Tick = (%d, %v), want (3, true)", d, ok)
	}

	if _, err := tr.Start(b.ID); err != nil {
		t.Fatalf("Start(B): %v", err)
	}

	gotA, _ := s.TaskByID(a.ID)
	if open := gotA.OpenLog(); open != nil {
		t.Fatal("A's log left open after switching to B")
	}
	if gotA.TimeLogs[0].Duration != 3 {
		t.Errorf("A's closed duration = %d, want 3", gotA.TimeLogs[0].Duration)
	}

	gotB, _ := s.TaskByID(b.ID)
	if open := gotB.OpenLog(); open == nil || open.Duration != 0 {
		t.Errorf("B's open log = %+v, want fresh log at 0", open)
	}

	// Immediate stop closes B at zero seconds.
	closed, stopped, _ := tr.Stop(b.ID)
	if !stopped || closed.Duration != 0 {
		t.Errorf("Stop(B) = (%d, %v), want duration 0", closed.Duration, stopped)
	}

	gotA, _ = s.TaskByID(a.ID)
	gotB, _ = s.TaskByID(b.ID)
	if gotA.TotalDuration() != 3 || gotB.TotalDuration() != 0 {
		t.Errorf("totals = (%d, %d), want (3, 0)", gotA.TotalDuration(), gotB.TotalDuration())
	}
	if tr.Tracking() {
		t.Error("tracker not idle at end of scenario")
	}
}

func TestIdempotentStop(t *testing.T) {
	s, tr, clock := setup()
	a, _ := s.AddTask(store.TaskDraft{Title: "A", CategoryID: "c1"})
	b, _ := s.AddTask(store.TaskDraft{Title: "B", CategoryID: "c1"})

	t.Run("stop while idle", func(t *testing.T) {
		if _, stopped, err := tr.Stop(a.ID); stopped || err != nil {
			t.Errorf("Stop while idle = (%v, %v), want no-op", stopped, err)
		}
	})

	t.Run("stop a different task", func(t *testing.T) {
		tr.Start(a.ID)
		clock.Advance(2 * time.Second)
		before, _ := s.TaskByID(b.ID)

		if _, stopped, err := tr.Stop(b.ID); stopped || err != nil {
			t.Errorf("Stop(B) while tracking A = (%v, %v), want no-op", stopped, err)
		}
		after, _ := s.TaskByID(b.ID)
		if len(after.TimeLogs) != len(before.TimeLogs) {
			t.Error("no-op stop mutated another task's logs")
		}
		if tr.CurrentTaskID() != a.ID {
			t.Error("no-op stop changed the tracked task")
		}
	})
}

func TestTickMonotonic(t *testing.T) {
	s, tr, clock := setup()
	a, _ := s.AddTask(store.TaskDraft{Title: "A", CategoryID: "c1"})
	tr.Start(a.ID)

	prev := -1
	for i := 0; i < 5; i++ {
		clock.Advance(time.Second)
		d, ok := tr.Tick()
		if !ok {
			t.Fatal("Tick reported idle while tracking")
		}
		if d < prev {
			t.Fatalf("duration decreased: %d after %d", d, prev)
		}
		prev = d
	}
	if prev != 5 {
		t.Errorf("final live duration = %d, want 5", prev)
	}
}

func TestRestartDiscardsContinuity(t *testing.T) {
	s, tr, clock := setup()
	a, _ := s.AddTask(store.TaskDraft{Title: "A", CategoryID: "c1"})

	tr.Start(a.ID)
	clock.Advance(7 * time.Second)

	log, err := tr.Restart(a.ID)
	if err != nil {
		t.Fatalf("Restart: %v", err)
	}
	if log.Duration != 0 {
		t.Errorf("restarted session duration = %d, want 0", log.Duration)
	}

	got, _ := s.TaskByID(a.ID)
	if len(got.TimeLogs) != 2 {
		t.Fatalf("expected 2 logs after restart, got %d", len(got.TimeLogs))
	}
	if got.TimeLogs[0].Duration != 7 || got.TimeLogs[0].Open() {
		t.Errorf("prior interval = %+v, want closed at 7s", got.TimeLogs[0])
	}
	if got.TotalDuration() != 7 {
		t.Errorf("total = %d, want 7 (elapsed time kept in the closed log)", got.TotalDuration())
	}
}

func TestDeletedTaskDropsToIdle(t *testing.T) {
	s, tr, clock := setup()
	a, _ := s.AddTask(store.TaskDraft{Title: "A", CategoryID: "c1"})

	tr.Start(a.ID)
	clock.Advance(time.Second)
	if err := s.DeleteTask(a.ID); err != nil {
		t.Fatal(err)
	}

	if tr.Tracking() {
		t.Error("tracker still tracking a deleted task")
	}
	if d, ok := tr.Tick(); ok || d != 0 {
		t.Errorf("Tick after delete = (%d, %v), want idle", d, ok)
	}
	if _, ok := tr.CurrentTask(); ok {
		t.Error("CurrentTask returned a deleted task")
	}
}

func TestCompletionDoesNotAffectTracking(t *testing.T) {
	s, tr, clock := setup()
	a, _ := s.AddTask(store.TaskDraft{Title: "A", CategoryID: "c1"})

	tr.Start(a.ID)
	if _, err := s.ToggleTaskCompletion(a.ID); err != nil {
		t.Fatal(err)
	}
	clock.Advance(2 * time.Second)

	if d, ok := tr.Tick(); !ok || d != 2 {
		t.Errorf("Tick = (%d, %v), want tracking to continue on a completed task", d, ok)
	}
}

func TestStartUnknownTask(t *testing.T) {
	_, tr, _ := setup()
	if _, err := tr.Start("nope"); err == nil {
		t.Error("expected an error starting an unknown task")
	}
}

func TestSumInvariant(t *testing.T) {
	s, tr, clock := setup()
	a, _ := s.AddTask(store.TaskDraft{Title: "A", CategoryID: "c1"})

	durations := []int{3, 1, 4}
	for _, d := range durations {
		tr.Start(a.ID)
		clock.Advance(time.Duration(d) * time.Second)
		tr.Stop(a.ID)
		clock.Advance(time.Minute)
	}

	got, _ := s.TaskByID(a.ID)
	sum := 0
	for _, l := range got.TimeLogs {
		sum += l.Duration
	}
	if got.TotalDuration() != sum || sum != 8 {
		t.Errorf("TotalDuration = %d, log sum = %d, want both 8", got.TotalDuration(), sum)
	}
}
