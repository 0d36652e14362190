// Package store holds the authoritative in-memory task, category and tag
// collections for one signed-in user.
//
// Mutations apply to the in-memory collections first and then make a
// best-effort write through the persistence backend. A backend failure
// never rolls the local change back; it surfaces as an error wrapping
// ErrNotPersisted so callers can tell "saved" from "saved locally only"
// from "rejected".
package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/kgrange/tempo/internal/models"
	"github.com/kgrange/tempo/internal/persist"
)

var (
	// ErrNotFound is returned when a mutation names an id the store
	// does not hold.
	ErrNotFound = errors.New("not found")

	// ErrCategoryInUse rejects deletion of a category that tasks still
	// reference.
	ErrCategoryInUse = errors.New("category has tasks assigned to it")

	// ErrNotPersisted marks a mutation that succeeded in memory but
	// failed to reach the backend. The local change stands.
	ErrNotPersisted = errors.New("not persisted")

	// ErrNoOpenLog is returned when a log operation expects an open
	// time log on a task and none exists.
	ErrNoOpenLog = errors.New("no open time log")
)

// Clock supplies the current time. Injected so tests drive time
// explicitly instead of sleeping.
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall-clock Clock used outside tests.
type SystemClock struct{}

// Now returns the current wall-clock time.
func (SystemClock) Now() time.Time { return time.Now() }

// Store is the in-memory collection of one user's tasks, categories and
// tags. It is not safe for concurrent use; all access is expected from
// the single UI event loop.
type Store struct {
	clock   Clock
	backend persist.Backend // nil means in-memory only
	userID  string

	tasks      []models.Task
	categories []models.Category
	tags       []models.Tag
}

// New creates an empty store. backend may be nil for in-memory
// operation; clock may be nil to use the system clock.
func New(backend persist.Backend, clock Clock) *Store {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Store{clock: clock, backend: backend}
}

// UserID returns the id of the user whose data is loaded, or "".
func (s *Store) UserID() string { return s.userID }

// Load replaces the store contents with the given user's persisted
// data. With no backend the store starts empty for that user.
func (s *Store) Load(userID string) error {
	s.Reset()
	s.userID = userID
	if s.backend == nil {
		return nil
	}

	categories, err := s.backend.Categories(userID)
	if err != nil {
		return fmt.Errorf("load categories: %w", err)
	}
	tags, err := s.backend.Tags(userID)
	if err != nil {
		return fmt.Errorf("load tags: %w", err)
	}
	tasks, err := s.backend.Tasks(userID)
	if err != nil {
		return fmt.Errorf("load tasks: %w", err)
	}

	s.categories = categories
	s.tags = tags
	s.tasks = tasks
	return nil
}

// Reset clears all collections and the bound user. Used when the
// session identity is cleared.
func (s *Store) Reset() {
	s.userID = ""
	s.tasks = nil
	s.categories = nil
	s.tags = nil
}

// persistErr downgrades a backend failure to a non-fatal warning that
// wraps ErrNotPersisted. what names the entity for the message.
func persistErr(what string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s %w: %v", what, ErrNotPersisted, err)
}
