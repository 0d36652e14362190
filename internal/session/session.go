// Package session binds a user identity to the store: setting a user
// loads (and if needed seeds) their data, clearing it empties the
// store. No identity means an empty store, not an error.
package session

import (
	"errors"

	"github.com/kgrange/tempo/internal/models"
	"github.com/kgrange/tempo/internal/store"
)

// Default entities created for a user with no persisted categories or
// tags. Bootstrap policy, not a hidden side effect: tests assert the
// exact names and colors.
var (
	defaultCategories = []models.Category{
		{Name: "Work", Color: "#4f46e5"},
		{Name: "Personal", Color: "#10b981"},
		{Name: "Health", Color: "#ef4444"},
		{Name: "Learning", Color: "#f59e0b"},
	}
	defaultTags = []models.Tag{
		{Name: "Urgent"},
		{Name: "Important"},
		{Name: "Low Priority"},
	}
)

// Manager tracks the signed-in user and keeps the store in sync with
// identity changes.
type Manager struct {
	store *store.Store
	user  *models.User
}

// NewManager creates a manager over the store, with no user signed in.
func NewManager(s *store.Store) *Manager {
	return &Manager{store: s}
}

// User returns the signed-in user, or nil.
func (m *Manager) User() *models.User {
	return m.user
}

// SetUser switches the active identity. The store is reloaded with the
// user's data; a user with no categories or tags gets the defaults.
// Passing nil clears the session. A returned error wrapping
// store.ErrNotPersisted means the seeds exist locally but were not all
// written through.
func (m *Manager) SetUser(u *models.User) error {
	if u == nil {
		m.ClearUser()
		return nil
	}

	if err := m.store.Load(u.ID); err != nil {
		return err
	}
	m.user = u

	var warn error
	if len(m.store.Categories()) == 0 {
		for _, c := range defaultCategories {
			if _, err := m.store.AddCategory(c.Name, c.Color); err != nil {
				warn = errors.Join(warn, err)
			}
		}
	}
	if len(m.store.Tags()) == 0 {
		for _, t := range defaultTags {
			if _, err := m.store.AddTag(t.Name); err != nil {
				warn = errors.Join(warn, err)
			}
		}
	}
	return warn
}

// ClearUser signs out: the store is emptied and no user is bound.
func (m *Manager) ClearUser() {
	m.user = nil
	m.store.Reset()
}
