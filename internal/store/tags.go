package store

import (
	"github.com/google/uuid"
	"github.com/kgrange/tempo/internal/models"
)

// AddTag creates a tag.
func (s *Store) AddTag(name string) (models.Tag, error) {
	t := models.Tag{ID: uuid.NewString(), Name: name}
	s.tags = append(s.tags, t)

	if s.backend != nil {
		if err := s.backend.InsertTag(s.userID, t); err != nil {
			return t, persistErr("tag", err)
		}
	}
	return t, nil
}

// DeleteTag detaches the tag from every task that carries it, then
// removes the tag itself. Tasks that lose the tag get a fresh
// UpdatedAt; untouched tasks are left alone.
func (s *Store) DeleteTag(id string) error {
	i := s.tagIndex(id)
	if i < 0 {
		return ErrNotFound
	}

	now := s.clock.Now()
	var retouched []models.Task
	for j := range s.tasks {
		t := &s.tasks[j]
		if !t.HasTag(id) {
			continue
		}
		kept := t.Tags[:0]
		for _, tagID := range t.Tags {
			if tagID != id {
				kept = append(kept, tagID)
			}
		}
		t.Tags = kept
		t.UpdatedAt = now
		retouched = append(retouched, cloneTask(*t))
	}
	s.tags = append(s.tags[:i], s.tags[i+1:]...)

	if s.backend != nil {
		if err := s.backend.DeleteTag(id); err != nil {
			return persistErr("tag", err)
		}
		for _, t := range retouched {
			if err := s.backend.SetTaskTags(t.ID, t.Tags); err != nil {
				return persistErr("task tags", err)
			}
		}
	}
	return nil
}

func (s *Store) tagIndex(id string) int {
	for i := range s.tags {
		if s.tags[i].ID == id {
			return i
		}
	}
	return -1
}
