package store

import (
	"github.com/google/uuid"
	"github.com/kgrange/tempo/internal/models"
)

// CategoryUpdate is a partial category mutation.
type CategoryUpdate struct {
	Name  *string
	Color *string
}

// AddCategory creates a category.
func (s *Store) AddCategory(name, color string) (models.Category, error) {
	c := models.Category{ID: uuid.NewString(), Name: name, Color: color}
	s.categories = append(s.categories, c)

	if s.backend != nil {
		if err := s.backend.InsertCategory(s.userID, c); err != nil {
			return c, persistErr("category", err)
		}
	}
	return c, nil
}

// UpdateCategory merges the partial update into the category. Returns
// ErrNotFound for an unknown id.
func (s *Store) UpdateCategory(id string, u CategoryUpdate) (models.Category, error) {
	i := s.categoryIndex(id)
	if i < 0 {
		return models.Category{}, ErrNotFound
	}
	c := &s.categories[i]
	if u.Name != nil {
		c.Name = *u.Name
	}
	if u.Color != nil {
		c.Color = *u.Color
	}

	if s.backend != nil {
		if err := s.backend.UpdateCategory(*c); err != nil {
			return *c, persistErr("category", err)
		}
	}
	return *c, nil
}

// DeleteCategory removes the category. The delete is rejected with
// ErrCategoryInUse while any task still references it; nothing is
// mutated in that case.
func (s *Store) DeleteCategory(id string) error {
	i := s.categoryIndex(id)
	if i < 0 {
		return ErrNotFound
	}
	for j := range s.tasks {
		if s.tasks[j].CategoryID == id {
			return ErrCategoryInUse
		}
	}
	s.categories = append(s.categories[:i], s.categories[i+1:]...)

	if s.backend != nil {
		if err := s.backend.DeleteCategory(id); err != nil {
			return persistErr("category", err)
		}
	}
	return nil
}

func (s *Store) categoryIndex(id string) int {
	for i := range s.categories {
		if s.categories[i].ID == id {
			return i
		}
	}
	return -1
}
