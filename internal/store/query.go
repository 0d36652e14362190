package store

import (
	"strings"

	"github.com/kgrange/tempo/internal/models"
)

// Filter selects tasks by conjunction of its set clauses. Empty slices
// and nil pointers mean "no constraint".
type Filter struct {
	CategoryIDs []string
	TagIDs      []string // any-of within the set
	Completed   *bool
	Scheduled   *bool
}

// Tasks returns a copy of the task collection.
func (s *Store) Tasks() []models.Task {
	out := make([]models.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		out = append(out, cloneTask(t))
	}
	return out
}

// Categories returns a copy of the category collection.
func (s *Store) Categories() []models.Category {
	return append([]models.Category(nil), s.categories...)
}

// Tags returns a copy of the tag collection.
func (s *Store) Tags() []models.Tag {
	return append([]models.Tag(nil), s.tags...)
}

// TaskByID returns the task with the given id, or false.
func (s *Store) TaskByID(id string) (models.Task, bool) {
	i := s.taskIndex(id)
	if i < 0 {
		return models.Task{}, false
	}
	return cloneTask(s.tasks[i]), true
}

// CategoryByID returns the category with the given id, or false.
func (s *Store) CategoryByID(id string) (models.Category, bool) {
	i := s.categoryIndex(id)
	if i < 0 {
		return models.Category{}, false
	}
	return s.categories[i], true
}

// TagByID returns the tag with the given id, or false.
func (s *Store) TagByID(id string) (models.Tag, bool) {
	i := s.tagIndex(id)
	if i < 0 {
		return models.Tag{}, false
	}
	return s.tags[i], true
}

// SearchTasks returns tasks whose title or description contains the
// query, case-insensitively.
func (s *Store) SearchTasks(query string) []models.Task {
	q := strings.ToLower(query)
	var out []models.Task
	for _, t := range s.tasks {
		if strings.Contains(strings.ToLower(t.Title), q) ||
			strings.Contains(strings.ToLower(t.Description), q) {
			out = append(out, cloneTask(t))
		}
	}
	return out
}

// FilterTasks returns the tasks matching every set clause of the
// filter. Tag matching is any-of within TagIDs, conjunctive with the
// other clauses.
func (s *Store) FilterTasks(f Filter) []models.Task {
	var out []models.Task
	for _, t := range s.tasks {
		if !matches(t, f) {
			continue
		}
		out = append(out, cloneTask(t))
	}
	return out
}

func matches(t models.Task, f Filter) bool {
	if len(f.CategoryIDs) > 0 && !contains(f.CategoryIDs, t.CategoryID) {
		return false
	}
	if len(f.TagIDs) > 0 {
		any := false
		for _, id := range f.TagIDs {
			if t.HasTag(id) {
				any = true
				break
			}
		}
		if !any {
			return false
		}
	}
	if f.Completed != nil && t.Completed != *f.Completed {
		return false
	}
	if f.Scheduled != nil && t.Scheduled() != *f.Scheduled {
		return false
	}
	return true
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
