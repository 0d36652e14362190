// Package persist defines the boundary to durable storage and provides
// the sqlite implementation used by the tempo binary.
package persist

import "github.com/kgrange/tempo/internal/models"

// Backend is the record store the in-memory collections sync against.
// All reads are scoped to a user id. Implementations must return tasks
// with their tag sets and time logs populated.
//
// The store treats a nil Backend as "no durable storage": running
// purely in memory is a supported mode, not a degraded one.
type Backend interface {
	Categories(userID string) ([]models.Category, error)
	Tags(userID string) ([]models.Tag, error)
	Tasks(userID string) ([]models.Task, error)

	InsertCategory(userID string, c models.Category) error
	UpdateCategory(c models.Category) error
	DeleteCategory(id string) error

	InsertTag(userID string, t models.Tag) error
	DeleteTag(id string) error

	InsertTask(userID string, t models.Task) error
	UpdateTask(t models.Task) error
	DeleteTask(id string) error

	SetTaskTags(taskID string, tagIDs []string) error

	InsertTimeLog(userID string, l models.TimeLog) error
	UpdateTimeLog(l models.TimeLog) error
}
