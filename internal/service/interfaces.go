// Package service defines the interfaces for all application services.
package service

import (
	"context"

	"github.com/Veraticus/tasknest/internal/model"
)

// Storage defines the contract for our persistence layer.
type Storage interface {
	// User operations
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id int64) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	UpdateUser(ctx context.Context, user *model.User) error
	DeleteUser(ctx context.Context, id int64) error

	// Task operations
	SaveTask(ctx context.Context, task *model.Task) error
	GetTaskByID(ctx context.Context, id int64) (*model.Task, error)
	GetTasksByUser(ctx context.Context, userID int64) ([]model.Task, error)
	DeleteTask(ctx context.Context, id int64) error

	// Tag operations
	SaveTag(ctx context.Context, tag *model.Tag) error
	GetTagByID(ctx context.Context, id int64) (*model.Tag, error)
	GetTagsByUser(ctx context.Context, userID int64) ([]model.Tag, error)
	DeleteTag(ctx context.Context, id int64) error

	// Task/tag links
	TaskHasTag(ctx context.Context, taskID, tagID int64) (bool, error)
	AssignTagToTask(ctx context.Context, taskID, tagID int64) (bool, error)
	RemoveTagFromTask(ctx context.Context, taskID, tagID int64) error
	GetTagsOfTask(ctx context.Context, taskID int64) ([]model.Tag, error)

	// Database management
	Migrate(ctx context.Context) error
	SchemaVersion(ctx context.Context) (int, error)
	Close() error
}

// GreetingFetcher retrieves the message shown in the greeting modal.
type GreetingFetcher interface {
	Fetch(ctx context.Context) (GreetingResult, error)
}

// GreetingResult is the outcome of one greeting request that reached the server.
type GreetingResult struct {
	Message    string
	StatusCode int
	OK         bool
}
