// Package testutil provides test helpers shared across tasknest packages.
package testutil

import (
	"context"
	"testing"

	"github.com/Veraticus/tasknest/internal/model"
	"github.com/Veraticus/tasknest/internal/storage"
)

// TestDB is a migrated database plus helpers that fail the test on error.
type TestDB struct {
	Storage *storage.SQLiteStorage
	t       *testing.T
}

// TestDBOptions provides configuration options for test database setup.
type TestDBOptions struct {
	// Path selects a database file; empty means in-memory.
	Path           string
	SkipMigrations bool
}

// SetupTestDB creates a new in-memory test database. It automatically
// handles migrations and cleanup.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()
	return SetupTestDBWithOptions(t, TestDBOptions{})
}

// SetupTestDBWithOptions creates a test database with custom options.
func SetupTestDBWithOptions(t *testing.T, opts TestDBOptions) *TestDB {
	t.Helper()

	path := opts.Path
	if path == "" {
		path = ":memory:"
	}

	store, err := storage.NewSQLiteStorage(path)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if !opts.SkipMigrations {
		if err := store.Migrate(context.Background()); err != nil {
			_ = store.Close()
			t.Fatalf("failed to run migrations: %v", err)
		}
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return &TestDB{
		Storage: store,
		t:       t,
	}
}

// MustCreateUser stores a user whose email and password derive from username.
// The password is "password-" + username.
func (db *TestDB) MustCreateUser(username string) *model.User {
	db.t.Helper()

	user, err := model.NewUser(username, username+"@example.com", "password-"+username)
	if err != nil {
		db.t.Fatalf("failed to build user %q: %v", username, err)
	}
	if err := db.Storage.CreateUser(context.Background(), user); err != nil {
		db.t.Fatalf("failed to create user %q: %v", username, err)
	}
	return user
}

// MustCreateTask stores a task for userID.
func (db *TestDB) MustCreateTask(userID int64, title string) *model.Task {
	db.t.Helper()

	task, err := model.NewTask(userID, title, "about "+title)
	if err != nil {
		db.t.Fatalf("failed to build task %q: %v", title, err)
	}
	if err := db.Storage.SaveTask(context.Background(), task); err != nil {
		db.t.Fatalf("failed to save task %q: %v", title, err)
	}
	return task
}

// MustCreateTag stores a tag for userID.
func (db *TestDB) MustCreateTag(userID int64, name, color string) *model.Tag {
	db.t.Helper()

	tag, err := model.NewTag(userID, name, color)
	if err != nil {
		db.t.Fatalf("failed to build tag %q: %v", name, err)
	}
	if err := db.Storage.SaveTag(context.Background(), tag); err != nil {
		db.t.Fatalf("failed to save tag %q: %v", name, err)
	}
	return tag
}

// MustAssign links a tag to a task.
func (db *TestDB) MustAssign(taskID, tagID int64) {
	db.t.Helper()

	if _, err := db.Storage.AssignTagToTask(context.Background(), taskID, tagID); err != nil {
		db.t.Fatalf("failed to assign tag %d to task %d: %v", tagID, taskID, err)
	}
}
