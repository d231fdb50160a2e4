package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/Veraticus/tasknest/internal/common"
	"github.com/Veraticus/tasknest/internal/config"
	"github.com/Veraticus/tasknest/internal/model"
	"github.com/Veraticus/tasknest/internal/service"
	"github.com/Veraticus/tasknest/internal/storage"
	"github.com/spf13/viper"
)

const dateLayout = "2006-01-02"

// initStorage opens the configured database and runs migrations.
func initStorage(ctx context.Context) (service.Storage, error) {
	dbPath := config.DatabasePath(viper.GetViper())

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// withStorage runs fn against an open store and closes it afterwards.
func withStorage(ctx context.Context, fn func(service.Storage) error) error {
	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	return fn(store)
}

// lookupUser resolves a username, turning a miss into a readable error.
func lookupUser(ctx context.Context, store service.Storage, username string) (*model.User, error) {
	user, err := store.GetUserByUsername(ctx, username)
	if errors.Is(err, common.ErrNotFound) {
		return nil, common.NewUserError(fmt.Sprintf("no user named %q", username), err)
	}
	return user, err
}

// parseID parses a positive row id given on the command line.
func parseID(arg, what string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, common.NewUserError(fmt.Sprintf("invalid %s id %q", what, arg), err)
	}
	return id, nil
}

// parseDue turns YYYY-MM-DD into a Unix timestamp; empty means no deadline.
func parseDue(value string) (int64, error) {
	if value == "" {
		return 0, nil
	}
	due, err := time.Parse(dateLayout, value)
	if err != nil {
		return 0, common.NewUserError(fmt.Sprintf("invalid due date %q, expected YYYY-MM-DD", value), err)
	}
	return due.UTC().Unix(), nil
}

func formatDue(task model.Task) string {
	if task.LimitDate == 0 {
		return "-"
	}
	return task.Deadline().Format(dateLayout)
}

// notFound replaces a storage miss with a message naming the record.
func notFound(err error, what string, id int64) error {
	if errors.Is(err, common.ErrNotFound) {
		return common.NewUserError(fmt.Sprintf("no %s with id %d", what, id), err)
	}
	return err
}
