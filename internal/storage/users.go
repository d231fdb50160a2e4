package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Veraticus/tasknest/internal/common"
	"github.com/Veraticus/tasknest/internal/model"
)

const userColumns = `id, username, email, password_hash, created_at, updated_at`

// CreateUser inserts a new user and fills in its id and timestamps.
func (s *SQLiteStorage) CreateUser(ctx context.Context, user *model.User) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateNotNil(user, "user"); err != nil {
		return err
	}
	if user.Persisted() {
		return fmt.Errorf("%w: user %d already exists", common.ErrDuplicateEntry, user.ID)
	}
	if err := validateString(user.PasswordHash, "password_hash"); err != nil {
		return err
	}

	now := time.Now().UTC()
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO users (username, email, password_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		user.Username, user.Email, user.PasswordHash, now, now)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: username %q", common.ErrDuplicateEntry, user.Username)
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read user id: %w", err)
	}

	user.ID = id
	user.CreatedAt = now
	user.UpdatedAt = now

	slog.Debug("created user", "id", id, "username", user.Username)
	return nil
}

// GetUserByID returns the user with the given id.
func (s *SQLiteStorage) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateID(id, "user_id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	user, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %d: %w", id, common.ErrNotFound)
	}
	return user, err
}

// GetUserByUsername returns the user with the given username.
func (s *SQLiteStorage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(username, "username"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE username = ?`, username)
	user, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %q: %w", username, common.ErrNotFound)
	}
	return user, err
}

// UpdateUser writes the columns of user that differ from the stored row.
// It is a no-op when nothing changed.
func (s *SQLiteStorage) UpdateUser(ctx context.Context, user *model.User) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateNotNil(user, "user"); err != nil {
		return err
	}
	if !user.Persisted() {
		return fmt.Errorf("user %q: %w", user.Username, common.ErrNotPersisted)
	}

	current, err := s.GetUserByID(ctx, user.ID)
	if err != nil {
		return err
	}

	var d diff
	d.add("username", current.Username != user.Username, user.Username)
	d.add("email", current.Email != user.Email, user.Email)
	d.add("password_hash", current.PasswordHash != user.PasswordHash, user.PasswordHash)
	if d.empty() {
		return nil
	}

	now := time.Now().UTC()
	d.add("updated_at", true, now)

	query := `UPDATE users SET ` + d.setClause() + ` WHERE id = ?`
	if _, err := s.db.ExecContext(ctx, query, append(d.values, user.ID)...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: username %q", common.ErrDuplicateEntry, user.Username)
		}
		return fmt.Errorf("failed to update user: %w", err)
	}

	user.UpdatedAt = now
	slog.Debug("updated user", "id", user.ID, "columns", d.columns)
	return nil
}

// DeleteUser removes a user together with their tasks, tags and links.
func (s *SQLiteStorage) DeleteUser(ctx context.Context, id int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateID(id, "user_id"); err != nil {
		return err
	}

	return s.inTx(ctx, func(tx *sql.Tx) error {
		queries := []string{
			`DELETE FROM task_tags WHERE task_id IN (SELECT id FROM tasks WHERE user_id = ?)`,
			`DELETE FROM task_tags WHERE tag_id IN (SELECT id FROM tags WHERE user_id = ?)`,
			`DELETE FROM tasks WHERE user_id = ?`,
			`DELETE FROM tags WHERE user_id = ?`,
		}
		for _, query := range queries {
			if _, err := tx.ExecContext(ctx, query, id); err != nil {
				return fmt.Errorf("failed to delete user data: %w", err)
			}
		}

		result, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}
		return requireAffected(result, fmt.Sprintf("user %d", id))
	})
}

func scanUser(row *sql.Row) (*model.User, error) {
	var u model.User
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return &u, nil
}

// diff collects the columns an update has to write.
type diff struct {
	columns []string
	values  []any
}

func (d *diff) add(column string, changed bool, value any) {
	if !changed {
		return
	}
	d.columns = append(d.columns, column)
	d.values = append(d.values, value)
}

func (d *diff) empty() bool {
	return len(d.columns) == 0
}

func (d *diff) setClause() string {
	parts := make([]string, len(d.columns))
	for i, c := range d.columns {
		parts[i] = c + " = ?"
	}
	return strings.Join(parts, ", ")
}

// requireAffected turns a zero-row result into ErrNotFound.
func requireAffected(result sql.Result, what string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, common.ErrNotFound)
	}
	return nil
}
