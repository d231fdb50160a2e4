package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/tasknest/internal/common"
	"github.com/Veraticus/tasknest/internal/model"
)

const taskColumns = `id, user_id, title, description, priority, status, limited_date, created_at, updated_at`

// SaveTask inserts task when it has no id yet, otherwise writes only the
// columns that differ from the stored row.
func (s *SQLiteStorage) SaveTask(ctx context.Context, task *model.Task) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateNotNil(task, "task"); err != nil {
		return err
	}
	if err := task.Validate(); err != nil {
		return err
	}

	if !task.Persisted() {
		return s.insertTask(ctx, task)
	}
	return s.updateTask(ctx, task)
}

func (s *SQLiteStorage) insertTask(ctx context.Context, task *model.Task) error {
	now := time.Now().UTC()
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO tasks (user_id, title, description, priority, status, limited_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		task.UserID, task.Title, task.Description, int(task.Priority), int(task.Status), task.LimitDate, now, now)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("user %d: %w", task.UserID, common.ErrNotFound)
		}
		return fmt.Errorf("failed to insert task: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read task id: %w", err)
	}

	task.ID = id
	task.CreatedAt = now
	task.UpdatedAt = now

	slog.Debug("created task", "id", id, "user_id", task.UserID)
	return nil
}

func (s *SQLiteStorage) updateTask(ctx context.Context, task *model.Task) error {
	current, err := s.GetTaskByID(ctx, task.ID)
	if err != nil {
		return err
	}

	var d diff
	d.add("title", current.Title != task.Title, task.Title)
	d.add("description", current.Description != task.Description, task.Description)
	d.add("limited_date", current.LimitDate != task.LimitDate, task.LimitDate)
	d.add("priority", current.Priority != task.Priority, int(task.Priority))
	d.add("status", current.Status != task.Status, int(task.Status))
	if d.empty() {
		return nil
	}

	now := time.Now().UTC()
	d.add("updated_at", true, now)

	query := `UPDATE tasks SET ` + d.setClause() + ` WHERE id = ?`
	if _, err := s.db.ExecContext(ctx, query, append(d.values, task.ID)...); err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	task.UpdatedAt = now
	slog.Debug("updated task", "id", task.ID, "columns", d.columns)
	return nil
}

// GetTaskByID returns the task with the given id.
func (s *SQLiteStorage) GetTaskByID(ctx context.Context, id int64) (*model.Task, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateID(id, "task_id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	task, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("task %d: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return task, nil
}

// GetTasksByUser returns every task owned by userID, highest priority first.
func (s *SQLiteStorage) GetTasksByUser(ctx context.Context, userID int64) ([]model.Task, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateID(userID, "user_id"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE user_id = ?
		ORDER BY priority DESC, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var tasks []model.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tasks: %w", err)
	}

	slog.Debug("retrieved tasks", "user_id", userID, "count", len(tasks))
	return tasks, nil
}

// DeleteTask removes a task and its tag links.
func (s *SQLiteStorage) DeleteTask(ctx context.Context, id int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateID(id, "task_id"); err != nil {
		return err
	}

	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM task_tags WHERE task_id = ?`, id); err != nil {
			return fmt.Errorf("failed to delete task tags: %w", err)
		}

		result, err := tx.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("failed to delete task: %w", err)
		}
		return requireAffected(result, fmt.Sprintf("task %d", id))
	})
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*model.Task, error) {
	var (
		t                model.Task
		priority, status int
	)
	err := row.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &priority, &status, &t.LimitDate, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan task: %w", err)
	}
	t.Priority = model.TaskPriority(priority)
	t.Status = model.TaskStatus(status)
	return &t, nil
}
