package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Veraticus/tasknest/internal/common"
	"github.com/Veraticus/tasknest/internal/model"
)

// TaskHasTag reports whether tagID is assigned to taskID.
func (s *SQLiteStorage) TaskHasTag(ctx context.Context, taskID, tagID int64) (bool, error) {
	if err := validateContext(ctx); err != nil {
		return false, err
	}
	if err := validateID(taskID, "task_id"); err != nil {
		return false, err
	}
	if err := validateID(tagID, "tag_id"); err != nil {
		return false, err
	}

	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM task_tags WHERE task_id = ? AND tag_id = ?`,
		taskID, tagID).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to query task tag: %w", err)
	}
	return count > 0, nil
}

// AssignTagToTask links tagID to taskID. It returns false without error
// when the link already exists. Both rows must belong to the same user.
func (s *SQLiteStorage) AssignTagToTask(ctx context.Context, taskID, tagID int64) (bool, error) {
	task, err := s.GetTaskByID(ctx, taskID)
	if err != nil {
		return false, err
	}
	tag, err := s.GetTagByID(ctx, tagID)
	if err != nil {
		return false, err
	}
	if task.UserID != tag.UserID {
		return false, fmt.Errorf("%w: tag %d belongs to another user", model.ErrInvalidTag, tagID)
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO task_tags (task_id, tag_id) VALUES (?, ?)`,
		taskID, tagID)
	if err != nil {
		return false, fmt.Errorf("failed to assign tag: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	slog.Debug("assigned tag", "task_id", taskID, "tag_id", tagID, "created", n > 0)
	return n > 0, nil
}

// RemoveTagFromTask unlinks tagID from taskID.
func (s *SQLiteStorage) RemoveTagFromTask(ctx context.Context, taskID, tagID int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateID(taskID, "task_id"); err != nil {
		return err
	}
	if err := validateID(tagID, "tag_id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		`DELETE FROM task_tags WHERE task_id = ? AND tag_id = ?`,
		taskID, tagID)
	if err != nil {
		return fmt.Errorf("failed to remove tag: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("tag %d on task %d: %w", tagID, taskID, common.ErrNotFound)
	}
	return nil
}

// GetTagsOfTask returns the tags assigned to taskID, sorted by name.
func (s *SQLiteStorage) GetTagsOfTask(ctx context.Context, taskID int64) ([]model.Tag, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateID(taskID, "task_id"); err != nil {
		return nil, err
	}

	return s.queryTags(ctx, `
		SELECT t.id, t.user_id, t.name, t.color
		FROM tags t
		JOIN task_tags tt ON tt.tag_id = t.id
		WHERE tt.task_id = ?
		ORDER BY t.name`, taskID)
}
