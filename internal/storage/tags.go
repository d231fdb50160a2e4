package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Veraticus/tasknest/internal/common"
	"github.com/Veraticus/tasknest/internal/model"
)

const tagColumns = `id, user_id, name, color`

// SaveTag inserts tag when it has no id yet, otherwise writes only the
// columns that differ from the stored row.
func (s *SQLiteStorage) SaveTag(ctx context.Context, tag *model.Tag) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateNotNil(tag, "tag"); err != nil {
		return err
	}
	if err := tag.Validate(); err != nil {
		return err
	}

	if !tag.Persisted() {
		return s.insertTag(ctx, tag)
	}

	current, err := s.GetTagByID(ctx, tag.ID)
	if err != nil {
		return err
	}

	var d diff
	d.add("name", current.Name != tag.Name, tag.Name)
	d.add("color", current.Color != tag.Color, tag.Color)
	if d.empty() {
		return nil
	}

	query := `UPDATE tags SET ` + d.setClause() + ` WHERE id = ?`
	if _, err := s.db.ExecContext(ctx, query, append(d.values, tag.ID)...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: tag %q", common.ErrDuplicateEntry, tag.Name)
		}
		return fmt.Errorf("failed to update tag: %w", err)
	}

	slog.Debug("updated tag", "id", tag.ID, "columns", d.columns)
	return nil
}

func (s *SQLiteStorage) insertTag(ctx context.Context, tag *model.Tag) error {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO tags (user_id, name, color)
		VALUES (?, ?, ?)`,
		tag.UserID, tag.Name, tag.Color)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return fmt.Errorf("%w: tag %q", common.ErrDuplicateEntry, tag.Name)
		case isForeignKeyViolation(err):
			return fmt.Errorf("user %d: %w", tag.UserID, common.ErrNotFound)
		}
		return fmt.Errorf("failed to insert tag: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read tag id: %w", err)
	}
	tag.ID = id

	slog.Debug("created tag", "id", id, "name", tag.Name)
	return nil
}

// GetTagByID returns the tag with the given id.
func (s *SQLiteStorage) GetTagByID(ctx context.Context, id int64) (*model.Tag, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateID(id, "tag_id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `SELECT `+tagColumns+` FROM tags WHERE id = ?`, id)
	tag, err := scanTag(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("tag %d: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return tag, nil
}

// GetTagsByUser returns every tag owned by userID, sorted by name.
func (s *SQLiteStorage) GetTagsByUser(ctx context.Context, userID int64) ([]model.Tag, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateID(userID, "user_id"); err != nil {
		return nil, err
	}

	return s.queryTags(ctx, `
		SELECT `+tagColumns+`
		FROM tags
		WHERE user_id = ?
		ORDER BY name`, userID)
}

// DeleteTag removes a tag and every link to it.
func (s *SQLiteStorage) DeleteTag(ctx context.Context, id int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateID(id, "tag_id"); err != nil {
		return err
	}

	return s.inTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `DELETE FROM tags WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("failed to delete tag: %w", err)
		}
		if err := requireAffected(result, fmt.Sprintf("tag %d", id)); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM task_tags WHERE tag_id = ?`, id); err != nil {
			return fmt.Errorf("failed to delete tag references: %w", err)
		}
		return nil
	})
}

func (s *SQLiteStorage) queryTags(ctx context.Context, query string, args ...any) ([]model.Tag, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tags: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var tags []model.Tag
	for rows.Next() {
		tag, err := scanTag(rows)
		if err != nil {
			return nil, err
		}
		tags = append(tags, *tag)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tags: %w", err)
	}
	return tags, nil
}

func scanTag(row rowScanner) (*model.Tag, error) {
	var t model.Tag
	if err := row.Scan(&t.ID, &t.UserID, &t.Name, &t.Color); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan tag: %w", err)
	}
	return &t, nil
}
