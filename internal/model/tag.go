package model

import (
	"fmt"
	"regexp"
	"unicode/utf8"
)

// MaxTagFieldLength bounds both the name and the color of a tag.
const MaxTagFieldLength = 20

var hexColorPattern = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)

// Tag labels tasks; each user keeps their own set.
type Tag struct {
	Name   string
	Color  string
	ID     int64
	UserID int64
}

// NewTag validates name and color and returns an unsaved tag.
func NewTag(userID int64, name, color string) (*Tag, error) {
	t := &Tag{UserID: userID}
	if err := t.SetName(name); err != nil {
		return nil, err
	}
	if err := t.SetColor(color); err != nil {
		return nil, err
	}
	return t, nil
}

// Persisted reports whether the tag has a database row.
func (t *Tag) Persisted() bool {
	return t.ID != 0
}

// SetName changes the tag name.
func (t *Tag) SetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: name must not be empty", ErrInvalidTag)
	}
	if utf8.RuneCountInString(name) > MaxTagFieldLength {
		return fmt.Errorf("%w: name must not exceed %d characters", ErrInvalidTag, MaxTagFieldLength)
	}
	t.Name = name
	return nil
}

// SetColor changes the tag color. Only #RGB and #RRGGBB are accepted.
func (t *Tag) SetColor(color string) error {
	if color == "" {
		return fmt.Errorf("%w: color must not be empty", ErrInvalidTag)
	}
	if len(color) > MaxTagFieldLength {
		return fmt.Errorf("%w: color must not exceed %d characters", ErrInvalidTag, MaxTagFieldLength)
	}
	if !hexColorPattern.MatchString(color) {
		return fmt.Errorf("%w: color must be a valid hex color", ErrInvalidTag)
	}
	t.Color = color
	return nil
}

// Validate checks every field, for rows built without the setters.
func (t *Tag) Validate() error {
	if t.UserID == 0 {
		return fmt.Errorf("%w: missing user", ErrInvalidTag)
	}
	probe := Tag{}
	if err := probe.SetName(t.Name); err != nil {
		return err
	}
	return probe.SetColor(t.Color)
}
