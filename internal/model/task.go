package model

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Task field limits.
const (
	MaxTitleLength       = 50
	MaxDescriptionLength = 255
)

// TaskPriority orders tasks by urgency.
type TaskPriority int

const (
	PriorityLow TaskPriority = iota
	PriorityMedium
	PriorityHigh
)

var priorityNames = map[TaskPriority]string{
	PriorityLow:    "low",
	PriorityMedium: "medium",
	PriorityHigh:   "high",
}

func (p TaskPriority) String() string {
	if name, ok := priorityNames[p]; ok {
		return name
	}
	return fmt.Sprintf("priority(%d)", int(p))
}

// Valid reports whether p is a known priority.
func (p TaskPriority) Valid() bool {
	_, ok := priorityNames[p]
	return ok
}

// ParsePriority converts a name such as "high" into a TaskPriority.
func ParsePriority(s string) (TaskPriority, error) {
	for p, name := range priorityNames {
		if strings.EqualFold(s, name) {
			return p, nil
		}
	}
	return PriorityLow, fmt.Errorf("%w: unknown priority %q", ErrInvalidTask, s)
}

// TaskStatus tracks progress on a task.
type TaskStatus int

const (
	StatusPending TaskStatus = iota
	StatusInProgress
	StatusDone
)

var statusNames = map[TaskStatus]string{
	StatusPending:    "pending",
	StatusInProgress: "in_progress",
	StatusDone:       "done",
}

func (s TaskStatus) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// Valid reports whether s is a known status.
func (s TaskStatus) Valid() bool {
	_, ok := statusNames[s]
	return ok
}

// ParseStatus converts a name such as "in_progress" into a TaskStatus.
func ParseStatus(s string) (TaskStatus, error) {
	for st, name := range statusNames {
		if strings.EqualFold(s, name) {
			return st, nil
		}
	}
	return StatusPending, fmt.Errorf("%w: unknown status %q", ErrInvalidTask, s)
}

// Task is a unit of work owned by a user.
type Task struct {
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Title       string
	Description string
	ID          int64
	UserID      int64
	// LimitDate is a Unix timestamp; zero means no deadline.
	LimitDate int64
	Priority  TaskPriority
	Status    TaskStatus
}

// NewTask builds a pending, low priority task after validating its text.
func NewTask(userID int64, title, description string) (*Task, error) {
	t := &Task{UserID: userID}
	if err := t.SetTitle(title); err != nil {
		return nil, err
	}
	if err := t.SetDescription(description); err != nil {
		return nil, err
	}
	return t, nil
}

// Persisted reports whether the task has a database row.
func (t *Task) Persisted() bool {
	return t.ID != 0
}

// SetTitle changes the title.
func (t *Task) SetTitle(title string) error {
	if title == "" {
		return fmt.Errorf("%w: title must not be empty", ErrInvalidTask)
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return fmt.Errorf("%w: title must not exceed %d characters", ErrInvalidTask, MaxTitleLength)
	}
	t.Title = title
	return nil
}

// SetDescription changes the description.
func (t *Task) SetDescription(description string) error {
	if description == "" {
		return fmt.Errorf("%w: description must not be empty", ErrInvalidTask)
	}
	if utf8.RuneCountInString(description) > MaxDescriptionLength {
		return fmt.Errorf("%w: description must not exceed %d characters", ErrInvalidTask, MaxDescriptionLength)
	}
	t.Description = description
	return nil
}

// Validate checks every field, for rows built without the setters.
func (t *Task) Validate() error {
	if t.UserID == 0 {
		return fmt.Errorf("%w: missing user", ErrInvalidTask)
	}
	probe := Task{}
	if err := probe.SetTitle(t.Title); err != nil {
		return err
	}
	if err := probe.SetDescription(t.Description); err != nil {
		return err
	}
	if !t.Priority.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidTask, t.Priority)
	}
	if !t.Status.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidTask, t.Status)
	}
	return nil
}

// Deadline returns the limit date as a time, or the zero time when unset.
func (t *Task) Deadline() time.Time {
	if t.LimitDate == 0 {
		return time.Time{}
	}
	return time.Unix(t.LimitDate, 0).UTC()
}
