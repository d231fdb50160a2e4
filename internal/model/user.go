// Package model defines the domain types persisted by tasknest.
package model

import (
	"errors"
	"fmt"
	"regexp"
	"time"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

// Validation errors.
var (
	ErrInvalidUser = errors.New("invalid user")
	ErrInvalidTask = errors.New("invalid task")
	ErrInvalidTag  = errors.New("invalid tag")
	ErrUnchanged   = errors.New("value is the same as the current one")
)

// Username length bounds.
const (
	MinUsernameLength = 3
	MaxUsernameLength = 20
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// User owns tasks and tags.
type User struct {
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Username     string
	Email        string
	PasswordHash string
	ID           int64
}

// NewUser validates the fields and hashes the password.
func NewUser(username, email, password string) (*User, error) {
	u := &User{}
	if err := u.SetUsername(username); err != nil {
		return nil, err
	}
	if err := u.SetEmail(email); err != nil {
		return nil, err
	}
	if err := u.SetPassword(password); err != nil {
		return nil, err
	}
	return u, nil
}

// Persisted reports whether the user has a database row.
func (u *User) Persisted() bool {
	return u.ID != 0
}

// SetUsername changes the username.
func (u *User) SetUsername(username string) error {
	n := utf8.RuneCountInString(username)
	if n < MinUsernameLength || n > MaxUsernameLength {
		return fmt.Errorf("%w: username must be between %d and %d characters", ErrInvalidUser, MinUsernameLength, MaxUsernameLength)
	}
	if username == u.Username {
		return fmt.Errorf("%w: username", ErrUnchanged)
	}
	u.Username = username
	return nil
}

// SetEmail changes the email address.
func (u *User) SetEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return fmt.Errorf("%w: invalid email address %q", ErrInvalidUser, email)
	}
	if email == u.Email {
		return fmt.Errorf("%w: email", ErrUnchanged)
	}
	u.Email = email
	return nil
}

// SetPassword hashes password with bcrypt and stores the hash.
func (u *User) SetPassword(password string) error {
	if password == "" {
		return fmt.Errorf("%w: password must not be empty", ErrInvalidUser)
	}
	if u.PasswordHash != "" && u.CheckPassword(password) {
		return fmt.Errorf("%w: password", ErrUnchanged)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword reports whether password matches the stored hash.
func (u *User) CheckPassword(password string) bool {
	if u.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}
