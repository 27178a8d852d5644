// Package service holds the intake business logic: submission validation and
// persistence, admin queries and the admin authentication gate.
package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidName  = errors.New("full name too short")
	ErrInvalidEmail = errors.New("invalid email address")
	ErrInvalidPhone = errors.New("invalid phone number")

	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Clock returns the current time. Services call it once per operation.
type Clock func() time.Time

// IDGenerator returns a fresh record identifier.
type IDGenerator func() string

// SystemClock is the default Clock.
func SystemClock() time.Time { return time.Now().UTC() }

// NewUUID is the default IDGenerator.
func NewUUID() string { return uuid.NewString() }

func (c Clock) now() time.Time {
	if c == nil {
		return SystemClock()
	}
	return c().UTC()
}
