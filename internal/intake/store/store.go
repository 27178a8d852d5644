package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/intake/internal/intake/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite, redis)
// implement this. A single Store is opened at startup, shared by every
// request and closed on shutdown; drivers handle their own concurrency.
type Store interface {
	Clients() Clients

	// ApplyMigrations brings the backing schema up to date. Drivers without a
	// schema treat it as a no-op.
	ApplyMigrations() error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the connection is still alive.
	Ping(ctx context.Context) error
}

type Clients interface {
	// GetClientByEmail returns the record whose email equals email exactly.
	// Callers pass the normalized (lowercased) address.
	GetClientByEmail(ctx context.Context, email string) (domain.Client, error)

	// CreateClient inserts a new record. Returns ErrAlreadyExists when the
	// driver's own uniqueness guard sees the email already taken.
	CreateClient(ctx context.Context, c domain.Client) error

	// CountClients returns the number of stored records.
	CountClients(ctx context.Context) (int64, error)

	// CountClientsSince returns the number of records submitted at or after since.
	CountClientsSince(ctx context.Context, since time.Time) (int64, error)

	// ListClients returns every record ordered by submission time (newest
	// first), ties broken by id descending.
	ListClients(ctx context.Context) ([]domain.Client, error)
}
