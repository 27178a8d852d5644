package service_test

import (
	"context"
	"sync"
	"time"

	"github.com/aussiebroadwan/intake/internal/intake/domain"
	"github.com/aussiebroadwan/intake/internal/intake/store"
)

// memStore is a Store without any uniqueness guard. lookupGate, when set,
// is called after the lookup in GetClientByEmail and before its result is
// returned, so callers can hold several lookups open at once.
type memStore struct {
	mu      sync.Mutex
	clients []domain.Client

	lookupGate func()
	failWith   error
}

func (m *memStore) Clients() store.Clients         { return m }
func (m *memStore) ApplyMigrations() error         { return nil }
func (m *memStore) Close() error                   { return nil }
func (m *memStore) Ping(ctx context.Context) error { return m.failWith }

func (m *memStore) GetClientByEmail(_ context.Context, email string) (domain.Client, error) {
	if m.failWith != nil {
		return domain.Client{}, m.failWith
	}

	found, err := m.find(email)
	if m.lookupGate != nil {
		m.lookupGate()
	}
	return found, err
}

func (m *memStore) find(email string) (domain.Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.clients {
		if c.Email == email {
			return c, nil
		}
	}
	return domain.Client{}, store.ErrNotFound
}

func (m *memStore) CreateClient(_ context.Context, c domain.Client) error {
	if m.failWith != nil {
		return m.failWith
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clients = append(m.clients, c)
	return nil
}

func (m *memStore) CountClients(context.Context) (int64, error) {
	if m.failWith != nil {
		return 0, m.failWith
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.clients)), nil
}

func (m *memStore) CountClientsSince(_ context.Context, since time.Time) (int64, error) {
	if m.failWith != nil {
		return 0, m.failWith
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, c := range m.clients {
		if !c.SubmittedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

func (m *memStore) ListClients(context.Context) ([]domain.Client, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Client(nil), m.clients...), nil
}

func (m *memStore) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.clients)
}
