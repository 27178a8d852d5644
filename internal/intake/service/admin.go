package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aussiebroadwan/intake/internal/intake/domain"
	"github.com/aussiebroadwan/intake/internal/intake/export"
	"github.com/aussiebroadwan/intake/internal/intake/store"
)

// DefaultRecentWindow is how far back "recent submissions" reaches.
const DefaultRecentWindow = 7 * 24 * time.Hour

type AdminService struct {
	Store        store.Store
	Clock        Clock
	RecentWindow time.Duration
}

// ListClients returns every record, newest first.
func (s *AdminService) ListClients(ctx context.Context) ([]domain.Client, error) {
	clients, err := s.Store.Clients().ListClients(ctx)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	return clients, nil
}

// Stats counts all records and those submitted within RecentWindow of now.
// The two counts are separate reads and may disagree under concurrent
// inserts.
func (s *AdminService) Stats(ctx context.Context) (domain.Stats, error) {
	total, err := s.Store.Clients().CountClients(ctx)
	if err != nil {
		return domain.Stats{}, fmt.Errorf("count clients: %w", err)
	}

	window := s.RecentWindow
	if window <= 0 {
		window = DefaultRecentWindow
	}

	recent, err := s.Store.Clients().CountClientsSince(ctx, s.Clock.now().Add(-window))
	if err != nil {
		return domain.Stats{}, fmt.Errorf("count recent clients: %w", err)
	}

	return domain.Stats{TotalClients: total, RecentSubmissions: recent}, nil
}

// ExportCSV writes every record as CSV, newest first.
func (s *AdminService) ExportCSV(ctx context.Context, w io.Writer) error {
	clients, err := s.ListClients(ctx)
	if err != nil {
		return err
	}
	return export.WriteCSV(w, clients)
}
