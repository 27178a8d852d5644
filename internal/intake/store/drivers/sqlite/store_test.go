package sqlite_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aussiebroadwan/intake/internal/intake/domain"
	"github.com/aussiebroadwan/intake/internal/intake/store"
	"github.com/aussiebroadwan/intake/internal/intake/store/drivers/sqlite"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func TestApplyMigrationsIsIdempotent(t *testing.T) {
	st := newTestStore(t)
	require.NoError(t, st.ApplyMigrations())
	require.NoError(t, st.Ping(context.Background()))

	version, dirty, err := st.SchemaVersion()
	require.NoError(t, err)
	require.False(t, dirty)
	require.EqualValues(t, 1, version)
}

func TestSchemaVersionBeforeMigrations(t *testing.T) {
	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	version, dirty, err := st.SchemaVersion()
	require.NoError(t, err)
	require.False(t, dirty)
	require.Zero(t, version)
}

func TestCreateAndGetClientByEmail(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	submitted := time.Date(2026, 10, 1, 12, 30, 0, 123456789, time.UTC)
	want := domain.Client{
		ID:          "c0ffee00-0000-4000-8000-000000000001",
		FullName:    "Jo Smith",
		Email:       "jo@x.com",
		PhoneNumber: "+1-555-123-4567",
		SubmittedAt: submitted,
	}
	require.NoError(t, st.Clients().CreateClient(ctx, want))

	got, err := st.Clients().GetClientByEmail(ctx, "jo@x.com")
	require.NoError(t, err)
	require.Equal(t, want, got)

	_, err = st.Clients().GetClientByEmail(ctx, "nobody@x.com")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestCreateClientRejectsDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	first := domain.Client{ID: "a", FullName: "Jo", Email: "jo@x.com", PhoneNumber: "+1-555-123-4567", SubmittedAt: time.Now().UTC()}
	second := domain.Client{ID: "b", FullName: "Jo Two", Email: "jo@x.com", PhoneNumber: "+1-555-765-4321", SubmittedAt: time.Now().UTC()}

	require.NoError(t, st.Clients().CreateClient(ctx, first))
	err := st.Clients().CreateClient(ctx, second)
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	count, err := st.Clients().CountClients(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
}

func TestListAndCountClients(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	now := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)
	for i, c := range []domain.Client{
		{ID: "old", FullName: "Old", Email: "old@x.com", PhoneNumber: "+1-555-000-0001", SubmittedAt: now.Add(-30 * 24 * time.Hour)},
		{ID: "mid", FullName: "Mid", Email: "mid@x.com", PhoneNumber: "+1-555-000-0002", SubmittedAt: now.Add(-2 * time.Hour)},
		{ID: "new", FullName: "New", Email: "new@x.com", PhoneNumber: "+1-555-000-0003", SubmittedAt: now},
	} {
		require.NoError(t, st.Clients().CreateClient(ctx, c), i)
	}

	list, err := st.Clients().ListClients(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	require.Equal(t, []string{"new", "mid", "old"}, []string{list[0].ID, list[1].ID, list[2].ID})

	total, err := st.Clients().CountClients(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 3, total)

	recent, err := st.Clients().CountClientsSince(ctx, now.Add(-7*24*time.Hour))
	require.NoError(t, err)
	require.EqualValues(t, 2, recent)

	// The boundary is inclusive.
	atBoundary, err := st.Clients().CountClientsSince(ctx, now.Add(-2*time.Hour))
	require.NoError(t, err)
	require.EqualValues(t, 2, atBoundary)
}

func TestListClientsEmpty(t *testing.T) {
	st := newTestStore(t)

	list, err := st.Clients().ListClients(context.Background())
	require.NoError(t, err)
	require.NotNil(t, list)
	require.Empty(t, list)
}

func TestStoreErrorsPropagate(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	st := sqlite.NewStoreWithDB(db)
	boom := errors.New("disk I/O error")

	t.Run("count", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM clients")).WillReturnError(boom)

		_, err := st.Clients().CountClients(ctx)
		require.ErrorIs(t, err, boom)
	})

	t.Run("lookup", func(t *testing.T) {
		mock.ExpectQuery("FROM clients\\s+WHERE email = \\?").
			WithArgs("jo@x.com").
			WillReturnError(boom)

		_, err := st.Clients().GetClientByEmail(ctx, "jo@x.com")
		require.ErrorIs(t, err, boom)
		require.NotErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("insert maps unique violation", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO clients").
			WillReturnError(errors.New("constraint failed: UNIQUE constraint failed: clients.email (2067)"))

		err := st.Clients().CreateClient(ctx, domain.Client{ID: "x", Email: "jo@x.com", SubmittedAt: time.Now()})
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("list scan", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "full_name", "email", "phone_number", "submitted_at"}).
			AddRow("a", "Jo", "jo@x.com", "+1-555-123-4567", int64(1)).
			RowError(0, boom)
		mock.ExpectQuery("ORDER BY submitted_at DESC").WillReturnRows(rows)

		_, err := st.Clients().ListClients(ctx)
		require.ErrorIs(t, err, boom)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}
