package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/intake/internal/intake/domain"
)

const (
	queryGetClientByEmail = `SELECT id, full_name, email, phone_number, submitted_at
FROM clients
WHERE email = ?`

	queryCreateClient = `INSERT INTO clients (id, full_name, email, phone_number, submitted_at)
VALUES (?, ?, ?, ?, ?)`

	queryCountClients = `SELECT COUNT(*) FROM clients`

	queryCountClientsSince = `SELECT COUNT(*) FROM clients WHERE submitted_at >= ?`

	queryListClients = `SELECT id, full_name, email, phone_number, submitted_at
FROM clients
ORDER BY submitted_at DESC, id DESC`
)

type clientsRepo struct {
	db *sql.DB
}

func (r *clientsRepo) GetClientByEmail(ctx context.Context, email string) (domain.Client, error) {
	var row clientRow
	err := r.db.QueryRowContext(ctx, queryGetClientByEmail, email).Scan(
		&row.ID,
		&row.FullName,
		&row.Email,
		&row.PhoneNumber,
		&row.SubmittedAt,
	)
	if err != nil {
		return domain.Client{}, mapNotFound(err)
	}
	return mapClient(row), nil
}

func (r *clientsRepo) CreateClient(ctx context.Context, c domain.Client) error {
	_, err := r.db.ExecContext(ctx, queryCreateClient,
		c.ID,
		c.FullName,
		c.Email,
		c.PhoneNumber,
		toUnixNano(c.SubmittedAt),
	)
	return mapConstraint(err)
}

func (r *clientsRepo) CountClients(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, queryCountClients).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *clientsRepo) CountClientsSince(ctx context.Context, since time.Time) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, queryCountClientsSince, toUnixNano(since)).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *clientsRepo) ListClients(ctx context.Context) ([]domain.Client, error) {
	rows, err := r.db.QueryContext(ctx, queryListClients)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Client, 0)
	for rows.Next() {
		var row clientRow
		if err := rows.Scan(
			&row.ID,
			&row.FullName,
			&row.Email,
			&row.PhoneNumber,
			&row.SubmittedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, mapClient(row))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
