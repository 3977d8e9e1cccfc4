package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/intake-service/internal/domain"
)

// EntryRepository defines persistence access for the record store.
type EntryRepository interface {
	// Append writes exactly one row. The insert is a single statement, so a
	// failed append leaves nothing behind.
	Append(ctx context.Context, entry *domain.Entry) error
	// Recent returns up to limit rows from the tail of the store in original
	// insertion order (oldest of the window first).
	Recent(ctx context.Context, limit int) ([]domain.Entry, error)
}

type entryRepository struct {
	pool *pgxpool.Pool
}

// NewEntryRepository returns a Postgres-backed implementation.
func NewEntryRepository(pool *pgxpool.Pool) EntryRepository {
	return &entryRepository{pool: pool}
}

func (r *entryRepository) Append(ctx context.Context, entry *domain.Entry) error {
	const query = `
        INSERT INTO entries (id, submitted_at, name, email, phone, department, submitted_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.pool.Exec(ctx, query,
		entry.ID,
		entry.Timestamp,
		entry.Name,
		entry.Email,
		entry.Phone,
		entry.Department,
		entry.SubmittedBy,
	)
	return err
}

func (r *entryRepository) Recent(ctx context.Context, limit int) ([]domain.Entry, error) {
	const query = `
        SELECT id, submitted_at, name, email, phone, department, submitted_by
        FROM (
            SELECT id, submitted_at, name, email, phone, department, submitted_by, created_at
            FROM entries
            ORDER BY created_at DESC, id DESC
            LIMIT $1
        ) tail
        ORDER BY created_at, id`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]domain.Entry, 0, limit)
	for rows.Next() {
		var entry domain.Entry
		if err := rows.Scan(
			&entry.ID,
			&entry.Timestamp,
			&entry.Name,
			&entry.Email,
			&entry.Phone,
			&entry.Department,
			&entry.SubmittedBy,
		); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
