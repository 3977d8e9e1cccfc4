package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/intake-service/internal/domain"
)

// UserRepository defines persistence access for the credential store.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	// Delete removes the first row matching the username by insertion order.
	// It reports whether a row was removed.
	Delete(ctx context.Context, username string) (bool, error)
	// FindByCredentials returns the oldest row whose username and stored
	// hash both match, or pgx.ErrNoRows. Duplicate usernames are possible;
	// first match wins.
	FindByCredentials(ctx context.Context, username, passwordHash string) (*domain.User, error)
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (username, password_hash, role)
        VALUES ($1, $2, $3)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		user.Username,
		user.PasswordHash,
		user.Role,
	).Scan(&user.ID, &user.CreatedAt)
}

func (r *userRepository) Delete(ctx context.Context, username string) (bool, error) {
	const query = `
        DELETE FROM users
        WHERE id = (
            SELECT id FROM users WHERE username=$1
            ORDER BY created_at, id LIMIT 1
        )`

	cmd, err := r.pool.Exec(ctx, query, username)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *userRepository) FindByCredentials(ctx context.Context, username, passwordHash string) (*domain.User, error) {
	const query = `
        SELECT id, username, password_hash, role, created_at
        FROM users
        WHERE username=$1 AND password_hash=$2
        ORDER BY created_at, id
        LIMIT 1`

	var user domain.User
	if err := r.pool.QueryRow(ctx, query, username, passwordHash).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.Role,
		&user.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &user, nil
}

// ErrNoRows re-exports the pgx sentinel so callers outside the persistence
// layer can match lookup misses without importing pgx directly.
var ErrNoRows = pgx.ErrNoRows
