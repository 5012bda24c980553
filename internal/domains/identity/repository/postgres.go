package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"readerpeak-backend/internal/domains/identity"
)

// postgresRepository implements identity.Repository on pgxpool.
type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) identity.Repository {
	return &postgresRepository{pool: pool}
}

// Upsert inserts or updates the user keyed by id. Signup retries and
// double submissions collapse into a single surviving row.
func (r *postgresRepository) Upsert(ctx context.Context, u *identity.User) error {
	query := `
        INSERT INTO users (id, name, email, password_hash, bio, avatar_url)
        VALUES ($1, $2, $3, $4, $5, $6)
        ON CONFLICT (id)
        DO UPDATE SET
            name = EXCLUDED.name,
            bio = EXCLUDED.bio,
            avatar_url = EXCLUDED.avatar_url
        RETURNING created_at
    `

	err := r.pool.QueryRow(
		ctx,
		query,
		u.ID,
		u.Name,
		u.Email,
		u.PasswordHash,
		u.Bio,
		u.AvatarURL,
	).Scan(&u.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return identity.ErrEmailAlreadyExists
		}
		return fmt.Errorf("failed to upsert user: %w", err)
	}

	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	query := `
        SELECT id, name, email, password_hash, bio, avatar_url, created_at
        FROM users
        WHERE id = $1
    `

	var u identity.User
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.Bio,
		&u.AvatarURL,
		&u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, identity.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return &u, nil
}

func (r *postgresRepository) GetByEmail(ctx context.Context, email string) (*identity.User, error) {
	query := `
        SELECT id, name, email, password_hash, bio, avatar_url, created_at
        FROM users
        WHERE email = $1
    `

	var u identity.User
	err := r.pool.QueryRow(ctx, query, email).Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.Bio,
		&u.AvatarURL,
		&u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, identity.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return &u, nil
}

func (r *postgresRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}

	return exists, nil
}
