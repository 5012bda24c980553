package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"readerpeak-backend/internal/domains/author"
)

// postgresRepository implements author.Repository on pgxpool.
type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) author.Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*author.Author, error) {
	query := `
        SELECT id, user_id, name, bio, photo_url, created_at
        FROM authors
        WHERE id = $1
    `

	var a author.Author
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&a.ID,
		&a.UserID,
		&a.Name,
		&a.Bio,
		&a.PhotoURL,
		&a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, author.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to get author by id: %w", err)
	}

	return &a, nil
}

func (r *postgresRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*author.Author, error) {
	query := `
        SELECT id, user_id, name, bio, photo_url, created_at
        FROM authors
        WHERE user_id = $1
    `

	var a author.Author
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&a.ID,
		&a.UserID,
		&a.Name,
		&a.Bio,
		&a.PhotoURL,
		&a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, author.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to get author by user id: %w", err)
	}

	return &a, nil
}

// Upsert inserts or updates keyed by the unique user_id column.
// A fresh photo URL replaces the stored one; absent photo keeps it.
func (r *postgresRepository) Upsert(ctx context.Context, a *author.Author) error {
	query := `
        INSERT INTO authors (id, user_id, name, bio, photo_url)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT (user_id)
        DO UPDATE SET
            name = EXCLUDED.name,
            bio = EXCLUDED.bio,
            photo_url = COALESCE(EXCLUDED.photo_url, authors.photo_url)
        RETURNING id, photo_url, created_at
    `

	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}

	err := r.pool.QueryRow(
		ctx,
		query,
		a.ID,
		a.UserID,
		a.Name,
		a.Bio,
		a.PhotoURL,
	).Scan(&a.ID, &a.PhotoURL, &a.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert author: %w", err)
	}

	return nil
}

func (r *postgresRepository) List(ctx context.Context, limit int) ([]author.Author, error) {
	query := `
        SELECT id, user_id, name, bio, photo_url, created_at
        FROM authors
        LIMIT $1
    `

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list authors: %w", err)
	}
	defer rows.Close()

	var authors []author.Author
	for rows.Next() {
		var a author.Author
		if err := rows.Scan(
			&a.ID,
			&a.UserID,
			&a.Name,
			&a.Bio,
			&a.PhotoURL,
			&a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan author: %w", err)
		}
		authors = append(authors, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating authors: %w", err)
	}

	return authors, nil
}

func (r *postgresRepository) ReferencedPhotoURLs(ctx context.Context) (map[string]struct{}, error) {
	query := `SELECT photo_url FROM authors WHERE photo_url IS NOT NULL`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query photo urls: %w", err)
	}
	defer rows.Close()

	urls := make(map[string]struct{})
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return nil, fmt.Errorf("failed to scan photo url: %w", err)
		}
		urls[url] = struct{}{}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating photo urls: %w", err)
	}

	return urls, nil
}
