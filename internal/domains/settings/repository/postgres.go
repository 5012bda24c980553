package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"readerpeak-backend/internal/domains/settings"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) settings.Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) GetTheme(ctx context.Context, userID uuid.UUID) (settings.Theme, bool, error) {
	query := `SELECT theme FROM user_settings WHERE id = $1`

	var theme settings.Theme
	err := r.pool.QueryRow(ctx, query, userID).Scan(&theme)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get theme: %w", err)
	}

	return theme, true, nil
}

func (r *postgresRepository) UpsertTheme(ctx context.Context, userID uuid.UUID, theme settings.Theme) error {
	query := `
        INSERT INTO user_settings (id, theme)
        VALUES ($1, $2)
        ON CONFLICT (id) DO UPDATE SET theme = EXCLUDED.theme
    `

	if _, err := r.pool.Exec(ctx, query, userID, theme); err != nil {
		return fmt.Errorf("failed to upsert theme: %w", err)
	}

	return nil
}
