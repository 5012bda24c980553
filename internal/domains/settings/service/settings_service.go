package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"readerpeak-backend/internal/domains/settings"
)

type Service interface {
	// ThemeFor returns the stored preference or the default.
	ThemeFor(ctx context.Context, userID uuid.UUID) (settings.Theme, error)

	// SetTheme persists the preference. A store failure is logged but
	// not returned: a theme toggle must never look broken to the user.
	SetTheme(ctx context.Context, userID uuid.UUID, theme settings.Theme) error
}

type settingsService struct {
	repo settings.Repository
}

func NewSettingsService(repo settings.Repository) Service {
	return &settingsService{repo: repo}
}

func (s *settingsService) ThemeFor(ctx context.Context, userID uuid.UUID) (settings.Theme, error) {
	theme, found, err := s.repo.GetTheme(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to load theme: %w", err)
	}
	if !found || !theme.Valid() {
		return settings.DefaultTheme, nil
	}
	return theme, nil
}

func (s *settingsService) SetTheme(ctx context.Context, userID uuid.UUID, theme settings.Theme) error {
	if !theme.Valid() {
		return settings.ErrInvalidTheme
	}

	if err := s.repo.UpsertTheme(ctx, userID, theme); err != nil {
		log.Warn().Err(err).
			Str("user_id", userID.String()).
			Str("theme", string(theme)).
			Msg("theme persistence failed")
	}

	return nil
}
