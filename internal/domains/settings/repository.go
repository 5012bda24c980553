package settings

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the user_settings data access contract. ErrNotSet is
// not part of it: an absent row is reported as ("", false, nil).
type Repository interface {
	GetTheme(ctx context.Context, userID uuid.UUID) (Theme, bool, error)

	// UpsertTheme writes the preference keyed by user id.
	UpsertTheme(ctx context.Context, userID uuid.UUID, theme Theme) error
}
