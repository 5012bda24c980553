package identity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository is the users-table data access contract.
type Repository interface {
	// Upsert inserts or updates a user keyed by id. Signup re-submission
	// must not duplicate the row.
	Upsert(ctx context.Context, u *User) error

	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// TokenStore tracks revoked session tokens (sign-out denylist).
type TokenStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
