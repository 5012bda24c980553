package author

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the authors-table data access contract.
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Author, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*Author, error)

	// Upsert inserts or updates keyed by user_id: at most one author
	// row survives per user regardless of how often it is called.
	Upsert(ctx context.Context, a *Author) error

	// List returns up to limit authors, implementation order.
	List(ctx context.Context, limit int) ([]Author, error)

	// ReferencedPhotoURLs returns every non-null photo_url currently
	// stored. Used by the orphan sweeper.
	ReferencedPhotoURLs(ctx context.Context) (map[string]struct{}, error)
}
