package repository

import (
	"context"

	"github.com/google/uuid"

	"readerpeak-backend/internal/domains/book/model"
)

// RepositoryInterface is the books-table data access contract. All
// listing methods order newest first unless stated otherwise.
type RepositoryInterface interface {
	Insert(ctx context.Context, b *model.Book) error

	// GetByID joins the author display name for the reading view.
	GetByID(ctx context.Context, id uuid.UUID) (*model.BookDetail, error)

	// ListByAuthor returns every book owned by the user, newest first.
	// No visibility filter: owner and visitor see the same set.
	ListByAuthor(ctx context.Context, authorUserID uuid.UUID) ([]model.Book, error)

	// ListByCategory filters on the exact category name.
	ListByCategory(ctx context.Context, category string) ([]model.Book, error)

	ListFeatured(ctx context.Context, limit int) ([]model.Book, error)
	ListTop(ctx context.Context, limit int) ([]model.Book, error)
	ListLatest(ctx context.Context, limit int) ([]model.Book, error)

	// ListOldest is the featured-segment fallback: oldest first.
	ListOldest(ctx context.Context, limit int) ([]model.Book, error)

	// DistinctCategories returns the distinct non-null category names,
	// ascending.
	DistinctCategories(ctx context.Context) ([]string, error)

	// SearchByTitle is a case-insensitive substring match, newest first.
	SearchByTitle(ctx context.Context, query string) ([]model.Book, error)

	// ReferencedAssetURLs returns every pdf_url and cover_url currently
	// stored. Used by the orphan sweeper.
	ReferencedAssetURLs(ctx context.Context) (map[string]struct{}, error)
}
