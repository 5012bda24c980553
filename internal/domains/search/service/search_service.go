package service

import (
	"context"
	"fmt"
	"strings"

	bookmodel "readerpeak-backend/internal/domains/book/model"
	bookrepo "readerpeak-backend/internal/domains/book/repository"
)

// SuggestionLimit caps the dropdown suggestions. The cap is applied at
// the delivery surface; the full match list is still fetched so the
// results page can show everything.
const SuggestionLimit = 5

type Service interface {
	// Search matches the query as a case-insensitive substring of the
	// title, newest first. A blank query returns an empty result
	// without touching the store.
	Search(ctx context.Context, query string) ([]bookmodel.Book, error)

	// Suggest is Search capped at SuggestionLimit.
	Suggest(ctx context.Context, query string) ([]bookmodel.Book, error)
}

type searchService struct {
	books bookrepo.RepositoryInterface
}

func NewSearchService(books bookrepo.RepositoryInterface) Service {
	return &searchService{books: books}
}

func (s *searchService) Search(ctx context.Context, query string) ([]bookmodel.Book, error) {
	if strings.TrimSpace(query) == "" {
		return []bookmodel.Book{}, nil
	}

	books, err := s.books.SearchByTitle(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search books: %w", err)
	}
	if books == nil {
		books = []bookmodel.Book{}
	}
	return books, nil
}

func (s *searchService) Suggest(ctx context.Context, query string) ([]bookmodel.Book, error) {
	books, err := s.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(books) > SuggestionLimit {
		books = books[:SuggestionLimit]
	}
	return books, nil
}
