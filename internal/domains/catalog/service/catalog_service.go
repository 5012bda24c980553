package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"readerpeak-backend/internal/domains/author"
	"readerpeak-backend/internal/domains/catalog"
	bookmodel "readerpeak-backend/internal/domains/book/model"
	bookrepo "readerpeak-backend/internal/domains/book/repository"
	"readerpeak-backend/internal/shared/utils"
	pkgcache "readerpeak-backend/pkg/cache"
)

const (
	homeSegmentLimit = 10

	categoriesCacheKey = "catalog:categories"
	categoriesCacheTTL = 10 * time.Minute
)

type Service interface {
	// ListCategories returns the current category set with slugs,
	// de-duplicated by slug.
	ListCategories(ctx context.Context) ([]catalog.Category, error)

	// ListByCategorySlug resolves a slug back to its category name and
	// lists that category's books. An unknown slug yields an empty
	// list, not an error.
	ListByCategorySlug(ctx context.Context, slug string) ([]bookmodel.Book, error)

	// AssembleHomeFeed fetches all home page segments concurrently.
	AssembleHomeFeed(ctx context.Context) (*catalog.HomeFeed, error)
}

type catalogService struct {
	books   bookrepo.RepositoryInterface
	authors author.Repository
	cache   pkgcache.Cache
}

func NewCatalogService(books bookrepo.RepositoryInterface, authors author.Repository, cache pkgcache.Cache) Service {
	return &catalogService{
		books:   books,
		authors: authors,
		cache:   cache,
	}
}

func (s *catalogService) ListCategories(ctx context.Context) ([]catalog.Category, error) {
	if s.cache != nil {
		var cached []catalog.Category
		if found, err := s.cache.Get(ctx, categoriesCacheKey, &cached); err != nil {
			log.Warn().Err(err).Msg("category cache read failed")
		} else if found {
			return cached, nil
		}
	}

	names, err := s.books.DistinctCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	categories := dedupeBySlug(names)

	if s.cache != nil {
		if err := s.cache.Set(ctx, categoriesCacheKey, categories, categoriesCacheTTL); err != nil {
			log.Warn().Err(err).Msg("category cache write failed")
		}
	}

	return categories, nil
}

// dedupeBySlug keeps the first name per slug. Names that differ only
// in case or whitespace collapse into one entry.
func dedupeBySlug(names []string) []catalog.Category {
	seen := make(map[string]struct{}, len(names))
	categories := make([]catalog.Category, 0, len(names))
	for _, name := range names {
		slug := utils.CategorySlug(name)
		if _, ok := seen[slug]; ok {
			continue
		}
		seen[slug] = struct{}{}
		categories = append(categories, catalog.Category{Name: name, Slug: slug})
	}
	return categories
}

func (s *catalogService) ListByCategorySlug(ctx context.Context, slug string) ([]bookmodel.Book, error) {
	categories, err := s.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	for _, cat := range categories {
		if cat.Slug == slug {
			books, err := s.books.ListByCategory(ctx, cat.Name)
			if err != nil {
				return nil, fmt.Errorf("failed to list category %q: %w", cat.Name, err)
			}
			return books, nil
		}
	}

	// A slug not in the current set is stale navigation, not a fault.
	return []bookmodel.Book{}, nil
}

// AssembleHomeFeed runs the four segment fetches concurrently. Each
// segment fails independently: an error is logged and that segment
// degrades to empty while the others keep their data.
//
// The featured and top segments have opposite fallback directions when
// nothing is flagged: featured falls back to the oldest books, top to
// the newest.
func (s *catalogService) AssembleHomeFeed(ctx context.Context) (*catalog.HomeFeed, error) {
	feed := &catalog.HomeFeed{
		Featured: []bookmodel.Book{},
		Latest:   []bookmodel.Book{},
		Top:      []bookmodel.Book{},
		Authors:  []author.Author{},
	}

	var wg sync.WaitGroup
	wg.Add(4)

	go func() {
		defer wg.Done()
		books, err := s.featuredSegment(ctx)
		if err != nil {
			log.Error().Err(err).Msg("home feed: featured segment failed")
			return
		}
		feed.Featured = books
	}()

	go func() {
		defer wg.Done()
		books, err := s.books.ListLatest(ctx, homeSegmentLimit)
		if err != nil {
			log.Error().Err(err).Msg("home feed: latest segment failed")
			return
		}
		feed.Latest = books
	}()

	go func() {
		defer wg.Done()
		books, err := s.topSegment(ctx)
		if err != nil {
			log.Error().Err(err).Msg("home feed: top segment failed")
			return
		}
		feed.Top = books
	}()

	go func() {
		defer wg.Done()
		authors, err := s.authors.List(ctx, homeSegmentLimit)
		if err != nil {
			log.Error().Err(err).Msg("home feed: authors segment failed")
			return
		}
		feed.Authors = authors
	}()

	wg.Wait()

	// Segments serialize as [] rather than null.
	if feed.Featured == nil {
		feed.Featured = []bookmodel.Book{}
	}
	if feed.Latest == nil {
		feed.Latest = []bookmodel.Book{}
	}
	if feed.Top == nil {
		feed.Top = []bookmodel.Book{}
	}
	if feed.Authors == nil {
		feed.Authors = []author.Author{}
	}

	return feed, nil
}

func (s *catalogService) featuredSegment(ctx context.Context) ([]bookmodel.Book, error) {
	books, err := s.books.ListFeatured(ctx, homeSegmentLimit)
	if err != nil {
		return nil, err
	}
	if len(books) > 0 {
		return books, nil
	}
	return s.books.ListOldest(ctx, homeSegmentLimit)
}

func (s *catalogService) topSegment(ctx context.Context) ([]bookmodel.Book, error) {
	books, err := s.books.ListTop(ctx, homeSegmentLimit)
	if err != nil {
		return nil, err
	}
	if len(books) > 0 {
		return books, nil
	}
	return s.books.ListLatest(ctx, homeSegmentLimit)
}
