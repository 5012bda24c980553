package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	bookmodel "readerpeak-backend/internal/domains/book/model"
)

type mockBookRepository struct {
	mock.Mock
}

func (m *mockBookRepository) Insert(ctx context.Context, b *bookmodel.Book) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *mockBookRepository) GetByID(ctx context.Context, id uuid.UUID) (*bookmodel.BookDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bookmodel.BookDetail), args.Error(1)
}

func (m *mockBookRepository) ListByAuthor(ctx context.Context, authorUserID uuid.UUID) ([]bookmodel.Book, error) {
	args := m.Called(ctx, authorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]bookmodel.Book), args.Error(1)
}

func (m *mockBookRepository) ListByCategory(ctx context.Context, category string) ([]bookmodel.Book, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]bookmodel.Book), args.Error(1)
}

func (m *mockBookRepository) ListFeatured(ctx context.Context, limit int) ([]bookmodel.Book, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]bookmodel.Book), args.Error(1)
}

func (m *mockBookRepository) ListTop(ctx context.Context, limit int) ([]bookmodel.Book, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]bookmodel.Book), args.Error(1)
}

func (m *mockBookRepository) ListLatest(ctx context.Context, limit int) ([]bookmodel.Book, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]bookmodel.Book), args.Error(1)
}

func (m *mockBookRepository) ListOldest(ctx context.Context, limit int) ([]bookmodel.Book, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]bookmodel.Book), args.Error(1)
}

func (m *mockBookRepository) DistinctCategories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockBookRepository) SearchByTitle(ctx context.Context, query string) ([]bookmodel.Book, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]bookmodel.Book), args.Error(1)
}

func (m *mockBookRepository) ReferencedAssetURLs(ctx context.Context) (map[string]struct{}, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]struct{}), args.Error(1)
}

func titled(titles ...string) []bookmodel.Book {
	out := make([]bookmodel.Book, len(titles))
	for i, t := range titles {
		out[i] = bookmodel.Book{ID: uuid.New(), Title: t}
	}
	return out
}

func TestSearch(t *testing.T) {
	t.Run("blank query short-circuits without a store call", func(t *testing.T) {
		repo := new(mockBookRepository)
		svc := NewSearchService(repo)

		for _, q := range []string{"", "   ", "\t\n"} {
			results, err := svc.Search(context.Background(), q)
			assert.NoError(t, err)
			assert.Empty(t, results)
		}
		repo.AssertNotCalled(t, "SearchByTitle")
	})

	t.Run("non-blank query hits the store", func(t *testing.T) {
		repo := new(mockBookRepository)
		svc := NewSearchService(repo)

		repo.On("SearchByTitle", mock.Anything, "lake").Return(titled("The Silent Lake"), nil)

		results, err := svc.Search(context.Background(), "lake")

		assert.NoError(t, err)
		assert.Len(t, results, 1)
	})

	t.Run("no matches yields empty, not nil", func(t *testing.T) {
		repo := new(mockBookRepository)
		svc := NewSearchService(repo)

		repo.On("SearchByTitle", mock.Anything, "zzz").Return([]bookmodel.Book(nil), nil)

		results, err := svc.Search(context.Background(), "zzz")

		assert.NoError(t, err)
		assert.NotNil(t, results)
		assert.Empty(t, results)
	})

	t.Run("store failure surfaces an error", func(t *testing.T) {
		repo := new(mockBookRepository)
		svc := NewSearchService(repo)

		repo.On("SearchByTitle", mock.Anything, "lake").Return(nil, errors.New("db down"))

		_, err := svc.Search(context.Background(), "lake")
		assert.Error(t, err)
	})
}

func TestSuggest(t *testing.T) {
	t.Run("caps results at the suggestion limit", func(t *testing.T) {
		repo := new(mockBookRepository)
		svc := NewSearchService(repo)

		repo.On("SearchByTitle", mock.Anything, "the").
			Return(titled("A", "B", "C", "D", "E", "F", "G"), nil)

		results, err := svc.Suggest(context.Background(), "the")

		assert.NoError(t, err)
		assert.Len(t, results, SuggestionLimit)
		assert.Equal(t, "A", results[0].Title)
	})

	t.Run("fewer matches pass through uncapped", func(t *testing.T) {
		repo := new(mockBookRepository)
		svc := NewSearchService(repo)

		repo.On("SearchByTitle", mock.Anything, "the").Return(titled("A", "B"), nil)

		results, err := svc.Suggest(context.Background(), "the")

		assert.NoError(t, err)
		assert.Len(t, results, 2)
	})
}

func TestDebouncer(t *testing.T) {
	t.Run("rapid typing produces a single search for the final query", func(t *testing.T) {
		repo := new(mockBookRepository)
		svc := NewSearchService(repo)

		repo.On("SearchByTitle", mock.Anything, "abc").Return(titled("abc book"), nil)

		var mu sync.Mutex
		var delivered []string
		d := NewDebouncer(svc, 30*time.Millisecond, func(query string, results []bookmodel.Book) {
			mu.Lock()
			defer mu.Unlock()
			delivered = append(delivered, query)
		})
		defer d.Close()

		d.Input("a")
		time.Sleep(5 * time.Millisecond)
		d.Input("ab")
		time.Sleep(5 * time.Millisecond)
		d.Input("abc")

		time.Sleep(100 * time.Millisecond)

		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, []string{"abc"}, delivered)
		repo.AssertNumberOfCalls(t, "SearchByTitle", 1)
	})

	t.Run("quiet gaps produce one search each", func(t *testing.T) {
		repo := new(mockBookRepository)
		svc := NewSearchService(repo)

		repo.On("SearchByTitle", mock.Anything, mock.Anything).Return(titled("x"), nil)

		var mu sync.Mutex
		var delivered []string
		d := NewDebouncer(svc, 20*time.Millisecond, func(query string, results []bookmodel.Book) {
			mu.Lock()
			defer mu.Unlock()
			delivered = append(delivered, query)
		})
		defer d.Close()

		d.Input("first")
		time.Sleep(60 * time.Millisecond)
		d.Input("second")
		time.Sleep(60 * time.Millisecond)

		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, []string{"first", "second"}, delivered)
	})

	t.Run("close cancels the pending search", func(t *testing.T) {
		repo := new(mockBookRepository)
		svc := NewSearchService(repo)

		var mu sync.Mutex
		var delivered []string
		d := NewDebouncer(svc, 30*time.Millisecond, func(query string, results []bookmodel.Book) {
			mu.Lock()
			defer mu.Unlock()
			delivered = append(delivered, query)
		})

		d.Input("doomed")
		d.Close()

		time.Sleep(80 * time.Millisecond)

		mu.Lock()
		defer mu.Unlock()
		assert.Empty(t, delivered)
		repo.AssertNotCalled(t, "SearchByTitle")
	})

	t.Run("input after close is ignored", func(t *testing.T) {
		repo := new(mockBookRepository)
		svc := NewSearchService(repo)

		d := NewDebouncer(svc, 10*time.Millisecond, func(query string, results []bookmodel.Book) {
			t.Errorf("unexpected delivery for %q", query)
		})
		d.Close()
		d.Input("late")

		time.Sleep(40 * time.Millisecond)
		repo.AssertNotCalled(t, "SearchByTitle")
	})
}
