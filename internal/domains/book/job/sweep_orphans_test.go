package job

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"readerpeak-backend/internal/domains/author"
	bookmodel "readerpeak-backend/internal/domains/book/model"
	"readerpeak-backend/internal/infrastructure/storage"
	"readerpeak-backend/internal/shared"
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

type mockAuthorRepository struct {
	mock.Mock
}

func (m *mockAuthorRepository) GetByID(ctx context.Context, id uuid.UUID) (*author.Author, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*author.Author), args.Error(1)
}

func (m *mockAuthorRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*author.Author, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*author.Author), args.Error(1)
}

func (m *mockAuthorRepository) Upsert(ctx context.Context, a *author.Author) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *mockAuthorRepository) List(ctx context.Context, limit int) ([]author.Author, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]author.Author), args.Error(1)
}

func (m *mockAuthorRepository) ReferencedPhotoURLs(ctx context.Context) (map[string]struct{}, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]struct{}), args.Error(1)
}

type mockObjectStore struct {
	mock.Mock
}

func (m *mockObjectStore) ListByPrefix(ctx context.Context, prefix string) ([]storage.ObjectInfo, error) {
	args := m.Called(ctx, prefix)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.ObjectInfo), args.Error(1)
}

func (m *mockObjectStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func sweepTask(t *testing.T) *asynq.Task {
	t.Helper()
	return asynq.NewTask(shared.TypeSweepOrphanAssets, []byte("{}"))
}

func TestSweepOrphanAssets(t *testing.T) {
	old := time.Now().Add(-2 * time.Hour)
	fresh := time.Now()

	setupRefs := func(books *mockBookRepository, authors *mockAuthorRepository, urls ...string) {
		refs := make(map[string]struct{})
		for _, u := range urls {
			refs[u] = struct{}{}
		}
		books.On("ReferencedAssetURLs", mock.Anything).Return(refs, nil)
		authors.On("ReferencedPhotoURLs", mock.Anything).Return(map[string]struct{}{}, nil)
	}

	t.Run("deletes old unreferenced objects only", func(t *testing.T) {
		books := new(mockBookRepository)
		authors := new(mockAuthorRepository)
		store := new(mockObjectStore)
		h := NewSweepHandler(books, authors, store, time.Hour)

		setupRefs(books, authors, "http://storage/books/kept.pdf")

		store.On("ListByPrefix", mock.Anything, shared.PrefixBooks).Return([]storage.ObjectInfo{
			{Key: "books/kept.pdf", URL: "http://storage/books/kept.pdf", LastModified: old},
			{Key: "books/orphan.pdf", URL: "http://storage/books/orphan.pdf", LastModified: old},
		}, nil)
		store.On("ListByPrefix", mock.Anything, shared.PrefixCovers).Return([]storage.ObjectInfo{}, nil)
		store.On("ListByPrefix", mock.Anything, shared.PrefixAvatars).Return([]storage.ObjectInfo{}, nil)
		store.On("Delete", mock.Anything, "books/orphan.pdf").Return(nil)

		err := h.ProcessTask(context.Background(), sweepTask(t))

		assert.NoError(t, err)
		store.AssertCalled(t, "Delete", mock.Anything, "books/orphan.pdf")
		store.AssertNotCalled(t, "Delete", mock.Anything, "books/kept.pdf")
	})

	t.Run("objects inside the grace window survive", func(t *testing.T) {
		books := new(mockBookRepository)
		authors := new(mockAuthorRepository)
		store := new(mockObjectStore)
		h := NewSweepHandler(books, authors, store, time.Hour)

		setupRefs(books, authors)

		store.On("ListByPrefix", mock.Anything, shared.PrefixBooks).Return([]storage.ObjectInfo{
			{Key: "books/in-flight.pdf", URL: "http://storage/books/in-flight.pdf", LastModified: fresh},
		}, nil)
		store.On("ListByPrefix", mock.Anything, shared.PrefixCovers).Return([]storage.ObjectInfo{}, nil)
		store.On("ListByPrefix", mock.Anything, shared.PrefixAvatars).Return([]storage.ObjectInfo{}, nil)

		err := h.ProcessTask(context.Background(), sweepTask(t))

		assert.NoError(t, err)
		store.AssertNotCalled(t, "Delete")
	})

	t.Run("author photos count as referenced", func(t *testing.T) {
		books := new(mockBookRepository)
		authors := new(mockAuthorRepository)
		store := new(mockObjectStore)
		h := NewSweepHandler(books, authors, store, time.Hour)

		books.On("ReferencedAssetURLs", mock.Anything).Return(map[string]struct{}{}, nil)
		authors.On("ReferencedPhotoURLs", mock.Anything).Return(map[string]struct{}{
			"http://storage/avatars/me.png": {},
		}, nil)

		store.On("ListByPrefix", mock.Anything, shared.PrefixBooks).Return([]storage.ObjectInfo{}, nil)
		store.On("ListByPrefix", mock.Anything, shared.PrefixCovers).Return([]storage.ObjectInfo{}, nil)
		store.On("ListByPrefix", mock.Anything, shared.PrefixAvatars).Return([]storage.ObjectInfo{
			{Key: "avatars/me.png", URL: "http://storage/avatars/me.png", LastModified: old},
		}, nil)

		err := h.ProcessTask(context.Background(), sweepTask(t))

		assert.NoError(t, err)
		store.AssertNotCalled(t, "Delete")
	})

	t.Run("a failed delete does not abort the sweep", func(t *testing.T) {
		books := new(mockBookRepository)
		authors := new(mockAuthorRepository)
		store := new(mockObjectStore)
		h := NewSweepHandler(books, authors, store, time.Hour)

		setupRefs(books, authors)

		store.On("ListByPrefix", mock.Anything, shared.PrefixBooks).Return([]storage.ObjectInfo{
			{Key: "books/a.pdf", URL: "http://storage/books/a.pdf", LastModified: old},
			{Key: "books/b.pdf", URL: "http://storage/books/b.pdf", LastModified: old},
		}, nil)
		store.On("ListByPrefix", mock.Anything, shared.PrefixCovers).Return([]storage.ObjectInfo{}, nil)
		store.On("ListByPrefix", mock.Anything, shared.PrefixAvatars).Return([]storage.ObjectInfo{}, nil)
		store.On("Delete", mock.Anything, "books/a.pdf").Return(errors.New("storage flake"))
		store.On("Delete", mock.Anything, "books/b.pdf").Return(nil)

		err := h.ProcessTask(context.Background(), sweepTask(t))

		assert.NoError(t, err)
		store.AssertCalled(t, "Delete", mock.Anything, "books/b.pdf")
	})

	t.Run("database failure surfaces so asynq retries", func(t *testing.T) {
		books := new(mockBookRepository)
		authors := new(mockAuthorRepository)
		store := new(mockObjectStore)
		h := NewSweepHandler(books, authors, store, time.Hour)

		books.On("ReferencedAssetURLs", mock.Anything).Return(nil, errors.New("db down"))

		err := h.ProcessTask(context.Background(), sweepTask(t))

		assert.Error(t, err)
		store.AssertNotCalled(t, "ListByPrefix")
	})
}
