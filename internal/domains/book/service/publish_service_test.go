package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"readerpeak-backend/internal/domains/book/model"
	"readerpeak-backend/internal/domains/identity"
	"readerpeak-backend/internal/shared"
)

type mockBookRepository struct {
	mock.Mock
}

func (m *mockBookRepository) Insert(ctx context.Context, b *model.Book) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *mockBookRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.BookDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BookDetail), args.Error(1)
}

func (m *mockBookRepository) ListByAuthor(ctx context.Context, authorUserID uuid.UUID) ([]model.Book, error) {
	args := m.Called(ctx, authorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Book), args.Error(1)
}

func (m *mockBookRepository) ListByCategory(ctx context.Context, category string) ([]model.Book, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Book), args.Error(1)
}

func (m *mockBookRepository) ListFeatured(ctx context.Context, limit int) ([]model.Book, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Book), args.Error(1)
}

func (m *mockBookRepository) ListTop(ctx context.Context, limit int) ([]model.Book, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Book), args.Error(1)
}

func (m *mockBookRepository) ListLatest(ctx context.Context, limit int) ([]model.Book, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Book), args.Error(1)
}

func (m *mockBookRepository) ListOldest(ctx context.Context, limit int) ([]model.Book, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Book), args.Error(1)
}

func (m *mockBookRepository) DistinctCategories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockBookRepository) SearchByTitle(ctx context.Context, query string) ([]model.Book, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Book), args.Error(1)
}

func (m *mockBookRepository) ReferencedAssetURLs(ctx context.Context) (map[string]struct{}, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]struct{}), args.Error(1)
}

type mockUploader struct {
	mock.Mock
}

func (m *mockUploader) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	args := m.Called(ctx, key, data, contentType)
	return args.String(0), args.Error(1)
}

func validRequest() *model.PublishBookRequest {
	return &model.PublishBookRequest{
		Title:    "The Silent Lake",
		Category: "Fiction",
		Tags:     "mystery, lake",
		Document: shared.FileUpload{
			Filename:    "book.pdf",
			Data:        []byte("pdf-bytes"),
			ContentType: "application/pdf",
		},
	}
}

func TestPublishBook(t *testing.T) {
	viewer := identity.Viewer{ID: uuid.New(), Email: "author@example.com"}

	t.Run("anonymous viewer is rejected before any upload", func(t *testing.T) {
		repo := new(mockBookRepository)
		uploader := new(mockUploader)
		svc := NewBookService(repo, uploader)

		book, err := svc.PublishBook(context.Background(), identity.Anonymous(), validRequest())

		assert.Nil(t, book)
		assert.ErrorIs(t, err, model.ErrUnauthorized)
		uploader.AssertNotCalled(t, "Upload")
		repo.AssertNotCalled(t, "Insert")
	})

	t.Run("missing document is rejected before any upload", func(t *testing.T) {
		repo := new(mockBookRepository)
		uploader := new(mockUploader)
		svc := NewBookService(repo, uploader)

		req := validRequest()
		req.Document = shared.FileUpload{}

		book, err := svc.PublishBook(context.Background(), viewer, req)

		assert.Nil(t, book)
		assert.ErrorIs(t, err, model.ErrDocumentRequired)
		uploader.AssertNotCalled(t, "Upload")
		repo.AssertNotCalled(t, "Insert")
	})

	t.Run("document upload failure means no insert", func(t *testing.T) {
		repo := new(mockBookRepository)
		uploader := new(mockUploader)
		svc := NewBookService(repo, uploader)

		uploader.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return("", errors.New("connection refused"))

		book, err := svc.PublishBook(context.Background(), viewer, validRequest())

		assert.Nil(t, book)
		assert.ErrorIs(t, err, model.ErrUploadFailed)
		repo.AssertNotCalled(t, "Insert")
	})

	t.Run("cover upload failure means no insert", func(t *testing.T) {
		repo := new(mockBookRepository)
		uploader := new(mockUploader)
		svc := NewBookService(repo, uploader)

		req := validRequest()
		req.Cover = shared.FileUpload{
			Filename:    "cover.png",
			Data:        []byte("png-bytes"),
			ContentType: "image/png",
		}

		uploader.On("Upload", mock.Anything, mock.MatchedBy(func(key string) bool {
			return key[:len(shared.PrefixBooks)] == shared.PrefixBooks
		}), mock.Anything, mock.Anything).Return("http://storage/books/doc.pdf", nil)
		uploader.On("Upload", mock.Anything, mock.MatchedBy(func(key string) bool {
			return key[:len(shared.PrefixCovers)] == shared.PrefixCovers
		}), mock.Anything, mock.Anything).Return("", errors.New("bucket gone"))

		book, err := svc.PublishBook(context.Background(), viewer, req)

		assert.Nil(t, book)
		assert.ErrorIs(t, err, model.ErrUploadFailed)
		repo.AssertNotCalled(t, "Insert")
	})

	t.Run("insert failure after uploads surfaces persistence error", func(t *testing.T) {
		repo := new(mockBookRepository)
		uploader := new(mockUploader)
		svc := NewBookService(repo, uploader)

		uploader.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return("http://storage/books/doc.pdf", nil)
		repo.On("Insert", mock.Anything, mock.Anything).Return(errors.New("db down"))

		book, err := svc.PublishBook(context.Background(), viewer, validRequest())

		assert.Nil(t, book)
		assert.ErrorIs(t, err, model.ErrPersistence)
	})

	t.Run("successful publish without cover", func(t *testing.T) {
		repo := new(mockBookRepository)
		uploader := new(mockUploader)
		svc := NewBookService(repo, uploader)

		uploader.On("Upload", mock.Anything, mock.Anything, []byte("pdf-bytes"), "application/pdf").
			Return("http://storage/books/doc.pdf", nil)
		repo.On("Insert", mock.Anything, mock.MatchedBy(func(b *model.Book) bool {
			return b.AuthorID == viewer.ID &&
				b.PDFURL == "http://storage/books/doc.pdf" &&
				b.CoverURL == nil
		})).Return(nil)

		book, err := svc.PublishBook(context.Background(), viewer, validRequest())

		assert.NoError(t, err)
		assert.NotNil(t, book)
		assert.Equal(t, []string{"mystery", "lake"}, book.Tags)
		uploader.AssertNumberOfCalls(t, "Upload", 1)
		repo.AssertExpectations(t)
	})

	t.Run("successful publish with cover stores both urls", func(t *testing.T) {
		repo := new(mockBookRepository)
		uploader := new(mockUploader)
		svc := NewBookService(repo, uploader)

		req := validRequest()
		req.Cover = shared.FileUpload{
			Filename:    "cover.png",
			Data:        []byte("png-bytes"),
			ContentType: "image/png",
		}

		uploader.On("Upload", mock.Anything, mock.Anything, []byte("pdf-bytes"), "application/pdf").
			Return("http://storage/books/doc.pdf", nil)
		uploader.On("Upload", mock.Anything, mock.Anything, []byte("png-bytes"), "image/png").
			Return("http://storage/covers/cover.png", nil)
		repo.On("Insert", mock.Anything, mock.Anything).Return(nil)

		book, err := svc.PublishBook(context.Background(), viewer, req)

		assert.NoError(t, err)
		assert.NotNil(t, book.CoverURL)
		assert.Equal(t, "http://storage/covers/cover.png", *book.CoverURL)
		uploader.AssertNumberOfCalls(t, "Upload", 2)
	})

	t.Run("blank tags input stores nil tags", func(t *testing.T) {
		repo := new(mockBookRepository)
		uploader := new(mockUploader)
		svc := NewBookService(repo, uploader)

		req := validRequest()
		req.Tags = "   "

		uploader.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return("http://storage/books/doc.pdf", nil)
		repo.On("Insert", mock.Anything, mock.MatchedBy(func(b *model.Book) bool {
			return b.Tags == nil
		})).Return(nil)

		_, err := svc.PublishBook(context.Background(), viewer, req)

		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})
}

func TestParseTags(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"empty input", "", nil},
		{"whitespace only", "   ", nil},
		{"single tag", "mystery", []string{"mystery"}},
		{"trims around commas", " mystery , lake ", []string{"mystery", "lake"}},
		{"drops empty segments", "a,,b,", []string{"a", "b"}},
		{"only commas", ",,,", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, model.ParseTags(tt.input))
		})
	}
}
