package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"readerpeak-backend/internal/domains/book/model"
	"readerpeak-backend/internal/domains/book/repository"
	"readerpeak-backend/internal/domains/identity"
	"readerpeak-backend/internal/shared"
)

type Service interface {
	// PublishBook uploads the book's assets and inserts the record.
	PublishBook(ctx context.Context, viewer identity.Viewer, req *model.PublishBookRequest) (*model.Book, error)
	GetBook(ctx context.Context, id uuid.UUID) (*model.BookDetail, error)
	ListByAuthor(ctx context.Context, authorUserID uuid.UUID) ([]model.Book, error)
}

type bookService struct {
	repo    repository.RepositoryInterface
	storage shared.Uploader
	now     func() time.Time
}

func NewBookService(repo repository.RepositoryInterface, storage shared.Uploader) Service {
	return &bookService{
		repo:    repo,
		storage: storage,
		now:     time.Now,
	}
}

// PublishBook runs the publish pipeline in a fixed order: document
// upload, then cover upload, then the database insert. There is no
// rollback. A failed upload means nothing was written anywhere; a
// failed insert after successful uploads leaves unreferenced objects
// in storage for the sweeper to reclaim.
func (s *bookService) PublishBook(ctx context.Context, viewer identity.Viewer, req *model.PublishBookRequest) (*model.Book, error) {
	if viewer.IsAnonymous() {
		return nil, model.ErrUnauthorized
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}

	if req.Document.IsEmpty() {
		return nil, model.ErrDocumentRequired
	}

	docKey := fmt.Sprintf("%s%s_%d.%s", shared.PrefixBooks, viewer.ID, s.now().UnixNano(), req.Document.Ext())
	pdfURL, err := s.storage.Upload(ctx, docKey, req.Document.Data, req.Document.ContentType)
	if err != nil {
		return nil, fmt.Errorf("%w: document: %v", model.ErrUploadFailed, err)
	}

	var coverURL *string
	if !req.Cover.IsEmpty() {
		coverKey := fmt.Sprintf("%s%s_cover_%d.%s", shared.PrefixCovers, viewer.ID, s.now().UnixNano(), req.Cover.Ext())
		url, err := s.storage.Upload(ctx, coverKey, req.Cover.Data, req.Cover.ContentType)
		if err != nil {
			return nil, fmt.Errorf("%w: cover: %v", model.ErrUploadFailed, err)
		}
		coverURL = &url
	}

	book := &model.Book{
		AuthorID: viewer.ID,
		Title:    req.Title,
		Category: req.Category,
		Summary:  optional(req.Summary),
		Content:  optional(req.Content),
		PDFURL:   pdfURL,
		CoverURL: coverURL,
		Tags:     model.ParseTags(req.Tags),
	}

	if err := s.repo.Insert(ctx, book); err != nil {
		log.Error().Err(err).
			Str("pdf_url", pdfURL).
			Msg("book insert failed after asset upload, objects left for sweeper")
		return nil, fmt.Errorf("%w: %v", model.ErrPersistence, err)
	}

	return book, nil
}

func (s *bookService) GetBook(ctx context.Context, id uuid.UUID) (*model.BookDetail, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *bookService) ListByAuthor(ctx context.Context, authorUserID uuid.UUID) ([]model.Book, error) {
	return s.repo.ListByAuthor(ctx, authorUserID)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
