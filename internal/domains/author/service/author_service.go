package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"readerpeak-backend/internal/domains/author"
	bookmodel "readerpeak-backend/internal/domains/book/model"
	bookrepo "readerpeak-backend/internal/domains/book/repository"
	"readerpeak-backend/internal/domains/identity"
	"readerpeak-backend/internal/shared"
)

type Service interface {
	// ResolveProfile decides what a profile route shows for the given
	// viewer. A nil authorID means the viewer's own-profile route.
	ResolveProfile(ctx context.Context, viewer identity.Viewer, authorID *uuid.UUID) (*author.ProfileResolution, error)

	// UpsertAuthor creates or updates the viewer's author record.
	UpsertAuthor(ctx context.Context, viewer identity.Viewer, req *author.UpsertAuthorRequest) (*author.Author, error)

	ListAuthors(ctx context.Context, limit int) ([]author.Author, error)
}

type authorService struct {
	repo    author.Repository
	books   bookrepo.RepositoryInterface
	storage shared.Uploader
}

func NewAuthorService(repo author.Repository, books bookrepo.RepositoryInterface, storage shared.Uploader) Service {
	return &authorService{
		repo:    repo,
		books:   books,
		storage: storage,
	}
}

// ResolveProfile is a small state machine over (route target, viewer).
//
// Own-profile route: anonymous viewers are sent to login, known users
// without an author record are sent to onboarding, and users with one
// see their page as owner.
//
// Explicit-id route: an existing author displays for anyone (IsOwner
// when the viewer's account owns the record); an unknown id resolves
// to not-found rather than an error, because a dead profile link is an
// expected navigation outcome, not a fault.
func (s *authorService) ResolveProfile(ctx context.Context, viewer identity.Viewer, authorID *uuid.UUID) (*author.ProfileResolution, error) {
	if authorID == nil {
		if viewer.IsAnonymous() {
			return author.Redirect(author.ResolutionRedirectLogin), nil
		}

		a, err := s.repo.GetByUserID(ctx, viewer.ID)
		if err != nil {
			if errors.Is(err, author.ErrAuthorNotFound) {
				return author.Redirect(author.ResolutionRedirectJoinAuthor), nil
			}
			return nil, fmt.Errorf("failed to resolve own profile: %w", err)
		}

		return s.display(ctx, a, true)
	}

	a, err := s.repo.GetByID(ctx, *authorID)
	if err != nil {
		if errors.Is(err, author.ErrAuthorNotFound) {
			return author.Redirect(author.ResolutionRedirectNotFound), nil
		}
		return nil, fmt.Errorf("failed to resolve author %s: %w", authorID, err)
	}

	return s.display(ctx, a, !viewer.IsAnonymous() && viewer.ID == a.UserID)
}

// display attaches the author's books. A book listing failure degrades
// to an empty shelf instead of taking the whole page down.
func (s *authorService) display(ctx context.Context, a *author.Author, isOwner bool) (*author.ProfileResolution, error) {
	books, err := s.books.ListByAuthor(ctx, a.UserID)
	if err != nil {
		log.Warn().Err(err).Str("author_id", a.ID.String()).Msg("failed to list author books")
		books = []bookmodel.Book{}
	}

	return author.Display(a, books, isOwner), nil
}

func (s *authorService) UpsertAuthor(ctx context.Context, viewer identity.Viewer, req *author.UpsertAuthorRequest) (*author.Author, error) {
	if viewer.IsAnonymous() {
		return nil, author.ErrUnauthorized
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}

	var photoURL *string
	if !req.Photo.IsEmpty() {
		// A stable key per user: re-joining overwrites the old photo.
		key := fmt.Sprintf("%s%s.%s", shared.PrefixAvatars, viewer.ID, req.Photo.Ext())
		url, err := s.storage.Upload(ctx, key, req.Photo.Data, req.Photo.ContentType)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", author.ErrPhotoUploadFailed, err)
		}
		photoURL = &url
	}

	name := req.Name
	if name == "" {
		name = viewer.Email
	}

	a := &author.Author{
		UserID:   viewer.ID,
		Name:     name,
		Bio:      optional(req.Bio),
		PhotoURL: photoURL,
	}

	if err := s.repo.Upsert(ctx, a); err != nil {
		return nil, fmt.Errorf("failed to upsert author: %w", err)
	}

	return a, nil
}

func (s *authorService) ListAuthors(ctx context.Context, limit int) ([]author.Author, error) {
	return s.repo.List(ctx, limit)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
