package author

import (
	"time"

	"github.com/google/uuid"

	bookmodel "readerpeak-backend/internal/domains/book/model"
)

// Author is a publishing identity, at most one per platform user.
// UserID is the owning account and the canonical foreign key for
// everything author-related, including Book.AuthorID.
type Author struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Name      string    `json:"name" db:"name"`
	Bio       *string   `json:"bio,omitempty" db:"bio"`
	PhotoURL  *string   `json:"photo_url,omitempty" db:"photo_url"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// ResolutionKind tags the outcome of a profile resolution.
type ResolutionKind string

const (
	// ResolutionDisplay carries the author page payload.
	ResolutionDisplay ResolutionKind = "display"

	// ResolutionRedirectLogin: own-profile route, anonymous viewer.
	ResolutionRedirectLogin ResolutionKind = "redirect_login"

	// ResolutionRedirectJoinAuthor: own-profile route, authenticated
	// viewer without an author record yet (first-time onboarding).
	ResolutionRedirectJoinAuthor ResolutionKind = "redirect_join_author"

	// ResolutionRedirectNotFound: explicit author id that does not exist.
	ResolutionRedirectNotFound ResolutionKind = "redirect_not_found"
)

// ProfileResolution is the tagged result of ResolveProfile. The caller
// owns the redirect policy; resolution logic stays testable on its own.
type ProfileResolution struct {
	Kind    ResolutionKind   `json:"kind"`
	Author  *Author          `json:"author,omitempty"`
	Books   []bookmodel.Book `json:"books,omitempty"`
	IsOwner bool             `json:"is_owner"`
}

func Display(a *Author, books []bookmodel.Book, isOwner bool) *ProfileResolution {
	return &ProfileResolution{
		Kind:    ResolutionDisplay,
		Author:  a,
		Books:   books,
		IsOwner: isOwner,
	}
}

func Redirect(kind ResolutionKind) *ProfileResolution {
	return &ProfileResolution{Kind: kind}
}
