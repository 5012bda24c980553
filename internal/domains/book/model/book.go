package model

import (
	"time"

	"github.com/google/uuid"
)

// Book is one published work. AuthorID references the owning *user*
// (the same key authors.user_id carries), not the authors row id.
// A book always has a downloadable document; readable content is
// optional.
type Book struct {
	ID        uuid.UUID `json:"id" db:"id"`
	AuthorID  uuid.UUID `json:"author_id" db:"author_id"`
	Title     string    `json:"title" db:"title"`
	Category  string    `json:"category" db:"category"`
	Summary   *string   `json:"summary,omitempty" db:"summary"`
	Content   *string   `json:"content,omitempty" db:"content"`
	PDFURL    string    `json:"pdf_url" db:"pdf_url"`
	CoverURL  *string   `json:"cover_url,omitempty" db:"cover_url"`
	Tags      []string  `json:"tags,omitempty" db:"tags"`
	Featured  bool      `json:"featured" db:"featured"`
	Top       bool      `json:"top" db:"top"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// BookDetail is the reading-view payload: the book plus its author's
// display name.
type BookDetail struct {
	Book
	AuthorName string `json:"author_name,omitempty"`
}
