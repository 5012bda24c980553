package catalog

import (
	"readerpeak-backend/internal/domains/author"
	bookmodel "readerpeak-backend/internal/domains/book/model"
)

// Category pairs the stored display name with its URL slug.
type Category struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// HomeFeed is the landing page payload. Segments are independent:
// any of them may be empty when its source failed, the rest still
// carry data.
type HomeFeed struct {
	Featured []bookmodel.Book `json:"featured"`
	Latest   []bookmodel.Book `json:"latest"`
	Top      []bookmodel.Book `json:"top"`
	Authors  []author.Author  `json:"authors"`
}
