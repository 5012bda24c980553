package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"readerpeak-backend/internal/shared"
)

// PublishBookRequest is the upload form. Document is mandatory; the
// service enforces it so the rule also holds for non-HTTP callers.
type PublishBookRequest struct {
	Title    string
	Category string
	Summary  string
	Content  string
	Tags     string // comma-separated input, parsed by ParseTags

	Document shared.FileUpload
	Cover    shared.FileUpload
}

func (r PublishBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 255),
		),
		validation.Field(&r.Category,
			validation.Required.Error("category is required"),
			validation.Length(1, 100),
		),
	)
}
