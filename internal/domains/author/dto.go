package author

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"readerpeak-backend/internal/shared"
)

// UpsertAuthorRequest is the "join as author" form. Name may be blank;
// the service falls back to the viewer's account email.
type UpsertAuthorRequest struct {
	Name  string
	Bio   string
	Photo shared.FileUpload
}

func (r UpsertAuthorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Length(0, 255)),
		validation.Field(&r.Bio, validation.Length(0, 4000)),
	)
}
