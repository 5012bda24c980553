package author

import "errors"

var (
	ErrAuthorNotFound = errors.New("author not found")

	// Write-path errors
	ErrUnauthorized      = errors.New("authentication required to manage an author profile")
	ErrPhotoUploadFailed = errors.New("failed to upload profile photo")
)
