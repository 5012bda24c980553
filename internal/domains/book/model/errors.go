package model

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"readerpeak-backend/internal/shared/response"
)

var (
	ErrBookNotFound     = errors.New("book not found")
	ErrUnauthorized     = errors.New("authentication required to publish")
	ErrDocumentRequired = errors.New("a document file is required")
	ErrUploadFailed     = errors.New("failed to upload asset to storage")
	ErrPersistence      = errors.New("failed to persist book record")
)

var bookErrorMap = map[error]struct {
	Status  int
	Code    string
	Message string
}{
	ErrUnauthorized: {
		Status:  http.StatusUnauthorized,
		Code:    "UNAUTHORIZED",
		Message: "You must be logged in to publish a book",
	},
	ErrDocumentRequired: {
		Status:  http.StatusBadRequest,
		Code:    "VALIDATION_ERROR",
		Message: "Please attach a document file for the book",
	},
	ErrUploadFailed: {
		Status:  http.StatusBadGateway,
		Code:    "UPLOAD_ERROR",
		Message: "Asset upload failed, nothing was published",
	},
	ErrPersistence: {
		Status:  http.StatusInternalServerError,
		Code:    "PERSISTENCE_ERROR",
		Message: "Could not save the book record",
	},
	ErrBookNotFound: {
		Status:  http.StatusNotFound,
		Code:    "NOT_FOUND",
		Message: "The requested book does not exist",
	},
}

// HandleBookError writes the mapped HTTP error and reports whether err
// was handled.
func HandleBookError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	for sentinel, cfg := range bookErrorMap {
		if errors.Is(err, sentinel) {
			response.ErrorResponse(c, cfg.Status, cfg.Code, cfg.Message)
			return true
		}
	}

	log.Error().Err(err).Msg("unhandled book error")
	response.InternalServerError(c, "internal server error")
	return true
}
