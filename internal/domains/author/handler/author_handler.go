package handler

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"readerpeak-backend/internal/domains/author"
	"readerpeak-backend/internal/domains/author/service"
	"readerpeak-backend/internal/shared"
	"readerpeak-backend/internal/shared/middleware"
	"readerpeak-backend/internal/shared/response"
)

const defaultAuthorListLimit = 50

type AuthorHandler struct {
	service service.Service
}

func NewAuthorHandler(service service.Service) *AuthorHandler {
	return &AuthorHandler{service: service}
}

// GetMyProfile - GET /authors/me
// The client follows the returned kind: display renders the page, the
// redirect kinds navigate to login or onboarding.
func (h *AuthorHandler) GetMyProfile(c *gin.Context) {
	res, err := h.service.ResolveProfile(c.Request.Context(), middleware.ViewerFrom(c), nil)
	if err != nil {
		log.Error().Err(err).Msg("profile resolution failed")
		response.InternalServerError(c, "failed to resolve profile")
		return
	}

	response.Success(c, http.StatusOK, res)
}

// GetProfile - GET /authors/:id
func (h *AuthorHandler) GetProfile(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid author id")
		return
	}

	res, err := h.service.ResolveProfile(c.Request.Context(), middleware.ViewerFrom(c), &id)
	if err != nil {
		log.Error().Err(err).Str("author_id", id.String()).Msg("profile resolution failed")
		response.InternalServerError(c, "failed to resolve profile")
		return
	}

	response.Success(c, http.StatusOK, res)
}

// UpsertAuthor - POST /authors (multipart form)
func (h *AuthorHandler) UpsertAuthor(c *gin.Context) {
	req := &author.UpsertAuthorRequest{
		Name: c.PostForm("name"),
		Bio:  c.PostForm("bio"),
	}

	photo, err := readFormFile(c, "photo")
	if err != nil {
		response.BadRequest(c, "could not read photo file")
		return
	}
	req.Photo = photo

	a, err := h.service.UpsertAuthor(c.Request.Context(), middleware.ViewerFrom(c), req)
	if err != nil {
		h.writeAuthorError(c, err)
		return
	}

	response.Success(c, http.StatusOK, a)
}

// ListAuthors - GET /authors
func (h *AuthorHandler) ListAuthors(c *gin.Context) {
	limit := defaultAuthorListLimit
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 200 {
			limit = parsed
		}
	}

	authors, err := h.service.ListAuthors(c.Request.Context(), limit)
	if err != nil {
		log.Error().Err(err).Msg("author listing failed")
		response.InternalServerError(c, "failed to list authors")
		return
	}

	response.Success(c, http.StatusOK, authors)
}

func (h *AuthorHandler) writeAuthorError(c *gin.Context, err error) {
	var vErrs validation.Errors
	switch {
	case errors.As(err, &vErrs):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid input", vErrs)
	case errors.Is(err, author.ErrUnauthorized):
		response.Unauthorized(c, err.Error())
	case errors.Is(err, author.ErrPhotoUploadFailed):
		response.ErrorResponse(c, http.StatusBadGateway, "UPLOAD_ERROR", "photo upload failed, profile unchanged")
	default:
		log.Error().Err(err).Msg("author operation failed")
		response.InternalServerError(c, "author service error")
	}
}

func readFormFile(c *gin.Context, field string) (shared.FileUpload, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return shared.FileUpload{}, nil
		}
		return shared.FileUpload{}, err
	}

	f, err := fileHeader.Open()
	if err != nil {
		return shared.FileUpload{}, err
	}
	defer f.Close()

	return buildUpload(fileHeader, f)
}

func buildUpload(fh *multipart.FileHeader, f multipart.File) (shared.FileUpload, error) {
	data, err := io.ReadAll(f)
	if err != nil {
		return shared.FileUpload{}, err
	}

	return shared.FileUpload{
		Filename:    fh.Filename,
		Data:        data,
		ContentType: fh.Header.Get("Content-Type"),
	}, nil
}
