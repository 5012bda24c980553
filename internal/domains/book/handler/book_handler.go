package handler

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"readerpeak-backend/internal/domains/book/model"
	"readerpeak-backend/internal/domains/book/service"
	"readerpeak-backend/internal/shared"
	"readerpeak-backend/internal/shared/middleware"
	"readerpeak-backend/internal/shared/response"
)

type BookHandler struct {
	service service.Service
}

func NewBookHandler(service service.Service) *BookHandler {
	return &BookHandler{service: service}
}

// PublishBook - POST /books (multipart form)
func (h *BookHandler) PublishBook(c *gin.Context) {
	req := &model.PublishBookRequest{
		Title:    c.PostForm("title"),
		Category: c.PostForm("category"),
		Summary:  c.PostForm("summary"),
		Content:  c.PostForm("content"),
		Tags:     c.PostForm("tags"),
	}

	doc, err := readFormFile(c, "document")
	if err != nil {
		response.BadRequest(c, "could not read document file")
		return
	}
	req.Document = doc

	cover, err := readFormFile(c, "cover")
	if err != nil {
		response.BadRequest(c, "could not read cover file")
		return
	}
	req.Cover = cover

	book, err := h.service.PublishBook(c.Request.Context(), middleware.ViewerFrom(c), req)
	if err != nil {
		var vErrs validation.Errors
		if errors.As(err, &vErrs) {
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid input", vErrs)
			return
		}
		model.HandleBookError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, book)
}

// GetBook - GET /books/:id
func (h *BookHandler) GetBook(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid book id")
		return
	}

	detail, err := h.service.GetBook(c.Request.Context(), id)
	if err != nil {
		model.HandleBookError(c, err)
		return
	}

	response.Success(c, http.StatusOK, detail)
}

// readFormFile loads an optional multipart file into memory. A missing
// file is not an error here; the service decides which files are
// mandatory.
func readFormFile(c *gin.Context, field string) (shared.FileUpload, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return shared.FileUpload{}, nil
		}
		return shared.FileUpload{}, err
	}

	return loadUpload(fileHeader)
}

func loadUpload(fh *multipart.FileHeader) (shared.FileUpload, error) {
	f, err := fh.Open()
	if err != nil {
		return shared.FileUpload{}, err
	}
	defer f.Close()

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
