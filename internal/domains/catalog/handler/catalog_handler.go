package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"readerpeak-backend/internal/domains/catalog/service"
	"readerpeak-backend/internal/shared/response"
)

type CatalogHandler struct {
	service service.Service
}

func NewCatalogHandler(service service.Service) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// GetHomeFeed - GET /home
func (h *CatalogHandler) GetHomeFeed(c *gin.Context) {
	feed, err := h.service.AssembleHomeFeed(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("home feed assembly failed")
		response.InternalServerError(c, "failed to assemble home feed")
		return
	}

	response.Success(c, http.StatusOK, feed)
}

// ListCategories - GET /categories
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.service.ListCategories(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("category listing failed")
		response.InternalServerError(c, "failed to list categories")
		return
	}

	response.Success(c, http.StatusOK, categories)
}

// ListByCategory - GET /categories/:slug/books
func (h *CatalogHandler) ListByCategory(c *gin.Context) {
	books, err := h.service.ListByCategorySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		log.Error().Err(err).Str("slug", c.Param("slug")).Msg("category books listing failed")
		response.InternalServerError(c, "failed to list category books")
		return
	}

	response.Success(c, http.StatusOK, books)
}
