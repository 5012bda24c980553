package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"readerpeak-backend/internal/domains/search"
	"readerpeak-backend/internal/domains/search/service"
	"readerpeak-backend/internal/shared/response"
)

type SearchHandler struct {
	service service.Service
}

func NewSearchHandler(service service.Service) *SearchHandler {
	return &SearchHandler{service: service}
}

// Search - GET /search?q=
// A request without a query is a valid empty results page, not an
// error.
func (h *SearchHandler) Search(c *gin.Context) {
	query := c.Query("q")

	results, err := h.service.Search(c.Request.Context(), query)
	if err != nil {
		log.Error().Err(err).Str("query", query).Msg("search failed")
		response.InternalServerError(c, "search failed")
		return
	}

	response.Success(c, http.StatusOK, search.NewResultsState(query, results))
}

type navigateRequest struct {
	Query string `json:"query"`
}

// Navigate - POST /search
// The results-page navigation: the submitted query is echoed back with
// its full result set so the client renders from one payload.
func (h *SearchHandler) Navigate(c *gin.Context) {
	var req navigateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	results, err := h.service.Search(c.Request.Context(), req.Query)
	if err != nil {
		log.Error().Err(err).Str("query", req.Query).Msg("search failed")
		response.InternalServerError(c, "search failed")
		return
	}

	response.Success(c, http.StatusOK, search.NewResultsState(req.Query, results))
}

// Suggest - GET /search/suggest?q=
func (h *SearchHandler) Suggest(c *gin.Context) {
	query := c.Query("q")

	results, err := h.service.Suggest(c.Request.Context(), query)
	if err != nil {
		log.Error().Err(err).Str("query", query).Msg("suggestion lookup failed")
		response.InternalServerError(c, "suggestion lookup failed")
		return
	}

	response.Success(c, http.StatusOK, search.NewResultsState(query, results))
}
