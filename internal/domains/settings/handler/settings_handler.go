package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"readerpeak-backend/internal/domains/settings"
	"readerpeak-backend/internal/domains/settings/service"
	"readerpeak-backend/internal/shared/response"
)

type SettingsHandler struct {
	service service.Service
}

func NewSettingsHandler(service service.Service) *SettingsHandler {
	return &SettingsHandler{service: service}
}

type setThemeRequest struct {
	Theme string `json:"theme"`
}

// GetTheme - GET /settings/theme
func (h *SettingsHandler) GetTheme(c *gin.Context) {
	userID, ok := c.Get("userID")
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	theme, err := h.service.ThemeFor(c.Request.Context(), userID.(uuid.UUID))
	if err != nil {
		log.Error().Err(err).Msg("theme lookup failed")
		response.InternalServerError(c, "failed to load theme")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"theme": theme})
}

// SetTheme - PUT /settings/theme
func (h *SettingsHandler) SetTheme(c *gin.Context) {
	userID, ok := c.Get("userID")
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	var req setThemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	if err := h.service.SetTheme(c.Request.Context(), userID.(uuid.UUID), settings.Theme(req.Theme)); err != nil {
		if errors.Is(err, settings.ErrInvalidTheme) {
			response.BadRequest(c, "unknown theme")
			return
		}
		log.Error().Err(err).Msg("theme update failed")
		response.InternalServerError(c, "failed to update theme")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"theme": req.Theme})
}
