package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"readerpeak-backend/internal/domains/identity"
	"readerpeak-backend/internal/shared/response"
)

type IdentityHandler struct {
	service identity.Service
}

func NewIdentityHandler(service identity.Service) *IdentityHandler {
	return &IdentityHandler{service: service}
}

// SignUp - POST /auth/signup
func (h *IdentityHandler) SignUp(c *gin.Context) {
	var req identity.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	session, err := h.service.SignUp(c.Request.Context(), req, c.ClientIP())
	if err != nil {
		h.writeAuthError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, session)
}

// SignIn - POST /auth/signin
func (h *IdentityHandler) SignIn(c *gin.Context) {
	var req identity.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	session, err := h.service.SignIn(c.Request.Context(), req)
	if err != nil {
		h.writeAuthError(c, err)
		return
	}

	response.Success(c, http.StatusOK, session)
}

// SignOut - POST /auth/signout
func (h *IdentityHandler) SignOut(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		response.Success(c, http.StatusOK, gin.H{"signed_out": true})
		return
	}

	if err := h.service.SignOut(c.Request.Context(), token); err != nil {
		log.Error().Err(err).Msg("sign-out failed")
		response.InternalServerError(c, "failed to sign out")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"signed_out": true})
}

// GetProfile - GET /users/me
func (h *IdentityHandler) GetProfile(c *gin.Context) {
	userID, ok := c.Get("userID")
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	profile, err := h.service.GetProfile(c.Request.Context(), userID.(uuid.UUID))
	if err != nil {
		if errors.Is(err, identity.ErrUserNotFound) {
			response.NotFound(c, "profile not found")
			return
		}
		log.Error().Err(err).Msg("profile fetch failed")
		response.InternalServerError(c, "failed to load profile")
		return
	}

	response.Success(c, http.StatusOK, profile)
}

func (h *IdentityHandler) writeAuthError(c *gin.Context, err error) {
	var vErrs validation.Errors
	switch {
	case errors.As(err, &vErrs):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid input", vErrs)
	case errors.Is(err, identity.ErrRateLimited):
		response.TooManyRequests(c, err.Error())
	case errors.Is(err, identity.ErrEmailAlreadyExists):
		response.Conflict(c, err.Error())
	case errors.Is(err, identity.ErrInvalidCredentials):
		response.Unauthorized(c, err.Error())
	default:
		log.Error().Err(err).Msg("auth operation failed")
		response.InternalServerError(c, "authentication service error")
	}
}

func bearerToken(c *gin.Context) string {
	parts := strings.Split(c.GetHeader("Authorization"), " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}
