package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"readerpeak-backend/internal/domains/identity"
	"readerpeak-backend/internal/shared/response"
	"readerpeak-backend/pkg/jwt"
)

// AuthRequired rejects requests without a valid session token.
// On success the resolved viewer is stored in the gin context.
func AuthRequired(jwtManager *jwt.Manager, tokens identity.TokenStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		viewer, ok := resolveViewer(c, jwtManager, tokens)
		if !ok {
			response.Unauthorized(c, "valid session token required")
			c.Abort()
			return
		}

		setViewer(c, viewer)
		c.Next()
	}
}

// AuthOptional resolves the viewer when a valid token is present and
// degrades to anonymous otherwise. It never rejects the request: read
// paths that only need a best-effort identity must not fail closed.
func AuthOptional(jwtManager *jwt.Manager, tokens identity.TokenStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if viewer, ok := resolveViewer(c, jwtManager, tokens); ok {
			setViewer(c, viewer)
		}
		c.Next()
	}
}

func resolveViewer(c *gin.Context, jwtManager *jwt.Manager, tokens identity.TokenStore) (identity.Viewer, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return identity.Anonymous(), false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return identity.Anonymous(), false
	}

	claims, err := jwtManager.VerifySessionToken(parts[1])
	if err != nil {
		return identity.Anonymous(), false
	}

	// Signed-out tokens are denylisted until they expire. A token store
	// failure counts as "not revoked": identity is best-effort here.
	if tokens != nil {
		if revoked, err := tokens.IsRevoked(c.Request.Context(), claims.ID); err == nil && revoked {
			return identity.Anonymous(), false
		}
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return identity.Anonymous(), false
	}

	return identity.Viewer{ID: userID, Email: claims.Email}, true
}

func setViewer(c *gin.Context, viewer identity.Viewer) {
	c.Set("viewer", viewer)
	c.Set("userID", viewer.ID)
}

// ViewerFrom extracts the resolved viewer from the gin context,
// returning the anonymous viewer when auth middleware did not run or
// did not resolve one.
func ViewerFrom(c *gin.Context) identity.Viewer {
	if v, ok := c.Get("viewer"); ok {
		if viewer, ok := v.(identity.Viewer); ok {
			return viewer
		}
	}
	return identity.Anonymous()
}
