package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"readerpeak-backend/internal/domains/identity"
	"readerpeak-backend/pkg/cache"
	"readerpeak-backend/pkg/jwt"
)

const (
	signupRateKeyPrefix = "signup:rl:"
	signupRateWindow    = 10 * time.Minute
	signupRateMax       = 5

	bcryptCost = 12
)

type identityService struct {
	repo       identity.Repository
	tokens     identity.TokenStore
	jwtManager *jwt.Manager
	limiter    cache.Cache
}

// NewIdentityService wires the identity gateway.
func NewIdentityService(
	repo identity.Repository,
	tokens identity.TokenStore,
	jwtManager *jwt.Manager,
	limiter cache.Cache,
) identity.Service {
	return &identityService{
		repo:       repo,
		tokens:     tokens,
		jwtManager: jwtManager,
		limiter:    limiter,
	}
}

// CurrentViewer resolves a session token to a viewer. Every failure
// path returns the anonymous viewer: callers that only need a
// best-effort identity degrade to "logged out" instead of erroring.
func (s *identityService) CurrentViewer(ctx context.Context, token string) identity.Viewer {
	if token == "" {
		return identity.Anonymous()
	}

	claims, err := s.jwtManager.VerifySessionToken(token)
	if err != nil {
		return identity.Anonymous()
	}

	if revoked, err := s.tokens.IsRevoked(ctx, claims.ID); err == nil && revoked {
		return identity.Anonymous()
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return identity.Anonymous()
	}

	return identity.Viewer{ID: userID, Email: claims.Email}
}

// SignUp creates an account and returns a live session.
func (s *identityService) SignUp(ctx context.Context, req identity.SignUpRequest, clientIP string) (*identity.Session, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Fixed-window throttle per client address. Limiter outages fail
	// open: a broken cache must not lock out signups.
	if err := s.checkSignupRate(ctx, clientIP); err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check email exists: %w", err)
	}
	if exists {
		return nil, identity.ErrEmailAlreadyExists
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	newUser := &identity.User{
		ID:           uuid.New(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(passwordHash),
	}

	// Upsert keyed by id: a duplicate submission updates rather than
	// duplicating the row.
	if err := s.repo.Upsert(ctx, newUser); err != nil {
		return nil, err
	}

	token, err := s.jwtManager.GenerateSessionToken(newUser.ID.String(), newUser.Email)
	if err != nil {
		return nil, fmt.Errorf("generate session token: %w", err)
	}

	return &identity.Session{Token: token, User: *newUser}, nil
}

// SignIn authenticates a user and returns a session.
func (s *identityService) SignIn(ctx context.Context, req identity.SignInRequest) (*identity.Session, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		// Do not reveal whether the email exists.
		return nil, identity.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, identity.ErrInvalidCredentials
	}

	token, err := s.jwtManager.GenerateSessionToken(u.ID.String(), u.Email)
	if err != nil {
		return nil, fmt.Errorf("generate session token: %w", err)
	}

	return &identity.Session{Token: token, User: *u}, nil
}

// SignOut revokes the session token until its natural expiry.
// Best-effort: an already-invalid token is not an error.
func (s *identityService) SignOut(ctx context.Context, token string) error {
	claims, err := s.jwtManager.VerifySessionToken(token)
	if err != nil {
		return nil
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}

	if err := s.tokens.Revoke(ctx, claims.ID, ttl); err != nil {
		return fmt.Errorf("revoke session token: %w", err)
	}
	return nil
}

func (s *identityService) GetProfile(ctx context.Context, userID uuid.UUID) (*identity.User, error) {
	return s.repo.GetByID(ctx, userID)
}

func (s *identityService) checkSignupRate(ctx context.Context, clientIP string) error {
	if clientIP == "" {
		return nil
	}

	key := signupRateKeyPrefix + clientIP
	count, err := s.limiter.Increment(ctx, key)
	if err != nil {
		log.Warn().Err(err).Msg("signup rate limiter unavailable")
		return nil
	}
	if count == 1 {
		if err := s.limiter.Expire(ctx, key, signupRateWindow); err != nil {
			log.Warn().Err(err).Msg("signup rate limiter expire failed")
		}
	}
	if count > signupRateMax {
		return identity.ErrRateLimited
	}
	return nil
}
