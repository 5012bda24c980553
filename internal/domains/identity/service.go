package identity

import (
	"context"

	"github.com/google/uuid"
)

// Service is the identity gateway: who is asking, and the account
// operations behind sign-up / sign-in / sign-out.
type Service interface {
	// CurrentViewer resolves a raw session token to a viewer.
	// Side-effect-free and safe to call concurrently; any failure
	// (bad token, provider unreachable) degrades to anonymous rather
	// than surfacing an error to best-effort callers.
	CurrentViewer(ctx context.Context, token string) Viewer

	SignUp(ctx context.Context, req SignUpRequest, clientIP string) (*Session, error)
	SignIn(ctx context.Context, req SignInRequest) (*Session, error)
	SignOut(ctx context.Context, token string) error

	GetProfile(ctx context.Context, userID uuid.UUID) (*User, error)
}
