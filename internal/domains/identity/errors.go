package identity

import "errors"

var (
	// Not Found
	ErrUserNotFound = errors.New("user not found")

	// Conflict
	ErrEmailAlreadyExists = errors.New("email already registered")

	// Authentication
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthorized       = errors.New("authentication required")

	// Throttling - distinguished from validation errors so callers can
	// tell "slow down" apart from "fix your input"
	ErrRateLimited = errors.New("too many signup attempts, please try again later")
)
