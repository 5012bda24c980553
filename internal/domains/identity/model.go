package identity

import (
	"time"

	"github.com/google/uuid"
)

// Viewer is the resolved identity of the caller. The zero ID means
// anonymous; every ownership check in the system keys off this value.
type Viewer struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email,omitempty"`
}

// Anonymous returns the logged-out viewer.
func Anonymous() Viewer {
	return Viewer{}
}

// IsAnonymous reports whether no user is behind this viewer.
func (v Viewer) IsAnonymous() bool {
	return v.ID == uuid.Nil
}

// User is a platform account. Created on signup, mutated via settings,
// never deleted.
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Bio          *string   `json:"bio,omitempty" db:"bio"`
	AvatarURL    *string   `json:"avatar_url,omitempty" db:"avatar_url"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// Session is the result of a successful sign-in or sign-up.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
