// Package session stores authenticated sessions behind a small interface so
// the HTTP layer never talks to Redis directly. Tokens are opaque random
// identifiers handed to clients as bearer tokens.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a token is unknown or expired.
var ErrNotFound = errors.New("session introuvable")

// Session carries the identity attached to a token.
type Session struct {
	UtilisateurID uint      `json:"utilisateur_id"`
	Username      string    `json:"username"`
	Role          string    `json:"role"`
	ExpireA       time.Time `json:"expire_a"`
}

// Store is the session backend. Implementations must treat expired entries
// as absent.
type Store interface {
	// Set registers a session under a fresh token and returns the token.
	Set(ctx context.Context, s Session, ttl time.Duration) (string, error)
	Get(ctx context.Context, token string) (*Session, error)
	// Refresh slides the expiry of an existing session.
	Refresh(ctx context.Context, token string, ttl time.Duration) error
	Delete(ctx context.Context, token string) error
}

// NewToken mints an opaque session token.
func NewToken() string {
	return uuid.NewString()
}
