// Package session keeps server-side login sessions keyed by an opaque id carried in a signed cookie
package session

import (
	"context"
	"errors"
	"time"

	"github.com/egliseduberger/website/internal/models"
)

// ErrSessionNotFound is returned when a session id is unknown or its entry has expired
var ErrSessionNotFound = errors.New("session not found")

// Session is the server-side record of a signed-in user
type Session struct {
	ID        string    `json:"id"`
	UserID    int       `json:"user_id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Authenticated reports whether the session carries a user id
func (s *Session) Authenticated() bool {
	return s != nil && s.UserID != 0
}

// CurrentUser returns the view identity of the session, or nil when nobody is signed in
func (s *Session) CurrentUser() *models.CurrentUser {
	if !s.Authenticated() {
		return nil
	}
	return &models.CurrentUser{
		ID:       s.UserID,
		Username: s.Username,
		Role:     s.Role,
	}
}

// Store defines the interface for session storage backends
type Store interface {
	// Get retrieves a live session by its ID
	//
	// "id" parameter is the opaque session identifier taken from the cookie.
	//
	// If the session does not exist or has expired, ErrSessionNotFound is returned.
	Get(ctx context.Context, id string) (*Session, error)
	// Set stores a session which expires after the given time-to-live
	//
	// "session" parameter is stored under session.ID; its ExpiresAt is set by the store.
	// "ttl" parameter is the lifetime of the entry.
	//
	// If some error occurs during data write, the error will be returned.
	Set(ctx context.Context, session *Session, ttl time.Duration) error
	// Destroy removes a session entirely
	//
	// "id" parameter is the session identifier to remove. Removing an unknown id is not an error.
	//
	// If some error occurs during data delete, the error will be returned.
	Destroy(ctx context.Context, id string) error
}
