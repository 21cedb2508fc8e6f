package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/egliseduberger/website/internal/models"
	"github.com/google/uuid"
)

// CookieName is the name of the session cookie
const CookieName = "eglise.sid"

// tokenSigner is implemented by CookieSigner
type tokenSigner interface {
	Sign(sessionID string, expiresAt time.Time) (string, error)
	Verify(tokenString string) (string, error)
}

// Manager ties the session store to the signed session cookie
type Manager struct {
	store  Store
	signer tokenSigner
	ttl    time.Duration
	secure bool
}

// NewManager creates a new session manager
// "secure" sets the Secure attribute on the cookie and should be true in production
func NewManager(store Store, signer *CookieSigner, ttl time.Duration, secure bool) *Manager {
	return &Manager{
		store:  store,
		signer: signer,
		ttl:    ttl,
		secure: secure,
	}
}

// TTL returns the lifetime of issued sessions
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// sessionID extracts the verified session id from the request cookie
func (m *Manager) sessionID(r *http.Request) (string, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return "", ErrSessionNotFound
	}
	return m.signer.Verify(cookie.Value)
}

// Load returns the session attached to the request
// A missing cookie or unknown session yields ErrSessionNotFound; a forged cookie or store failure yields another error
func (m *Manager) Load(r *http.Request) (*Session, error) {
	id, err := m.sessionID(r)
	if err != nil {
		return nil, err
	}
	return m.store.Get(r.Context(), id)
}

// Issue starts a new session for the user
// Any session the request already carries is destroyed first and a fresh id is always generated
func (m *Manager) Issue(w http.ResponseWriter, r *http.Request, user *models.User) (*Session, error) {
	if oldID, err := m.sessionID(r); err == nil {
		if err := m.store.Destroy(r.Context(), oldID); err != nil {
			return nil, fmt.Errorf("failed to destroy previous session: %w", err)
		}
	}

	sess := &Session{
		ID:       uuid.NewString(),
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	}
	if err := m.store.Set(r.Context(), sess, m.ttl); err != nil {
		return nil, err
	}

	token, err := m.signer.Sign(sess.ID, sess.ExpiresAt)
	if err != nil {
		// The stored session has no cookie pointing at it; drop it so it cannot linger until expiry
		if destroyErr := m.store.Destroy(context.WithoutCancel(r.Context()), sess.ID); destroyErr != nil {
			return nil, errors.Join(err, fmt.Errorf("failed to discard unsigned session: %w", destroyErr))
		}
		return nil, err
	}

	http.SetCookie(w, m.cookie(token, int(m.ttl.Seconds()), sess.ExpiresAt))
	return sess, nil
}

// Destroy removes the request's session and clears the cookie
// When the store fails the cookie is left in place and the error is returned
func (m *Manager) Destroy(w http.ResponseWriter, r *http.Request) error {
	if id, err := m.sessionID(r); err == nil {
		if err := m.store.Destroy(r.Context(), id); err != nil {
			return err
		}
	}

	http.SetCookie(w, m.cookie("", -1, time.Unix(0, 0)))
	return nil
}

func (m *Manager) cookie(value string, maxAge int, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		Expires:  expires,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
