package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/egliseduberger/website/internal/auth/session"
	"github.com/egliseduberger/website/internal/models"
	"github.com/egliseduberger/website/internal/services"
	"github.com/egliseduberger/website/internal/views"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// loginFailedMessage is shown for every failed login, whatever the cause
const loginFailedMessage = "Nom d'utilisateur ou mot de passe incorrect"

// AuthService is the interface that wraps methods for administrator authentication
type AuthService interface {
	// Method Login checks a username and password pair.
	//
	// "username" parameter is matched exactly; "password" parameter is compared against the stored bcrypt hash.
	//
	// If the credentials do not match, services.ErrInvalidCredentials will be returned together with "nil" value.
	// If some error occurs during data retrieve, the error will be returned together with "nil" value.
	Login(ctx context.Context, username, password string) (*models.User, error)
}

// SessionManager is the interface that wraps the session lifecycle used by login and logout
type SessionManager interface {
	// Method Issue starts a new session for the user under a freshly generated identifier and sets the cookie.
	//
	// Any session the request already carries is destroyed first.
	// If some error occurs during session write, the error will be returned together with "nil" value.
	Issue(w http.ResponseWriter, r *http.Request, user *models.User) (*session.Session, error)
	// Method Destroy removes the request's session and clears the cookie.
	//
	// If the store fails, the cookie is left untouched and the error will be returned.
	Destroy(w http.ResponseWriter, r *http.Request) error
}

// AuthHandler handles HTTP requests for login and logout
type AuthHandler struct {
	BaseHandler
	service  AuthService
	sessions SessionManager
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(svc AuthService, sessions SessionManager, renderer views.Renderer, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: BaseHandler{logger: logger, renderer: renderer},
		service:     svc,
		sessions:    sessions,
	}
}

// RegisterRoutes registers all auth handler routes
// "loginLimiter" wraps the credential check, e.g. with a rate limit; nil leaves it unwrapped
func (h *AuthHandler) RegisterRoutes(r chi.Router, loginLimiter func(http.Handler) http.Handler) {
	r.Get("/login", h.LoginPage)
	r.Group(func(r chi.Router) {
		if loginLimiter != nil {
			r.Use(loginLimiter)
		}
		r.Post("/auth/login", h.Login)
	})
	r.Get("/logout", h.Logout)
	r.Post("/logout", h.Logout)
}

// LoginPage handles GET /login
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "login", "login", views.Data{"error": ""})
}

// Login handles POST /auth/login
//
// On success a new session is issued and the client is redirected to the home page.
// Every failure renders the login page with the same message and no session change.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := h.decode(r, &req); err != nil {
		h.logger.Warn("invalid login request", zap.Error(err))
		h.loginFailed(w, r, http.StatusBadRequest)
		return
	}

	user, err := h.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if !errors.Is(err, services.ErrInvalidCredentials) {
			h.logger.Error("failed to log in", zap.Error(err))
		}
		h.loginFailed(w, r, http.StatusUnauthorized)
		return
	}

	if _, err := h.sessions.Issue(w, r, user); err != nil {
		h.logger.Error("failed to issue session", zap.Int("user_id", user.ID), zap.Error(err))
		h.loginFailed(w, r, http.StatusInternalServerError)
		return
	}

	h.logger.Info("administrator logged in", zap.Int("user_id", user.ID))
	h.redirect(w, r, "/")
}

// Logout handles GET and POST /logout
// The client is redirected home even when the session could not be destroyed
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Destroy(w, r); err != nil {
		h.logger.Error("failed to destroy session", zap.Error(err))
	}
	h.redirect(w, r, "/")
}

func (h *AuthHandler) loginFailed(w http.ResponseWriter, r *http.Request, status int) {
	h.render(w, r, status, "login", "login", views.Data{"error": loginFailedMessage})
}
