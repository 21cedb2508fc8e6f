package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/egliseduberger/website/internal/auth/session"
	"github.com/egliseduberger/website/internal/views"
	"go.uber.org/zap"
)

type contextKey string

const sessionKey contextKey = "session"

// LoginPath is where requests without a signed-in session are sent
const LoginPath = "/login"

// SessionMiddleware loads the request's session and exposes it to handlers and views
// A request whose session cannot be loaded proceeds anonymously
func SessionMiddleware(manager *session.Manager, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := manager.Load(r)
			if err != nil {
				if !errors.Is(err, session.ErrSessionNotFound) {
					logger.Warn("failed to load session", zap.Error(err))
				}
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), sessionKey, sess)
			ctx = views.WithUser(ctx, sess.CurrentUser())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireSession redirects to the login page unless a user is signed in
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, _ := GetSession(r.Context())
		if !sess.Authenticated() {
			http.Redirect(w, r, LoginPath, http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetSession retrieves the session from context
func GetSession(ctx context.Context) (*session.Session, bool) {
	sess, ok := ctx.Value(sessionKey).(*session.Session)
	return sess, ok && sess != nil
}
