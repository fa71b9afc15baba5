package api

import (
	"context"
	"net/http"

	"github.com/nabdhapp/nabdh-server/internal/http/response"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	contextKeyUserID    contextKey = "user_id"
	contextKeySessionID contextKey = "session_id"
)

// sessionCookie reads the session ID from the auth cookie. Returns ""
// when the cookie is absent.
func (s *Server) sessionCookie(r *http.Request) string {
	cookie, err := r.Cookie(s.cfg.Auth.CookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// requireAuth validates the session cookie and attaches user context.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := s.sessionCookie(r)
		if sessionID == "" {
			response.Unauthorized(w, "Not logged in", s.logger)
			return
		}

		user, err := s.authService.VerifySession(r.Context(), sessionID)
		if err != nil {
			s.clearSessionCookie(w)
			response.Unauthorized(w, "Not logged in", s.logger)
			return
		}

		ctx := context.WithValue(r.Context(), contextKeyUserID, user.ID)
		ctx = context.WithValue(ctx, contextKeySessionID, sessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// limitAuth throttles credential endpoints per client IP.
func (s *Server) limitAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.authLimiter != nil && !s.authLimiter.Allow(r.RemoteAddr) {
			response.TooManyRequests(w, "Too many attempts, slow down", s.logger)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// getUserID extracts the authenticated user ID from request context.
// Returns empty string if not authenticated.
func getUserID(ctx context.Context) string {
	if userID, ok := ctx.Value(contextKeyUserID).(string); ok {
		return userID
	}
	return ""
}

// getSessionID extracts the session ID from request context.
func getSessionID(ctx context.Context) string {
	if sessionID, ok := ctx.Value(contextKeySessionID).(string); ok {
		return sessionID
	}
	return ""
}
