package api

import (
	"encoding/json/v2"
	"io"
	"net/http"
	"time"

	"github.com/nabdhapp/nabdh-server/internal/domain"
	domainerrors "github.com/nabdhapp/nabdh-server/internal/errors"
)

// maxBodySize caps request bodies; every write endpoint takes a small
// JSON payload.
const maxBodySize = 64 << 10

// decodeBody parses a JSON request body into dst.
func decodeBody(r *http.Request, dst any) error {
	body := io.LimitReader(r.Body, maxBodySize)
	if err := json.UnmarshalRead(body, dst); err != nil {
		return domainerrors.Validation("invalid request body")
	}
	return nil
}

// setSessionCookie attaches the session cookie to the response.
func (s *Server) setSessionCookie(w http.ResponseWriter, session *domain.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.cfg.Auth.CookieName,
		Value:    session.ID,
		Path:     "/",
		Expires:  session.ExpiresAt,
		MaxAge:   int(time.Until(session.ExpiresAt).Seconds()),
		HttpOnly: true,
		Secure:   s.cfg.Auth.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearSessionCookie expires the session cookie.
func (s *Server) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.cfg.Auth.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.cfg.Auth.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
