package api

import (
	"net/http"

	"github.com/nabdhapp/nabdh-server/internal/http/response"
	"github.com/nabdhapp/nabdh-server/internal/service"
)

// handleHealthCheck responds to liveness probes.
func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	response.Success(w, map[string]string{"status": "ok"}, s.logger)
}

// handleSignup creates an account and logs the user in.
func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req service.SignupRequest
	if err := decodeBody(r, &req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	resp, err := s.authService.Signup(r.Context(), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	s.setSessionCookie(w, resp.Session)
	response.Created(w, resp.User, s.logger)
}

// handleLogin verifies credentials and starts a session.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if err := decodeBody(r, &req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	resp, err := s.authService.Login(r.Context(), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	s.setSessionCookie(w, resp.Session)
	response.Success(w, resp.User, s.logger)
}

// handleLogout ends the current session, if any.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	sessionID := s.sessionCookie(r)
	if err := s.authService.Logout(r.Context(), sessionID); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	s.clearSessionCookie(w)
	response.Success(w, map[string]bool{"loggedOut": true}, s.logger)
}

// handleMe returns the authenticated user.
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	user, err := s.authService.VerifySession(r.Context(), getSessionID(r.Context()))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, user.Public(), s.logger)
}
