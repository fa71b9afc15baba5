package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nabdhapp/nabdh-server/internal/domain"
	"github.com/nabdhapp/nabdh-server/internal/http/response"
)

// handleListSavedTools returns the user's bookmarked tools, newest
// bookmark first.
func (s *Server) handleListSavedTools(w http.ResponseWriter, r *http.Request) {
	tools, err := s.savedService.List(r.Context(), getUserID(r.Context()))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	if tools == nil {
		tools = []*domain.Tool{}
	}
	response.Success(w, tools, s.logger)
}

// handleListSavedIDs returns just the bookmarked tool IDs, for cheap
// client-side state hydration.
func (s *Server) handleListSavedIDs(w http.ResponseWriter, r *http.Request) {
	ids, err := s.savedService.ListIDs(r.Context(), getUserID(r.Context()))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	response.Success(w, ids, s.logger)
}

// handleCheckSaved reports whether one tool is bookmarked. An anonymous
// or expired session is not an error here; nothing is saved for it.
func (s *Server) handleCheckSaved(w http.ResponseWriter, r *http.Request) {
	user, err := s.authService.VerifySession(r.Context(), s.sessionCookie(r))
	if err != nil {
		response.Success(w, map[string]bool{"isSaved": false}, s.logger)
		return
	}

	saved, err := s.savedService.IsSaved(r.Context(), user.ID, chi.URLParam(r, "toolId"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, map[string]bool{"isSaved": saved}, s.logger)
}

// handleSaveTool bookmarks a tool and returns the relation record.
func (s *Server) handleSaveTool(w http.ResponseWriter, r *http.Request) {
	saved, created, err := s.savedService.Save(r.Context(), getUserID(r.Context()), chi.URLParam(r, "toolId"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	payload := map[string]any{"savedTool": saved}
	if created {
		response.Created(w, payload, s.logger)
		return
	}
	response.Success(w, payload, s.logger)
}

// handleUnsaveTool removes a bookmark.
func (s *Server) handleUnsaveTool(w http.ResponseWriter, r *http.Request) {
	removed, err := s.savedService.Unsave(r.Context(), getUserID(r.Context()), chi.URLParam(r, "toolId"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, map[string]bool{"removed": removed}, s.logger)
}
