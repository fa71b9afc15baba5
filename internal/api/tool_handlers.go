package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/nabdhapp/nabdh-server/internal/domain"
	"github.com/nabdhapp/nabdh-server/internal/http/response"
	"github.com/nabdhapp/nabdh-server/internal/query"
	"github.com/nabdhapp/nabdh-server/internal/search"
)

// handleListTools serves the main catalog listing with filtering,
// sorting, and pagination.
func (s *Server) handleListTools(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	spec, err := query.ParseSpec(
		q.Get("query"),
		q.Get("category"),
		q.Get("pricing"),
		q.Get("sort"),
		q.Get("page"),
		q.Get("limit"),
	)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	result, err := s.toolService.Search(r.Context(), spec)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, result, s.logger)
}

// handleFeaturedTools serves the curated homepage views.
func (s *Server) handleFeaturedTools(w http.ResponseWriter, r *http.Request) {
	views, err := s.toolService.Featured(r.Context())
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, views, s.logger)
}

// handleSuggestTools serves typeahead suggestions.
func (s *Server) handleSuggestTools(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	suggestions, err := s.toolService.Suggest(r.Context(), r.URL.Query().Get("query"), limit)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	if suggestions == nil {
		suggestions = []search.Suggestion{}
	}
	response.Success(w, suggestions, s.logger)
}

// handleRelatedTools serves same-category recommendations.
func (s *Server) handleRelatedTools(w http.ResponseWriter, r *http.Request) {
	category := domain.Category(chi.URLParam(r, "category"))
	excludeID := r.URL.Query().Get("excludeId")

	related, err := s.toolService.Related(r.Context(), category, excludeID)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, related, s.logger)
}

// handleGetTool serves a tool detail page and counts the view.
func (s *Server) handleGetTool(w http.ResponseWriter, r *http.Request) {
	tool, err := s.toolService.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, tool, s.logger)
}

// handleVoteTool increments a tool's vote counter.
func (s *Server) handleVoteTool(w http.ResponseWriter, r *http.Request) {
	tool, err := s.toolService.Vote(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, tool, s.logger)
}
