// Package api provides the HTTP API server and handlers for the Nabdh
// tool directory.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/nabdhapp/nabdh-server/internal/config"
	"github.com/nabdhapp/nabdh-server/internal/ratelimit"
	"github.com/nabdhapp/nabdh-server/internal/service"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	cfg          *config.Config
	authService  *service.AuthService
	toolService  *service.ToolService
	savedService *service.SavedService
	authLimiter  *ratelimit.KeyedRateLimiter
	router       *chi.Mux
	logger       *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(
	cfg *config.Config,
	authService *service.AuthService,
	toolService *service.ToolService,
	savedService *service.SavedService,
	authLimiter *ratelimit.KeyedRateLimiter,
	logger *slog.Logger,
) *Server {
	s := &Server{
		cfg:          cfg,
		authService:  authService,
		toolService:  toolService,
		savedService: savedService,
		authLimiter:  authLimiter,
		router:       chi.NewRouter(),
		logger:       logger,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.Server.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	// Health check.
	s.router.Get("/health", s.handleHealthCheck)

	s.router.Route("/api", func(r chi.Router) {
		// Catalog endpoints (public, optionally authenticated).
		r.Route("/tools", func(r chi.Router) {
			r.Get("/", s.handleListTools)
			r.Get("/featured", s.handleFeaturedTools)
			r.Get("/suggest", s.handleSuggestTools)
			r.Get("/related/{category}", s.handleRelatedTools)
			r.Get("/{slug}", s.handleGetTool)
			r.Post("/{slug}/vote", s.handleVoteTool)
		})

		// Auth endpoints (public, rate limited).
		r.Route("/auth", func(r chi.Router) {
			r.With(s.limitAuth).Post("/signup", s.handleSignup)
			r.With(s.limitAuth).Post("/login", s.handleLogin)
			r.Post("/logout", s.handleLogout)
			r.With(s.requireAuth).Get("/me", s.handleMe)
		})

		// Saved tools (require auth).
		r.Route("/saved-tools", func(r chi.Router) {
			// Check stays open so an anonymous client gets a plain
			// "not saved" instead of a 401.
			r.Get("/check/{toolId}", s.handleCheckSaved)

			r.Group(func(r chi.Router) {
				r.Use(s.requireAuth)
				r.Get("/", s.handleListSavedTools)
				r.Get("/ids", s.handleListSavedIDs)
				r.Post("/{toolId}", s.handleSaveTool)
				r.Delete("/{toolId}", s.handleUnsaveTool)
			})
		})
	})
}
