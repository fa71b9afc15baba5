package providers

import (
	"context"
	"net/http"

	"github.com/samber/do/v2"

	"github.com/nabdhapp/nabdh-server/internal/api"
	"github.com/nabdhapp/nabdh-server/internal/config"
	"github.com/nabdhapp/nabdh-server/internal/logger"
	"github.com/nabdhapp/nabdh-server/internal/ratelimit"
	"github.com/nabdhapp/nabdh-server/internal/service"
)

// AuthRateLimiterHandle wraps the keyed limiter with shutdown capability.
type AuthRateLimiterHandle struct {
	*ratelimit.KeyedRateLimiter
}

// Shutdown implements do.Shutdownable.
func (h *AuthRateLimiterHandle) Shutdown() error {
	h.Stop()
	return nil
}

// ProvideAuthRateLimiter provides the per-IP limiter for credential
// endpoints.
func ProvideAuthRateLimiter(i do.Injector) (*AuthRateLimiterHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	return &AuthRateLimiterHandle{
		KeyedRateLimiter: ratelimit.New(cfg.RateLimit.AuthRPS, cfg.RateLimit.AuthBurst),
	}, nil
}

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Server.Shutdown(ctx)
}

// ProvideHTTPServer provides the HTTP server.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	authService := do.MustInvoke[*service.AuthService](i)
	toolService := do.MustInvoke[*service.ToolService](i)
	savedService := do.MustInvoke[*service.SavedService](i)
	limiterHandle := do.MustInvoke[*AuthRateLimiterHandle](i)

	handler := api.NewServer(cfg, authService, toolService, savedService,
		limiterHandle.KeyedRateLimiter, log.Logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
		}
	}()

	log.Info("Server running", "addr", srv.Addr)

	return &HTTPServerHandle{Server: srv}, nil
}
