package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nabdhapp/nabdh-server/internal/config"
	"github.com/nabdhapp/nabdh-server/internal/domain"
	"github.com/nabdhapp/nabdh-server/internal/ratelimit"
	"github.com/nabdhapp/nabdh-server/internal/search"
	"github.com/nabdhapp/nabdh-server/internal/service"
	"github.com/nabdhapp/nabdh-server/internal/store/memory"
	"github.com/nabdhapp/nabdh-server/internal/validation"
)

// testServer wraps a Server with helpers for making requests.
type testServer struct {
	server *Server
	store  *memory.Store
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	s := memory.New(nil)
	t.Cleanup(func() { s.Close() })

	idx, err := search.NewIndex(nil)
	require.NoError(t, err)
	t.Cleanup(func() { idx.Close() })

	cfg := &config.Config{}
	cfg.Server.CORSOrigins = []string{"*"}
	cfg.Auth.CookieName = "nabdh_session"

	validator := validation.New()
	authSvc := service.NewAuthService(s, validator, nil)
	toolSvc := service.NewToolService(s, idx, nil)
	savedSvc := service.NewSavedService(s, nil)

	limiter := ratelimit.New(100, 100)
	t.Cleanup(limiter.Stop)

	return &testServer{
		server: NewServer(cfg, authSvc, toolSvc, savedSvc, limiter, nil),
		store:  s,
	}
}

func (ts *testServer) seedTools(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	tools := []*domain.Tool{
		{
			ID: "tool-1", Slug: "codepilot", Name: "CodePilot", Tagline: "AI pair programming",
			Category: "Code", Pricing: domain.PricingFreemium, Votes: 100, Rating: 4.8,
			IsFeatured: true, ReleasedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			ID: "tool-2", Slug: "sketcher", Name: "Sketcher", Tagline: "Design drafts",
			Category: "Design", Pricing: domain.PricingPaid, Votes: 500, Rating: 3.9,
			IsTrending: true, ReleasedAt: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			ID: "tool-3", Slug: "refactorix", Name: "Refactorix", Tagline: "Automated refactors",
			Category: "Code", Pricing: domain.PricingFree, Votes: 50, Rating: 4.1,
			ReleasedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		},
	}
	for _, tool := range tools {
		require.NoError(t, ts.store.CreateTool(ctx, tool))
	}
}

// do runs a request through the router, carrying cookies if given.
func (ts *testServer) do(t *testing.T, method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	ts.server.ServeHTTP(rec, req)
	return rec
}

// envelope mirrors the response wrapper for decoding in tests.
type envelope struct {
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Success bool            `json:"success"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

// signup registers a user and returns the session cookie.
func (ts *testServer) signup(t *testing.T, username string) *http.Cookie {
	t.Helper()
	rec := ts.do(t, http.MethodPost, "/api/auth/signup",
		`{"username":"`+username+`","password":"correct horse battery"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	for _, c := range rec.Result().Cookies() {
		if c.Name == "nabdh_session" {
			return c
		}
	}
	t.Fatal("no session cookie in signup response")
	return nil
}

// newTinyLimiter returns a limiter that allows only a couple of requests.
func newTinyLimiter(t *testing.T) *ratelimit.KeyedRateLimiter {
	t.Helper()
	limiter := ratelimit.New(0.1, 2)
	t.Cleanup(limiter.Stop)
	return limiter
}

func TestHealthCheck(t *testing.T) {
	ts := setupTestServer(t)

	rec := ts.do(t, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	require.True(t, env.Success)
}
