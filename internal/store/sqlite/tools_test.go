package sqlite

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/nabdhapp/nabdh-server/internal/domain"
	"github.com/nabdhapp/nabdh-server/internal/store"
)

// makeTestTool creates a domain.Tool with sensible defaults for testing.
func makeTestTool(id, slug string) *domain.Tool {
	return &domain.Tool{
		ID:           id,
		Slug:         slug,
		Name:         "Test Tool",
		Tagline:      "Does a test thing",
		Description:  "A longer description of the test thing.",
		Category:     "Code",
		Pricing:      domain.PricingFreemium,
		WebsiteURL:   "https://example.com",
		IconColor:    "#3b82f6",
		IconInitials: "TT",
		Rating:       4.2,
		ReleasedAt:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Features:     []string{"fast", "cheap"},
		Tags:         []string{"testing", "ci"},
	}
}

func TestCreateAndGetTool(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	tool := makeTestTool("tool-1", "test-tool")
	tool.PriceDetails = "Free up to 100 runs/month"
	tool.IsFeatured = true
	tool.Votes = 42

	if err := s.CreateTool(ctx, tool); err != nil {
		t.Fatalf("CreateTool: %v", err)
	}

	got, err := s.GetTool(ctx, "tool-1")
	if err != nil {
		t.Fatalf("GetTool: %v", err)
	}
	if got.Slug != "test-tool" {
		t.Errorf("slug: got %q", got.Slug)
	}
	if got.PriceDetails != tool.PriceDetails {
		t.Errorf("price details: got %q", got.PriceDetails)
	}
	if !got.IsFeatured {
		t.Error("is_featured lost")
	}
	if got.Votes != 42 {
		t.Errorf("votes: got %d", got.Votes)
	}
	if !got.ReleasedAt.Equal(tool.ReleasedAt) {
		t.Errorf("released at: got %v, want %v", got.ReleasedAt, tool.ReleasedAt)
	}
	if !reflect.DeepEqual(got.Features, tool.Features) {
		t.Errorf("features: got %v", got.Features)
	}
	if !reflect.DeepEqual(got.Tags, tool.Tags) {
		t.Errorf("tags: got %v", got.Tags)
	}
}

func TestGetToolBySlug(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.CreateTool(ctx, makeTestTool("tool-1", "test-tool")); err != nil {
		t.Fatalf("CreateTool: %v", err)
	}

	got, err := s.GetToolBySlug(ctx, "test-tool")
	if err != nil {
		t.Fatalf("GetToolBySlug: %v", err)
	}
	if got.ID != "tool-1" {
		t.Errorf("id: got %q", got.ID)
	}

	if _, err := s.GetToolBySlug(ctx, "no-such-slug"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateToolDuplicateSlug(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.CreateTool(ctx, makeTestTool("tool-1", "test-tool")); err != nil {
		t.Fatalf("CreateTool: %v", err)
	}

	err := s.CreateTool(ctx, makeTestTool("tool-2", "test-tool"))
	if !errors.Is(err, store.ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestListTools(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"tool-b", "tool-a", "tool-c"} {
		if err := s.CreateTool(ctx, makeTestTool(id, "slug-"+id)); err != nil {
			t.Fatalf("CreateTool %s: %v", id, err)
		}
	}

	tools, err := s.ListTools(ctx)
	if err != nil {
		t.Fatalf("ListTools: %v", err)
	}
	if len(tools) != 3 {
		t.Fatalf("expected 3 tools, got %d", len(tools))
	}
	// Insertion order, not lexical.
	if tools[0].ID != "tool-b" || tools[1].ID != "tool-a" || tools[2].ID != "tool-c" {
		t.Errorf("unexpected order: %s, %s, %s", tools[0].ID, tools[1].ID, tools[2].ID)
	}
}

func TestListToolsByIDs(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"tool-a", "tool-b", "tool-c"} {
		if err := s.CreateTool(ctx, makeTestTool(id, "slug-"+id)); err != nil {
			t.Fatalf("CreateTool %s: %v", id, err)
		}
	}

	// Caller order preserved, missing IDs dropped.
	tools, err := s.ListToolsByIDs(ctx, []string{"tool-c", "tool-missing", "tool-a"})
	if err != nil {
		t.Fatalf("ListToolsByIDs: %v", err)
	}
	if len(tools) != 2 {
		t.Fatalf("expected 2 tools, got %d", len(tools))
	}
	if tools[0].ID != "tool-c" || tools[1].ID != "tool-a" {
		t.Errorf("unexpected order: %s, %s", tools[0].ID, tools[1].ID)
	}

	tools, err = s.ListToolsByIDs(ctx, nil)
	if err != nil {
		t.Fatalf("ListToolsByIDs(nil): %v", err)
	}
	if len(tools) != 0 {
		t.Errorf("expected empty result, got %d", len(tools))
	}
}

func TestIncrementCounters(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.CreateTool(ctx, makeTestTool("tool-1", "test-tool")); err != nil {
		t.Fatalf("CreateTool: %v", err)
	}

	if err := s.IncrementToolViews(ctx, "tool-1"); err != nil {
		t.Fatalf("IncrementToolViews: %v", err)
	}
	if err := s.IncrementToolViews(ctx, "tool-1"); err != nil {
		t.Fatalf("IncrementToolViews: %v", err)
	}

	updated, err := s.IncrementToolVotes(ctx, "tool-1")
	if err != nil {
		t.Fatalf("IncrementToolVotes: %v", err)
	}
	if updated.Votes != 1 {
		t.Errorf("votes: got %d, want 1", updated.Votes)
	}
	if updated.Views != 2 {
		t.Errorf("views: got %d, want 2", updated.Views)
	}

	if err := s.IncrementToolViews(ctx, "tool-missing"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := s.IncrementToolVotes(ctx, "tool-missing"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestAdjustToolSavesClampsAtZero(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.CreateTool(ctx, makeTestTool("tool-1", "test-tool")); err != nil {
		t.Fatalf("CreateTool: %v", err)
	}

	if err := s.AdjustToolSaves(ctx, "tool-1", 1); err != nil {
		t.Fatalf("AdjustToolSaves: %v", err)
	}
	if err := s.AdjustToolSaves(ctx, "tool-1", -5); err != nil {
		t.Fatalf("AdjustToolSaves: %v", err)
	}

	got, err := s.GetTool(ctx, "tool-1")
	if err != nil {
		t.Fatalf("GetTool: %v", err)
	}
	if got.Saves != 0 {
		t.Errorf("saves: got %d, want 0", got.Saves)
	}
}
