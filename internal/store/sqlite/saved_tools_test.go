package sqlite

import (
	"context"
	"testing"
	"time"
)

func seedSavedFixtures(t *testing.T, s *Store) {
	t.Helper()
	ctx := context.Background()
	createTestUser(t, s, "user-1")
	for _, id := range []string{"tool-a", "tool-b", "tool-c"} {
		if err := s.CreateTool(ctx, makeTestTool(id, "slug-"+id)); err != nil {
			t.Fatalf("CreateTool %s: %v", id, err)
		}
	}
}

func TestSaveToolIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedSavedFixtures(t, s)

	first, created, err := s.SaveTool(ctx, "user-1", "tool-a")
	if err != nil {
		t.Fatalf("SaveTool: %v", err)
	}
	if !created {
		t.Error("first save should create")
	}
	if first == nil || first.UserID != "user-1" || first.ToolID != "tool-a" {
		t.Fatalf("unexpected relation record: %+v", first)
	}
	if first.ID == "" || first.CreatedAt.IsZero() {
		t.Errorf("relation record missing id or timestamp: %+v", first)
	}

	second, created, err := s.SaveTool(ctx, "user-1", "tool-a")
	if err != nil {
		t.Fatalf("second SaveTool: %v", err)
	}
	if created {
		t.Error("second save should be a no-op")
	}
	if second == nil || second.ID != first.ID {
		t.Errorf("no-op save should return the existing relation, got %+v", second)
	}

	ids, err := s.ListSavedToolIDs(ctx, "user-1")
	if err != nil {
		t.Fatalf("ListSavedToolIDs: %v", err)
	}
	if len(ids) != 1 {
		t.Errorf("expected 1 saved tool, got %d", len(ids))
	}
}

func TestUnsaveTool(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedSavedFixtures(t, s)

	if _, _, err := s.SaveTool(ctx, "user-1", "tool-a"); err != nil {
		t.Fatalf("SaveTool: %v", err)
	}

	removed, err := s.UnsaveTool(ctx, "user-1", "tool-a")
	if err != nil {
		t.Fatalf("UnsaveTool: %v", err)
	}
	if !removed {
		t.Error("expected removal of existing bookmark")
	}

	removed, err = s.UnsaveTool(ctx, "user-1", "tool-a")
	if err != nil {
		t.Fatalf("second UnsaveTool: %v", err)
	}
	if removed {
		t.Error("unsaving an absent bookmark should report false")
	}
}

func TestListSavedToolIDsOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedSavedFixtures(t, s)

	// Save with distinct timestamps so ordering is deterministic.
	for _, id := range []string{"tool-a", "tool-b", "tool-c"} {
		if _, _, err := s.SaveTool(ctx, "user-1", id); err != nil {
			t.Fatalf("SaveTool %s: %v", id, err)
		}
		time.Sleep(2 * time.Millisecond)
	}

	ids, err := s.ListSavedToolIDs(ctx, "user-1")
	if err != nil {
		t.Fatalf("ListSavedToolIDs: %v", err)
	}
	want := []string{"tool-c", "tool-b", "tool-a"}
	if len(ids) != len(want) {
		t.Fatalf("expected %d ids, got %d", len(want), len(ids))
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("position %d: got %s, want %s", i, ids[i], want[i])
		}
	}
}

func TestIsToolSaved(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedSavedFixtures(t, s)

	saved, err := s.IsToolSaved(ctx, "user-1", "tool-a")
	if err != nil {
		t.Fatalf("IsToolSaved: %v", err)
	}
	if saved {
		t.Error("tool should not be saved yet")
	}

	if _, _, err := s.SaveTool(ctx, "user-1", "tool-a"); err != nil {
		t.Fatalf("SaveTool: %v", err)
	}

	saved, err = s.IsToolSaved(ctx, "user-1", "tool-a")
	if err != nil {
		t.Fatalf("IsToolSaved: %v", err)
	}
	if !saved {
		t.Error("tool should be saved")
	}
}
