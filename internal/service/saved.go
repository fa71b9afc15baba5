package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nabdhapp/nabdh-server/internal/domain"
	domainerrors "github.com/nabdhapp/nabdh-server/internal/errors"
	"github.com/nabdhapp/nabdh-server/internal/store"
)

// SavedService manages per-user tool bookmarks.
type SavedService struct {
	store  store.Store
	logger *slog.Logger
}

// NewSavedService creates a new saved-tools service.
func NewSavedService(store store.Store, logger *slog.Logger) *SavedService {
	return &SavedService{store: store, logger: logger}
}

// Save bookmarks a tool for the user. Saving an already-saved tool is a
// no-op that returns the existing relation. The bool reports whether a
// new bookmark was created.
func (s *SavedService) Save(ctx context.Context, userID, toolID string) (*domain.SavedTool, bool, error) {
	if _, err := s.store.GetTool(ctx, toolID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, false, domainerrors.NotFoundf("tool not found: %s", toolID)
		}
		return nil, false, fmt.Errorf("get tool: %w", err)
	}

	saved, created, err := s.store.SaveTool(ctx, userID, toolID)
	if err != nil {
		return nil, false, fmt.Errorf("save tool: %w", err)
	}

	if created {
		if err := s.store.AdjustToolSaves(ctx, toolID, 1); err != nil && s.logger != nil {
			s.logger.Warn("adjust saves", "tool_id", toolID, "error", err)
		}
	}
	return saved, created, nil
}

// Unsave removes a bookmark. Returns whether a bookmark existed.
func (s *SavedService) Unsave(ctx context.Context, userID, toolID string) (bool, error) {
	removed, err := s.store.UnsaveTool(ctx, userID, toolID)
	if err != nil {
		return false, fmt.Errorf("unsave tool: %w", err)
	}

	if removed {
		if err := s.store.AdjustToolSaves(ctx, toolID, -1); err != nil && s.logger != nil {
			s.logger.Warn("adjust saves", "tool_id", toolID, "error", err)
		}
	}
	return removed, nil
}

// List returns the user's saved tools, most recently saved first.
// Bookmarks whose tool no longer exists are silently skipped.
func (s *SavedService) List(ctx context.Context, userID string) ([]*domain.Tool, error) {
	ids, err := s.store.ListSavedToolIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list saved ids: %w", err)
	}
	tools, err := s.store.ListToolsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list tools by ids: %w", err)
	}
	return tools, nil
}

// ListIDs returns the user's saved tool IDs, most recently saved first.
func (s *SavedService) ListIDs(ctx context.Context, userID string) ([]string, error) {
	ids, err := s.store.ListSavedToolIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list saved ids: %w", err)
	}
	return ids, nil
}

// IsSaved reports whether the user has bookmarked the tool.
func (s *SavedService) IsSaved(ctx context.Context, userID, toolID string) (bool, error) {
	saved, err := s.store.IsToolSaved(ctx, userID, toolID)
	if err != nil {
		return false, fmt.Errorf("check saved: %w", err)
	}
	return saved, nil
}
