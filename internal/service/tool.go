package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nabdhapp/nabdh-server/internal/domain"
	domainerrors "github.com/nabdhapp/nabdh-server/internal/errors"
	"github.com/nabdhapp/nabdh-server/internal/query"
	"github.com/nabdhapp/nabdh-server/internal/search"
	"github.com/nabdhapp/nabdh-server/internal/store"
)

// ToolService serves catalog reads: listing, curated views, detail
// lookups, and the vote counter.
type ToolService struct {
	store  store.Store
	index  *search.Index
	logger *slog.Logger
}

// NewToolService creates a new tool service. The suggest index may be
// nil, in which case Suggest returns empty results.
func NewToolService(store store.Store, index *search.Index, logger *slog.Logger) *ToolService {
	return &ToolService{store: store, index: index, logger: logger}
}

// RebuildSuggestIndex reindexes the current catalog for typeahead.
func (s *ToolService) RebuildSuggestIndex(ctx context.Context) error {
	if s.index == nil {
		return nil
	}
	tools, err := s.store.ListTools(ctx)
	if err != nil {
		return fmt.Errorf("list tools: %w", err)
	}
	return s.index.Rebuild(tools)
}

// Search runs a listing query over the catalog.
func (s *ToolService) Search(ctx context.Context, spec query.Spec) (query.Result, error) {
	if err := spec.Validate(); err != nil {
		return query.Result{}, err
	}
	tools, err := s.store.ListTools(ctx)
	if err != nil {
		return query.Result{}, fmt.Errorf("list tools: %w", err)
	}
	return query.Run(tools, spec), nil
}

// Featured returns the curated featured/trending/just-released views.
func (s *ToolService) Featured(ctx context.Context) (query.FeaturedViews, error) {
	tools, err := s.store.ListTools(ctx)
	if err != nil {
		return query.FeaturedViews{}, fmt.Errorf("list tools: %w", err)
	}
	return query.Curated(tools), nil
}

// Related returns tools in the same category, excluding one tool.
func (s *ToolService) Related(ctx context.Context, category domain.Category, excludeID string) ([]*domain.Tool, error) {
	if !category.Valid() {
		return nil, domainerrors.Validationf("unknown category: %s", category)
	}
	tools, err := s.store.ListTools(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tools: %w", err)
	}
	return query.Related(tools, category, excludeID), nil
}

// GetBySlug returns a tool and records the page view. The returned tool
// reflects the incremented view count.
func (s *ToolService) GetBySlug(ctx context.Context, slug string) (*domain.Tool, error) {
	tool, err := s.store.GetToolBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFoundf("tool not found: %s", slug)
		}
		return nil, fmt.Errorf("get tool: %w", err)
	}

	if err := s.store.IncrementToolViews(ctx, tool.ID); err != nil {
		// The read already succeeded; a lost view is not worth a 500.
		if s.logger != nil {
			s.logger.Warn("increment views", "tool_id", tool.ID, "error", err)
		}
	} else {
		tool.Views++
	}
	return tool, nil
}

// Vote increments the tool's vote counter and returns the updated tool.
func (s *ToolService) Vote(ctx context.Context, slug string) (*domain.Tool, error) {
	tool, err := s.store.GetToolBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFoundf("tool not found: %s", slug)
		}
		return nil, fmt.Errorf("get tool: %w", err)
	}

	updated, err := s.store.IncrementToolVotes(ctx, tool.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFoundf("tool not found: %s", slug)
		}
		return nil, fmt.Errorf("increment votes: %w", err)
	}
	return updated, nil
}

// Suggest returns typeahead suggestions for the query.
func (s *ToolService) Suggest(_ context.Context, queryText string, limit int) ([]search.Suggestion, error) {
	if s.index == nil {
		return nil, nil
	}
	return s.index.Suggest(queryText, limit)
}
