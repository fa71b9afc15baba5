package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nabdhapp/nabdh-server/internal/domain"
	domainerrors "github.com/nabdhapp/nabdh-server/internal/errors"
	"github.com/nabdhapp/nabdh-server/internal/query"
	"github.com/nabdhapp/nabdh-server/internal/search"
	"github.com/nabdhapp/nabdh-server/internal/store/memory"
)

func setupToolTest(t *testing.T) (*ToolService, *memory.Store) {
	t.Helper()
	s := memory.New(nil)
	t.Cleanup(func() { s.Close() })

	idx, err := search.NewIndex(nil)
	require.NoError(t, err)
	t.Cleanup(func() { idx.Close() })

	return NewToolService(s, idx, nil), s
}

func seedCatalog(t *testing.T, s *memory.Store) {
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
		require.NoError(t, s.CreateTool(ctx, tool))
	}
}

func TestSearch(t *testing.T) {
	svc, s := setupToolTest(t)
	seedCatalog(t, s)
	ctx := context.Background()

	res, err := svc.Search(ctx, query.Spec{
		Category: "Code", Sort: query.SortPopular,
		Page: 1, Limit: 24,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Total)
	require.Len(t, res.Tools, 2)
	assert.Equal(t, "tool-1", res.Tools[0].ID)
	assert.Equal(t, "tool-3", res.Tools[1].ID)
}

func TestSearchRejectsInvalidSpec(t *testing.T) {
	svc, s := setupToolTest(t)
	seedCatalog(t, s)

	_, err := svc.Search(context.Background(), query.Spec{Sort: "best", Page: 1, Limit: 24})
	var derr *domainerrors.Error
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, domainerrors.CodeValidation, derr.Code)
}

func TestFeatured(t *testing.T) {
	svc, s := setupToolTest(t)
	seedCatalog(t, s)

	views, err := svc.Featured(context.Background())
	require.NoError(t, err)
	require.Len(t, views.Featured, 1)
	assert.Equal(t, "tool-1", views.Featured[0].ID)
	require.Len(t, views.Trending, 1)
	assert.Equal(t, "tool-2", views.Trending[0].ID)
	require.Len(t, views.JustReleased, 3)
	assert.Equal(t, "tool-2", views.JustReleased[0].ID)
}

func TestRelated(t *testing.T) {
	svc, s := setupToolTest(t)
	seedCatalog(t, s)
	ctx := context.Background()

	related, err := svc.Related(ctx, "Code", "tool-1")
	require.NoError(t, err)
	require.Len(t, related, 1)
	assert.Equal(t, "tool-3", related[0].ID)

	_, err = svc.Related(ctx, "Gardening", "")
	var derr *domainerrors.Error
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, domainerrors.CodeValidation, derr.Code)
}

func TestGetBySlugCountsView(t *testing.T) {
	svc, s := setupToolTest(t)
	seedCatalog(t, s)
	ctx := context.Background()

	tool, err := svc.GetBySlug(ctx, "codepilot")
	require.NoError(t, err)
	assert.Equal(t, 1, tool.Views)

	tool, err = svc.GetBySlug(ctx, "codepilot")
	require.NoError(t, err)
	assert.Equal(t, 2, tool.Views)

	_, err = svc.GetBySlug(ctx, "no-such-tool")
	var derr *domainerrors.Error
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, domainerrors.CodeNotFound, derr.Code)
}

func TestVote(t *testing.T) {
	svc, s := setupToolTest(t)
	seedCatalog(t, s)
	ctx := context.Background()

	tool, err := svc.Vote(ctx, "refactorix")
	require.NoError(t, err)
	assert.Equal(t, 51, tool.Votes)

	_, err = svc.Vote(ctx, "no-such-tool")
	var derr *domainerrors.Error
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, domainerrors.CodeNotFound, derr.Code)
}

func TestSuggest(t *testing.T) {
	svc, s := setupToolTest(t)
	seedCatalog(t, s)
	ctx := context.Background()

	require.NoError(t, svc.RebuildSuggestIndex(ctx))

	got, err := svc.Suggest(ctx, "codepilot", 5)
	require.NoError(t, err)
	require.NotEmpty(t, got)
	assert.Equal(t, "codepilot", got[0].Slug)
}
