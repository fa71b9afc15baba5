package query

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nabdhapp/nabdh-server/internal/domain"
)

func makeTool(id, name string, category domain.Category, votes int, rating float64, released string) *domain.Tool {
	t, err := time.Parse("2006-01-02", released)
	if err != nil {
		panic(err)
	}
	return &domain.Tool{
		ID:         id,
		Slug:       id,
		Name:       name,
		Category:   category,
		Pricing:    domain.PricingFree,
		Votes:      votes,
		Rating:     rating,
		ReleasedAt: t,
	}
}

func toolIDs(tools []*domain.Tool) []string {
	ids := make([]string, len(tools))
	for i, t := range tools {
		ids[i] = t.ID
	}
	return ids
}

func defaultSpec() Spec {
	return Spec{Sort: SortNew, Page: DefaultPage, Limit: DefaultLimit}
}

func TestRunSortModes(t *testing.T) {
	a := makeTool("tool-a", "Alpha", "Code", 100, 4.8, "2024-01-01")
	b := makeTool("tool-b", "Beta", "Code", 500, 3.9, "2024-06-01")
	tools := []*domain.Tool{a, b}

	spec := defaultSpec()

	spec.Sort = SortPopular
	assert.Equal(t, []string{"tool-b", "tool-a"}, toolIDs(Run(tools, spec).Tools))

	spec.Sort = SortTopRated
	assert.Equal(t, []string{"tool-a", "tool-b"}, toolIDs(Run(tools, spec).Tools))

	spec.Sort = SortNew
	assert.Equal(t, []string{"tool-b", "tool-a"}, toolIDs(Run(tools, spec).Tools))
}

func TestRunTrendingSort(t *testing.T) {
	hot := makeTool("tool-hot", "Hot", "Code", 10, 4.0, "2024-01-01")
	hot.IsTrending = true
	cold := makeTool("tool-cold", "Cold", "Code", 9000, 4.9, "2024-06-01")

	spec := defaultSpec()
	spec.Sort = SortTrending

	res := Run([]*domain.Tool{cold, hot}, spec)
	assert.Equal(t, []string{"tool-hot", "tool-cold"}, toolIDs(res.Tools))
}

func TestRunTieBreakByID(t *testing.T) {
	x := makeTool("tool-x", "X", "Code", 50, 4.0, "2024-03-01")
	y := makeTool("tool-y", "Y", "Code", 50, 4.0, "2024-03-01")

	for _, mode := range []Sort{SortNew, SortPopular, SortTrending, SortTopRated} {
		spec := defaultSpec()
		spec.Sort = mode
		res := Run([]*domain.Tool{y, x}, spec)
		assert.Equal(t, []string{"tool-x", "tool-y"}, toolIDs(res.Tools), "mode %s", mode)
	}
}

func TestRunTextFilter(t *testing.T) {
	tools := []*domain.Tool{
		makeTool("tool-1", "CodePilot", "Code", 1, 4.0, "2024-01-01"),
		makeTool("tool-2", "Sketcher", "Design", 2, 4.0, "2024-01-02"),
		makeTool("tool-3", "Notes", "Productivity", 3, 4.0, "2024-01-03"),
	}
	tools[1].Tagline = "Design mockups without writing code"
	tools[2].Tags = []string{"writing", "code-review"}

	spec := defaultSpec()
	spec.Query = "CODE"

	res := Run(tools, spec)
	assert.Equal(t, 3, res.Total)
	assert.ElementsMatch(t, []string{"tool-1", "tool-2", "tool-3"}, toolIDs(res.Tools))

	spec.Query = "sketch"
	res = Run(tools, spec)
	assert.Equal(t, []string{"tool-2"}, toolIDs(res.Tools))

	spec.Query = "no such tool"
	res = Run(tools, spec)
	assert.Empty(t, res.Tools)
	assert.Equal(t, 0, res.Total)
	assert.Equal(t, 0, res.TotalPages)
}

func TestRunExactFilters(t *testing.T) {
	free := makeTool("tool-1", "A", "Code", 1, 4.0, "2024-01-01")
	paid := makeTool("tool-2", "B", "Code", 2, 4.0, "2024-01-02")
	paid.Pricing = domain.PricingPaid
	other := makeTool("tool-3", "C", "Design", 3, 4.0, "2024-01-03")

	tools := []*domain.Tool{free, paid, other}

	spec := defaultSpec()
	spec.Category = "Code"
	res := Run(tools, spec)
	assert.ElementsMatch(t, []string{"tool-1", "tool-2"}, toolIDs(res.Tools))

	spec.Pricing = domain.PricingPaid
	res = Run(tools, spec)
	assert.Equal(t, []string{"tool-2"}, toolIDs(res.Tools))
}

func TestRunPagination(t *testing.T) {
	tools := []*domain.Tool{
		makeTool("tool-1", "A", "Code", 1, 4.0, "2024-01-01"),
		makeTool("tool-2", "B", "Code", 2, 4.0, "2024-01-02"),
		makeTool("tool-3", "C", "Code", 3, 4.0, "2024-01-03"),
	}

	spec := defaultSpec()
	spec.Category = "Code"
	spec.Limit = 1
	spec.Page = 2

	res := Run(tools, spec)
	require.Len(t, res.Tools, 1)
	assert.Equal(t, 3, res.Total)
	assert.Equal(t, 2, res.Page)
	assert.Equal(t, 3, res.TotalPages)
	assert.Equal(t, "tool-2", res.Tools[0].ID)
}

func TestRunPageBeyondEnd(t *testing.T) {
	tools := []*domain.Tool{
		makeTool("tool-1", "A", "Code", 1, 4.0, "2024-01-01"),
	}

	spec := defaultSpec()
	spec.Page = 99

	res := Run(tools, spec)
	assert.Empty(t, res.Tools)
	assert.Equal(t, 1, res.Total)
	assert.Equal(t, 1, res.TotalPages)
	assert.Equal(t, 99, res.Page)
}

func TestRunPagesConcatenateToFilteredSet(t *testing.T) {
	var tools []*domain.Tool
	for i := 1; i <= 7; i++ {
		tools = append(tools, makeTool(fmt.Sprintf("tool-%d", i), fmt.Sprintf("T%d", i), "Code", i*10, 4.0, "2024-01-01"))
	}
	tools = append(tools,
		makeTool("tool-8", "T8", "Design", 80, 4.0, "2024-01-01"),
		makeTool("tool-9", "T9", "Design", 90, 4.0, "2024-01-01"),
	)

	spec := defaultSpec()
	spec.Category = "Code"
	spec.Sort = SortPopular

	full := Run(tools, spec)
	require.Equal(t, 7, full.Total)

	spec.Limit = 3
	var concatenated []string
	seenPages := 0
	for page := 1; ; page++ {
		spec.Page = page
		res := Run(tools, spec)

		assert.Equal(t, full.Total, res.Total, "total must not depend on page")
		assert.LessOrEqual(t, len(res.Tools), spec.Limit)

		concatenated = append(concatenated, toolIDs(res.Tools)...)
		seenPages = res.TotalPages
		if page >= res.TotalPages {
			break
		}
	}

	assert.Equal(t, 3, seenPages)
	assert.Equal(t, toolIDs(full.Tools), concatenated,
		"walking every page must reproduce the filtered set in order, no gaps or repeats")

	// Total is also invariant across limits.
	spec.Page = 1
	spec.Limit = 2
	assert.Equal(t, full.Total, Run(tools, spec).Total)
}

func TestRunDoesNotMutateInput(t *testing.T) {
	a := makeTool("tool-a", "A", "Code", 1, 4.0, "2024-01-01")
	b := makeTool("tool-b", "B", "Code", 2, 4.0, "2024-06-01")
	tools := []*domain.Tool{a, b}

	spec := defaultSpec()
	spec.Sort = SortPopular
	Run(tools, spec)

	assert.Same(t, a, tools[0])
	assert.Same(t, b, tools[1])
}
