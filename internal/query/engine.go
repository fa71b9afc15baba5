package query

import (
	"sort"
	"strings"

	"github.com/nabdhapp/nabdh-server/internal/domain"
)

// Result is the paginated outcome of running a Spec.
// Total counts the filtered set before pagination, so it is independent
// of Page and Limit. A page past the end is not an error: Tools is empty
// and Total/TotalPages still describe the full filtered set.
type Result struct {
	Tools      []*domain.Tool `json:"tools"`
	Total      int            `json:"total"`
	Page       int            `json:"page"`
	TotalPages int            `json:"totalPages"`
}

// Run filters, sorts, and paginates tools according to spec.
// The spec must have been validated; Run assumes sane pagination values.
// The input slice is never reordered or mutated.
func Run(tools []*domain.Tool, spec Spec) Result {
	filtered := make([]*domain.Tool, 0, len(tools))
	for _, t := range tools {
		if matches(t, spec) {
			filtered = append(filtered, t)
		}
	}

	sortTools(filtered, spec.Sort)

	total := len(filtered)
	totalPages := (total + spec.Limit - 1) / spec.Limit

	start := (spec.Page - 1) * spec.Limit
	end := start + spec.Limit
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Result{
		Tools:      filtered[start:end],
		Total:      total,
		Page:       spec.Page,
		TotalPages: totalPages,
	}
}

// matches applies the filter predicate: free-text substring on name,
// tagline, category, or any tag (case-insensitive), plus exact category
// and pricing matches. Absent criteria always pass.
func matches(t *domain.Tool, spec Spec) bool {
	if spec.Category != "" && t.Category != spec.Category {
		return false
	}
	if spec.Pricing != "" && t.Pricing != spec.Pricing {
		return false
	}
	if spec.Query == "" {
		return true
	}

	q := strings.ToLower(spec.Query)
	if strings.Contains(strings.ToLower(t.Name), q) ||
		strings.Contains(strings.ToLower(t.Tagline), q) ||
		strings.Contains(strings.ToLower(string(t.Category)), q) {
		return true
	}
	for _, tag := range t.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// sortTools orders tools in place by the given mode. Every mode ends in
// an ascending tool-ID tie-break so that equal keys still produce one
// deterministic order and pagination never straddles duplicates.
func sortTools(tools []*domain.Tool, mode Sort) {
	var less func(a, b *domain.Tool) bool

	switch mode {
	case SortPopular:
		less = func(a, b *domain.Tool) bool {
			if a.Votes != b.Votes {
				return a.Votes > b.Votes
			}
			return a.ID < b.ID
		}
	case SortTrending:
		// Trending-flagged tools sort above non-flagged ones, votes
		// descending within each group.
		less = func(a, b *domain.Tool) bool {
			if a.IsTrending != b.IsTrending {
				return a.IsTrending
			}
			if a.Votes != b.Votes {
				return a.Votes > b.Votes
			}
			return a.ID < b.ID
		}
	case SortTopRated:
		less = func(a, b *domain.Tool) bool {
			if a.Rating != b.Rating {
				return a.Rating > b.Rating
			}
			if a.Votes != b.Votes {
				return a.Votes > b.Votes
			}
			return a.ID < b.ID
		}
	default: // SortNew
		less = func(a, b *domain.Tool) bool {
			if !a.ReleasedAt.Equal(b.ReleasedAt) {
				return a.ReleasedAt.After(b.ReleasedAt)
			}
			return a.ID < b.ID
		}
	}

	sort.SliceStable(tools, func(i, j int) bool { return less(tools[i], tools[j]) })
}
