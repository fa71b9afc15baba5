package query

import (
	"sort"

	"github.com/nabdhapp/nabdh-server/internal/domain"
)

// Caps for the curated homepage views.
const (
	curatedCap = 10
	relatedCap = 4
)

// FeaturedViews holds the three curated subsets derived from the full
// catalog. The lists may overlap; a tool can be featured and trending
// at once. Each call recomputes from scratch without caching.
type FeaturedViews struct {
	Featured     []*domain.Tool `json:"featured"`
	Trending     []*domain.Tool `json:"trending"`
	JustReleased []*domain.Tool `json:"justReleased"`
}

// Curated derives the featured, trending, and just-released views:
//   - featured: featured-flagged tools, most recent release first
//   - trending: trending-flagged tools, highest votes first
//   - justReleased: all tools, most recent release first
//
// Each view is capped at 10 entries.
func Curated(tools []*domain.Tool) FeaturedViews {
	var featured, trending []*domain.Tool
	for _, t := range tools {
		if t.IsFeatured {
			featured = append(featured, t)
		}
		if t.IsTrending {
			trending = append(trending, t)
		}
	}

	byRelease(featured)
	byVotes(trending)

	justReleased := make([]*domain.Tool, len(tools))
	copy(justReleased, tools)
	byRelease(justReleased)

	return FeaturedViews{
		Featured:     cap10(featured),
		Trending:     cap10(trending),
		JustReleased: cap10(justReleased),
	}
}

// Related returns up to four tools in the given category, excluding the
// tool identified by excludeID, highest votes first.
func Related(tools []*domain.Tool, category domain.Category, excludeID string) []*domain.Tool {
	var related []*domain.Tool
	for _, t := range tools {
		if t.Category == category && t.ID != excludeID {
			related = append(related, t)
		}
	}
	byVotes(related)
	if len(related) > relatedCap {
		related = related[:relatedCap]
	}
	return related
}

func byRelease(tools []*domain.Tool) {
	sort.SliceStable(tools, func(i, j int) bool {
		if !tools[i].ReleasedAt.Equal(tools[j].ReleasedAt) {
			return tools[i].ReleasedAt.After(tools[j].ReleasedAt)
		}
		return tools[i].ID < tools[j].ID
	})
}

func byVotes(tools []*domain.Tool) {
	sort.SliceStable(tools, func(i, j int) bool {
		if tools[i].Votes != tools[j].Votes {
			return tools[i].Votes > tools[j].Votes
		}
		return tools[i].ID < tools[j].ID
	})
}

func cap10(tools []*domain.Tool) []*domain.Tool {
	if len(tools) > curatedCap {
		return tools[:curatedCap]
	}
	return tools
}
