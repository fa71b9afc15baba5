// Package search provides typeahead suggestions over the tool catalog
// using Bleve. The index lives in memory and is rebuilt from the store
// whenever the catalog changes; it is cheap to rebuild at directory scale.
package search

import (
	"strings"

	"github.com/nabdhapp/nabdh-server/internal/domain"
)

// ToolDocument is the Bleve document for a catalog tool.
type ToolDocument struct {
	ID       string `json:"id"`
	Slug     string `json:"slug"`
	Name     string `json:"name"`
	Tagline  string `json:"tagline"`
	Category string `json:"category"`
	Tags     string `json:"tags"`
}

// ToMap converts the document to a map with lowercase field names so
// field names match the index mapping.
func (d *ToolDocument) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"id":       d.ID,
		"slug":     d.Slug,
		"name":     d.Name,
		"tagline":  d.Tagline,
		"category": d.Category,
		"tags":     d.Tags,
	}
}

// ToolToDocument converts a domain Tool to its search document.
func ToolToDocument(tool *domain.Tool) *ToolDocument {
	return &ToolDocument{
		ID:       tool.ID,
		Slug:     tool.Slug,
		Name:     tool.Name,
		Tagline:  tool.Tagline,
		Category: string(tool.Category),
		Tags:     strings.Join(tool.Tags, " "),
	}
}

// Suggestion is a single typeahead result.
type Suggestion struct {
	Slug     string `json:"slug"`
	Name     string `json:"name"`
	Tagline  string `json:"tagline"`
	Category string `json:"category"`
}
