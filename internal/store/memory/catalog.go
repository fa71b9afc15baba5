package memory

import (
	"encoding/json/v2"
	"fmt"
	"os"

	"github.com/nabdhapp/nabdh-server/internal/color"
	"github.com/nabdhapp/nabdh-server/internal/domain"
	"github.com/nabdhapp/nabdh-server/internal/id"
	"github.com/nabdhapp/nabdh-server/internal/util"
)

// LoadCatalogFile parses a JSON seed file into tools. Entries may omit
// the id, slug, iconColor, and iconInitials fields; those are derived.
func LoadCatalogFile(path string) ([]*domain.Tool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var tools []*domain.Tool
	if err := json.Unmarshal(data, &tools); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}

	for i, t := range tools {
		if t.Name == "" {
			return nil, fmt.Errorf("catalog entry %d: missing name", i)
		}
		if !t.Category.Valid() {
			return nil, fmt.Errorf("catalog entry %q: unknown category %q", t.Name, t.Category)
		}
		if !t.Pricing.Valid() {
			return nil, fmt.Errorf("catalog entry %q: unknown pricing %q", t.Name, t.Pricing)
		}
		if t.ID == "" {
			t.ID = id.MustGenerate("tool")
		}
		if t.Slug == "" {
			t.Slug = util.Slugify(t.Name)
		}
		if t.IconColor == "" {
			t.IconColor = color.ForTool(t.ID)
		}
		if t.IconInitials == "" {
			t.IconInitials = util.Initials(t.Name)
		}
	}
	return tools, nil
}

// LoadCatalog replaces the store's tool set with the contents of the
// seed file. Existing vote/view counters are carried over for tools
// whose slug survives the reload.
func (s *Store) LoadCatalog(path string) error {
	tools, err := LoadCatalogFile(path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.toolsBySlug
	s.tools = nil
	s.toolsByID = make(map[string]*domain.Tool, len(tools))
	s.toolsBySlug = make(map[string]*domain.Tool, len(tools))

	for _, t := range tools {
		if old, ok := prev[t.Slug]; ok {
			t.ID = old.ID
			t.Votes = old.Votes
			t.Saves = old.Saves
			t.Views = old.Views
		}
		if err := s.insertToolLocked(t); err != nil {
			return fmt.Errorf("catalog entry %q: %w", t.Slug, err)
		}
	}

	if s.logger != nil {
		s.logger.Info("catalog loaded", "path", path, "tools", len(tools))
	}
	return nil
}
