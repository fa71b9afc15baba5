package search

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/nabdhapp/nabdh-server/internal/domain"
)

// DefaultSuggestLimit caps suggestion results when no limit is given.
const DefaultSuggestLimit = 8

// Index wraps a memory-only Bleve index over the tool catalog.
//
// All public methods are safe for concurrent use. The mutex protects
// the index swap during Rebuild.
type Index struct {
	logger *slog.Logger

	mu    sync.RWMutex
	index bleve.Index
}

// NewIndex creates an empty in-memory suggestion index.
func NewIndex(logger *slog.Logger) (*Index, error) {
	idx, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("create suggest index: %w", err)
	}
	return &Index{logger: logger, index: idx}, nil
}

// Close releases the index.
func (s *Index) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index.Close()
}

// buildIndexMapping creates the Bleve mapping for tool documents.
// Names and taglines get English analysis for stemmed matches; slug and
// id stay keyword-exact so they are never tokenized into results.
func buildIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultAnalyzer = en.AnalyzerName

	docMapping := bleve.NewDocumentMapping()

	nameField := bleve.NewTextFieldMapping()
	nameField.Analyzer = en.AnalyzerName
	nameField.Store = true
	docMapping.AddFieldMappingsAt("name", nameField)

	taglineField := bleve.NewTextFieldMapping()
	taglineField.Analyzer = en.AnalyzerName
	taglineField.Store = true
	docMapping.AddFieldMappingsAt("tagline", taglineField)

	tagsField := bleve.NewTextFieldMapping()
	tagsField.Analyzer = en.AnalyzerName
	tagsField.Store = false
	docMapping.AddFieldMappingsAt("tags", tagsField)

	categoryField := bleve.NewTextFieldMapping()
	categoryField.Analyzer = keyword.Name
	categoryField.Store = true
	docMapping.AddFieldMappingsAt("category", categoryField)

	slugField := bleve.NewTextFieldMapping()
	slugField.Analyzer = keyword.Name
	slugField.Store = true
	slugField.Index = false
	docMapping.AddFieldMappingsAt("slug", slugField)

	idField := bleve.NewTextFieldMapping()
	idField.Analyzer = keyword.Name
	idField.Store = true
	idField.Index = false
	docMapping.AddFieldMappingsAt("id", idField)

	indexMapping.DefaultMapping = docMapping
	return indexMapping
}

// Rebuild replaces the index contents with the given tools.
func (s *Index) Rebuild(tools []*domain.Tool) error {
	fresh, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return fmt.Errorf("create suggest index: %w", err)
	}

	batch := fresh.NewBatch()
	for _, tool := range tools {
		doc := ToolToDocument(tool)
		if err := batch.Index(doc.ID, doc.ToMap()); err != nil {
			fresh.Close()
			return fmt.Errorf("index tool %s: %w", tool.ID, err)
		}
	}
	if err := fresh.Batch(batch); err != nil {
		fresh.Close()
		return fmt.Errorf("apply suggest batch: %w", err)
	}

	s.mu.Lock()
	old := s.index
	s.index = fresh
	s.mu.Unlock()
	old.Close()

	if s.logger != nil {
		s.logger.Debug("suggest index rebuilt", "tools", len(tools))
	}
	return nil
}

// Suggest returns up to limit typeahead suggestions for the query,
// best match first. Queries shorter than two characters return nothing.
func (s *Index) Suggest(queryText string, limit int) ([]Suggestion, error) {
	queryText = strings.TrimSpace(queryText)
	if len(queryText) < 2 {
		return nil, nil
	}
	if limit <= 0 || limit > DefaultSuggestLimit {
		limit = DefaultSuggestLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	req := bleve.NewSearchRequestOptions(buildSuggestQuery(queryText), limit, 0, false)
	req.Fields = []string{"slug", "name", "tagline", "category"}

	res, err := s.index.Search(req)
	if err != nil {
		return nil, fmt.Errorf("suggest search: %w", err)
	}

	suggestions := make([]Suggestion, 0, len(res.Hits))
	for _, hit := range res.Hits {
		suggestions = append(suggestions, Suggestion{
			Slug:     fieldString(hit.Fields, "slug"),
			Name:     fieldString(hit.Fields, "name"),
			Tagline:  fieldString(hit.Fields, "tagline"),
			Category: fieldString(hit.Fields, "category"),
		})
	}
	return suggestions, nil
}

// buildSuggestQuery combines match, fuzzy, and prefix queries over the
// name with lower-boosted tagline and tag matches.
func buildSuggestQuery(queryText string) query.Query {
	var queries []query.Query

	nameMatch := bleve.NewMatchQuery(queryText)
	nameMatch.SetField("name")
	nameMatch.SetBoost(3.0)
	queries = append(queries, nameMatch)

	namePrefix := bleve.NewPrefixQuery(strings.ToLower(queryText))
	namePrefix.SetField("name")
	namePrefix.SetBoost(2.0)
	queries = append(queries, namePrefix)

	nameFuzzy := bleve.NewFuzzyQuery(queryText)
	nameFuzzy.SetFuzziness(1)
	nameFuzzy.SetField("name")
	nameFuzzy.SetBoost(0.8)
	queries = append(queries, nameFuzzy)

	taglineMatch := bleve.NewMatchQuery(queryText)
	taglineMatch.SetField("tagline")
	taglineMatch.SetBoost(1.0)
	queries = append(queries, taglineMatch)

	tagsMatch := bleve.NewMatchQuery(queryText)
	tagsMatch.SetField("tags")
	tagsMatch.SetBoost(0.5)
	queries = append(queries, tagsMatch)

	return bleve.NewDisjunctionQuery(queries...)
}

func fieldString(fields map[string]interface{}, name string) string {
	if v, ok := fields[name].(string); ok {
		return v
	}
	return ""
}
