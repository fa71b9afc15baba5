package sqlite

import (
	"context"
	"database/sql"
	"encoding/json/v2"
	"fmt"
	"strings"

	"github.com/nabdhapp/nabdh-server/internal/domain"
	"github.com/nabdhapp/nabdh-server/internal/store"
)

// toolColumns is the ordered list of columns selected in tool queries.
// Must match the scan order in scanTool.
const toolColumns = `id, slug, name, tagline, description, category, pricing,
	price_details, website_url, icon_color, icon_initials,
	votes, saves, views, rating, is_featured, is_new, is_trending,
	released_at, features, tags`

// scanTool scans a sql.Row (or sql.Rows via its Scan method) into a domain.Tool.
func scanTool(scanner interface{ Scan(dest ...any) error }) (*domain.Tool, error) {
	var t domain.Tool

	var (
		priceDetails sql.NullString
		isFeatured   int
		isNew        int
		isTrending   int
		releasedAt   string
		features     string
		tags         string
	)

	err := scanner.Scan(
		&t.ID,
		&t.Slug,
		&t.Name,
		&t.Tagline,
		&t.Description,
		&t.Category,
		&t.Pricing,
		&priceDetails,
		&t.WebsiteURL,
		&t.IconColor,
		&t.IconInitials,
		&t.Votes,
		&t.Saves,
		&t.Views,
		&t.Rating,
		&isFeatured,
		&isNew,
		&isTrending,
		&releasedAt,
		&features,
		&tags,
	)
	if err != nil {
		return nil, err
	}

	if priceDetails.Valid {
		t.PriceDetails = priceDetails.String
	}
	t.IsFeatured = isFeatured != 0
	t.IsNew = isNew != 0
	t.IsTrending = isTrending != 0

	t.ReleasedAt, err = parseTime(releasedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(features), &t.Features); err != nil {
		return nil, fmt.Errorf("unmarshal features: %w", err)
	}
	if err := json.Unmarshal([]byte(tags), &t.Tags); err != nil {
		return nil, fmt.Errorf("unmarshal tags: %w", err)
	}

	return &t, nil
}

// CreateTool inserts a new tool.
// Returns store.ErrAlreadyExists if the ID or slug is already taken.
func (s *Store) CreateTool(ctx context.Context, tool *domain.Tool) error {
	featuresJSON, err := json.Marshal(tool.Features)
	if err != nil {
		return fmt.Errorf("marshal features: %w", err)
	}
	tagsJSON, err := json.Marshal(tool.Tags)
	if err != nil {
		return fmt.Errorf("marshal tags: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO tools (
			id, slug, name, tagline, description, category, pricing,
			price_details, website_url, icon_color, icon_initials,
			votes, saves, views, rating, is_featured, is_new, is_trending,
			released_at, features, tags
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		tool.ID,
		tool.Slug,
		tool.Name,
		tool.Tagline,
		tool.Description,
		string(tool.Category),
		string(tool.Pricing),
		nullString(tool.PriceDetails),
		tool.WebsiteURL,
		tool.IconColor,
		tool.IconInitials,
		tool.Votes,
		tool.Saves,
		tool.Views,
		tool.Rating,
		boolToInt(tool.IsFeatured),
		boolToInt(tool.IsNew),
		boolToInt(tool.IsTrending),
		formatTime(tool.ReleasedAt),
		string(featuresJSON),
		string(tagsJSON),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetTool retrieves a tool by ID.
// Returns store.ErrNotFound if the tool does not exist.
func (s *Store) GetTool(ctx context.Context, id string) (*domain.Tool, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+toolColumns+` FROM tools WHERE id = ?`, id)

	t, err := scanTool(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// GetToolBySlug retrieves a tool by its URL slug.
// Returns store.ErrNotFound if the tool does not exist.
func (s *Store) GetToolBySlug(ctx context.Context, slug string) (*domain.Tool, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+toolColumns+` FROM tools WHERE slug = ?`, slug)

	t, err := scanTool(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// ListTools returns all tools in insertion order.
func (s *Store) ListTools(ctx context.Context) ([]*domain.Tool, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+toolColumns+` FROM tools ORDER BY rowid ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tools []*domain.Tool
	for rows.Next() {
		t, err := scanTool(rows)
		if err != nil {
			return nil, err
		}
		tools = append(tools, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tools, nil
}

// ListToolsByIDs returns the tools for the given IDs, preserving the order
// of ids. IDs that match no tool are silently dropped.
func (s *Store) ListToolsByIDs(ctx context.Context, ids []string) ([]*domain.Tool, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+toolColumns+` FROM tools WHERE id IN (`+placeholders+`)`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byID := make(map[string]*domain.Tool, len(ids))
	for rows.Next() {
		t, err := scanTool(rows)
		if err != nil {
			return nil, err
		}
		byID[t.ID] = t
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	tools := make([]*domain.Tool, 0, len(ids))
	for _, id := range ids {
		if t, ok := byID[id]; ok {
			tools = append(tools, t)
		}
	}
	return tools, nil
}

// CountTools returns the total number of tools.
func (s *Store) CountTools(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tools`).Scan(&n)
	return n, err
}

// IncrementToolViews atomically bumps the view counter.
// Returns store.ErrNotFound if the tool does not exist.
func (s *Store) IncrementToolViews(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE tools SET views = views + 1 WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// IncrementToolVotes atomically bumps the vote counter and returns the
// updated tool. Returns store.ErrNotFound if the tool does not exist.
func (s *Store) IncrementToolVotes(ctx context.Context, id string) (*domain.Tool, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE tools SET votes = votes + 1 WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, store.ErrNotFound
	}
	return s.GetTool(ctx, id)
}

// AdjustToolSaves atomically adjusts the save counter by delta, clamping
// at zero. Returns store.ErrNotFound if the tool does not exist.
func (s *Store) AdjustToolSaves(ctx context.Context, id string, delta int) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE tools SET saves = MAX(0, saves + ?) WHERE id = ?`, delta, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
