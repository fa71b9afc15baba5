package sqlite

import (
	"context"
	"time"

	"github.com/nabdhapp/nabdh-server/internal/domain"
	"github.com/nabdhapp/nabdh-server/internal/id"
)

// savedToolColumns is the ordered list of columns selected in saved-tool
// queries. Must match the scan order in scanSavedTool.
const savedToolColumns = `id, user_id, tool_id, created_at`

// scanSavedTool scans a sql.Row (or sql.Rows via its Scan method) into a
// domain.SavedTool.
func scanSavedTool(scanner interface{ Scan(dest ...any) error }) (*domain.SavedTool, error) {
	var st domain.SavedTool

	var createdAt string

	err := scanner.Scan(&st.ID, &st.UserID, &st.ToolID, &createdAt)
	if err != nil {
		return nil, err
	}

	st.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	return &st, nil
}

// SaveTool records a bookmark for the user. Saving an already-saved tool
// is a no-op that returns the existing relation. The bool reports whether
// a new bookmark was created.
func (s *Store) SaveTool(ctx context.Context, userID, toolID string) (*domain.SavedTool, bool, error) {
	entry := &domain.SavedTool{
		ID:        id.MustGenerate("saved"),
		UserID:    userID,
		ToolID:    toolID,
		CreatedAt: time.Now(),
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO saved_tools (id, user_id, tool_id, created_at)
		VALUES (?, ?, ?, ?)`,
		entry.ID,
		entry.UserID,
		entry.ToolID,
		formatTime(entry.CreatedAt),
	)
	if err != nil {
		return nil, false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, false, err
	}
	if n > 0 {
		return entry, true, nil
	}

	// Lost to an earlier save; hand back the row that won.
	row := s.db.QueryRowContext(ctx,
		`SELECT `+savedToolColumns+` FROM saved_tools WHERE user_id = ? AND tool_id = ?`,
		userID, toolID)
	existing, err := scanSavedTool(row)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

// UnsaveTool removes a bookmark. Returns true when a bookmark existed.
func (s *Store) UnsaveTool(ctx context.Context, userID, toolID string) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM saved_tools WHERE user_id = ? AND tool_id = ?`, userID, toolID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ListSavedToolIDs returns the user's saved tool IDs, most recently
// saved first.
func (s *Store) ListSavedToolIDs(ctx context.Context, userID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT tool_id FROM saved_tools
		WHERE user_id = ?
		ORDER BY created_at DESC, rowid DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var toolID string
		if err := rows.Scan(&toolID); err != nil {
			return nil, err
		}
		ids = append(ids, toolID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}

// IsToolSaved reports whether the user has bookmarked the tool.
func (s *Store) IsToolSaved(ctx context.Context, userID, toolID string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM saved_tools WHERE user_id = ? AND tool_id = ?`,
		userID, toolID).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
