package domain

import "time"

// SavedTool links a user to a bookmarked tool.
//
// At most one relation exists per (UserID, ToolID) pair; saving twice is a
// no-op. The row's existence is the sole source of truth for "is saved".
// The relation references tools by ID only, never an embedded snapshot.
type SavedTool struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	ToolID    string    `json:"toolId"`
	CreatedAt time.Time `json:"createdAt"`
}
