// Package store defines the persistence interface for the Nabdh server.
package store

import (
	"context"
	"time"

	"github.com/nabdhapp/nabdh-server/internal/domain"
)

// Store defines the interface for all persistence operations.
type Store interface {
	// Lifecycle
	Close() error

	// Users
	CreateUser(ctx context.Context, user *domain.User) error
	GetUser(ctx context.Context, id string) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	CountUsers(ctx context.Context) (int, error)

	// Auth sessions
	CreateSession(ctx context.Context, session *domain.Session) error
	GetSession(ctx context.Context, id string) (*domain.Session, error)
	TouchSession(ctx context.Context, id string, seenAt time.Time) error
	DeleteSession(ctx context.Context, id string) error
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int, error)

	// Tools
	CreateTool(ctx context.Context, tool *domain.Tool) error
	GetTool(ctx context.Context, id string) (*domain.Tool, error)
	GetToolBySlug(ctx context.Context, slug string) (*domain.Tool, error)
	ListTools(ctx context.Context) ([]*domain.Tool, error)
	ListToolsByIDs(ctx context.Context, ids []string) ([]*domain.Tool, error)
	CountTools(ctx context.Context) (int, error)
	IncrementToolViews(ctx context.Context, id string) error
	IncrementToolVotes(ctx context.Context, id string) (*domain.Tool, error)
	AdjustToolSaves(ctx context.Context, id string, delta int) error

	// Saved tools. SaveTool returns the relation record (the existing one
	// when the tool was already saved) and whether a new row was created.
	SaveTool(ctx context.Context, userID, toolID string) (*domain.SavedTool, bool, error)
	UnsaveTool(ctx context.Context, userID, toolID string) (bool, error)
	ListSavedToolIDs(ctx context.Context, userID string) ([]string, error)
	IsToolSaved(ctx context.Context, userID, toolID string) (bool, error)
}
