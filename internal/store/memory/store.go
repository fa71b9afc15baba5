// Package memory provides an in-memory Store implementation seeded from a
// JSON catalog file. It backs local development and tests; nothing
// survives a restart except what the seed file provides.
package memory

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/nabdhapp/nabdh-server/internal/domain"
	"github.com/nabdhapp/nabdh-server/internal/id"
	"github.com/nabdhapp/nabdh-server/internal/store"
)

// Store holds all state behind a single RWMutex. Tools keep insertion
// order; lookups go through the id and slug indexes.
type Store struct {
	logger *slog.Logger

	mu           sync.RWMutex
	tools        []*domain.Tool
	toolsByID    map[string]*domain.Tool
	toolsBySlug  map[string]*domain.Tool
	users        map[string]*domain.User
	usersByLower map[string]*domain.User
	sessions     map[string]*domain.Session
	saved        map[string][]*domain.SavedTool // userID -> newest first
	stopWatch    func()
	onReload     func()
}

// New creates an empty in-memory store.
func New(logger *slog.Logger) *Store {
	return &Store{
		logger:       logger,
		toolsByID:    make(map[string]*domain.Tool),
		toolsBySlug:  make(map[string]*domain.Tool),
		users:        make(map[string]*domain.User),
		usersByLower: make(map[string]*domain.User),
		sessions:     make(map[string]*domain.Session),
		saved:        make(map[string][]*domain.SavedTool),
	}
}

// OnReload registers a callback invoked after the watcher reloads the
// catalog. The callback runs outside the store lock, so it may call
// back into the store.
func (s *Store) OnReload(fn func()) {
	s.mu.Lock()
	s.onReload = fn
	s.mu.Unlock()
}

// Close stops the seed watcher if one is running.
func (s *Store) Close() error {
	s.mu.Lock()
	stop := s.stopWatch
	s.stopWatch = nil
	s.mu.Unlock()
	if stop != nil {
		stop()
	}
	return nil
}

// Users

func (s *Store) CreateUser(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lower := strings.ToLower(user.Username)
	if _, ok := s.users[user.ID]; ok {
		return store.ErrAlreadyExists
	}
	if _, ok := s.usersByLower[lower]; ok {
		return store.ErrAlreadyExists
	}

	u := *user
	s.users[u.ID] = &u
	s.usersByLower[lower] = &u
	return nil
}

func (s *Store) GetUser(_ context.Context, id string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (s *Store) GetUserByUsername(_ context.Context, username string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.usersByLower[strings.ToLower(strings.TrimSpace(username))]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (s *Store) CountUsers(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users), nil
}

// Sessions

func (s *Store) CreateSession(_ context.Context, session *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := *session
	s.sessions[sess.ID] = &sess
	return nil
}

func (s *Store) GetSession(_ context.Context, id string) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := *sess
	return &copied, nil
}

func (s *Store) TouchSession(_ context.Context, id string, seenAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return store.ErrNotFound
	}
	sess.Touch(seenAt)
	return nil
}

func (s *Store) DeleteSession(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

func (s *Store) DeleteExpiredSessions(_ context.Context, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int
	for id, sess := range s.sessions {
		if sess.IsExpired(now) {
			delete(s.sessions, id)
			n++
		}
	}
	return n, nil
}

// Tools

func (s *Store) CreateTool(_ context.Context, tool *domain.Tool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertToolLocked(tool)
}

// insertToolLocked adds a tool; caller holds the write lock.
func (s *Store) insertToolLocked(tool *domain.Tool) error {
	if _, ok := s.toolsByID[tool.ID]; ok {
		return store.ErrAlreadyExists
	}
	if _, ok := s.toolsBySlug[tool.Slug]; ok {
		return store.ErrAlreadyExists
	}

	t := *tool
	s.tools = append(s.tools, &t)
	s.toolsByID[t.ID] = &t
	s.toolsBySlug[t.Slug] = &t
	return nil
}

func (s *Store) GetTool(_ context.Context, id string) (*domain.Tool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.toolsByID[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := *t
	return &copied, nil
}

func (s *Store) GetToolBySlug(_ context.Context, slug string) (*domain.Tool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.toolsBySlug[slug]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := *t
	return &copied, nil
}

func (s *Store) ListTools(_ context.Context) ([]*domain.Tool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tools := make([]*domain.Tool, len(s.tools))
	for i, t := range s.tools {
		copied := *t
		tools[i] = &copied
	}
	return tools, nil
}

func (s *Store) ListToolsByIDs(_ context.Context, ids []string) ([]*domain.Tool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tools := make([]*domain.Tool, 0, len(ids))
	for _, id := range ids {
		if t, ok := s.toolsByID[id]; ok {
			copied := *t
			tools = append(tools, &copied)
		}
	}
	return tools, nil
}

func (s *Store) CountTools(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tools), nil
}

func (s *Store) IncrementToolViews(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.toolsByID[id]
	if !ok {
		return store.ErrNotFound
	}
	t.Views++
	return nil
}

func (s *Store) IncrementToolVotes(_ context.Context, id string) (*domain.Tool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.toolsByID[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	t.Votes++
	copied := *t
	return &copied, nil
}

func (s *Store) AdjustToolSaves(_ context.Context, id string, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.toolsByID[id]
	if !ok {
		return store.ErrNotFound
	}
	t.Saves += delta
	if t.Saves < 0 {
		t.Saves = 0
	}
	return nil
}

// Saved tools

func (s *Store) SaveTool(_ context.Context, userID, toolID string) (*domain.SavedTool, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, st := range s.saved[userID] {
		if st.ToolID == toolID {
			existing := *st
			return &existing, false, nil
		}
	}

	entry := &domain.SavedTool{
		ID:        id.MustGenerate("saved"),
		UserID:    userID,
		ToolID:    toolID,
		CreatedAt: time.Now(),
	}
	// Newest first.
	s.saved[userID] = append([]*domain.SavedTool{entry}, s.saved[userID]...)

	out := *entry
	return &out, true, nil
}

func (s *Store) UnsaveTool(_ context.Context, userID, toolID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.saved[userID]
	for i, st := range list {
		if st.ToolID == toolID {
			s.saved[userID] = append(list[:i], list[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) ListSavedToolIDs(_ context.Context, userID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := s.saved[userID]
	ids := make([]string, len(list))
	for i, st := range list {
		ids[i] = st.ToolID
	}
	return ids, nil
}

func (s *Store) IsToolSaved(_ context.Context, userID, toolID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, st := range s.saved[userID] {
		if st.ToolID == toolID {
			return true, nil
		}
	}
	return false, nil
}
