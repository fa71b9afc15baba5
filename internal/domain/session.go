package domain

import "time"

// SessionDuration is the fixed lifetime of a login session.
// Sessions do not roll: expiry is anchored at creation time.
const SessionDuration = 7 * 24 * time.Hour

// Session maps an opaque cookie value to an authenticated user.
type Session struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	CreatedAt  time.Time `json:"created_at"`
	ExpiresAt  time.Time `json:"expires_at"`
	LastSeenAt time.Time `json:"last_seen_at"`
}

// NewSession creates a session for the user with the fixed 7-day expiry.
func NewSession(id, userID string) *Session {
	now := time.Now()
	return &Session{
		ID:         id,
		UserID:     userID,
		CreatedAt:  now,
		ExpiresAt:  now.Add(SessionDuration),
		LastSeenAt: now,
	}
}

// IsExpired reports whether the session has passed its expiry.
func (s *Session) IsExpired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// Touch updates the last-seen timestamp without extending expiry.
func (s *Session) Touch(now time.Time) {
	s.LastSeenAt = now
}
