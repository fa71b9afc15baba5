package store

import "errors"

// Sentinel errors returned by Store implementations. The service layer
// translates these into user-facing domain errors; handlers never see
// them directly.
var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)
