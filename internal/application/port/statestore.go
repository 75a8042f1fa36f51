package port

import "context"

// WindowSnapshot is the persisted slice of one window's state.
type WindowSnapshot struct {
	WindowID string
	LastURL  string
	Width    int
	Height   int
}

// WindowStateStore persists window snapshots across application runs.
// A nil store disables persistence entirely.
type WindowStateStore interface {
	// Load returns the snapshot for the given window id, or nil if none
	// has been saved yet.
	Load(ctx context.Context, windowID string) (*WindowSnapshot, error)

	// Save inserts or replaces the snapshot for its window id.
	Save(ctx context.Context, snapshot WindowSnapshot) error
}
