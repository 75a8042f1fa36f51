package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/deskshell/deskshell/internal/application/port"
	"github.com/deskshell/deskshell/internal/logging"
)

type windowStateRepo struct {
	db *sql.DB
}

// NewWindowStateRepository creates a window state store backed by the given
// database.
func NewWindowStateRepository(db *sql.DB) port.WindowStateStore {
	return &windowStateRepo{db: db}
}

// Load returns the snapshot for a window id, or nil when none exists.
func (r *windowStateRepo) Load(ctx context.Context, windowID string) (*port.WindowSnapshot, error) {
	const query = `SELECT last_url, width, height FROM window_state WHERE window_id = ?`

	snapshot := port.WindowSnapshot{WindowID: windowID}
	err := r.db.QueryRowContext(ctx, query, windowID).
		Scan(&snapshot.LastURL, &snapshot.Width, &snapshot.Height)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load window state %q: %w", windowID, err)
	}

	return &snapshot, nil
}

// Save inserts or replaces the snapshot for its window id.
func (r *windowStateRepo) Save(ctx context.Context, snapshot port.WindowSnapshot) error {
	log := logging.FromContext(ctx)

	const query = `
		INSERT INTO window_state (window_id, last_url, width, height, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(window_id) DO UPDATE SET
			last_url = excluded.last_url,
			width = excluded.width,
			height = excluded.height,
			updated_at = excluded.updated_at`

	_, err := r.db.ExecContext(ctx, query,
		snapshot.WindowID, snapshot.LastURL, snapshot.Width, snapshot.Height, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save window state %q: %w", snapshot.WindowID, err)
	}

	log.Debug().
		Str("window_id", snapshot.WindowID).
		Str("last_url", snapshot.LastURL).
		Msg("window state saved")

	return nil
}
