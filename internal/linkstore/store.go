// Package linkstore persists link map snapshots so later runs and external
// renderers can look up where a symbol was published.
package linkstore

import (
	"context"
	"time"

	"git.home.luguber.info/inful/doclinks/internal/linkid"
)

// Run describes one persisted generation run.
type Run struct {
	ID          string
	CreatedAt   time.Time
	Entries     int
	Diagnostics int
	Metadata    map[string]string
}

// Store defines the interface for persisting and retrieving link snapshots.
type Store interface {
	// SaveSnapshot stores the link map of one run. Run IDs are unique.
	SaveSnapshot(ctx context.Context, run Run, entries []linkid.Entry) error

	// LoadSnapshot returns the entries saved for runID, ordered like linkid.Registry.Snapshot.
	LoadSnapshot(ctx context.Context, runID string) ([]linkid.Entry, error)

	// Runs lists persisted runs, newest first.
	Runs(ctx context.Context) ([]Run, error)

	// Latest returns the newest run, if any.
	Latest(ctx context.Context) (Run, bool, error)

	// Close closes the store and releases resources.
	Close() error
}
