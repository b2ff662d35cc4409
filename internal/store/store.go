// Package store persists the set of event ids rsvpr has already RSVPed
// to, so an event is never RSVPed twice across runs.
//
// Two durable backends are provided behind the [Store] interface: BoltDB
// (default) and SQLite, selected by the state file's extension. Both
// write through a transaction before MarkSeen returns, so a crash
// mid-write never corrupts previously recorded state.
package store

import (
	"path/filepath"
	"strings"
	"time"
)

// Store records event ids that have been RSVPed.
type Store interface {
	// Contains reports whether an event id was already recorded.
	Contains(id string) (bool, error)

	// MarkSeen records an event id durably before returning.
	MarkSeen(id string) error

	// Count returns the number of recorded ids.
	Count() (int, error)

	// Close releases the underlying file.
	Close() error
}

// Open creates or opens the seen-event store at path. Files ending in
// .db or .sqlite use the SQLite backend; everything else uses BoltDB.
func Open(path string) (Store, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite":
		return NewSQLite(path)
	default:
		return NewBolt(path)
	}
}

// seenAt stamps a recorded id, kept for inspection with external tools.
func seenAt() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// DefaultFileName is the bolt state file created in the app data
// directory when no state path is configured.
const DefaultFileName = "rsvpr.bolt"
