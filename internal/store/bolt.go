package store

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"
)

const boltBucketSeen = "seen_events" // key: event id -> RFC3339 timestamp

// Bolt is the BoltDB-backed seen-event store.
type Bolt struct {
	storage *bbolt.DB
}

// NewBolt creates or opens a Bolt store at the specified path.
func NewBolt(path string) (*Bolt, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("creating state directory: %w", err)
	}

	instance, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening state file: %w", err)
	}

	if err := instance.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(boltBucketSeen))

		return err
	}); err != nil {
		_ = instance.Close()

		return nil, fmt.Errorf("initializing state file: %w", err)
	}

	return &Bolt{storage: instance}, nil
}

// Contains reports whether an event id was already recorded.
func (b *Bolt) Contains(id string) (bool, error) {
	var found bool

	err := b.storage.View(func(tx *bbolt.Tx) error {
		found = tx.Bucket([]byte(boltBucketSeen)).Get([]byte(id)) != nil

		return nil
	})

	return found, err
}

// MarkSeen records an event id. The write is committed before return.
func (b *Bolt) MarkSeen(id string) error {
	return b.storage.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(boltBucketSeen)).Put([]byte(id), []byte(seenAt()))
	})
}

// Count returns the number of recorded ids.
func (b *Bolt) Count() (int, error) {
	var n int

	err := b.storage.View(func(tx *bbolt.Tx) error {
		n = tx.Bucket([]byte(boltBucketSeen)).Stats().KeyN

		return nil
	})

	return n, err
}

// Close closes the database.
func (b *Bolt) Close() error {
	return b.storage.Close()
}
