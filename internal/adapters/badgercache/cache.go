// Package badgercache implements the snapshot cache port on an embedded
// Badger store. Entries carry a TTL and expire on their own; write paths
// additionally drop affected prefixes after commit so readers never see a
// snapshot older than the last write.
package badgercache

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/example/civictrack/internal/ports/secondary"
)

// Cache is a best-effort snapshot cache backed by Badger. Any failure in
// the cache layer degrades to a miss; reads always have the database as
// their source of truth.
type Cache struct {
	db *badger.DB
}

// Open creates a persistent cache under dir, creating the directory if
// needed.
func Open(dir string) (*Cache, error) {
	if dir == "" {
		return nil, errors.New("cache directory is required")
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}
	return &Cache{db: db}, nil
}

// OpenInMemory creates a cache with no disk persistence.
func OpenInMemory() (*Cache, error) {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}
	return &Cache{db: db}, nil
}

// Get returns the cached snapshot for key, or ok=false on miss or expiry.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool) {
	if ctx.Err() != nil {
		return nil, false
	}

	var value []byte
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, false
	}
	return value, true
}

// Set stores a snapshot under key. A non-positive TTL stores nothing.
func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if ctx.Err() != nil || ttl <= 0 {
		return
	}

	// Best-effort: a failed write just means the next read misses.
	_ = c.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry([]byte(key), value).WithTTL(ttl)
		return txn.SetEntry(entry)
	})
}

// InvalidatePrefix drops every snapshot whose key starts with one of the
// given prefixes.
func (c *Cache) InvalidatePrefix(ctx context.Context, prefixes ...string) {
	if ctx.Err() != nil || len(prefixes) == 0 {
		return
	}

	raw := make([][]byte, len(prefixes))
	for i, p := range prefixes {
		raw[i] = []byte(p)
	}
	_ = c.db.DropPrefix(raw...)
}

// Close releases the underlying store.
func (c *Cache) Close() error {
	return c.db.Close()
}

var _ secondary.SnapshotCache = (*Cache)(nil)
