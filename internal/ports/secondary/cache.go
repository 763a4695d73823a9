package secondary

import (
	"context"
	"time"
)

// SnapshotCache defines the secondary port for short-lived read-model
// snapshots. The cache is best-effort: a miss or a cache-layer failure
// degrades to a direct query and never fails the read path.
type SnapshotCache interface {
	// Get returns the cached snapshot for key, or ok=false on miss.
	Get(ctx context.Context, key string) ([]byte, bool)

	// Set stores a snapshot under key with the given time-to-live.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)

	// InvalidatePrefix drops every snapshot whose key starts with one of
	// the given prefixes. Called by write paths after commit.
	InvalidatePrefix(ctx context.Context, prefixes ...string)

	// Close releases the underlying store.
	Close() error
}
