package app

import (
	"context"
	"encoding/json"
	"time"

	"github.com/example/civictrack/internal/ports/secondary"
)

// Snapshot TTLs. Reference data barely moves, reports tolerate modest
// staleness, lists need to feel live.
const (
	catalogTTL = time.Hour
	reportTTL  = 10 * time.Minute
	listTTL    = 30 * time.Second
)

// cachedJSON is the shared cache-aside path: return the snapshot under key
// if present, otherwise fetch, store, and return. Cache failures degrade to
// a fetch; they never fail the read.
func cachedJSON[T any](ctx context.Context, cache secondary.SnapshotCache, key string, ttl time.Duration, fetch func() (T, error)) (T, error) {
	var zero T

	if raw, ok := cache.Get(ctx, key); ok {
		var value T
		if err := json.Unmarshal(raw, &value); err == nil {
			return value, nil
		}
		// Unreadable snapshot: fall through to a fetch and overwrite it.
	}

	value, err := fetch()
	if err != nil {
		return zero, err
	}

	if raw, err := json.Marshal(value); err == nil {
		cache.Set(ctx, key, raw, ttl)
	}
	return value, nil
}
