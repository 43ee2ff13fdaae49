// Package cache stores Pathao reference data (cities, zones, areas)
// so that repeated name-to-ID lookups do not hit the API.
//
// The package has two layers: a [Backend] that persists raw entries
// with a TTL, and a [Manager] that bulk-prefetches whole reference
// lists and keeps uppercase name indexes in memory for instant lookups.
// The SQLite backend survives application restarts; the in-memory
// backend is for tests and ephemeral use.
package cache

import (
	"context"
	"time"
)

// DefaultTTL is how long prefetched reference data stays valid.
// Cities, zones and areas change rarely, so a week is conservative.
const DefaultTTL = 7 * 24 * time.Hour

// Backend is the persistence interface for cache entries. Values are
// opaque bytes; expired entries behave as absent on read.
type Backend interface {
	// Get returns the value stored under key. The second return value
	// is false when the key is missing or expired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value under key for the given TTL. A non-positive TTL
	// falls back to the backend's default.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a single entry. Deleting a missing key is not an
	// error.
	Delete(ctx context.Context, key string) error

	// Clear removes all entries.
	Clear(ctx context.Context) error

	// Close releases any resources held by the backend.
	Close() error
}
