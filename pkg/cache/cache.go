// Package cache stores computed paraphrase sets so repeated requests for the
// same tree skip the combinatorial expansion.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry under a directory (CLI default)
//   - [RedisCache]: a shared Redis instance (server deployments)
//   - [MongoCache]: a MongoDB collection with a TTL index
//   - [NullCache]: stores nothing (caching disabled)
//
// # Keys
//
// Keys are derived by a [Keyer] from a hash of the canonical tree string and
// every option that changes the unsampled result (methods, nested policy,
// combination cap). The sample size and seed are not part of the key: the
// full result is cached once and sampled per request.
package cache

import (
	"context"
	"time"
)

// TTLResult is the default lifetime of a cached paraphrase set.
const TTLResult = 24 * time.Hour

// Cache is a byte-oriented key-value store with per-entry expiry.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the value for key and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases resources held by the cache.
	Close() error
}
