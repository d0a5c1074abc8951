// Package cache stores scan results between runs.
//
// Entries are keyed by scanner name and a content fingerprint, so an edited
// file simply misses and stale entries expire on their own.
package cache

import (
	"context"
	"time"
)

// TTLScan is how long a scan result stays valid.
const TTLScan = 7 * 24 * time.Hour

// Cache is a byte-oriented key/value store with expiry.
type Cache interface {
	// Get returns the value for key. A missing or expired entry is a miss,
	// not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	Close() error
}
