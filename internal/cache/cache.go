// README: Time-bounded key/value cache contract for expensive external lookups.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque payloads under caller-derived keys with a per-entry TTL.
// Keys must be built from the fields that determine result identity only;
// anything that belongs to the cached payload has no business in the key.
//
// Expiry is lazy: an expired entry simply behaves as absent on Get and is
// eligible for overwrite. There is no background sweep.
type Cache interface {
	// Get returns the payload stored under key, or false when the key is
	// absent or expired. Backend failures are treated as a miss.
	Get(ctx context.Context, key string) ([]byte, bool)

	// Set stores value under key for the given TTL, overwriting any
	// previous entry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
}
