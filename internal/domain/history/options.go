// Package history defines the session history cache for recent listening reports.
package history

import "github.com/melodig/trackmix/internal/domain/types"

// Option applies a configuration option to the in-memory cache.
type Option func(*inMemoryCache)

// WithInitialCapacity pre-sizes the backing map for an expected user count.
func WithInitialCapacity(capacity int) Option {
	return func(c *inMemoryCache) {
		if capacity > 0 {
			c.entries = make(map[types.UserID][]types.TrackID, capacity)
		}
	}
}
