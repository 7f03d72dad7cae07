// Package history defines the session history cache for recent listening reports.
package history

import (
	"context"
	"sync"

	"github.com/melodig/trackmix/internal/domain/types"
)

// Cache stores the most recent listening report per user. A report replaces
// any previous entry wholesale; entries never expire on their own.
type Cache interface {
	// Set replaces the user's history with trackIDs. The latest report is
	// authoritative and total.
	Set(ctx context.Context, userID types.UserID, trackIDs []types.TrackID) error

	// Get returns the user's reported history, empty if absent.
	Get(ctx context.Context, userID types.UserID) ([]types.TrackID, error)

	// Clear removes the user's entry. Returns false if no entry existed;
	// clearing an absent user is not an error.
	Clear(ctx context.Context, userID types.UserID) (bool, error)

	// Size returns the number of users with a history entry.
	Size(ctx context.Context) int
}

// inMemoryCache implements Cache with a mutex-guarded map.
// Concurrent Set/Clear for the same user serialize on the lock;
// readers observe either the old or the new entry, never a partial one.
type inMemoryCache struct {
	mu      sync.RWMutex
	entries map[types.UserID][]types.TrackID
}

// NewInMemoryCache creates a new in-memory session history cache.
func NewInMemoryCache(opts ...Option) Cache {
	c := &inMemoryCache{}

	for _, opt := range opts {
		opt(c)
	}

	if c.entries == nil {
		c.entries = make(map[types.UserID][]types.TrackID)
	}

	return c
}

func (c *inMemoryCache) Set(_ context.Context, userID types.UserID, trackIDs []types.TrackID) error {
	// Copy so later mutation of the caller's slice cannot leak in.
	stored := make([]types.TrackID, len(trackIDs))
	copy(stored, trackIDs)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[userID] = stored
	return nil
}

func (c *inMemoryCache) Get(_ context.Context, userID types.UserID) ([]types.TrackID, error) {
	c.mu.RLock()
	stored, ok := c.entries[userID]
	c.mu.RUnlock()

	if !ok {
		return nil, nil
	}
	out := make([]types.TrackID, len(stored))
	copy(out, stored)
	return out, nil
}

func (c *inMemoryCache) Clear(_ context.Context, userID types.UserID) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[userID]; !ok {
		return false, nil
	}
	delete(c.entries, userID)
	return true, nil
}

func (c *inMemoryCache) Size(_ context.Context) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
