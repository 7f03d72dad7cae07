package history

import (
	"context"
	"fmt"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/melodig/trackmix/internal/domain/types"
)

// RedisCache implements Cache on a Redis server, for deployments where
// history must survive process restarts or be shared across instances.
// Entries are JSON-encoded track id lists under {prefix}{user_id}.
type RedisCache struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisCache connects to addr and verifies the connection with a ping.
func NewRedisCache(ctx context.Context, addr string, db int, keyPrefix string) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	if keyPrefix == "" {
		keyPrefix = "trackmix:history:"
	}
	return &RedisCache{client: client, keyPrefix: keyPrefix}, nil
}

func (c *RedisCache) key(userID types.UserID) string {
	return c.keyPrefix + strconv.FormatInt(userID, 10)
}

// Set replaces the user's history wholesale. No TTL: entries live until cleared.
func (c *RedisCache) Set(ctx context.Context, userID types.UserID, trackIDs []types.TrackID) error {
	data, err := json.Marshal(trackIDs)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	if err := c.client.Set(ctx, c.key(userID), data, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (c *RedisCache) Get(ctx context.Context, userID types.UserID) ([]types.TrackID, error) {
	data, err := c.client.Get(ctx, c.key(userID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}
	var trackIDs []types.TrackID
	if err := json.Unmarshal(data, &trackIDs); err != nil {
		return nil, fmt.Errorf("decode history: %w", err)
	}
	return trackIDs, nil
}

func (c *RedisCache) Clear(ctx context.Context, userID types.UserID) (bool, error) {
	removed, err := c.client.Del(ctx, c.key(userID)).Result()
	if err != nil {
		return false, fmt.Errorf("redis del: %w", err)
	}
	return removed > 0, nil
}

// Size counts history keys with a prefix scan. Informational only.
func (c *RedisCache) Size(ctx context.Context) int {
	var cursor uint64
	count := 0
	for {
		keys, next, err := c.client.Scan(ctx, cursor, c.keyPrefix+"*", 1000).Result()
		if err != nil {
			return count
		}
		count += len(keys)
		if next == 0 {
			return count
		}
		cursor = next
	}
}

// Close releases the underlying Redis connection.
func (c *RedisCache) Close() error {
	return c.client.Close()
}
