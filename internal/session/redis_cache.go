package session

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"pancake-service/internal/domain/shows"
)

const redisOpTimeout = 2 * time.Second

type redisEntry struct {
	MarketID string       `json:"market_id"`
	Shows    []shows.Show `json:"shows"`
}

// RedisCache shares the session cache through Redis so multiple processes
// serve the same browsing session. Same wholesale-replacement semantics as
// MemoryCache; the TTL bounds how long a stale session lingers.
type RedisCache struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewRedisCache constructs a RedisCache storing the single live entry under key.
func NewRedisCache(client *redis.Client, key string, ttl time.Duration) *RedisCache {
	return &RedisCache{
		client: client,
		key:    key,
		ttl:    ttl,
	}
}

func (c *RedisCache) Get(marketID string) ([]shows.Show, bool) {
	entry, ok := c.load()
	if !ok || entry.MarketID != marketID {
		return nil, false
	}
	return entry.Shows, true
}

func (c *RedisCache) Put(marketID string, list []shows.Show) {
	if list == nil {
		list = []shows.Show{}
	}
	raw, err := json.Marshal(redisEntry{MarketID: marketID, Shows: list})
	if err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()
	c.client.Set(ctx, c.key, raw, c.ttl)
}

func (c *RedisCache) Clear() {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()
	c.client.Del(ctx, c.key)
}

func (c *RedisCache) ShouldRefetch(marketID string) bool {
	entry, ok := c.load()
	return !ok || entry.MarketID != marketID
}

func (c *RedisCache) load() (redisEntry, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	raw, err := c.client.Get(ctx, c.key).Bytes()
	if err != nil {
		return redisEntry{}, false
	}
	var entry redisEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return redisEntry{}, false
	}
	return entry, true
}
