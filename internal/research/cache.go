package research

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/erazemk/camorent/internal/metrics"
	"github.com/erazemk/camorent/internal/model"
)

// Store keeps encoded research results.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// MemoryStore is an in-process Store.
type MemoryStore struct {
	c *cache.Cache
}

// NewMemoryStore returns a store that purges expired entries every cleanup.
func NewMemoryStore(ttl, cleanup time.Duration) *MemoryStore {
	return &MemoryStore{c: cache.New(ttl, cleanup)}
}

// Get implements Store.
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := s.c.Get(key)
	if !ok {
		return nil, false, nil
	}
	b, ok := v.([]byte)
	return b, ok, nil
}

// Set implements Store.
func (s *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	s.c.Set(key, value, ttl)
	return nil
}

// RedisStore is a Store shared between instances through Redis.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore returns a store writing keys under prefix.
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

// Get implements Store.
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}
	return b, true, nil
}

// Set implements Store.
func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.prefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Cached remembers results of Next per normalized query and collapses
// concurrent lookups of the same query into one. Failed lookups are not
// remembered.
type Cached struct {
	Next    Researcher
	Store   Store
	TTL     time.Duration
	Metrics *metrics.Metrics

	group singleflight.Group
}

// Research implements Researcher.
func (c *Cached) Research(ctx context.Context, query string) model.ResearchResult {
	key := cacheKey(query)
	if key == "" {
		return c.Next.Research(ctx, query)
	}

	if res, ok := c.lookup(ctx, key); ok {
		c.Metrics.CacheLookup(true)
		return res
	}
	c.Metrics.CacheLookup(false)

	// The shared lookup outlives any one caller; each caller still stops
	// waiting when its own context ends.
	shared := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (any, error) {
		res := c.Next.Research(shared, query)
		if res.Confidence > ConfidenceFailed {
			c.store(shared, key, res)
		}
		return res, nil
	})

	select {
	case <-ctx.Done():
		return FailedResult(ctx.Err())
	case r := <-ch:
		return r.Val.(model.ResearchResult)
	}
}

func (c *Cached) lookup(ctx context.Context, key string) (model.ResearchResult, bool) {
	raw, ok, err := c.Store.Get(ctx, key)
	if err != nil {
		slog.Warn("research cache read failed", "key", key, "error", err)
		return model.ResearchResult{}, false
	}
	if !ok {
		return model.ResearchResult{}, false
	}
	var res model.ResearchResult
	if err := json.Unmarshal(raw, &res); err != nil {
		slog.Warn("dropping corrupt research cache entry", "key", key, "error", err)
		return model.ResearchResult{}, false
	}
	return res, true
}

func (c *Cached) store(ctx context.Context, key string, res model.ResearchResult) {
	raw, err := json.Marshal(res)
	if err != nil {
		slog.Warn("encoding research result", "key", key, "error", err)
		return
	}
	if err := c.Store.Set(ctx, key, raw, c.TTL); err != nil {
		slog.Warn("research cache write failed", "key", key, "error", err)
	}
}

func cacheKey(query string) string {
	return strings.Join(strings.Fields(strings.ToLower(query)), " ")
}
