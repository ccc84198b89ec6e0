// README: Process-wide FAQ cache: lazy single-flight population with a shared Redis copy.
package faq

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const DefaultRedisKey = "tripchat:faq:content"

// Cache loads FAQ content once per process and serves the same copy
// afterwards. When a Redis client is set, the content is shared between
// replicas for ttl so they do not all hit the source.
type Cache struct {
	source Provider
	rdb    *redis.Client
	key    string
	ttl    time.Duration
	log    *zap.Logger

	group   singleflight.Group
	mu      sync.RWMutex
	loaded  bool
	content string
}

func NewCache(source Provider, rdb *redis.Client, ttl time.Duration, log *zap.Logger) *Cache {
	if log == nil {
		log = zap.NewNop()
	}
	return &Cache{source: source, rdb: rdb, key: DefaultRedisKey, ttl: ttl, log: log}
}

// NewContent builds the FAQ provider for the configured sources, tried in
// order behind a Cache. It returns nil when no source is configured, which
// answers without company information instead of failing every load.
func NewContent(sources []Provider, rdb *redis.Client, ttl time.Duration, log *zap.Logger) Provider {
	if len(sources) == 0 {
		return nil
	}
	return NewCache(FirstOf(sources...), rdb, ttl, log)
}

// Load returns the cached content, populating it on first use. A failed
// population is not remembered; the next call tries again.
func (c *Cache) Load(ctx context.Context) (string, error) {
	if content, ok := c.cached(); ok {
		return content, nil
	}
	v, err, _ := c.group.Do("faq", func() (any, error) {
		if content, ok := c.cached(); ok {
			return content, nil
		}
		content, err := c.populate(ctx)
		if err != nil {
			return "", err
		}
		c.mu.Lock()
		c.content, c.loaded = content, true
		c.mu.Unlock()
		return content, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (c *Cache) cached() (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.content, c.loaded
}

func (c *Cache) populate(ctx context.Context) (string, error) {
	if c.rdb != nil {
		shared, err := c.rdb.Get(ctx, c.key).Result()
		switch {
		case err == nil:
			c.log.Debug("faq content from redis", zap.Int("bytes", len(shared)))
			return shared, nil
		case !errors.Is(err, redis.Nil):
			c.log.Warn("faq redis read failed", zap.Error(err))
		}
	}

	content, err := c.source.Load(ctx)
	if err != nil {
		return "", err
	}
	c.log.Info("faq content loaded", zap.Int("bytes", len(content)))

	if c.rdb != nil {
		if err := c.rdb.Set(ctx, c.key, content, c.ttl).Err(); err != nil {
			c.log.Warn("faq redis write failed", zap.Error(err))
		}
	}
	return content, nil
}
