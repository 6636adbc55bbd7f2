package redis

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/ayushlabs/ayush-backend/internal/logger"
)

// ProfileCache is a read-through cache for rendered profile documents, keyed
// by phone number. It is best-effort: every miss or redis error just falls
// back to the store.
type ProfileCache interface {
	Get(ctx context.Context, phone string) ([]byte, bool)
	Set(ctx context.Context, phone string, payload []byte)
	Invalidate(ctx context.Context, phones ...string)
	Close() error
}

type profileCache struct {
	log *logger.Logger
	rdb *goredis.Client
	ttl time.Duration
}

func NewProfileCache(log *logger.Logger) (ProfileCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &profileCache{
		log: log.With("service", "RedisProfileCache"),
		rdb: rdb,
		ttl: 5 * time.Minute,
	}, nil
}

func cacheKey(phone string) string {
	return "profile:" + phone
}

func (c *profileCache) Get(ctx context.Context, phone string) ([]byte, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, cacheKey(phone)).Bytes()
	if err != nil {
		if err != goredis.Nil {
			c.log.Warn("Profile cache read failed", "error", err)
		}
		return nil, false
	}
	return raw, true
}

func (c *profileCache) Set(ctx context.Context, phone string, payload []byte) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Set(ctx, cacheKey(phone), payload, c.ttl).Err(); err != nil {
		c.log.Warn("Profile cache write failed", "error", err)
	}
}

func (c *profileCache) Invalidate(ctx context.Context, phones ...string) {
	if c == nil || c.rdb == nil || len(phones) == 0 {
		return
	}
	keys := make([]string, 0, len(phones))
	for _, p := range phones {
		keys = append(keys, cacheKey(p))
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		c.log.Warn("Profile cache invalidation failed", "error", err)
	}
}

func (c *profileCache) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}
