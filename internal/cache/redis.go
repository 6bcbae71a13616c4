package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/localnerve/lessonsync/internal/logger"
)

// Redis is a Cache stored as plain string keys under a prefix, so several
// devices can share one client state.
type Redis struct {
	log     *logger.Logger
	rdb     *goredis.Client
	prefix  string
	timeout time.Duration
}

// NewRedis connects to addr and verifies the connection with a ping.
func NewRedis(addr, prefix string, log *logger.Logger) (*Redis, error) {
	if addr == "" {
		return nil, fmt.Errorf("missing redis address")
	}
	if log == nil {
		log = logger.NewNop()
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

	return &Redis{
		log:     log.With("service", "RedisCache"),
		rdb:     rdb,
		prefix:  prefix,
		timeout: 5 * time.Second,
	}, nil
}

// Get returns false for a missing key and for any redis error; errors are
// logged.
func (r *Redis) Get(key string) (string, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	v, err := r.rdb.Get(ctx, r.prefix+key).Result()
	if err != nil {
		if !errors.Is(err, goredis.Nil) {
			r.log.Warn("redis get failed", "key", key, "error", err)
		}
		return "", false
	}
	return v, true
}

func (r *Redis) Set(key, value string) error {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	if err := r.rdb.Set(ctx, r.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Close releases the connection pool.
func (r *Redis) Close() error {
	return r.rdb.Close()
}
