package redisdb

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/northquant/site-backend/internal/platform/envutil"
	"github.com/northquant/site-backend/internal/platform/logger"
)

// NewFromEnv connects to Redis when REDIS_ADDR is set and returns nil
// otherwise; callers treat a nil client as "caching disabled".
func NewFromEnv(log *logger.Logger) (*goredis.Client, error) {
	addr := envutil.Str("REDIS_ADDR", "")
	if addr == "" {
		return nil, nil
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		Password:    envutil.Str("REDIS_PASSWORD", ""),
		DB:          envutil.Int("REDIS_DB", 0),
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	log.Info("redis cache connected", "addr", addr)
	return rdb, nil
}
