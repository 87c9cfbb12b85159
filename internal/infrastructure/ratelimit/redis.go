// Package ratelimit 提供固定窗口限流器实现
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"pixelforge-asset-api/internal/config"
)

// RedisFixedWindow Redis 固定窗口限流器
//
// INCR + EXPIRE 实现：键在窗口内首个请求时创建并设置过期，
// 过期即窗口重置，与内存实现的首请求锚定语义一致。
type RedisFixedWindow struct {
	client *redis.Client
	limit  int
	size   time.Duration
}

// NewRedisFixedWindow 创建 Redis 固定窗口限流器
func NewRedisFixedWindow(client *redis.Client, limit int, size time.Duration) *RedisFixedWindow {
	if limit <= 0 {
		limit = 10
	}
	if size <= 0 {
		size = time.Minute
	}
	return &RedisFixedWindow{
		client: client,
		limit:  limit,
		size:   size,
	}
}

// Allow 实现 Limiter 接口
// INCR 与过期设置走同一条流水线，避免两次往返之间
// 失败后留下永不过期的计数键。
func (l *RedisFixedWindow) Allow(ctx context.Context, key string) (bool, error) {
	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	// NX：仅键无过期时设置，保持窗口锚定在首个请求
	pipe.ExpireNX(ctx, key, l.size)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}
	return incr.Val() <= int64(l.limit), nil
}

// NewRedisClient 创建 Redis 客户端并验证连接
func NewRedisClient(cfg *config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return rdb, nil
}
