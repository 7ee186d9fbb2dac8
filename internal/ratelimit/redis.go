package ratelimit

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Redis 共享存储限流器，多实例部署时计数全局一致。
// INCR + EXPIRE 实现固定窗口：首次计数时给键设置窗口过期。
type Redis struct {
	client *redis.Client
}

// NewRedis 创建 Redis 限流器
func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

// Allow 实现 Limiter 接口
func (r *Redis) Allow(ctx context.Context, kind, actorKey string, limit int) (bool, int, error) {
	key := "ratelimit:" + kind + ":" + actorKey

	count, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		return false, 0, fmt.Errorf("failed to incr rate limit counter: %w", err)
	}

	if count == 1 {
		if err := r.client.Expire(ctx, key, Window).Err(); err != nil {
			return false, 0, fmt.Errorf("failed to expire rate limit counter: %w", err)
		}
	}

	if count > int64(limit) {
		return false, 0, nil
	}

	return true, limit - int(count), nil
}
