package storage

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// RedisThrottle counts sends per profile in fixed windows.
type RedisThrottle struct {
	Client *redis.Client
	Limit  int64
	Window time.Duration
}

func NewRedisThrottle(client *redis.Client, limit int64, window time.Duration) *RedisThrottle {
	return &RedisThrottle{Client: client, Limit: limit, Window: window}
}

func (t *RedisThrottle) ThrottleKey(profileID uuid.UUID) string {
	return "chat:throttle:" + profileID.String()
}

func (t *RedisThrottle) Allow(ctx context.Context, profileID uuid.UUID) (bool, error) {
	key := t.ThrottleKey(profileID)
	var incr *redis.IntCmd
	_, err := t.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, t.Window)
		return nil
	})
	if err != nil {
		return false, errors.Wrap(err, "chat throttle")
	}
	return incr.Val() <= t.Limit, nil
}
