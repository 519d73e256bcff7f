package storage

import (
	"context"

	"resort-concierge/analytics-svc/internal/domain"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

type RedisLeaderboard struct {
	Client *redis.Client
}

func NewRedisLeaderboard(client *redis.Client) *RedisLeaderboard {
	return &RedisLeaderboard{Client: client}
}

// Top returns the highest scored members. Members that are not UUIDs are
// skipped.
func (l *RedisLeaderboard) Top(ctx context.Context, key string, limit int) ([]domain.RankedItem, error) {
	result, err := l.Client.ZRevRangeWithScores(ctx, key, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, errors.Wrap(err, "read leaderboard")
	}

	ranked := make([]domain.RankedItem, 0, len(result))
	for _, z := range result {
		member, _ := z.Member.(string)
		id, err := uuid.Parse(member)
		if err != nil {
			continue
		}
		ranked = append(ranked, domain.RankedItem{MenuItemID: id, Quantity: int64(z.Score)})
	}
	return ranked, nil
}
