package storage

import (
	"context"
	"time"

	"resort-concierge/agg-svc/internal/domain"
	"resort-concierge/popularity"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

type Store struct {
	rdb *redis.Client
	now func() time.Time
}

func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb, now: time.Now}
}

// RecordOrder adds each line's quantity to the venue's all-time and daily
// leaderboards in one transaction. The day comes from the event timestamp.
func (s *Store) RecordOrder(ctx context.Context, event domain.OrderPlacedEvent) error {
	at := event.Timestamp
	if at.IsZero() {
		at = s.now()
	}
	venueKey := popularity.VenueKey(event.VenueID)
	dailyKey := popularity.DailyKey(at, event.VenueID)

	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, item := range event.Items {
			if item.Quantity <= 0 {
				continue
			}
			member := item.MenuItemID.String()
			pipe.ZIncrBy(ctx, venueKey, float64(item.Quantity), member)
			pipe.ZIncrBy(ctx, dailyKey, float64(item.Quantity), member)
		}
		pipe.Expire(ctx, dailyKey, popularity.DailyTTL)
		return nil
	})
	return errors.Wrap(err, "update leaderboards")
}
