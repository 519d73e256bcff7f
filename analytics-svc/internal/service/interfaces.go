package service

import (
	"context"
	"time"

	"resort-concierge/analytics-svc/internal/domain"

	"github.com/google/uuid"
)

type AnalyticsServiceInterface interface {
	PopularItems(ctx context.Context, venueID uuid.UUID, period domain.Period, limit int) (*domain.PopularResponse, error)
}

type Leaderboard interface {
	Top(ctx context.Context, key string, limit int) ([]domain.RankedItem, error)
}

type ItemRepository interface {
	MenuItemNames(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error)
	// TopFromOrders ranks by ordered quantity; a zero since means all time.
	TopFromOrders(ctx context.Context, venueID uuid.UUID, since time.Time, limit int) ([]domain.PopularItem, error)
}

var _ AnalyticsServiceInterface = (*AnalyticsService)(nil)
