package service

import (
	"context"
	"time"

	"resort-concierge/analytics-svc/internal/domain"
	"resort-concierge/popularity"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultLimit = 10
	MaxLimit     = 50
)

type AnalyticsService struct {
	board  Leaderboard
	items  ItemRepository
	logger *log.Entry
	now    func() time.Time
}

func NewAnalyticsService(board Leaderboard, items ItemRepository, logger *log.Entry) *AnalyticsService {
	return &AnalyticsService{
		board:  board,
		items:  items,
		logger: logger,
		now:    time.Now,
	}
}

// WithClock replaces the time source used to pick today's leaderboard.
func (s *AnalyticsService) WithClock(now func() time.Time) *AnalyticsService {
	s.now = now
	return s
}

// PopularItems reads the Redis leaderboard and falls back to aggregating
// order lines in Postgres when Redis is empty or unreachable.
func (s *AnalyticsService) PopularItems(ctx context.Context, venueID uuid.UUID, period domain.Period, limit int) (*domain.PopularResponse, error) {
	if period == "" {
		period = domain.PeriodAll
	}
	if !period.Valid() {
		return nil, domain.ErrInvalidPeriod
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	now := s.now().UTC()
	key := popularity.VenueKey(venueID)
	if period == domain.PeriodToday {
		key = popularity.DailyKey(now, venueID)
	}

	response := &domain.PopularResponse{VenueID: venueID, Period: period}

	ranked, err := s.board.Top(ctx, key, limit)
	if err != nil {
		s.logger.WithError(err).WithField("key", key).Warn("leaderboard unavailable, using database")
	}
	if err == nil && len(ranked) > 0 {
		items, err := s.hydrate(ctx, ranked)
		if err != nil {
			return nil, err
		}
		if len(items) > 0 {
			response.Source = domain.SourceCache
			response.Items = items
			return response, nil
		}
	}

	var since time.Time
	if period == domain.PeriodToday {
		since = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}
	items, err := s.items.TopFromOrders(ctx, venueID, since, limit)
	if err != nil {
		return nil, err
	}
	response.Source = domain.SourceDatabase
	response.Items = items
	return response, nil
}

// hydrate attaches names and drops members whose menu item no longer exists.
func (s *AnalyticsService) hydrate(ctx context.Context, ranked []domain.RankedItem) ([]domain.PopularItem, error) {
	ids := make([]uuid.UUID, len(ranked))
	for i, r := range ranked {
		ids[i] = r.MenuItemID
	}
	names, err := s.items.MenuItemNames(ctx, ids)
	if err != nil {
		return nil, err
	}

	items := make([]domain.PopularItem, 0, len(ranked))
	for _, r := range ranked {
		name, ok := names[r.MenuItemID]
		if !ok {
			continue
		}
		items = append(items, domain.PopularItem{MenuItemID: r.MenuItemID, Name: name, Quantity: r.Quantity})
	}
	return items, nil
}
