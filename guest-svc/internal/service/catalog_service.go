package service

import (
	"context"

	"resort-concierge/guest-svc/internal/domain"

	"github.com/google/uuid"
)

type CatalogService struct {
	repo CatalogRepository
}

func NewCatalogService(repo CatalogRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

func (s *CatalogService) ListVenues(ctx context.Context, filter domain.VenueFilter) ([]domain.Venue, error) {
	return s.repo.ListVenues(ctx, filter)
}

func (s *CatalogService) GetVenue(ctx context.Context, id uuid.UUID) (*domain.Venue, error) {
	return s.repo.GetVenue(ctx, id)
}

// ListMenuItems lists a venue's menu. The venue must be active.
func (s *CatalogService) ListMenuItems(ctx context.Context, filter domain.MenuItemFilter) ([]domain.MenuItem, error) {
	if filter.VenueID != nil {
		if _, err := s.repo.GetVenue(ctx, *filter.VenueID); err != nil {
			return nil, err
		}
	}
	return s.repo.ListMenuItems(ctx, filter)
}

func (s *CatalogService) GetMenuItem(ctx context.Context, id uuid.UUID) (*domain.MenuItem, error) {
	return s.repo.GetMenuItem(ctx, id)
}

func (s *CatalogService) ListServiceCategories(ctx context.Context) ([]domain.ServiceCategory, error) {
	return s.repo.ListServiceCategories(ctx)
}
