package service

import (
	"context"

	"resort-concierge/guest-svc/internal/domain"

	"github.com/google/uuid"
)

const (
	DefaultPageLimit = 50
	MaxPageLimit     = 100
)

// ClampLimit applies the default page size to zero or negative limits and
// caps the rest.
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultPageLimit
	}
	if limit > MaxPageLimit {
		return MaxPageLimit
	}
	return limit
}

type NotificationService struct {
	repo NotificationRepository
}

func NewNotificationService(repo NotificationRepository) *NotificationService {
	return &NotificationService{repo: repo}
}

func (s *NotificationService) List(ctx context.Context, profileID uuid.UUID, unreadOnly bool, limit int) ([]domain.Notification, error) {
	return s.repo.ListNotifications(ctx, profileID, unreadOnly, ClampLimit(limit))
}

func (s *NotificationService) MarkRead(ctx context.Context, profileID, id uuid.UUID) error {
	return s.repo.MarkNotificationRead(ctx, profileID, id)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, profileID uuid.UUID) (int64, error) {
	return s.repo.MarkAllNotificationsRead(ctx, profileID)
}

func (s *NotificationService) UnreadCount(ctx context.Context, profileID uuid.UUID) (int, error) {
	return s.repo.CountUnreadNotifications(ctx, profileID)
}
