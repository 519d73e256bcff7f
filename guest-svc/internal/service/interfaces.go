package service

import (
	"context"

	"resort-concierge/guest-svc/internal/domain"

	"github.com/google/uuid"
)

type CatalogRepository interface {
	ListVenues(ctx context.Context, filter domain.VenueFilter) ([]domain.Venue, error)
	GetVenue(ctx context.Context, id uuid.UUID) (*domain.Venue, error)
	ListMenuItems(ctx context.Context, filter domain.MenuItemFilter) ([]domain.MenuItem, error)
	GetMenuItem(ctx context.Context, id uuid.UUID) (*domain.MenuItem, error)
	FindAvailableItems(ctx context.Context, venueID uuid.UUID, ids []uuid.UUID) ([]domain.MenuItem, error)
	ListServiceCategories(ctx context.Context) ([]domain.ServiceCategory, error)
}

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *domain.Order) error
	ListOrders(ctx context.Context, profileID uuid.UUID, status domain.OrderStatus) ([]domain.Order, error)
	GetOrder(ctx context.Context, profileID uuid.UUID, orderNumber string) (*domain.Order, error)
}

type NotificationRepository interface {
	CreateNotification(ctx context.Context, n *domain.Notification) error
	ListNotifications(ctx context.Context, profileID uuid.UUID, unreadOnly bool, limit int) ([]domain.Notification, error)
	MarkNotificationRead(ctx context.Context, profileID, id uuid.UUID) error
	MarkAllNotificationsRead(ctx context.Context, profileID uuid.UUID) (int64, error)
	CountUnreadNotifications(ctx context.Context, profileID uuid.UUID) (int, error)
}

type OrderEventPublisher interface {
	PublishOrderPlaced(ctx context.Context, event domain.OrderPlacedEvent) error
}

type CatalogServiceInterface interface {
	ListVenues(ctx context.Context, filter domain.VenueFilter) ([]domain.Venue, error)
	GetVenue(ctx context.Context, id uuid.UUID) (*domain.Venue, error)
	ListMenuItems(ctx context.Context, filter domain.MenuItemFilter) ([]domain.MenuItem, error)
	GetMenuItem(ctx context.Context, id uuid.UUID) (*domain.MenuItem, error)
	ListServiceCategories(ctx context.Context) ([]domain.ServiceCategory, error)
}

type OrderServiceInterface interface {
	Create(ctx context.Context, profileID uuid.UUID, req domain.CreateOrderRequest) (*domain.Order, error)
	List(ctx context.Context, profileID uuid.UUID, status domain.OrderStatus) ([]domain.Order, error)
	Get(ctx context.Context, profileID uuid.UUID, orderNumber string) (*domain.Order, error)
	QRCode(ctx context.Context, profileID uuid.UUID, orderNumber string) ([]byte, error)
}

type NotificationServiceInterface interface {
	List(ctx context.Context, profileID uuid.UUID, unreadOnly bool, limit int) ([]domain.Notification, error)
	MarkRead(ctx context.Context, profileID, id uuid.UUID) error
	MarkAllRead(ctx context.Context, profileID uuid.UUID) (int64, error)
	UnreadCount(ctx context.Context, profileID uuid.UUID) (int, error)
}

var (
	_ CatalogServiceInterface      = (*CatalogService)(nil)
	_ OrderServiceInterface        = (*OrderService)(nil)
	_ NotificationServiceInterface = (*NotificationService)(nil)
)
