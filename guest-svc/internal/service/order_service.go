package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"resort-concierge/guest-svc/internal/domain"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type OrderService struct {
	orders        OrderRepository
	catalog       CatalogRepository
	notifications NotificationRepository
	publisher     OrderEventPublisher
	qr            QRGenerator
	newNumber     func() (string, error)
	logger        *log.Entry
}

func NewOrderService(
	orders OrderRepository,
	catalog CatalogRepository,
	notifications NotificationRepository,
	publisher OrderEventPublisher,
	qr QRGenerator,
	logger *log.Entry,
) *OrderService {
	return &OrderService{
		orders:        orders,
		catalog:       catalog,
		notifications: notifications,
		publisher:     publisher,
		qr:            qr,
		newNumber:     NewOrderNumber,
		logger:        logger,
	}
}

// WithOrderNumbers replaces the order number source.
func (s *OrderService) WithOrderNumbers(gen func() (string, error)) *OrderService {
	s.newNumber = gen
	return s
}

// ValidateOrderRequest checks everything that can be checked without the
// catalog. Callers run it before any write, profile creation included.
func ValidateOrderRequest(req domain.CreateOrderRequest) error {
	if req.VenueID == uuid.Nil {
		return domain.NewValidationError("venue_id", "is required")
	}
	if len(req.Items) == 0 {
		return domain.NewValidationError("items", "at least one item is required")
	}
	for i, line := range req.Items {
		field := fmt.Sprintf("items[%d]", i)
		if line.MenuItemID == uuid.Nil {
			return domain.NewValidationError(field+".menu_item_id", "is required")
		}
		if line.Quantity <= 0 {
			return domain.NewValidationError(field+".quantity", "must be greater than zero")
		}
		if line.Quantity > domain.MaxQuantity {
			return domain.NewValidationError(field+".quantity", fmt.Sprintf("must be at most %d", domain.MaxQuantity))
		}
		if utf8.RuneCountInString(line.Notes) > domain.MaxTextLength {
			return domain.NewValidationError(field+".notes", "must be at most 500 characters")
		}
	}
	if utf8.RuneCountInString(req.DeliveryAddress) > domain.MaxTextLength {
		return domain.NewValidationError("delivery_address", "must be at most 500 characters")
	}
	if utf8.RuneCountInString(req.DeliveryInstructions) > domain.MaxTextLength {
		return domain.NewValidationError("delivery_instructions", "must be at most 500 characters")
	}
	return nil
}

// Create prices the request against the live catalog and stores the order.
// Any missing or unavailable item rejects the whole order before a write.
// The notification and the order_placed event follow the commit and never
// fail the order.
func (s *OrderService) Create(ctx context.Context, profileID uuid.UUID, req domain.CreateOrderRequest) (*domain.Order, error) {
	if err := ValidateOrderRequest(req); err != nil {
		return nil, err
	}

	venue, err := s.catalog.GetVenue(ctx, req.VenueID)
	if errors.Is(err, domain.ErrVenueNotFound) {
		return nil, domain.NewValidationError("venue_id", "venue not found or inactive")
	}
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(req.Items))
	seen := make(map[uuid.UUID]bool, len(req.Items))
	for _, line := range req.Items {
		if !seen[line.MenuItemID] {
			seen[line.MenuItemID] = true
			ids = append(ids, line.MenuItemID)
		}
	}

	available, err := s.catalog.FindAvailableItems(ctx, venue.ID, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]domain.MenuItem, len(available))
	for _, item := range available {
		byID[item.ID] = item
	}
	if len(byID) < len(ids) {
		return nil, domain.ErrUnavailableItems
	}

	order := &domain.Order{
		ID:                   uuid.New(),
		ProfileID:            profileID,
		VenueID:              venue.ID,
		VenueName:            venue.Name,
		Status:               domain.StatusPending,
		DeliveryAddress:      strings.TrimSpace(req.DeliveryAddress),
		DeliveryInstructions: strings.TrimSpace(req.DeliveryInstructions),
		TotalAmount:          decimal.Zero,
		Items:                make([]domain.OrderItem, 0, len(req.Items)),
	}
	for _, line := range req.Items {
		menuItem := byID[line.MenuItemID]
		order.Items = append(order.Items, domain.OrderItem{
			ID:           uuid.New(),
			MenuItemID:   menuItem.ID,
			MenuItemName: menuItem.Name,
			Quantity:     line.Quantity,
			Price:        menuItem.Price,
			Notes:        strings.TrimSpace(line.Notes),
		})
		order.TotalAmount = order.TotalAmount.Add(menuItem.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	if err := s.insertWithUniqueNumber(ctx, order); err != nil {
		return nil, err
	}

	s.notifyPlaced(ctx, order)
	s.publishPlaced(ctx, order)
	return order, nil
}

func (s *OrderService) insertWithUniqueNumber(ctx context.Context, order *domain.Order) error {
	for attempt := 1; attempt <= maxOrderNumberTries; attempt++ {
		number, err := s.newNumber()
		if err != nil {
			return errors.Wrap(err, "generate order number")
		}
		order.OrderNumber = number

		err = s.orders.CreateOrder(ctx, order)
		if err == nil {
			return nil
		}
		if !errors.Is(err, domain.ErrDuplicateOrderNumber) {
			return err
		}
		s.logger.WithField("order_number", number).WithField("attempt", attempt).Warn("order number collision")
	}
	return errors.Wrapf(domain.ErrDuplicateOrderNumber, "no unique order number after %d attempts", maxOrderNumberTries)
}

func (s *OrderService) notifyPlaced(ctx context.Context, order *domain.Order) {
	if s.notifications == nil {
		return
	}
	n := &domain.Notification{
		ID:        uuid.New(),
		ProfileID: order.ProfileID,
		Title:     "Order placed",
		Message:   fmt.Sprintf("Your order %s at %s has been placed. Total: %s", order.OrderNumber, order.VenueName, order.TotalAmount.StringFixed(2)),
		Type:      domain.NotificationOrder,
		Link:      OrderLink(order.OrderNumber),
	}
	if err := s.notifications.CreateNotification(ctx, n); err != nil {
		s.logger.WithError(err).WithField("order_number", order.OrderNumber).Error("failed to create order notification")
	}
}

func (s *OrderService) publishPlaced(ctx context.Context, order *domain.Order) {
	if s.publisher == nil {
		return
	}
	items := make([]domain.OrderEventItem, len(order.Items))
	for i, item := range order.Items {
		items[i] = domain.OrderEventItem{MenuItemID: item.MenuItemID, Quantity: item.Quantity}
	}
	err := s.publisher.PublishOrderPlaced(ctx, domain.OrderPlacedEvent{
		Type:        "order_placed",
		OrderNumber: order.OrderNumber,
		VenueID:     order.VenueID,
		ProfileID:   order.ProfileID,
		TotalAmount: order.TotalAmount,
		Items:       items,
		Timestamp:   time.Now().UTC(),
	})
	if err != nil {
		s.logger.WithError(err).WithField("order_number", order.OrderNumber).Warn("failed to publish order event")
	}
}

func (s *OrderService) List(ctx context.Context, profileID uuid.UUID, status domain.OrderStatus) ([]domain.Order, error) {
	if status != "" && !status.Valid() {
		return nil, domain.NewValidationError("status", "unknown order status")
	}
	return s.orders.ListOrders(ctx, profileID, status)
}

func (s *OrderService) Get(ctx context.Context, profileID uuid.UUID, orderNumber string) (*domain.Order, error) {
	return s.orders.GetOrder(ctx, profileID, orderNumber)
}

// QRCode renders the order link as a PNG. Only the owner can fetch it.
func (s *OrderService) QRCode(ctx context.Context, profileID uuid.UUID, orderNumber string) ([]byte, error) {
	order, err := s.orders.GetOrder(ctx, profileID, orderNumber)
	if err != nil {
		return nil, err
	}
	return s.qr.Generate(order.OrderNumber)
}
