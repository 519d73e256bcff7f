package cart

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"resort-concierge/guest-svc/internal/domain"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const defaultCheckoutConcurrency = 4

type MenuItemLookup interface {
	GetMenuItem(ctx context.Context, id uuid.UUID) (*domain.MenuItem, error)
}

type OrderPlacer interface {
	Create(ctx context.Context, profileID uuid.UUID, req domain.CreateOrderRequest) (*domain.Order, error)
}

type ServiceInterface interface {
	Get(ctx context.Context, ownerID string) (*Cart, error)
	AddItem(ctx context.Context, ownerID string, menuItemID uuid.UUID, quantity int, notes string) (*Cart, error)
	UpdateQuantity(ctx context.Context, ownerID string, menuItemID uuid.UUID, quantity int) (*Cart, error)
	RemoveItem(ctx context.Context, ownerID string, menuItemID uuid.UUID) (*Cart, error)
	Clear(ctx context.Context, ownerID string) error
	Checkout(ctx context.Context, ownerID string, profileID uuid.UUID, req CheckoutRequest) (*CheckoutResult, error)
}

type CheckoutRequest struct {
	DeliveryAddress      string `json:"delivery_address,omitempty"`
	DeliveryInstructions string `json:"delivery_instructions,omitempty"`
}

type GroupFailure struct {
	VenueID uuid.UUID `json:"venue_id"`
	Items   []Item    `json:"items"`
	Reason  string    `json:"reason"`
	Err     error     `json:"-"`
}

type CheckoutResult struct {
	Orders []*domain.Order `json:"orders"`
	Failed []GroupFailure  `json:"failed"`
	Cart   *Cart           `json:"cart"`
}

func (r *CheckoutResult) Partial() bool {
	return len(r.Orders) > 0 && len(r.Failed) > 0
}

type Service struct {
	store       Store
	catalog     MenuItemLookup
	orders      OrderPlacer
	concurrency int
	logger      *log.Entry
}

func NewService(store Store, catalog MenuItemLookup, orders OrderPlacer, concurrency int, logger *log.Entry) *Service {
	if concurrency <= 0 {
		concurrency = defaultCheckoutConcurrency
	}
	return &Service{store: store, catalog: catalog, orders: orders, concurrency: concurrency, logger: logger}
}

func (s *Service) Get(ctx context.Context, ownerID string) (*Cart, error) {
	return s.store.Load(ctx, ownerID)
}

// AddItem snapshots the menu item's current name, image and price into the
// line. Unavailable items cannot be added.
func (s *Service) AddItem(ctx context.Context, ownerID string, menuItemID uuid.UUID, quantity int, notes string) (*Cart, error) {
	if menuItemID == uuid.Nil {
		return nil, domain.NewValidationError("menu_item_id", "is required")
	}
	if err := validateQuantity(quantity); err != nil {
		return nil, err
	}
	if utf8.RuneCountInString(notes) > domain.MaxTextLength {
		return nil, domain.NewValidationError("notes", "must be at most 500 characters")
	}

	item, err := s.catalog.GetMenuItem(ctx, menuItemID)
	if err != nil {
		return nil, err
	}
	if !item.IsAvailable {
		return nil, domain.ErrUnavailableItems
	}

	line := Item{
		MenuItemID:    item.ID,
		VenueID:       item.VenueID,
		Name:          item.Name,
		ImageURL:      item.ImageURL,
		PriceEstimate: item.Price,
		Quantity:      max(quantity, 1),
		Notes:         notes,
	}
	return s.store.Update(ctx, ownerID, func(c *Cart) error {
		if c.Quantity(line.MenuItemID)+line.Quantity > domain.MaxQuantity {
			return domain.NewValidationError("quantity", fmt.Sprintf("line would exceed %d", domain.MaxQuantity))
		}
		c.AddItem(line)
		return nil
	})
}

func (s *Service) UpdateQuantity(ctx context.Context, ownerID string, menuItemID uuid.UUID, quantity int) (*Cart, error) {
	if err := validateQuantity(quantity); err != nil {
		return nil, err
	}
	return s.mutate(ctx, ownerID, func(c *Cart) { c.UpdateQuantity(menuItemID, quantity) })
}

func (s *Service) RemoveItem(ctx context.Context, ownerID string, menuItemID uuid.UUID) (*Cart, error) {
	return s.mutate(ctx, ownerID, func(c *Cart) { c.RemoveItem(menuItemID) })
}

func (s *Service) Clear(ctx context.Context, ownerID string) error {
	_, err := s.mutate(ctx, ownerID, func(c *Cart) { c.Clear() })
	return err
}

func (s *Service) mutate(ctx context.Context, ownerID string, fn func(*Cart)) (*Cart, error) {
	return s.store.Update(ctx, ownerID, func(c *Cart) error {
		fn(c)
		return nil
	})
}

func validateQuantity(quantity int) error {
	if quantity > domain.MaxQuantity {
		return domain.NewValidationError("quantity", fmt.Sprintf("must be at most %d", domain.MaxQuantity))
	}
	return nil
}

// Checkout places one order per venue group. Groups are independent: a failed
// group never undoes a placed one. Only the lines of placed groups leave the
// cart; failed groups stay for a retry.
//
// Only one checkout per owner runs at a time. Placed lines are taken off the
// stored cart by quantity, so anything added while orders were in flight
// stays.
func (s *Service) Checkout(ctx context.Context, ownerID string, profileID uuid.UUID, req CheckoutRequest) (*CheckoutResult, error) {
	unlock, err := s.store.LockCheckout(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	c, err := s.store.Load(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	groups := c.ItemsByVenue()
	if len(groups) == 0 {
		return nil, domain.NewValidationError("items", "cart is empty")
	}

	orders := make([]*domain.Order, len(groups))
	errs := make([]error, len(groups))

	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i, group := range groups {
		g.Go(func() error {
			orders[i], errs[i] = s.orders.Create(ctx, profileID, orderRequest(group, req))
			return nil
		})
	}
	_ = g.Wait()

	result := &CheckoutResult{Orders: []*domain.Order{}, Failed: []GroupFailure{}, Cart: c}
	var placed []Item
	for i, group := range groups {
		if errs[i] != nil {
			result.Failed = append(result.Failed, GroupFailure{
				VenueID: group.VenueID,
				Items:   group.Items,
				Reason:  FailureReason(errs[i]),
				Err:     errs[i],
			})
			s.logger.WithError(errs[i]).WithField("venue_id", group.VenueID).Warn("checkout group failed")
			continue
		}
		result.Orders = append(result.Orders, orders[i])
		placed = append(placed, group.Items...)
	}
	if len(placed) == 0 {
		return result, nil
	}

	remaining, err := s.store.Update(ctx, ownerID, func(c *Cart) error {
		for _, item := range placed {
			c.Subtract(item.MenuItemID, item.Quantity)
		}
		return nil
	})
	if err != nil {
		s.logger.WithError(err).WithField("owner", ownerID).Error("failed to save cart after checkout")
		for _, item := range placed {
			c.Subtract(item.MenuItemID, item.Quantity)
		}
		return result, nil
	}
	result.Cart = remaining
	return result, nil
}

func orderRequest(group VenueGroup, req CheckoutRequest) domain.CreateOrderRequest {
	lines := make([]domain.OrderLine, len(group.Items))
	for i, item := range group.Items {
		lines[i] = domain.OrderLine{
			MenuItemID: item.MenuItemID,
			Quantity:   item.Quantity,
			Notes:      item.Notes,
		}
	}
	return domain.CreateOrderRequest{
		VenueID:              group.VenueID,
		Items:                lines,
		DeliveryAddress:      req.DeliveryAddress,
		DeliveryInstructions: req.DeliveryInstructions,
	}
}

// FailureReason is the caller-safe description of an order failure.
func FailureReason(err error) string {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		return ve.Error()
	case errors.Is(err, domain.ErrUnavailableItems):
		return domain.ErrUnavailableItems.Error()
	default:
		return "order could not be placed"
	}
}

var _ ServiceInterface = (*Service)(nil)
