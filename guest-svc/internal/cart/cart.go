// Package cart holds the guest's pre-checkout selection and turns it into
// one order per venue.
package cart

import (
	"context"

	"resort-concierge/guest-svc/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Item is a cart line. PriceEstimate is copied from the menu when the item is
// added and is only ever used for display; orders are priced server-side.
type Item struct {
	MenuItemID    uuid.UUID       `json:"menu_item_id"`
	VenueID       uuid.UUID       `json:"venue_id"`
	Name          string          `json:"name"`
	ImageURL      string          `json:"image_url,omitempty"`
	PriceEstimate decimal.Decimal `json:"price_estimate"`
	Quantity      int             `json:"quantity"`
	Notes         string          `json:"notes,omitempty"`
}

// Cart holds at most one line per menu item.
type Cart struct {
	Items []Item `json:"items"`
}

type VenueGroup struct {
	VenueID uuid.UUID `json:"venue_id"`
	Items   []Item    `json:"items"`
}

// Store persists carts per owner. Load returns an empty cart when the owner
// has none.
type Store interface {
	Load(ctx context.Context, ownerID string) (*Cart, error)
	Save(ctx context.Context, ownerID string, c *Cart) error
	// Update applies fn to the current cart and saves the result only if no
	// other writer changed the cart in between. An error from fn aborts the
	// update and is returned as is.
	Update(ctx context.Context, ownerID string, fn func(*Cart) error) (*Cart, error)
	// LockCheckout reserves the owner's cart for one checkout and returns
	// domain.ErrCheckoutInProgress while another checkout holds it.
	LockCheckout(ctx context.Context, ownerID string) (unlock func(), err error)
}

func New() *Cart {
	return &Cart{Items: []Item{}}
}

func (c *Cart) indexOf(menuItemID uuid.UUID) int {
	for i := range c.Items {
		if c.Items[i].MenuItemID == menuItemID {
			return i
		}
	}
	return -1
}

// Quantity of the line for menuItemID, zero when there is none.
func (c *Cart) Quantity(menuItemID uuid.UUID) int {
	if i := c.indexOf(menuItemID); i >= 0 {
		return c.Items[i].Quantity
	}
	return 0
}

// AddItem merges into an existing line for the same menu item, otherwise
// appends. A non-positive quantity counts as 1. Lines never exceed
// domain.MaxQuantity.
func (c *Cart) AddItem(item Item) {
	if item.Quantity <= 0 {
		item.Quantity = 1
	}
	item.Quantity = min(item.Quantity, domain.MaxQuantity)
	if i := c.indexOf(item.MenuItemID); i >= 0 {
		c.Items[i].Quantity = min(c.Items[i].Quantity+item.Quantity, domain.MaxQuantity)
		if item.Notes != "" {
			c.Items[i].Notes = item.Notes
		}
		return
	}
	c.Items = append(c.Items, item)
}

// UpdateQuantity removes the line when quantity drops to zero or below.
func (c *Cart) UpdateQuantity(menuItemID uuid.UUID, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(menuItemID)
		return
	}
	if i := c.indexOf(menuItemID); i >= 0 {
		c.Items[i].Quantity = min(quantity, domain.MaxQuantity)
	}
}

// Subtract takes quantity off a line and removes the line once nothing is
// left. Unknown items are ignored.
func (c *Cart) Subtract(menuItemID uuid.UUID, quantity int) {
	if i := c.indexOf(menuItemID); i >= 0 {
		c.UpdateQuantity(menuItemID, c.Items[i].Quantity-quantity)
	}
}

func (c *Cart) RemoveItem(menuItemID uuid.UUID) {
	if i := c.indexOf(menuItemID); i >= 0 {
		c.Items = append(c.Items[:i], c.Items[i+1:]...)
	}
}

func (c *Cart) Clear() {
	c.Items = []Item{}
}

func (c *Cart) TotalItems() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.PriceEstimate.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// ItemsByVenue groups lines by venue. Groups appear in order of each venue's
// first line and keep their lines in cart order.
func (c *Cart) ItemsByVenue() []VenueGroup {
	var groups []VenueGroup
	index := map[uuid.UUID]int{}
	for _, item := range c.Items {
		i, ok := index[item.VenueID]
		if !ok {
			i = len(groups)
			index[item.VenueID] = i
			groups = append(groups, VenueGroup{VenueID: item.VenueID})
		}
		groups[i].Items = append(groups[i].Items, item)
	}
	return groups
}
