package cart

import (
	"testing"

	"resort-concierge/guest-svc/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(venue uuid.UUID, price string, qty int) Item {
	return Item{
		MenuItemID:    uuid.New(),
		VenueID:       venue,
		Name:          "item",
		PriceEstimate: decimal.RequireFromString(price),
		Quantity:      qty,
	}
}

func TestCart_AddItemMergesSameMenuItem(t *testing.T) {
	c := New()
	item := line(uuid.New(), "4.50", 0)

	c.AddItem(item)
	c.AddItem(item)

	require.Len(t, c.Items, 1)
	assert.Equal(t, 2, c.Items[0].Quantity)

	item.Quantity = 3
	item.Notes = "no sugar"
	c.AddItem(item)

	require.Len(t, c.Items, 1)
	assert.Equal(t, 5, c.Items[0].Quantity)
	assert.Equal(t, "no sugar", c.Items[0].Notes)
}

func TestCart_UpdateQuantity(t *testing.T) {
	tests := []struct {
		name      string
		quantity  int
		wantLines int
		wantItems int
		wantTotal string
	}{
		{name: "set", quantity: 4, wantLines: 2, wantItems: 5, wantTotal: "22.00"},
		{name: "zero removes", quantity: 0, wantLines: 1, wantItems: 1, wantTotal: "2.00"},
		{name: "negative removes", quantity: -1, wantLines: 1, wantItems: 1, wantTotal: "2.00"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			c := New()
			target := line(uuid.New(), "5.00", 1)
			c.AddItem(target)
			c.AddItem(line(uuid.New(), "2.00", 1))

			c.UpdateQuantity(target.MenuItemID, testCase.quantity)

			assert.Len(t, c.Items, testCase.wantLines)
			assert.Equal(t, testCase.wantItems, c.TotalItems())
			assert.Equal(t, testCase.wantTotal, c.TotalPrice().StringFixed(2))
		})
	}
}

func TestCart_UpdateQuantityUnknownItemIsNoop(t *testing.T) {
	c := New()
	c.AddItem(line(uuid.New(), "1.00", 2))

	c.UpdateQuantity(uuid.New(), 7)

	assert.Equal(t, 2, c.TotalItems())
}

func TestCart_RemoveAndClear(t *testing.T) {
	c := New()
	a := line(uuid.New(), "1.00", 1)
	b := line(uuid.New(), "3.00", 2)
	c.AddItem(a)
	c.AddItem(b)

	c.RemoveItem(a.MenuItemID)
	require.Len(t, c.Items, 1)
	assert.Equal(t, b.MenuItemID, c.Items[0].MenuItemID)

	c.RemoveItem(uuid.New())
	assert.Len(t, c.Items, 1)

	c.Clear()
	assert.Empty(t, c.Items)
	assert.Zero(t, c.TotalItems())
	assert.True(t, c.TotalPrice().IsZero())
}

func TestCart_ItemsByVenuePartitionsInOrder(t *testing.T) {
	venueA, venueB, venueC := uuid.New(), uuid.New(), uuid.New()
	c := New()
	lines := []Item{
		line(venueA, "1.00", 1),
		line(venueB, "2.00", 1),
		line(venueA, "3.00", 1),
		line(venueC, "4.00", 1),
		line(venueB, "5.00", 1),
		line(venueA, "6.00", 1),
	}
	for _, l := range lines {
		c.AddItem(l)
	}

	groups := c.ItemsByVenue()

	require.Len(t, groups, 3)
	assert.Equal(t, venueA, groups[0].VenueID)
	assert.Equal(t, venueB, groups[1].VenueID)
	assert.Equal(t, venueC, groups[2].VenueID)

	total := 0
	for _, group := range groups {
		var last = -1
		for _, item := range group.Items {
			assert.Equal(t, group.VenueID, item.VenueID)
			pos := indexIn(lines, item.MenuItemID)
			assert.Greater(t, pos, last, "lines within a group keep cart order")
			last = pos
		}
		total += len(group.Items)
	}
	assert.Equal(t, len(lines), total)
}

func TestCart_ItemsByVenueEmpty(t *testing.T) {
	assert.Empty(t, New().ItemsByVenue())
}

func indexIn(items []Item, id uuid.UUID) int {
	for i, item := range items {
		if item.MenuItemID == id {
			return i
		}
	}
	return -1
}

func TestCart_QuantityIsCapped(t *testing.T) {
	c := New()
	item := line(uuid.New(), "1.00", domain.MaxQuantity)

	c.AddItem(item)
	c.AddItem(item)
	assert.Equal(t, domain.MaxQuantity, c.Quantity(item.MenuItemID))

	c.UpdateQuantity(item.MenuItemID, 1<<31)
	assert.Equal(t, domain.MaxQuantity, c.Quantity(item.MenuItemID))
	assert.Zero(t, c.Quantity(uuid.New()))
}

func TestCart_Subtract(t *testing.T) {
	c := New()
	a := line(uuid.New(), "1.00", 3)
	b := line(uuid.New(), "1.00", 1)
	c.AddItem(a)
	c.AddItem(b)

	c.Subtract(a.MenuItemID, 2)
	assert.Equal(t, 1, c.Quantity(a.MenuItemID))

	c.Subtract(b.MenuItemID, 5)
	require.Len(t, c.Items, 1)

	c.Subtract(uuid.New(), 1)
	assert.Len(t, c.Items, 1)
}
