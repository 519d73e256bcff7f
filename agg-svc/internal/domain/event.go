package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const EventOrderPlaced = "order_placed"

// OrderPlacedEvent is the payload guest-svc publishes after an order commits.
type OrderPlacedEvent struct {
	Type        string          `json:"type"`
	OrderNumber string          `json:"order_number"`
	VenueID     uuid.UUID       `json:"venue_id"`
	ProfileID   uuid.UUID       `json:"profile_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Items       []EventItem     `json:"items"`
	Timestamp   time.Time       `json:"timestamp"`
}

type EventItem struct {
	MenuItemID uuid.UUID `json:"menu_item_id"`
	Quantity   int       `json:"quantity"`
}
