package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaxTextLength bounds free-text order fields.
const MaxTextLength = 500

// MaxQuantity bounds a single order or cart line.
const MaxQuantity = 999

type VenueType string

const (
	VenueRestaurant  VenueType = "RESTAURANT"
	VenueBar         VenueType = "BAR"
	VenueSpa         VenueType = "SPA"
	VenueRoomService VenueType = "ROOM_SERVICE"
	VenuePool        VenueType = "POOL"
	VenueActivity    VenueType = "ACTIVITY"
)

type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusConfirmed OrderStatus = "CONFIRMED"
	StatusPreparing OrderStatus = "PREPARING"
	StatusReady     OrderStatus = "READY"
	StatusDelivered OrderStatus = "DELIVERED"
	StatusCancelled OrderStatus = "CANCELLED"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusPreparing, StatusReady, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

type NotificationType string

const (
	NotificationOrder     NotificationType = "ORDER"
	NotificationChat      NotificationType = "CHAT"
	NotificationSystem    NotificationType = "SYSTEM"
	NotificationPromotion NotificationType = "PROMOTION"
)

type ServiceCategory struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	SortOrder   int       `json:"sort_order"`
}

type Venue struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Type         VenueType  `json:"type"`
	Description  string     `json:"description"`
	Location     string     `json:"location"`
	Phone        string     `json:"phone"`
	ImageURL     string     `json:"image_url"`
	OpeningHours string     `json:"opening_hours"`
	IsActive     bool       `json:"is_active"`
	CategoryID   *uuid.UUID `json:"category_id,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

type VenueFilter struct {
	Type       VenueType
	CategoryID *uuid.UUID
}

// MenuItem.Price is the only price the order flow trusts.
type MenuItem struct {
	ID          uuid.UUID       `json:"id"`
	VenueID     uuid.UUID       `json:"venue_id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	ImageURL    string          `json:"image_url"`
	IsAvailable bool            `json:"is_available"`
	CreatedAt   time.Time       `json:"created_at"`
}

type MenuItemFilter struct {
	VenueID  *uuid.UUID
	Category string
}

type Order struct {
	ID                   uuid.UUID       `json:"id"`
	OrderNumber          string          `json:"order_number"`
	ProfileID            uuid.UUID       `json:"profile_id"`
	VenueID              uuid.UUID       `json:"venue_id"`
	VenueName            string          `json:"venue_name"`
	TotalAmount          decimal.Decimal `json:"total_amount"`
	Status               OrderStatus     `json:"status"`
	DeliveryAddress      string          `json:"delivery_address,omitempty"`
	DeliveryInstructions string          `json:"delivery_instructions,omitempty"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
	Items                []OrderItem     `json:"items"`
}

// OrderItem.Price is a snapshot of MenuItem.Price at order time and is never
// updated afterwards.
type OrderItem struct {
	ID           uuid.UUID       `json:"id"`
	MenuItemID   uuid.UUID       `json:"menu_item_id"`
	MenuItemName string          `json:"menu_item_name"`
	Quantity     int             `json:"quantity"`
	Price        decimal.Decimal `json:"price"`
	Notes        string          `json:"notes,omitempty"`
}

// OrderLine is one requested line. It deliberately has no price field.
type OrderLine struct {
	MenuItemID uuid.UUID `json:"menu_item_id"`
	Quantity   int       `json:"quantity"`
	Notes      string    `json:"notes,omitempty"`
}

type CreateOrderRequest struct {
	VenueID              uuid.UUID   `json:"venue_id"`
	Items                []OrderLine `json:"items"`
	DeliveryAddress      string      `json:"delivery_address,omitempty"`
	DeliveryInstructions string      `json:"delivery_instructions,omitempty"`
}

type Notification struct {
	ID        uuid.UUID        `json:"id"`
	ProfileID uuid.UUID        `json:"profile_id"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Type      NotificationType `json:"type"`
	Link      string           `json:"link,omitempty"`
	IsRead    bool             `json:"is_read"`
	CreatedAt time.Time        `json:"created_at"`
}

// OrderPlacedEvent is published to Kafka after an order commits.
type OrderPlacedEvent struct {
	Type        string           `json:"type"`
	OrderNumber string           `json:"order_number"`
	VenueID     uuid.UUID        `json:"venue_id"`
	ProfileID   uuid.UUID        `json:"profile_id"`
	TotalAmount decimal.Decimal  `json:"total_amount"`
	Items       []OrderEventItem `json:"items"`
	Timestamp   time.Time        `json:"timestamp"`
}

type OrderEventItem struct {
	MenuItemID uuid.UUID `json:"menu_item_id"`
	Quantity   int       `json:"quantity"`
}
