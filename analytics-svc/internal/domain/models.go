package domain

import (
	"errors"

	"github.com/google/uuid"
)

type Period string

const (
	PeriodToday Period = "today"
	PeriodAll   Period = "all"
)

func (p Period) Valid() bool {
	return p == PeriodToday || p == PeriodAll
}

const (
	SourceCache    = "cache"
	SourceDatabase = "database"
)

var (
	ErrInvalidPeriod = errors.New("period must be today or all")
	ErrInvalidVenue  = errors.New("venue id must be a valid UUID")
)

// RankedItem is a leaderboard entry before its name is known.
type RankedItem struct {
	MenuItemID uuid.UUID
	Quantity   int64
}

type PopularItem struct {
	MenuItemID uuid.UUID `json:"menu_item_id"`
	Name       string    `json:"name"`
	Quantity   int64     `json:"quantity"`
}

type PopularResponse struct {
	VenueID uuid.UUID     `json:"venue_id"`
	Period  Period        `json:"period"`
	Source  string        `json:"source"`
	Items   []PopularItem `json:"items"`
}
