// Package popularity names the Redis sorted sets that rank menu items by
// ordered quantity. Members are menu item IDs.
package popularity

import (
	"time"

	"github.com/google/uuid"
)

// DailyTTL bounds how long a per-day leaderboard is kept.
const DailyTTL = 7 * 24 * time.Hour

const dayLayout = "2006-01-02"

func VenueKey(venueID uuid.UUID) string {
	return "popular:venue:" + venueID.String()
}

// DailyKey buckets by UTC calendar day.
func DailyKey(day time.Time, venueID uuid.UUID) string {
	return "popular:daily:" + day.UTC().Format(dayLayout) + ":" + venueID.String()
}
