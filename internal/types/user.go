package types

import (
	"time"
)

// User is the profile snapshot the recommendation engine works from.
// ID is always the normalized (trimmed, lowercased) string form of the
// row's UUID so it can be used directly as a map key.
type User struct {
	ID              string     `json:"id"`
	Age             *int       `json:"age,omitempty"`
	City            *string    `json:"city,omitempty"`
	PlacesVisited   []string   `json:"places_visited,omitempty"`
	RecentlyVisited []string   `json:"recently_visited,omitempty"`
	CreatedAt       *time.Time `json:"created_at,omitempty"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty"`
}
