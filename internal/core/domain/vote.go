package domain

import (
	"time"
)

type Vote struct {
	ID           int64 `json:"id"`
	UserID       int64 `json:"user_id"`
	RestaurantID int64 `json:"restaurant_id"`
	// RestaurantName is only filled by reads that join restaurants.
	RestaurantName string    `json:"restaurant_name,omitempty"`
	VoteDate       time.Time `json:"vote_date"`
	VoteTime       time.Time `json:"vote_time"`
}

// IsNew reports whether the vote has not been persisted yet.
func (v *Vote) IsNew() bool {
	return v.ID == 0
}

type VoteDistribution struct {
	RestaurantID   int64  `json:"restaurant_id"`
	RestaurantName string `json:"restaurant_name"`
	VoteCount      int64  `json:"vote_count"`
}
