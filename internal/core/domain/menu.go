package domain

import "time"

type Menu struct {
	ID           int64      `json:"id"`
	RestaurantID int64      `json:"restaurant_id"`
	MenuDate     time.Time  `json:"menu_date"`
	Items        []MenuItem `json:"items"`
	CreatedAt    time.Time  `json:"created_at"`
}

type MenuItem struct {
	ID       int64  `json:"id"`
	MenuID   int64  `json:"menu_id"`
	DishID   int64  `json:"dish_id"`
	DishName string `json:"dish_name,omitempty"`
	// Price in the smallest currency unit.
	Price int64 `json:"price"`
}
