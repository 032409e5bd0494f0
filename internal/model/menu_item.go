package model

import "time"

// MenuItem mirrors the 'menu_items' table.  Each item belongs to exactly one
// restaurant and is removed together with it (ON DELETE CASCADE semantics are
// enforced by the repository, not assumed from the schema).
type MenuItem struct {
	ID           uint64    `json:"id"`
	RestaurantID uint64    `json:"restaurant_id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Price        float64   `json:"price"`
	Category     string    `json:"category"`
	ImageURL     *string   `json:"image_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
