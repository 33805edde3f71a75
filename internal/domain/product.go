package domain

import "time"

// Product is a catalog entry. Prices are integer minor units (cents).
// Admin "deletion" clears Available instead of removing the row so that
// historical order items keep a valid product reference.
type Product struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	PriceCents  int64     `json:"price"`
	Category    string    `json:"category"`
	SerialCode  string    `json:"serialCode,omitempty"`
	Stock       int       `json:"stock"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	Available   bool      `json:"available"`
	CreatedAt   time.Time `json:"createdAt"`
}
