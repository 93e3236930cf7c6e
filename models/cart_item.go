package models

import (
	"time"

	"github.com/google/uuid"
)

// CartItem is a pending fertilizer line item. TotalAmount is always
// quantity × unit price; the cart service recomputes it on every quantity
// change and it is never settable on its own.
type CartItem struct {
	ID                  uuid.UUID `json:"cart_item_id" db:"id"`
	UserID              uuid.UUID `json:"user_id" db:"user_id"`
	FertilizerID        uuid.UUID `json:"fertilizer_id" db:"fertilizer_id"`
	FertilizerName      string    `json:"fertilizer_name" db:"fertilizer_name"`
	FertilizerUnitPrice float64   `json:"fertilizer_unit_price" db:"fertilizer_unit_price"`
	FertilizerUnit      string    `json:"fertilizer_unit" db:"fertilizer_unit"`
	Quantity            int       `json:"quantity" db:"quantity"`
	TotalAmount         float64   `json:"total_amount" db:"total_amount"`
	CreatedAt           time.Time `json:"created_at" db:"created_at"`
}

func (CartItem) TableName() string {
	return "cart_items"
}

func (CartItem) CreateTableSQL() string {
	return `
	CREATE TABLE IF NOT EXISTS cart_items (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES user_profiles(user_id) ON DELETE CASCADE,
		fertilizer_id TEXT NOT NULL REFERENCES fertilizers(id),
		fertilizer_name TEXT NOT NULL,
		fertilizer_unit_price DOUBLE PRECISION NOT NULL DEFAULT 0,
		fertilizer_unit TEXT NOT NULL DEFAULT 'kg',
		quantity INTEGER NOT NULL DEFAULT 1,
		total_amount DOUBLE PRECISION NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL
	);`
}
