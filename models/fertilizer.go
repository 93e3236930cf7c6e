package models

import (
	"time"

	"github.com/google/uuid"
)

type Fertilizer struct {
	ID          uuid.UUID `json:"fertilizer_id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Price       float64   `json:"price" db:"price"`
	Unit        string    `json:"unit" db:"unit"` // e.g. 'kg', 'bag', 'liter'
	ImageURL    *string   `json:"image_url,omitempty" db:"image_url"`
	Available   bool      `json:"available" db:"available"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

func (Fertilizer) TableName() string {
	return "fertilizers"
}

func (Fertilizer) CreateTableSQL() string {
	return `
	CREATE TABLE IF NOT EXISTS fertilizers (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT,
		price DOUBLE PRECISION NOT NULL DEFAULT 0,
		unit TEXT NOT NULL DEFAULT 'kg',
		image_url TEXT,
		available BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMP NOT NULL
	);`
}
