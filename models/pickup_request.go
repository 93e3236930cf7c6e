package models

import (
	"time"

	"github.com/google/uuid"
)

// PickupRequest is a scheduled recyclable-material pickup. Materials and
// per-material weights are stored as JSON text, mirroring the metadata
// columns elsewhere; they feed the accrual rules with the scheduling bonus.
type PickupRequest struct {
	ID            uuid.UUID          `json:"pickup_id" db:"id"`
	UserID        uuid.UUID          `json:"user_id" db:"user_id"`
	Materials     []string           `json:"materials" db:"materials"`
	Quantities    map[string]float64 `json:"quantities" db:"quantities"`
	TotalAmount   float64            `json:"total_amount" db:"total_amount"`
	PaymentMethod string             `json:"payment_method" db:"payment_method"`
	PickupDate    string             `json:"pickup_date" db:"pickup_date"`
	PickupTime    string             `json:"pickup_time" db:"pickup_time"`
	PickupAddress string             `json:"pickup_address" db:"pickup_address"`
	Status        SubmissionStatus   `json:"status" db:"status"`
	CreatedAt     time.Time          `json:"created_at" db:"created_at"`
}

func (PickupRequest) TableName() string {
	return "pickup_requests"
}

func (PickupRequest) CreateTableSQL() string {
	return `
	CREATE TABLE IF NOT EXISTS pickup_requests (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES user_profiles(user_id) ON DELETE CASCADE,
		materials TEXT NOT NULL DEFAULT '[]',
		quantities TEXT NOT NULL DEFAULT '{}',
		total_amount DOUBLE PRECISION NOT NULL DEFAULT 0,
		payment_method TEXT,
		pickup_date TEXT,
		pickup_time TEXT,
		pickup_address TEXT,
		status TEXT NOT NULL DEFAULT 'scheduled',
		created_at TIMESTAMP NOT NULL
	);`
}
