package models

import (
	"time"

	"github.com/google/uuid"
)

// PurchaseStatus is the closed order-lifecycle union. Ordinary transitions
// go pending → confirmed|cancelled and confirmed → delivered; an admin may
// additionally reset any purchase back to pending.
type PurchaseStatus string

const (
	PurchasePending   PurchaseStatus = "pending"
	PurchaseConfirmed PurchaseStatus = "confirmed"
	PurchaseDelivered PurchaseStatus = "delivered"
	PurchaseCancelled PurchaseStatus = "cancelled"
)

func (s PurchaseStatus) Valid() bool {
	switch s {
	case PurchasePending, PurchaseConfirmed, PurchaseDelivered, PurchaseCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether the ordinary state machine allows moving
// from s to next. delivered and cancelled are terminal here.
func (s PurchaseStatus) CanTransitionTo(next PurchaseStatus) bool {
	switch s {
	case PurchasePending:
		return next == PurchaseConfirmed || next == PurchaseCancelled
	case PurchaseConfirmed:
		return next == PurchaseDelivered
	default:
		return false
	}
}

// AdminCanTransitionTo additionally allows resetting any purchase to
// pending, the explicit admin escape hatch.
func (s PurchaseStatus) AdminCanTransitionTo(next PurchaseStatus) bool {
	if next == PurchasePending {
		return s != PurchasePending
	}
	return s.CanTransitionTo(next)
}

// FertilizerPurchase is one order line created at checkout. A multi-item
// checkout produces one row per cart line, all written in the same
// transaction. Immutable after creation except for status transitions and
// explicit admin edits.
type FertilizerPurchase struct {
	ID              uuid.UUID      `json:"purchase_id" db:"id"`
	UserID          uuid.UUID      `json:"user_id" db:"user_id"`
	FertilizerID    uuid.UUID      `json:"fertilizer_id" db:"fertilizer_id"`
	FertilizerName  string         `json:"fertilizer_name" db:"fertilizer_name"`
	Quantity        int            `json:"quantity" db:"quantity"`
	OriginalAmount  float64        `json:"original_amount" db:"original_amount"`
	PointsDiscount  float64        `json:"points_discount" db:"points_discount"`
	TotalAmount     float64        `json:"total_amount" db:"total_amount"`
	PurchaseDate    string         `json:"purchase_date" db:"purchase_date"`
	Status          PurchaseStatus `json:"status" db:"status"`
	DeliveryAddress string         `json:"delivery_address" db:"delivery_address"`
	CustomerName    string         `json:"customer_name" db:"customer_name"`
	CustomerPhone   string         `json:"customer_phone" db:"customer_phone"`
	CustomerEmail   string         `json:"customer_email" db:"customer_email"`
	CreatedAt       time.Time      `json:"created_at" db:"created_at"`
}

func (FertilizerPurchase) TableName() string {
	return "fertilizer_purchases"
}

func (FertilizerPurchase) CreateTableSQL() string {
	return `
	CREATE TABLE IF NOT EXISTS fertilizer_purchases (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES user_profiles(user_id) ON DELETE CASCADE,
		fertilizer_id TEXT NOT NULL,
		fertilizer_name TEXT NOT NULL,
		quantity INTEGER NOT NULL DEFAULT 1,
		original_amount DOUBLE PRECISION NOT NULL DEFAULT 0,
		points_discount DOUBLE PRECISION NOT NULL DEFAULT 0,
		total_amount DOUBLE PRECISION NOT NULL DEFAULT 0,
		purchase_date TEXT,
		status TEXT NOT NULL DEFAULT 'pending',
		delivery_address TEXT,
		customer_name TEXT,
		customer_phone TEXT,
		customer_email TEXT,
		created_at TIMESTAMP NOT NULL
	);`
}
