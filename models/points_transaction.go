package models

import (
	"time"

	"github.com/google/uuid"
)

// TransactionType is the closed set of reasons a points balance can change.
type TransactionType string

const (
	TransactionEarnedWaste   TransactionType = "earned_waste"
	TransactionEarnedRecycle TransactionType = "earned_recycle"
	TransactionSpentDiscount TransactionType = "spent_discount"
)

func (t TransactionType) Valid() bool {
	switch t {
	case TransactionEarnedWaste, TransactionEarnedRecycle, TransactionSpentDiscount:
		return true
	}
	return false
}

// PointsTransaction is one immutable entry in the append-only points log.
// Rows are written exactly once by the ledger service and never updated or
// deleted; the log is the authoritative history behind the cached balance.
type PointsTransaction struct {
	ID           uuid.UUID       `json:"transaction_id" db:"id"`
	UserID       uuid.UUID       `json:"user_id" db:"user_id"`
	PointsChange int64           `json:"points_change" db:"points_change"`
	Type         TransactionType `json:"type" db:"type"`
	Description  string          `json:"description" db:"description"`
	RelatedID    *uuid.UUID      `json:"related_id,omitempty" db:"related_id"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
}

func (PointsTransaction) TableName() string {
	return "points_transactions"
}

func (PointsTransaction) CreateTableSQL() string {
	return `
	CREATE TABLE IF NOT EXISTS points_transactions (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES user_profiles(user_id) ON DELETE CASCADE,
		points_change BIGINT NOT NULL,
		type TEXT NOT NULL,
		description TEXT,
		related_id TEXT,
		created_at TIMESTAMP NOT NULL
	);`
}
