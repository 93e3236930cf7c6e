package models

import (
	"time"

	"github.com/google/uuid"
)

// SubmissionStatus covers both waste submissions and pickup requests.
type SubmissionStatus string

const (
	SubmissionScheduled SubmissionStatus = "scheduled"
	SubmissionCompleted SubmissionStatus = "completed"
	SubmissionCancelled SubmissionStatus = "cancelled"
)

func (s SubmissionStatus) Valid() bool {
	switch s {
	case SubmissionScheduled, SubmissionCompleted, SubmissionCancelled:
		return true
	}
	return false
}

// WasteSubmission is a drop-in general-waste collection request for a single
// waste type. Earns points at the base rate, without the scheduling bonus.
type WasteSubmission struct {
	ID                  uuid.UUID        `json:"waste_id" db:"id"`
	UserID              uuid.UUID        `json:"user_id" db:"user_id"`
	WasteType           string           `json:"waste_type" db:"waste_type"`
	QuantityKg          float64          `json:"quantity_kg" db:"quantity_kg"`
	PickupDate          string           `json:"pickup_date" db:"pickup_date"`
	TimeSlot            string           `json:"time_slot" db:"time_slot"`
	SpecialInstructions string           `json:"special_instructions" db:"special_instructions"`
	ImageURL            *string          `json:"image_url,omitempty" db:"image_url"`
	Status              SubmissionStatus `json:"status" db:"status"`
	CreatedAt           time.Time        `json:"created_at" db:"created_at"`
}

func (WasteSubmission) TableName() string {
	return "waste_submissions"
}

func (WasteSubmission) CreateTableSQL() string {
	return `
	CREATE TABLE IF NOT EXISTS waste_submissions (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES user_profiles(user_id) ON DELETE CASCADE,
		waste_type TEXT NOT NULL,
		quantity_kg DOUBLE PRECISION NOT NULL DEFAULT 0,
		pickup_date TEXT,
		time_slot TEXT,
		special_instructions TEXT,
		image_url TEXT,
		status TEXT NOT NULL DEFAULT 'scheduled',
		created_at TIMESTAMP NOT NULL
	);`
}
