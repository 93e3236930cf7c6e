package models

import (
	"time"

	"github.com/google/uuid"
)

type ComplaintStatus string

const (
	ComplaintPending    ComplaintStatus = "pending"
	ComplaintInProgress ComplaintStatus = "in_progress"
	ComplaintResolved   ComplaintStatus = "resolved"
)

func (s ComplaintStatus) Valid() bool {
	switch s {
	case ComplaintPending, ComplaintInProgress, ComplaintResolved:
		return true
	}
	return false
}

type Complaint struct {
	ID            uuid.UUID       `json:"complaint_id" db:"id"`
	UserID        uuid.UUID       `json:"user_id" db:"user_id"`
	Subject       string          `json:"subject" db:"subject"`
	Description   string          `json:"description" db:"description"`
	ImageURL      *string         `json:"image_url,omitempty" db:"image_url"`
	Status        ComplaintStatus `json:"status" db:"status"`
	AdminResponse *string         `json:"admin_response,omitempty" db:"admin_response"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
}

func (Complaint) TableName() string {
	return "complaints"
}

func (Complaint) CreateTableSQL() string {
	return `
	CREATE TABLE IF NOT EXISTS complaints (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES user_profiles(user_id) ON DELETE CASCADE,
		subject TEXT NOT NULL,
		description TEXT,
		image_url TEXT,
		status TEXT NOT NULL DEFAULT 'pending',
		admin_response TEXT,
		created_at TIMESTAMP NOT NULL
	);`
}
