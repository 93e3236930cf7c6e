package models

import (
	"time"

	"github.com/google/uuid"
)

// UserProfile is the auth identity plus the cached points balance. The
// points column is a denormalized sum of the user's points_transactions
// rows; the ledger service is the only writer.
type UserProfile struct {
	UserID          uuid.UUID `json:"user_id" db:"user_id"`
	Email           string    `json:"email" db:"email"`
	PasswordHash    *string   `json:"-" db:"password_hash"`
	DisplayName     string    `json:"display_name" db:"display_name"`
	Role            string    `json:"role" db:"role"`
	ProfileImageURL *string   `json:"profile_image_url,omitempty" db:"profile_image_url"`
	Points          int64     `json:"points" db:"points"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

func (UserProfile) TableName() string {
	return "user_profiles"
}

func (UserProfile) CreateTableSQL() string {
	return `
	CREATE TABLE IF NOT EXISTS user_profiles (
		user_id TEXT PRIMARY KEY,
		email TEXT UNIQUE,
		password_hash TEXT,
		display_name TEXT,
		role TEXT DEFAULT 'user',
		profile_image_url TEXT,
		points BIGINT NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL
	);`
}
