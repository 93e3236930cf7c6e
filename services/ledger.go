package services

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"ecorecycle-server/database"
	"ecorecycle-server/models"

	"github.com/google/uuid"
)

// LedgerService owns the append-only points log and the cached balance on
// user_profiles. It is the only writer of either; everything else reads.
type LedgerService struct {
	db *database.DB
}

func NewLedgerService(db *database.DB) *LedgerService {
	return &LedgerService{db: db}
}

// AddPointsTransaction appends one immutable log entry and updates the
// cached balance to max(0, balance+change) in the same database
// transaction. A missing profile is bootstrapped at zero balance rather
// than failing the accrual or redemption that triggered it.
func (s *LedgerService) AddPointsTransaction(userID uuid.UUID, pointsChange int64, txType models.TransactionType, description string, relatedID *uuid.UUID) (uuid.UUID, error) {
	if userID == uuid.Nil {
		return uuid.Nil, ErrNotAuthenticated
	}
	if !txType.Valid() {
		return uuid.Nil, fmt.Errorf("invalid transaction type %q", txType)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to begin ledger transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()

	var balance int64
	err = tx.QueryRow(`SELECT points FROM user_profiles WHERE user_id = $1`, userID).Scan(&balance)
	if err == sql.ErrNoRows {
		// Self-healing bootstrap: no profile yet means zero points
		_, err = tx.Exec(
			`INSERT INTO user_profiles (user_id, role, points, created_at) VALUES ($1, $2, 0, $3)`,
			userID, models.RoleUser, now,
		)
		balance = 0
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to read points balance: %w", err)
	}

	newBalance := balance + pointsChange
	if newBalance < 0 {
		newBalance = 0
	}

	transactionID := uuid.New()
	_, err = tx.Exec(
		`INSERT INTO points_transactions (id, user_id, points_change, type, description, related_id, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		transactionID, userID, pointsChange, string(txType), description, relatedID, now,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to record points transaction: %w", err)
	}

	_, err = tx.Exec(`UPDATE user_profiles SET points = $1 WHERE user_id = $2`, newBalance, userID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to update points balance: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return uuid.Nil, fmt.Errorf("failed to commit ledger transaction: %w", err)
	}

	return transactionID, nil
}

// GetUserPoints returns the cached balance. Any failure, including a
// missing profile, reads as zero points.
func (s *LedgerService) GetUserPoints(userID uuid.UUID) int64 {
	var balance int64
	err := s.db.QueryRow(`SELECT points FROM user_profiles WHERE user_id = $1`, userID).Scan(&balance)
	if err != nil {
		return 0
	}
	return balance
}

// GetUserPointsHistory returns the user's log entries, newest first.
func (s *LedgerService) GetUserPointsHistory(userID uuid.UUID) ([]models.PointsTransaction, error) {
	if userID == uuid.Nil {
		return nil, ErrNotAuthenticated
	}

	rows, err := s.db.Query(
		`SELECT id, user_id, points_change, type, description, related_id, created_at
		 FROM points_transactions WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query points history: %w", err)
	}
	defer rows.Close()

	var history []models.PointsTransaction
	for rows.Next() {
		var entry models.PointsTransaction
		var relatedID sql.NullString
		err := rows.Scan(&entry.ID, &entry.UserID, &entry.PointsChange, &entry.Type,
			&entry.Description, &relatedID, &entry.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan points transaction: %w", err)
		}
		if relatedID.Valid {
			if id, err := uuid.Parse(relatedID.String); err == nil {
				entry.RelatedID = &id
			}
		}
		history = append(history, entry)
	}

	return history, rows.Err()
}

// AwardWastePoints credits points for a saved waste submission. The
// submission is already durable when this runs; a ledger failure is logged
// and swallowed so it never surfaces to the submission flow. Returns the
// points awarded.
func (s *LedgerService) AwardWastePoints(userID, wasteID uuid.UUID, wasteType string, quantityKg float64) int64 {
	points := CalculateWastePoints([]string{wasteType}, map[string]float64{wasteType: quantityKg})
	if points <= 0 {
		return 0
	}

	description := fmt.Sprintf("Earned %d points for %s waste submission", points, wasteType)
	_, err := s.AddPointsTransaction(userID, points, models.TransactionEarnedWaste, description, &wasteID)
	if err != nil {
		log.Printf("points award failed for waste submission %s: %v", wasteID, err)
		return 0
	}
	return points
}

// AwardPickupPoints credits points, including the 20% scheduling bonus, for
// a saved recyclable pickup request. Same best-effort semantics as
// AwardWastePoints.
func (s *LedgerService) AwardPickupPoints(userID, pickupID uuid.UUID, materials []string, quantities map[string]float64) int64 {
	points := CalculatePickupPoints(materials, quantities)
	if points <= 0 {
		return 0
	}

	description := fmt.Sprintf("Earned %d points for scheduled recyclable pickup", points)
	_, err := s.AddPointsTransaction(userID, points, models.TransactionEarnedRecycle, description, &pickupID)
	if err != nil {
		log.Printf("points award failed for pickup %s: %v", pickupID, err)
		return 0
	}
	return points
}
