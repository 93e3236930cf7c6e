package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"ecorecycle-server/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CreatePickupRequest records a scheduled recyclable pickup and then
// credits points with the 20% scheduling bonus. As with waste submissions,
// accrual is best-effort after the pickup is saved.
func CreatePickupRequest(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req struct {
		Materials     []string           `json:"materials" binding:"required"`
		Quantities    map[string]float64 `json:"quantities" binding:"required"`
		TotalAmount   float64            `json:"total_amount"`
		PaymentMethod string             `json:"payment_method"`
		PickupDate    string             `json:"pickup_date" binding:"required"`
		PickupTime    string             `json:"pickup_time" binding:"required"`
		PickupAddress string             `json:"pickup_address" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	if len(req.Materials) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "At least one material is required"})
		return
	}

	materialsJSON, err := json.Marshal(req.Materials)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid materials"})
		return
	}
	quantitiesJSON, err := json.Marshal(req.Quantities)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quantities"})
		return
	}

	pickupID := uuid.New()
	_, err = DB.Exec(
		`INSERT INTO pickup_requests (id, user_id, materials, quantities, total_amount, payment_method, pickup_date, pickup_time, pickup_address, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		pickupID, userID, string(materialsJSON), string(quantitiesJSON), req.TotalAmount,
		req.PaymentMethod, req.PickupDate, req.PickupTime, req.PickupAddress,
		string(models.SubmissionScheduled), time.Now().UTC(),
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save pickup request"})
		return
	}

	pointsEarned := Ledger.AwardPickupPoints(userID, pickupID, req.Materials, req.Quantities)

	c.JSON(http.StatusCreated, gin.H{
		"pickup_id":     pickupID,
		"status":        models.SubmissionScheduled,
		"points_earned": pointsEarned,
	})
}

// GetUserPickups lists the user's pickup requests, newest first
func GetUserPickups(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	pickups, err := queryPickupRequests(`WHERE user_id = $1`, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch pickups"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"pickups": pickups, "count": len(pickups)})
}

// ReschedulePickup updates the date, time or address of a scheduled pickup
func ReschedulePickup(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	pickupID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pickup id"})
		return
	}

	var req struct {
		PickupDate    *string `json:"pickup_date"`
		PickupTime    *string `json:"pickup_time"`
		PickupAddress *string `json:"pickup_address"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	var pickup models.PickupRequest
	err = DB.QueryRow(
		`SELECT pickup_date, pickup_time, pickup_address, status FROM pickup_requests WHERE id = $1 AND user_id = $2`,
		pickupID, userID,
	).Scan(&pickup.PickupDate, &pickup.PickupTime, &pickup.PickupAddress, &pickup.Status)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pickup not found"})
		return
	}
	if pickup.Status != models.SubmissionScheduled {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only scheduled pickups can be rescheduled"})
		return
	}

	if req.PickupDate != nil {
		pickup.PickupDate = *req.PickupDate
	}
	if req.PickupTime != nil {
		pickup.PickupTime = *req.PickupTime
	}
	if req.PickupAddress != nil {
		pickup.PickupAddress = *req.PickupAddress
	}

	_, err = DB.Exec(
		`UPDATE pickup_requests SET pickup_date = $1, pickup_time = $2, pickup_address = $3 WHERE id = $4 AND user_id = $5`,
		pickup.PickupDate, pickup.PickupTime, pickup.PickupAddress, pickupID, userID,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reschedule pickup"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Pickup rescheduled"})
}

// CancelPickup marks one of the user's pickups cancelled. Earned points are
// kept.
func CancelPickup(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	pickupID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pickup id"})
		return
	}

	result, err := DB.Exec(
		`UPDATE pickup_requests SET status = $1 WHERE id = $2 AND user_id = $3`,
		string(models.SubmissionCancelled), pickupID, userID,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel pickup"})
		return
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pickup not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Pickup cancelled"})
}

// DeletePickup removes one of the user's pickup requests
func DeletePickup(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	pickupID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pickup id"})
		return
	}

	result, err := DB.Exec(`DELETE FROM pickup_requests WHERE id = $1 AND user_id = $2`, pickupID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete pickup"})
		return
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pickup not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Pickup deleted"})
}

// GetAllPickups lists every pickup request (admin)
func GetAllPickups(c *gin.Context) {
	pickups, err := queryPickupRequests(``)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch pickups"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"pickups": pickups, "count": len(pickups)})
}

// AdminUpdatePickupStatus moves a pickup between scheduled, completed and
// cancelled
func AdminUpdatePickupStatus(c *gin.Context) {
	pickupID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pickup id"})
		return
	}

	var req struct {
		Status models.SubmissionStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || !req.Status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	result, err := DB.Exec(`UPDATE pickup_requests SET status = $1 WHERE id = $2`, string(req.Status), pickupID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update status"})
		return
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pickup not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Status updated", "status": req.Status})
}

func queryPickupRequests(where string, args ...interface{}) ([]models.PickupRequest, error) {
	query := `SELECT id, user_id, materials, quantities, total_amount, payment_method, pickup_date, pickup_time, pickup_address, status, created_at
	          FROM pickup_requests ` + where + ` ORDER BY created_at DESC`

	rows, err := DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pickups []models.PickupRequest
	for rows.Next() {
		var p models.PickupRequest
		var materialsJSON, quantitiesJSON string
		err := rows.Scan(&p.ID, &p.UserID, &materialsJSON, &quantitiesJSON, &p.TotalAmount,
			&p.PaymentMethod, &p.PickupDate, &p.PickupTime, &p.PickupAddress, &p.Status, &p.CreatedAt)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(materialsJSON), &p.Materials); err != nil {
			p.Materials = nil
		}
		if err := json.Unmarshal([]byte(quantitiesJSON), &p.Quantities); err != nil {
			p.Quantities = nil
		}
		pickups = append(pickups, p)
	}

	return pickups, rows.Err()
}
