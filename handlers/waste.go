package handlers

import (
	"database/sql"
	"net/http"
	"time"

	"ecorecycle-server/models"
	"ecorecycle-server/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CreateWasteSubmission records a general-waste collection request and then
// credits points. The submission is durable before accrual runs; a points
// failure never fails the submission.
func CreateWasteSubmission(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req struct {
		WasteType           string  `json:"waste_type" binding:"required"`
		QuantityKg          float64 `json:"quantity_kg" binding:"required"`
		PickupDate          string  `json:"pickup_date" binding:"required"`
		TimeSlot            string  `json:"time_slot" binding:"required"`
		SpecialInstructions string  `json:"special_instructions"`
		ImageURL            *string `json:"image_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	if req.QuantityKg <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must be positive"})
		return
	}

	wasteID := uuid.New()
	_, err := DB.Exec(
		`INSERT INTO waste_submissions (id, user_id, waste_type, quantity_kg, pickup_date, time_slot, special_instructions, image_url, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		wasteID, userID, req.WasteType, req.QuantityKg, req.PickupDate, req.TimeSlot,
		req.SpecialInstructions, req.ImageURL, string(models.SubmissionScheduled), time.Now().UTC(),
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save waste submission"})
		return
	}

	pointsEarned := Ledger.AwardWastePoints(userID, wasteID, req.WasteType, req.QuantityKg)

	c.JSON(http.StatusCreated, gin.H{
		"waste_id":      wasteID,
		"status":        models.SubmissionScheduled,
		"points_earned": pointsEarned,
	})
}

// GetUserWaste lists the user's waste submissions, newest first
func GetUserWaste(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	submissions, err := queryWasteSubmissions(`WHERE user_id = $1`, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch waste submissions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"submissions": submissions, "count": len(submissions)})
}

// CancelWasteSubmission marks one of the user's submissions cancelled.
// Points already earned are kept; reversal on cancellation is not defined
// business behavior.
func CancelWasteSubmission(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	wasteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid waste id"})
		return
	}

	result, err := DB.Exec(
		`UPDATE waste_submissions SET status = $1 WHERE id = $2 AND user_id = $3`,
		string(models.SubmissionCancelled), wasteID, userID,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel waste submission"})
		return
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Waste submission not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Waste submission cancelled"})
}

// DeleteWasteSubmission removes one of the user's submissions
func DeleteWasteSubmission(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	wasteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid waste id"})
		return
	}

	result, err := DB.Exec(`DELETE FROM waste_submissions WHERE id = $1 AND user_id = $2`, wasteID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete waste submission"})
		return
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Waste submission not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Waste submission deleted"})
}

// UploadWasteImage uploads a waste photo and returns its hosted URL
func UploadWasteImage(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}

	if services.Cloudinary == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Image upload is not configured"})
		return
	}

	file, _, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image file is required"})
		return
	}
	defer file.Close()

	result, err := services.Cloudinary.UploadImage(file, services.FolderWastePickups)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"image_url": result.SecureURL})
}

// GetAllWaste lists every waste submission (admin)
func GetAllWaste(c *gin.Context) {
	submissions, err := queryWasteSubmissions(``)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch waste submissions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"submissions": submissions, "count": len(submissions)})
}

// AdminUpdateWasteStatus moves a submission between scheduled, completed
// and cancelled
func AdminUpdateWasteStatus(c *gin.Context) {
	wasteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid waste id"})
		return
	}

	var req struct {
		Status models.SubmissionStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || !req.Status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	result, err := DB.Exec(`UPDATE waste_submissions SET status = $1 WHERE id = $2`, string(req.Status), wasteID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update status"})
		return
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Waste submission not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Status updated", "status": req.Status})
}

func queryWasteSubmissions(where string, args ...interface{}) ([]models.WasteSubmission, error) {
	query := `SELECT id, user_id, waste_type, quantity_kg, pickup_date, time_slot, special_instructions, image_url, status, created_at
	          FROM waste_submissions ` + where + ` ORDER BY created_at DESC`

	rows, err := DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var submissions []models.WasteSubmission
	for rows.Next() {
		var s models.WasteSubmission
		var imageURL sql.NullString
		err := rows.Scan(&s.ID, &s.UserID, &s.WasteType, &s.QuantityKg, &s.PickupDate,
			&s.TimeSlot, &s.SpecialInstructions, &imageURL, &s.Status, &s.CreatedAt)
		if err != nil {
			return nil, err
		}
		if imageURL.Valid {
			s.ImageURL = &imageURL.String
		}
		submissions = append(submissions, s)
	}

	return submissions, rows.Err()
}
