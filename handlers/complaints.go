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

// CreateComplaint files a new complaint
func CreateComplaint(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req struct {
		Subject     string  `json:"subject" binding:"required"`
		Description string  `json:"description" binding:"required"`
		ImageURL    *string `json:"image_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	complaintID := uuid.New()
	_, err := DB.Exec(
		`INSERT INTO complaints (id, user_id, subject, description, image_url, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		complaintID, userID, req.Subject, req.Description, req.ImageURL,
		string(models.ComplaintPending), time.Now().UTC(),
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save complaint"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"complaint_id": complaintID,
		"status":       models.ComplaintPending,
	})
}

// GetMyComplaints lists the user's complaints, newest first
func GetMyComplaints(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	complaints, err := queryComplaints(`WHERE user_id = $1`, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch complaints"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"complaints": complaints, "count": len(complaints)})
}

// UploadComplaintImage uploads a complaint photo and returns its hosted URL
func UploadComplaintImage(c *gin.Context) {
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

	result, err := services.Cloudinary.UploadImage(file, services.FolderComplaints)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"image_url": result.SecureURL})
}

// GetAllComplaints lists every complaint (admin)
func GetAllComplaints(c *gin.Context) {
	complaints, err := queryComplaints(``)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch complaints"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"complaints": complaints, "count": len(complaints)})
}

// RespondToComplaint sets the status and optional response text (admin)
func RespondToComplaint(c *gin.Context) {
	complaintID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid complaint id"})
		return
	}

	var req struct {
		Status        models.ComplaintStatus `json:"status" binding:"required"`
		AdminResponse *string                `json:"admin_response"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || !req.Status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	result, err := DB.Exec(
		`UPDATE complaints SET status = $1, admin_response = COALESCE($2, admin_response) WHERE id = $3`,
		string(req.Status), req.AdminResponse, complaintID,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update complaint"})
		return
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Complaint not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Complaint updated", "status": req.Status})
}

func queryComplaints(where string, args ...interface{}) ([]models.Complaint, error) {
	query := `SELECT id, user_id, subject, description, image_url, status, admin_response, created_at
	          FROM complaints ` + where + ` ORDER BY created_at DESC`

	rows, err := DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var complaints []models.Complaint
	for rows.Next() {
		var cpl models.Complaint
		var imageURL, response sql.NullString
		err := rows.Scan(&cpl.ID, &cpl.UserID, &cpl.Subject, &cpl.Description, &imageURL,
			&cpl.Status, &response, &cpl.CreatedAt)
		if err != nil {
			return nil, err
		}
		if imageURL.Valid {
			cpl.ImageURL = &imageURL.String
		}
		if response.Valid {
			cpl.AdminResponse = &response.String
		}
		complaints = append(complaints, cpl)
	}

	return complaints, rows.Err()
}
