package handlers

import (
	"database/sql"
	"net/http"

	"ecorecycle-server/models"
	"ecorecycle-server/services"

	"github.com/gin-gonic/gin"
)

// GetProfile returns the authenticated user's profile. The points field is
// re-read through the ledger so the response reflects the cached balance
// even if the profile row was bootstrapped mid-flight.
func GetProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var user models.UserProfile
	query := `SELECT user_id, email, display_name, role, profile_image_url, points, created_at
	          FROM user_profiles WHERE user_id = $1`
	err := DB.QueryRow(query, userID).Scan(
		&user.UserID, &user.Email, &user.DisplayName, &user.Role,
		&user.ProfileImageURL, &user.Points, &user.CreatedAt,
	)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch profile"})
		return
	}

	user.Points = Ledger.GetUserPoints(userID)
	c.JSON(http.StatusOK, user)
}

// UpdateProfile updates the mutable profile fields
func UpdateProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req struct {
		DisplayName     *string `json:"display_name"`
		ProfileImageURL *string `json:"profile_image_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if req.DisplayName != nil {
		_, err := DB.Exec(`UPDATE user_profiles SET display_name = $1 WHERE user_id = $2`, *req.DisplayName, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
			return
		}
	}
	if req.ProfileImageURL != nil {
		_, err := DB.Exec(`UPDATE user_profiles SET profile_image_url = $1 WHERE user_id = $2`, *req.ProfileImageURL, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated"})
}

// UploadProfileImage pushes a profile photo to the image host and stores
// the returned URL
func UploadProfileImage(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
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

	result, err := services.Cloudinary.UploadImage(file, services.FolderProfiles)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
		return
	}

	_, err = DB.Exec(`UPDATE user_profiles SET profile_image_url = $1 WHERE user_id = $2`, result.SecureURL, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save image URL"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile_image_url": result.SecureURL})
}
