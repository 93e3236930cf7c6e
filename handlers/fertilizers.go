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

// GetFertilizers lists fertilizers. Non-admin callers only see available
// products.
func GetFertilizers(c *gin.Context) {
	query := `SELECT id, name, description, price, unit, image_url, available, created_at
	          FROM fertilizers WHERE available = TRUE ORDER BY created_at DESC`
	if c.Query("all") == "true" {
		query = `SELECT id, name, description, price, unit, image_url, available, created_at
		         FROM fertilizers ORDER BY created_at DESC`
	}

	rows, err := DB.Query(query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch fertilizers"})
		return
	}
	defer rows.Close()

	var fertilizers []models.Fertilizer
	for rows.Next() {
		var f models.Fertilizer
		var imageURL sql.NullString
		err := rows.Scan(&f.ID, &f.Name, &f.Description, &f.Price, &f.Unit, &imageURL, &f.Available, &f.CreatedAt)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan fertilizer"})
			return
		}
		if imageURL.Valid {
			f.ImageURL = &imageURL.String
		}
		fertilizers = append(fertilizers, f)
	}

	c.JSON(http.StatusOK, gin.H{"fertilizers": fertilizers, "count": len(fertilizers)})
}

// AddFertilizer creates a catalog entry (admin)
func AddFertilizer(c *gin.Context) {
	var req struct {
		Name        string  `json:"name" binding:"required"`
		Description string  `json:"description"`
		Price       float64 `json:"price" binding:"required"`
		Unit        string  `json:"unit" binding:"required"`
		ImageURL    *string `json:"image_url"`
		Available   *bool   `json:"available"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	available := true
	if req.Available != nil {
		available = *req.Available
	}

	fertilizerID := uuid.New()
	_, err := DB.Exec(
		`INSERT INTO fertilizers (id, name, description, price, unit, image_url, available, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		fertilizerID, req.Name, req.Description, req.Price, req.Unit, req.ImageURL, available, time.Now().UTC(),
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add fertilizer"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"fertilizer_id": fertilizerID})
}

// UpdateFertilizer edits a catalog entry (admin)
func UpdateFertilizer(c *gin.Context) {
	fertilizerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid fertilizer id"})
		return
	}

	var req struct {
		Name        *string  `json:"name"`
		Description *string  `json:"description"`
		Price       *float64 `json:"price"`
		Unit        *string  `json:"unit"`
		ImageURL    *string  `json:"image_url"`
		Available   *bool    `json:"available"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	var f models.Fertilizer
	var imageURL sql.NullString
	err = DB.QueryRow(
		`SELECT name, description, price, unit, image_url, available FROM fertilizers WHERE id = $1`,
		fertilizerID,
	).Scan(&f.Name, &f.Description, &f.Price, &f.Unit, &imageURL, &f.Available)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"error": "Fertilizer not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch fertilizer"})
		return
	}
	if imageURL.Valid {
		f.ImageURL = &imageURL.String
	}

	if req.Name != nil {
		f.Name = *req.Name
	}
	if req.Description != nil {
		f.Description = *req.Description
	}
	if req.Price != nil {
		f.Price = *req.Price
	}
	if req.Unit != nil {
		f.Unit = *req.Unit
	}
	if req.ImageURL != nil {
		f.ImageURL = req.ImageURL
	}
	if req.Available != nil {
		f.Available = *req.Available
	}

	_, err = DB.Exec(
		`UPDATE fertilizers SET name = $1, description = $2, price = $3, unit = $4, image_url = $5, available = $6 WHERE id = $7`,
		f.Name, f.Description, f.Price, f.Unit, f.ImageURL, f.Available, fertilizerID,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update fertilizer"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Fertilizer updated"})
}

// DeleteFertilizer removes a catalog entry (admin)
func DeleteFertilizer(c *gin.Context) {
	fertilizerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid fertilizer id"})
		return
	}

	result, err := DB.Exec(`DELETE FROM fertilizers WHERE id = $1`, fertilizerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete fertilizer"})
		return
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Fertilizer not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Fertilizer deleted"})
}

// UploadFertilizerImage uploads a product photo and returns its hosted URL
// (admin)
func UploadFertilizerImage(c *gin.Context) {
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

	result, err := services.Cloudinary.UploadImage(file, services.FolderFertilizers)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"image_url": result.SecureURL})
}
