package handlers

import (
	"database/sql"
	"net/http"

	"ecorecycle-server/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetMyPurchases lists the user's fertilizer purchases, newest first
func GetMyPurchases(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	purchases, err := queryPurchases(`WHERE user_id = $1`, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch purchases"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"purchases": purchases, "count": len(purchases)})
}

// GetAllPurchases lists every purchase, optionally filtered by status
// (admin)
func GetAllPurchases(c *gin.Context) {
	if status := c.Query("status"); status != "" {
		if !models.PurchaseStatus(status).Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status filter"})
			return
		}
		purchases, err := queryPurchases(`WHERE status = $1`, status)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch purchases"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"purchases": purchases, "count": len(purchases)})
		return
	}

	purchases, err := queryPurchases(``)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch purchases"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"purchases": purchases, "count": len(purchases)})
}

// UpdatePurchaseStatus applies a status transition (admin). Ordinary moves
// follow the pending → confirmed → delivered machine with cancellation from
// pending; admins may also reset any purchase back to pending.
func UpdatePurchaseStatus(c *gin.Context) {
	purchaseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid purchase id"})
		return
	}

	var req struct {
		Status models.PurchaseStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || !req.Status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	var current models.PurchaseStatus
	err = DB.QueryRow(`SELECT status FROM fertilizer_purchases WHERE id = $1`, purchaseID).Scan(&current)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"error": "Purchase not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch purchase"})
		return
	}

	if !current.AdminCanTransitionTo(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid status transition",
			"from":  current,
			"to":    req.Status,
		})
		return
	}

	_, err = DB.Exec(`UPDATE fertilizer_purchases SET status = $1 WHERE id = $2`, string(req.Status), purchaseID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Status updated", "status": req.Status})
}

// UpdatePurchase edits delivery and customer fields (admin)
func UpdatePurchase(c *gin.Context) {
	purchaseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid purchase id"})
		return
	}

	var req struct {
		DeliveryAddress *string `json:"delivery_address"`
		CustomerName    *string `json:"customer_name"`
		CustomerPhone   *string `json:"customer_phone"`
		CustomerEmail   *string `json:"customer_email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	var p models.FertilizerPurchase
	err = DB.QueryRow(
		`SELECT delivery_address, customer_name, customer_phone, customer_email FROM fertilizer_purchases WHERE id = $1`,
		purchaseID,
	).Scan(&p.DeliveryAddress, &p.CustomerName, &p.CustomerPhone, &p.CustomerEmail)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"error": "Purchase not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch purchase"})
		return
	}

	if req.DeliveryAddress != nil {
		p.DeliveryAddress = *req.DeliveryAddress
	}
	if req.CustomerName != nil {
		p.CustomerName = *req.CustomerName
	}
	if req.CustomerPhone != nil {
		p.CustomerPhone = *req.CustomerPhone
	}
	if req.CustomerEmail != nil {
		p.CustomerEmail = *req.CustomerEmail
	}

	_, err = DB.Exec(
		`UPDATE fertilizer_purchases SET delivery_address = $1, customer_name = $2, customer_phone = $3, customer_email = $4 WHERE id = $5`,
		p.DeliveryAddress, p.CustomerName, p.CustomerPhone, p.CustomerEmail, purchaseID,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update purchase"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Purchase updated"})
}

// DeletePurchase removes a purchase record (admin)
func DeletePurchase(c *gin.Context) {
	purchaseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid purchase id"})
		return
	}

	result, err := DB.Exec(`DELETE FROM fertilizer_purchases WHERE id = $1`, purchaseID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete purchase"})
		return
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Purchase not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Purchase deleted"})
}

func queryPurchases(where string, args ...interface{}) ([]models.FertilizerPurchase, error) {
	query := `SELECT id, user_id, fertilizer_id, fertilizer_name, quantity, original_amount, points_discount, total_amount,
	                 purchase_date, status, delivery_address, customer_name, customer_phone, customer_email, created_at
	          FROM fertilizer_purchases ` + where + ` ORDER BY created_at DESC`

	rows, err := DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var purchases []models.FertilizerPurchase
	for rows.Next() {
		var p models.FertilizerPurchase
		err := rows.Scan(&p.ID, &p.UserID, &p.FertilizerID, &p.FertilizerName, &p.Quantity,
			&p.OriginalAmount, &p.PointsDiscount, &p.TotalAmount, &p.PurchaseDate, &p.Status,
			&p.DeliveryAddress, &p.CustomerName, &p.CustomerPhone, &p.CustomerEmail, &p.CreatedAt)
		if err != nil {
			return nil, err
		}
		purchases = append(purchases, p)
	}

	return purchases, rows.Err()
}
