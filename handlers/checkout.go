package handlers

import (
	"errors"
	"net/http"

	"ecorecycle-server/services"

	"github.com/gin-gonic/gin"
)

// CheckoutCart converts the user's cart into purchase records, applying a
// points discount bounded by the balance and the 50% cap. An over-limit
// requested discount is clamped, not rejected.
func CheckoutCart(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req struct {
		CustomerName    string  `json:"customer_name" binding:"required"`
		CustomerPhone   string  `json:"customer_phone" binding:"required"`
		CustomerEmail   string  `json:"customer_email"`
		DeliveryAddress string  `json:"delivery_address" binding:"required"`
		PointsDiscount  float64 `json:"points_discount"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	purchaseIDs, err := Checkout.PurchaseCartItems(userID, services.CustomerInfo{
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		CustomerEmail:   req.CustomerEmail,
		DeliveryAddress: req.DeliveryAddress,
	}, req.PointsDiscount)
	if errors.Is(err, services.ErrEmptyCart) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to complete checkout"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"purchase_ids": purchaseIDs,
		"count":        len(purchaseIDs),
	})
}
