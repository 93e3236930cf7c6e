package handlers

import (
	"database/sql"
	"errors"
	"net/http"

	"ecorecycle-server/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetCart returns the user's cart items with the running total
func GetCart(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	items, err := Carts.GetUserCartItems(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart items"})
		return
	}

	var totalAmount float64
	for _, item := range items {
		totalAmount += item.TotalAmount
	}

	c.JSON(http.StatusOK, gin.H{
		"items":        items,
		"count":        len(items),
		"total_amount": totalAmount,
		"currency":     "LKR",
	})
}

// AddToCart adds a fertilizer line item. Name, unit and price are resolved
// from the catalog so the client cannot set its own prices.
func AddToCart(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req struct {
		FertilizerID uuid.UUID `json:"fertilizer_id" binding:"required"`
		Quantity     int       `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	if req.Quantity <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must be positive"})
		return
	}

	var name, unit string
	var price float64
	var available bool
	err := DB.QueryRow(
		`SELECT name, unit, price, available FROM fertilizers WHERE id = $1`,
		req.FertilizerID,
	).Scan(&name, &unit, &price, &available)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"error": "Fertilizer not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch fertilizer"})
		return
	}
	if !available {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Fertilizer is not available"})
		return
	}

	item, err := Carts.AddToCart(userID, req.FertilizerID, name, price, unit, req.Quantity)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add to cart"})
		return
	}

	c.JSON(http.StatusCreated, item)
}

// UpdateCartItem sets a new quantity; zero or less removes the item
func UpdateCartItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	cartItemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cart item id"})
		return
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	err = Carts.UpdateCartItemQuantity(userID, cartItemID, req.Quantity)
	if errors.Is(err, services.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cart item updated"})
}

// RemoveCartItem deletes one line item
func RemoveCartItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	cartItemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cart item id"})
		return
	}

	err = Carts.RemoveFromCart(userID, cartItemID)
	if errors.Is(err, services.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove cart item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cart item removed"})
}

// ClearCart removes every item in the user's cart
func ClearCart(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := Carts.ClearCart(userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
}
