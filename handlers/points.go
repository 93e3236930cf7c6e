package handlers

import (
	"net/http"
	"strconv"

	"ecorecycle-server/services"

	"github.com/gin-gonic/gin"
)

// GetMyPoints returns the authenticated user's cached points balance and
// its current redemption value.
func GetMyPoints(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	points := Ledger.GetUserPoints(userID)
	c.JSON(http.StatusOK, gin.H{
		"points":             points,
		"discount_value_lkr": float64(points) * services.PointValueLKR,
	})
}

// GetPointsHistory returns the user's ledger entries, newest first
func GetPointsHistory(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	history, err := Ledger.GetUserPointsHistory(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch points history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"transactions": history,
		"count":        len(history),
	})
}

// PreviewPointsDiscount computes the discount the user's balance allows for
// a given purchase amount, without touching the ledger.
func PreviewPointsDiscount(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	amount, err := strconv.ParseFloat(c.Query("amount"), 64)
	if err != nil || amount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A positive amount query parameter is required"})
		return
	}

	points := Ledger.GetUserPoints(userID)
	discount := services.CalculatePointsDiscount(points, amount)

	c.JSON(http.StatusOK, gin.H{
		"available_points": points,
		"purchase_amount":  amount,
		"max_discount":     discount,
		"points_required":  services.PointsForDiscount(discount),
	})
}
