package handlers

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the full API surface on the router.
func RegisterRoutes(router *gin.Engine) {
	// Admin setup route (no auth required for initial setup)
	router.POST("/setup-admin", CreateAdminUser)

	api := router.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/signup", SignupUser)
			auth.POST("/login", LoginUser)
		}

		user := api.Group("", AuthMiddleware())
		{
			user.GET("/profile", GetProfile)
			user.PUT("/profile", UpdateProfile)
			user.POST("/profile/image", UploadProfileImage)

			user.GET("/points", GetMyPoints)
			user.GET("/points/history", GetPointsHistory)
			user.GET("/points/discount", PreviewPointsDiscount)

			user.POST("/waste", CreateWasteSubmission)
			user.GET("/waste", GetUserWaste)
			user.PUT("/waste/:id/cancel", CancelWasteSubmission)
			user.DELETE("/waste/:id", DeleteWasteSubmission)
			user.POST("/waste/image", UploadWasteImage)

			user.POST("/pickups", CreatePickupRequest)
			user.GET("/pickups", GetUserPickups)
			user.PUT("/pickups/:id", ReschedulePickup)
			user.PUT("/pickups/:id/cancel", CancelPickup)
			user.DELETE("/pickups/:id", DeletePickup)

			user.GET("/fertilizers", GetFertilizers)

			user.GET("/cart", GetCart)
			user.POST("/cart", AddToCart)
			user.PUT("/cart/:id", UpdateCartItem)
			user.DELETE("/cart/:id", RemoveCartItem)
			user.DELETE("/cart", ClearCart)
			user.POST("/cart/checkout", CheckoutCart)

			user.GET("/purchases", GetMyPurchases)

			user.POST("/complaints", CreateComplaint)
			user.GET("/complaints", GetMyComplaints)
			user.POST("/complaints/image", UploadComplaintImage)
		}

		admin := api.Group("/admin", AuthMiddleware(), AdminMiddleware())
		{
			admin.GET("/waste", GetAllWaste)
			admin.PUT("/waste/:id/status", AdminUpdateWasteStatus)

			admin.GET("/pickups", GetAllPickups)
			admin.PUT("/pickups/:id/status", AdminUpdatePickupStatus)

			admin.POST("/fertilizers", AddFertilizer)
			admin.PUT("/fertilizers/:id", UpdateFertilizer)
			admin.DELETE("/fertilizers/:id", DeleteFertilizer)
			admin.POST("/fertilizers/image", UploadFertilizerImage)

			admin.GET("/purchases", GetAllPurchases)
			admin.PUT("/purchases/:id/status", UpdatePurchaseStatus)
			admin.PUT("/purchases/:id", UpdatePurchase)
			admin.DELETE("/purchases/:id", DeletePurchase)

			admin.GET("/complaints", GetAllComplaints)
			admin.PUT("/complaints/:id", RespondToComplaint)
		}
	}
}
