package routes

import (
	"license-management-api/controllers"
	"license-management-api/middleware"
	"license-management-api/services"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine, notifier *services.ExpiryNotifier) {
	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			// Authentication
			public.POST("/login", controllers.Login)

			// Health check
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "License Management API is running",
				})
			})
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			// User profile
			protected.GET("/profile", controllers.GetProfile)

			// Clients
			clients := protected.Group("/clients")
			{
				clients.GET("", controllers.GetClients)
				clients.GET("/:id", controllers.GetClient)
				clients.POST("", controllers.CreateClient)
				clients.PUT("/:id", controllers.UpdateClient)
				clients.DELETE("/:id", controllers.DeleteClient)
			}

			// Vendors
			vendors := protected.Group("/vendors")
			{
				vendors.GET("", controllers.GetVendors)
				vendors.GET("/:id", controllers.GetVendor)
				vendors.POST("", controllers.CreateVendor)
				vendors.PUT("/:id", controllers.UpdateVendor)
				vendors.DELETE("/:id", controllers.DeleteVendor)
			}

			// License purchases
			licenses := protected.Group("/licenses")
			{
				licenses.GET("", controllers.GetLicenses)
				licenses.GET("/:id", controllers.GetLicense)
				licenses.POST("", controllers.CreateLicense)
				licenses.PUT("/:id", controllers.UpdateLicense)
				licenses.DELETE("/:id", controllers.DeleteLicense)
			}

			// Expiry notification operations (admin only)
			notifications := protected.Group("/notifications/expiry")
			notifications.Use(middleware.RequireRole(3)) // 3 = admin
			{
				notifications.POST("/run", controllers.RunExpiryNotifications(notifier))
				notifications.POST("/test", controllers.SendTestExpiryEmail(notifier))
				notifications.GET("/stats", controllers.GetExpiryNotificationStats(notifier))
				notifications.DELETE("/log/today", controllers.ClearTodayExpiryLog(notifier))
				notifications.GET("/settings", controllers.GetNotificationSettings(notifier))
				notifications.PUT("/settings", controllers.UpdateNotificationSettings)
			}
		}
	}
}
