package routes

import (
	"time"

	"partner-management-api/controllers"
	"partner-management-api/middleware"
	"partner-management-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine) {
	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			// Authentication
			public.POST("/auth/login", controllers.Login)
			public.POST("/auth/forgot-password", controllers.ForgotPassword)
			public.POST("/auth/reset-password", controllers.ResetPassword)

			// Public intake forms, rate limited per IP
			submissionLimiter := middleware.RateLimitMiddleware(10, time.Minute)
			public.POST("/partnerships", submissionLimiter, controllers.CreatePartnership)
			public.POST("/registrations", submissionLimiter, controllers.CreateRegistration)

			// Contact form, relayed to the support inbox
			public.POST("/contact", submissionLimiter, controllers.SubmitContact)

			// Chat widget
			public.POST("/chat", controllers.Chat)

			// Health check
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "Partner Management API is running",
				})
			})
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			// Session management
			protected.POST("/auth/logout", controllers.Logout)
			protected.GET("/auth/me", controllers.GetProfile)
			protected.GET("/auth/session", controllers.GetProfile)
			protected.PUT("/auth/change-password", controllers.ChangePassword)

			// Partnership applications: reviewers read, admins mutate
			partnerships := protected.Group("/partnerships")
			{
				partnerships.GET("", middleware.RequireMinRole(models.RoleReviewer), controllers.GetPartnerships)
				partnerships.GET("/:id", middleware.RequireMinRole(models.RoleReviewer), controllers.GetPartnership)
				partnerships.PUT("/:id/status", middleware.RequireMinRole(models.RoleAdmin), controllers.UpdatePartnershipStatus)

				partnerships.GET("/:id/notes", middleware.RequireMinRole(models.RoleReviewer), controllers.GetPartnershipNotes)
				partnerships.POST("/:id/notes", middleware.RequireMinRole(models.RoleReviewer), controllers.CreatePartnershipNote)

				partnerships.GET("/:id/attachments", middleware.RequireMinRole(models.RoleReviewer), controllers.GetPartnershipAttachments)
				partnerships.POST("/:id/attachments", middleware.RequireMinRole(models.RoleReviewer), controllers.UploadPartnershipAttachment)
			}

			// Registrations: owners see their own, reviewers see all
			registrations := protected.Group("/registrations")
			{
				registrations.GET("", controllers.GetRegistrations)
				registrations.GET("/:id", controllers.GetRegistration)
				registrations.PUT("/:id/status", middleware.RequireMinRole(models.RoleAdmin), controllers.UpdateRegistrationStatus)
				registrations.GET("/:id/documents", controllers.GetRegistrationDocuments)
				registrations.POST("/:id/documents", controllers.UploadRegistrationDocuments)
			}

			// User management (admin only)
			users := protected.Group("/users")
			{
				users.GET("", middleware.RequireMinRole(models.RoleAdmin), controllers.GetUsers)
				users.POST("", middleware.RequireMinRole(models.RoleAdmin), controllers.CreateUser)
				users.PUT("/:id", middleware.RequireMinRole(models.RoleAdmin), controllers.UpdateUser)
				users.POST("/:id/reset-password", controllers.ResetUserPassword)
			}

			// Audit logs (admin only)
			protected.GET("/audit-logs", middleware.RequireMinRole(models.RoleAdmin), controllers.GetAuditLogs)

			// Settings: any authenticated user reads, admins write
			settings := protected.Group("/settings")
			{
				settings.GET("", controllers.GetSettings)
				settings.GET("/:key", controllers.GetSetting)
				settings.PUT("/:key", middleware.RequireMinRole(models.RoleAdmin), controllers.UpdateSetting)
				settings.DELETE("/:key", middleware.RequireMinRole(models.RoleAdmin), controllers.DeleteSetting)
			}
		}
	}
}
