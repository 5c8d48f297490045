// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mykpoptrade/backend/internal/config"
	"github.com/mykpoptrade/backend/internal/handlers"
	"github.com/mykpoptrade/backend/internal/middleware"
	"github.com/mykpoptrade/backend/internal/services"
	"github.com/mykpoptrade/backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize services
	notificationService := services.NewNotificationService(db)
	storageService, _ := services.NewStorageService(cfg)

	authService := services.NewAuthService(db, cfg)
	userService := services.NewUserService(db)
	productService := services.NewProductService(db)
	historyService := services.NewSearchHistoryService(db)
	searchService := services.NewSearchService(db, historyService)
	recommendationService := services.NewRecommendationService(db, cfg.Recommend)
	favoriteService := services.NewFavoriteService(db)
	groupService := services.NewGroupService(db)
	reviewService := services.NewReviewService(db, notificationService)
	reportService := services.NewReportService(db, notificationService)
	privacyService := services.NewPrivacyService(db)
	paymentService := services.NewPaymentService(db, cfg, notificationService)
	adminService := services.NewAdminService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService, storageService)
	productHandler := handlers.NewProductHandler(productService, favoriteService, storageService)
	searchHandler := handlers.NewSearchHandler(searchService, historyService)
	recommendationHandler := handlers.NewRecommendationHandler(recommendationService)
	favoriteHandler := handlers.NewFavoriteHandler(favoriteService)
	groupHandler := handlers.NewGroupHandler(groupService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	reportHandler := handlers.NewReportHandler(reportService)
	privacyHandler := handlers.NewPrivacyHandler(privacyService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	adminHandler := handlers.NewAdminHandler(adminService, userService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.GeneralRateLimit())
	r.Use(middleware.AuditLogMiddleware(db))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.GET("/me", middleware.AuthRequired(), authHandler.GetProfile)
		}

		// User routes
		users := v1.Group("/users")
		{
			users.GET("/:id", userHandler.GetPublicProfile)
			users.GET("/:id/products", middleware.OptionalAuth(), productHandler.GetSellerProducts)
			users.GET("/:id/reviews", reviewHandler.GetSellerReviews)

			protected := users.Group("")
			protected.Use(middleware.AuthRequired())
			{
				protected.PUT("/profile", userHandler.UpdateProfile)
				protected.POST("/avatar", middleware.UploadRateLimit(), userHandler.UploadAvatar)
			}
		}

		// Product routes
		products := v1.Group("/products")
		{
			products.GET("/recommendations", middleware.OptionalAuth(), recommendationHandler.GetRecommendations)
			products.GET("/quick-recommendations", recommendationHandler.QuickRecommendations)
			products.GET("/:id", middleware.OptionalAuth(), productHandler.GetProduct)

			protected := products.Group("")
			protected.Use(middleware.AuthRequired())
			{
				protected.POST("", productHandler.CreateProduct)
				protected.PUT("/:id", productHandler.UpdateProduct)
				protected.DELETE("/:id", productHandler.DeleteProduct)
				protected.POST("/:id/reserve", productHandler.ReserveProduct)
				protected.POST("/:id/unreserve", productHandler.UnreserveProduct)
				protected.POST("/:id/sold", productHandler.MarkSold)
				protected.POST("/:id/favorite", favoriteHandler.AddFavorite)
				protected.DELETE("/:id/favorite", favoriteHandler.RemoveFavorite)
				protected.POST("/images", middleware.UploadRateLimit(), productHandler.UploadProductImages)
			}
		}

		// Search routes
		search := v1.Group("/search")
		search.Use(middleware.SearchRateLimit())
		{
			search.POST("/advanced", middleware.OptionalAuth(), searchHandler.AdvancedSearch)
			search.GET("/suggestions", searchHandler.Suggestions)

			history := search.Group("/history")
			history.Use(middleware.AuthRequired())
			{
				history.GET("", searchHandler.GetHistory)
				history.DELETE("", searchHandler.ClearHistory)
				history.DELETE("/:id", searchHandler.DeleteHistoryEntry)
			}
		}

		// Favorites
		v1.GET("/favorites", middleware.AuthRequired(), favoriteHandler.GetFavorites)

		// Transactions
		v1.GET("/transactions", middleware.AuthRequired(), productHandler.GetTransactions)

		// Group directory routes
		groups := v1.Group("/groups")
		{
			groups.GET("", groupHandler.GetGroups)
			groups.GET("/following", middleware.AuthRequired(), groupHandler.GetFollowedGroups)
			groups.GET("/:id", groupHandler.GetGroup)
			groups.GET("/:id/albums", groupHandler.GetGroupAlbums)
			groups.POST("/:id/follow", middleware.AuthRequired(), groupHandler.FollowGroup)
			groups.DELETE("/:id/follow", middleware.AuthRequired(), groupHandler.UnfollowGroup)
		}

		// Review routes
		reviews := v1.Group("/reviews")
		reviews.Use(middleware.AuthRequired())
		{
			reviews.POST("", reviewHandler.CreateReview)
			reviews.DELETE("/:id", reviewHandler.DeleteReview)
		}

		// Notification routes
		notifications := v1.Group("/notifications")
		notifications.Use(middleware.AuthRequired())
		{
			notifications.GET("", notificationHandler.GetNotifications)
			notifications.GET("/unread-count", notificationHandler.GetUnreadCount)
			notifications.PUT("/read-all", notificationHandler.MarkAllRead)
			notifications.PUT("/:id/read", notificationHandler.MarkRead)
		}

		// Report routes
		v1.POST("/reports", middleware.AuthRequired(), reportHandler.CreateReport)

		// Privacy routes
		privacy := v1.Group("/privacy")
		privacy.Use(middleware.AuthRequired())
		{
			privacy.GET("/export", privacyHandler.ExportData)
			privacy.DELETE("/account", privacyHandler.DeleteAccount)
		}

		// Payment routes
		payments := v1.Group("/payments")
		payments.Use(middleware.AuthRequired())
		{
			payments.POST("/intent", paymentHandler.CreatePaymentIntent)
			payments.POST("/confirm", paymentHandler.ConfirmPayment)
		}

		// Admin routes
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
		{
			admin.GET("/stats", adminHandler.GetPlatformStats)
			admin.GET("/searches/top", adminHandler.GetTopSearchQueries)
			admin.GET("/audit-logs", adminHandler.GetAuditLogs)

			adminUsers := admin.Group("/users")
			{
				adminUsers.GET("", adminHandler.GetUsers)
				adminUsers.PUT("/:id/status", adminHandler.UpdateUserStatus)
			}

			adminGroups := admin.Group("/groups")
			{
				adminGroups.POST("", groupHandler.CreateGroup)
			}

			adminReports := admin.Group("/reports")
			{
				adminReports.GET("", reportHandler.GetReports)
				adminReports.PUT("/:id/resolve", reportHandler.ResolveReport)
				adminReports.PUT("/:id/dismiss", reportHandler.DismissReport)
			}

			admin.POST("/payments/refund", paymentHandler.ProcessRefund)
		}
	}

	// Static file serving (for development)
	if cfg.Environment == "development" {
		r.Static("/uploads", "./uploads")
	}

	return r
}
