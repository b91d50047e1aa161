package routes

import (
	"skillswap/internal/config"
	"skillswap/internal/handlers"
	"skillswap/internal/middleware"
	"skillswap/internal/services"
	"skillswap/internal/stream"
	"skillswap/pkg/database"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine, cfg *config.Config, hub *stream.Hub) {
	db := database.GetDB()

	// Initialize services
	authService := services.NewAuthService(db)
	profileService := services.NewProfileService(db, cfg.Profiles.FetchLimit)
	chatService := services.NewChatService(db, cfg.Chat.FetchLimit, cfg.Chat.MaxFileSize)
	swapService := services.NewSwapService(db, cfg.Chat.FetchLimit)
	sessionService := services.NewSessionService(db, cfg.Chat.FetchLimit)
	reviewService := services.NewReviewService(db, cfg.Chat.FetchLimit)
	testService := services.NewTestService(db, cfg.Chat.FetchLimit)

	// Initialize handlers with dependencies
	authHandler := handlers.NewAuthHandler(authService)
	profileHandler := handlers.NewProfileHandler(profileService, cfg.Profiles)
	chatHandler := handlers.NewChatHandler(chatService)
	swapHandler := handlers.NewSwapHandler(swapService)
	sessionHandler := handlers.NewSessionHandler(sessionService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	testHandler := handlers.NewTestHandler(testService)
	streamHandler := handlers.NewStreamHandler(chatService, hub, cfg.Chat)

	// Global middleware
	router.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	router.Use(middleware.RateLimit())
	router.Use(middleware.Logger())

	// Health check
	router.GET("/health", func(c *gin.Context) {
		health := database.HealthCheck()
		status := 200
		if health["status"] != "connected" {
			status = 503
		}
		c.JSON(status, gin.H{
			"version":  cfg.App.Version,
			"database": health,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no auth required)
		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		// Protected routes (require a valid token)
		protected := v1.Group("/")
		protected.Use(middleware.MemberAuth())
		{
			protected.GET("/auth/me", authHandler.Me)
			protected.POST("/auth/logout", authHandler.Logout)

			// Profiles
			profiles := protected.Group("/profiles")
			{
				profiles.GET("", profileHandler.ListProfiles)
				profiles.GET("/search", profileHandler.SearchProfiles)
				profiles.GET("/me", profileHandler.GetMyProfile)
				profiles.PUT("/me", profileHandler.SaveProfile)
				profiles.GET("/:id", profileHandler.GetProfile)
			}

			// Direct messaging
			chat := protected.Group("/chat")
			{
				chat.GET("/unread", chatHandler.UnreadCounts)
				chat.GET("/:peerId", chatHandler.GetConversation)
				chat.POST("/:peerId", chatHandler.SendMessage)
			}

			// Live conversation streams
			ws := protected.Group("/ws")
			ws.Use(middleware.StreamRateLimit())
			{
				ws.GET("/chat/:peerId", streamHandler.HandleConversation)
				ws.GET("/stats", streamHandler.Stats)
			}

			// Swap requests
			swaps := protected.Group("/swaps")
			{
				swaps.POST("", swapHandler.CreateRequest)
				swaps.GET("/incoming", swapHandler.ListIncoming)
				swaps.GET("/outgoing", swapHandler.ListOutgoing)
				swaps.GET("/:id", swapHandler.GetRequest)
				swaps.POST("/:id/confirm", swapHandler.Confirm)
				swaps.POST("/:id/reject", swapHandler.Reject)
			}

			// Sessions
			sessions := protected.Group("/sessions")
			{
				sessions.POST("", sessionHandler.CreateSession)
				sessions.GET("", sessionHandler.ListSessions)
				sessions.GET("/:id", sessionHandler.GetSession)
				sessions.PUT("/:id", sessionHandler.UpdateSession)
				sessions.DELETE("/:id", sessionHandler.DeleteSession)
				sessions.GET("/:id/enter", sessionHandler.EnterSession)
				sessions.GET("/:id/tests", testHandler.ListForSession)
			}

			// Reviews
			reviews := protected.Group("/reviews")
			{
				reviews.POST("", reviewHandler.CreateReview)
				reviews.GET("/given", reviewHandler.ListGiven)
				reviews.GET("/member/:memberId", reviewHandler.ListReceived)
				reviews.DELETE("/:id", reviewHandler.DeleteReview)
			}

			// Session tests
			tests := protected.Group("/tests")
			{
				tests.POST("", testHandler.CreateTest)
				tests.GET("/:id", testHandler.GetTest)
				tests.PUT("/:id", testHandler.UpdateTest)
				tests.POST("/:id/submit", testHandler.SubmitTest)
				tests.DELETE("/:id", testHandler.DeleteTest)
			}
		}
	}
}
