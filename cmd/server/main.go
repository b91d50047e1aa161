package main

import (
	"log"
	"net/http"
	"os"

	"skillswap/internal/config"
	"skillswap/internal/routes"
	"skillswap/internal/stream"
	"skillswap/pkg/database"
	"skillswap/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Initialize logger
	logger.Init()

	// Load configuration
	cfg := config.Load()

	// Initialize database
	if err := database.InitMongoDB(cfg.MongoDB); err != nil {
		logger.Fatal("Failed to connect to MongoDB: " + err.Error())
	}

	// Initialize conversation stream hub
	hub := stream.NewHub()
	go hub.Run()

	// Initialize Gin router
	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	// Setup routes
	routes.SetupRoutes(router, cfg, hub)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}

	srv := &http.Server{
		Addr:         cfg.Server.Host + ":" + port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	logger.Info("Server starting on port: " + port)
	if err := srv.ListenAndServe(); err != nil {
		logger.Fatal("Failed to start server: " + err.Error())
	}
}
