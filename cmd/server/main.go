package main

import (
	"log"

	"iwfm-backend/internal/api/routes"
	"iwfm-backend/internal/config"
	"iwfm-backend/pkg/database"
	"iwfm-backend/pkg/logger"
	"iwfm-backend/pkg/redis"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	zapLogger, err := logger.New("iwfm-backend")
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer zapLogger.Sync()

	// Connect to MongoDB; the service cannot run without its store
	db, err := database.Connect(cfg.MongoURI)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer database.Disconnect(db.Client())

	// Initialize Redis client for the forecast cache
	redisClient := redis.NewClient(cfg.Redis)
	defer redisClient.Close()

	healthStatus := redisClient.HealthCheck()
	if healthStatus.IsConnected {
		log.Printf("Redis connected successfully at %s", healthStatus.ConnectionInfo)
	} else {
		log.Printf("Redis connection failed: %s (forecast cache disabled until it recovers)", healthStatus.Error)
	}

	// Setup Gin router
	router := gin.Default()

	// CORS middleware
	corsConfig := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
	}

	// Handle wildcard origin for development
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowCredentials = false // Cannot use credentials with AllowAllOrigins
	} else {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
		corsConfig.AllowCredentials = true
	}

	router.Use(cors.New(corsConfig))

	// Setup routes
	routes.SetupRoutes(router, db, redisClient, cfg, zapLogger)

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	log.Fatal(router.Run(":" + cfg.Port))
}
