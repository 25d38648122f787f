package routes

import (
	"iwfm-backend/internal/api/handlers"
	"iwfm-backend/internal/api/middleware"
	"iwfm-backend/internal/config"
	"iwfm-backend/internal/repository"
	"iwfm-backend/internal/services"
	"iwfm-backend/pkg/cache"
	"iwfm-backend/pkg/email"
	"iwfm-backend/pkg/redis"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func SetupRoutes(router *gin.Engine, db *mongo.Database, redisClient *redis.Client, cfg *config.Config, logger *zap.Logger) {
	// Initialize repositories
	alertRepo := repository.NewAlertRepository(db)
	tankerRepo := repository.NewTankerRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Mail transport and forecast cache
	mailer := email.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Username,
		cfg.SMTP.Password,
		cfg.SMTP.FromEmail,
		cfg.SMTP.FromName,
	)

	var forecastCache services.ForecastCache
	if redisClient != nil {
		forecastCache = cache.New(redisClient.GetClient(), "iwfm:")
	}

	// Initialize services
	alertService := services.NewAlertService(alertRepo)
	notifier := services.NewNotifier(alertRepo, mailer, cfg.AlertRecipient, logger)
	tankerService := services.NewTankerService(tankerRepo)
	userService := services.NewUserService(userRepo)
	dashboardService := services.NewDashboardService(tankerRepo)
	forecastService := services.NewForecastService(cfg.PredictionsFile, forecastCache, cfg.ForecastCacheTTL, logger)

	// Initialize handlers
	alertHandler := handlers.NewAlertHandler(alertService, notifier)
	tankerHandler := handlers.NewTankerHandler(tankerService)
	userHandler := handlers.NewUserHandler(userService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	predictionHandler := handlers.NewPredictionHandler(forecastService)
	healthHandler := handlers.NewHealthHandler(db, redisClient)

	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(logger))

	router.GET("/health", healthHandler.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API routes
	api := router.Group("/api")
	{
		alerts := api.Group("/alerts")
		{
			alerts.GET("", alertHandler.GetAlerts)
			alerts.GET("/:id", alertHandler.GetAlert)
			alerts.POST("", alertHandler.CreateAlert)
			alerts.POST("/:id/email", alertHandler.SendAlertEmail)
		}

		tankers := api.Group("/tankers")
		{
			tankers.GET("", tankerHandler.GetTankers)
			tankers.GET("/:id", tankerHandler.GetTanker)
			tankers.POST("", tankerHandler.CreateTanker)
			tankers.DELETE("/:id", tankerHandler.DeleteTanker)
		}

		users := api.Group("/users")
		{
			users.GET("", userHandler.GetUsers)
			users.GET("/:id", userHandler.GetUser)
			users.POST("", userHandler.CreateUser)
			users.DELETE("/:id", userHandler.DeleteUser)
		}

		predictions := api.Group("/predictions")
		{
			predictions.GET("", predictionHandler.GetPredictions)
			predictions.GET("/demand", predictionHandler.GetDemand)
		}

		dashboard := api.Group("/dashboard")
		{
			dashboard.GET("/summary", dashboardHandler.GetSummary)
		}
	}
}
