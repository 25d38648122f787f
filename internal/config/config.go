package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port             string
	MongoURI         string
	AllowedOrigins   []string
	Redis            RedisConfig
	SMTP             SMTPConfig
	AlertRecipient   string
	PredictionsFile  string
	ForecastCacheTTL time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type SMTPConfig struct {
	Host      string
	Port      string
	Username  string
	Password  string
	FromEmail string
	FromName  string
}

func Load() *Config {
	// load .env variables; fall back to the process environment
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		log.Fatal("MONGO_URI environment variable is not set")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		allowedOrigins = "http://localhost:5173"
	}

	return &Config{
		Port:           port,
		MongoURI:       mongoURI,
		AllowedOrigins: strings.Split(allowedOrigins, ","),
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		SMTP: SMTPConfig{
			Host:      getEnv("SMTP_HOST", "smtp.gmail.com"),
			Port:      getEnv("SMTP_PORT", "587"),
			Username:  os.Getenv("SMTP_USERNAME"),
			Password:  os.Getenv("SMTP_PASSWORD"),
			FromEmail: getEnv("SMTP_FROM_EMAIL", "alerts@iwfm.example.com"),
			FromName:  getEnv("SMTP_FROM_NAME", "IWFM Fleet Monitor"),
		},
		AlertRecipient:   getEnv("ALERT_RECIPIENT", "ops@iwfm.example.com"),
		PredictionsFile:  getEnv("PREDICTIONS_FILE", "next7days_predictions.json"),
		ForecastCacheTTL: getEnvDuration("FORECAST_CACHE_TTL", 5*time.Minute),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Invalid %s value %q, using %d", key, value, fallback)
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Invalid %s value %q, using %s", key, value, fallback)
		return fallback
	}
	return d
}
