// internal/infrastructure/config/config.go
package config

import (
	"os"
	"strconv"
	"time"

	"flight-query-service/pkg/utils"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// App
	AppEnv           string
	AppVersion       string
	MetricsNamespace string

	// Server
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	AllowedOrigins  []string

	// MongoDB
	MongoURI          string
	MongoDB           string
	MongoUser         string
	MongoPassword     string
	MongoCollection   string
	StoreQueryTimeout time.Duration
}

// LoadConfig loads configuration from environment variables, reading .env first when present
func LoadConfig() (*Config, error) {
	// a missing .env is fine
	_ = godotenv.Load()

	config := &Config{
		AppEnv:           getEnv("APP_ENV", "production"),
		AppVersion:       getEnv("APP_VERSION", "1.0.0"),
		MetricsNamespace: getEnv("METRICS_NAMESPACE", "flight_query"),

		Port:            getEnv("PORT", "5050"),
		ReadTimeout:     time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout:    time.Duration(getEnvAsInt("WRITE_TIMEOUT", 30)) * time.Second,
		ShutdownTimeout: time.Duration(getEnvAsInt("SHUTDOWN_TIMEOUT", 10)) * time.Second,
		AllowedOrigins:  utils.SplitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),

		MongoURI:          getEnv("MONGODB_DSN", "mongodb://localhost:27017"),
		MongoDB:           getEnv("MONGO_DB", "flight_booking"),
		MongoUser:         getEnv("MONGO_USER", ""),
		MongoPassword:     getEnv("MONGO_PASSWORD", ""),
		MongoCollection:   getEnv("MONGO_COLLECTION", "FlightBooking"),
		StoreQueryTimeout: time.Duration(getEnvAsInt("STORE_QUERY_TIMEOUT", 10)) * time.Second,
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}
