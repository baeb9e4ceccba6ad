package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	ServerPort   string
	DatabaseType string
	DatabasePath string
	DatabaseURL  string
	LogLevel     string
	ClientOrigin string

	// Requests allowed per minute for a single game session's answer checks
	RateLimitPerMinute int
	SeedLevels         bool

	AWSRegion    string
	SESFromEmail string
	SESFromName  string
	EmailDebug   bool
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is loaded first when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort:         getEnv("PORT", "8080"),
		DatabaseType:       getEnv("DATABASE_TYPE", "sqlite"),
		DatabasePath:       getEnv("DB_PATH", "./ortografia.db"),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		ClientOrigin:       getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 60),
		SeedLevels:         getEnvBool("SEED_LEVELS", true),
		AWSRegion:          getEnv("AWS_REGION", "us-east-1"),
		SESFromEmail:       getEnv("SES_FROM_EMAIL", ""),
		SESFromName:        getEnv("SES_FROM_NAME", "Ortografía"),
		EmailDebug:         getEnvBool("EMAIL_DEBUG", false),
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}
