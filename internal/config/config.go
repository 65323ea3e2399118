package config

import (
	"os"

	"github.com/joho/godotenv"
)

// DefaultAPIURL is used when SILVERSTAR_API_URL is not set.
const DefaultAPIURL = "https://silverstar-server-local.onrender.com/api"

// Config holds all configuration for the application
type Config struct {
	// API holds the remote menu API configuration
	API APIConfig

	// Web holds the web front-end configuration
	Web WebConfig

	// Logging holds logging-related configuration
	Logging LoggingConfig
}

// APIConfig holds the remote API configuration
type APIConfig struct {
	BaseURL string
}

// WebConfig holds the web front-end configuration
type WebConfig struct {
	ListenAddr string
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	Level  string
	Format string // json, console
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env files (fails silently if files don't exist)
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	// Base URL of the remote menu API, with a hardcoded production fallback
	baseURL := os.Getenv("SILVERSTAR_API_URL")
	if baseURL == "" {
		baseURL = DefaultAPIURL
	}

	listenAddr := os.Getenv("SILVERSTAR_WEB_ADDR")
	if listenAddr == "" {
		listenAddr = ":8080"
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	logFormat := os.Getenv("LOG_FORMAT")
	if logFormat == "" {
		logFormat = "json"
	}

	return &Config{
		API: APIConfig{
			BaseURL: baseURL,
		},
		Web: WebConfig{
			ListenAddr: listenAddr,
		},
		Logging: LoggingConfig{
			Level:  logLevel,
			Format: logFormat,
		},
	}, nil
}
