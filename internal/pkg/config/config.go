package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the application configuration.
// All settings are loaded from the .env file or process environment.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Mongo    MongoConfig
	Auth     AuthConfig
	Logging  LoggingConfig
}

type ServerConfig struct {
	Port         string
	Mode         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	URL             string // DATABASE_URL, never defaulted
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

type MongoConfig struct {
	URI string // MONGODB_URI, never defaulted

	// ServerSelectionTimeout bounds how long a connection attempt may
	// wait for a reachable server. Kept well under the driver's 30s
	// default so outages fail fast.
	ServerSelectionTimeout time.Duration
}

type AuthConfig struct {
	Secret     string // AUTH_SECRET, never defaulted
	BaseURL    string // AUTH_URL, never defaulted
	SessionTTL time.Duration
}

type LoggingConfig struct {
	Level         string
	Format        string
	FileEnabled   bool
	FilePath      string
	RotationSize  int // MB
	RetentionDays int
}

// Load loads configuration from the .env file with environment
// variables taking precedence. Connection strings and the auth secret
// carry no defaults; the component that needs them reports their
// absence with a descriptive message.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// Missing .env is fine, settings may come from the environment
		fmt.Println("Warning: .env file not found, using environment variables")
	}

	config := &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			Mode:         getEnv("GIN_MODE", "debug"),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Database: DatabaseConfig{
			URL:             os.Getenv("DATABASE_URL"),
			MaxConns:        int32(getEnvInt("DB_MAX_CONNS", 25)),
			MinConns:        int32(getEnvInt("DB_MIN_CONNS", 5)),
			MaxConnLifetime: 1 * time.Hour,
			MaxConnIdleTime: 30 * time.Minute,
		},
		Mongo: MongoConfig{
			URI:                    os.Getenv("MONGODB_URI"),
			ServerSelectionTimeout: 5 * time.Second,
		},
		Auth: AuthConfig{
			Secret:     os.Getenv("AUTH_SECRET"),
			BaseURL:    os.Getenv("AUTH_URL"),
			SessionTTL: time.Duration(getEnvInt("AUTH_SESSION_TTL_DAYS", 7)) * 24 * time.Hour,
		},
		Logging: LoggingConfig{
			Level:         getEnv("LOG_LEVEL", "debug"),
			Format:        getEnv("LOG_FORMAT", "console"),
			FileEnabled:   getEnvBool("LOG_FILE_ENABLED", false),
			FilePath:      getEnv("LOG_FILE_PATH", "logs"),
			RotationSize:  getEnvInt("LOG_ROTATION_SIZE_MB", 100),
			RetentionDays: getEnvInt("LOG_RETENTION_DAYS", 30),
		},
	}

	return config, nil
}

// getEnv gets environment variable with fallback
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}
