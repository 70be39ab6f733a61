package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const prodString = "prod"

// Config holds all application configuration loaded from environment.
type Config struct {
	IsProduction      bool
	ProdOrigins       string
	HTTPAddr          string
	DBDSN             string
	JWTSecret         string
	JWTAccessTokenTTL time.Duration
	BcryptCost        int
	UploadDir         string

	// Schedule shape. The class-slot count drives the day-density
	// thresholds, so changing SCHEDULE_CLASS_SLOTS rescales them too.
	ClassSlots int
}

// LowThreshold is the highest booking count per (date, period) that still
// classifies as low density: one shift-width.
func (c *Config) LowThreshold() int {
	return c.ClassSlots
}

// MediumThreshold is the highest count that classifies as medium density:
// two shift-widths.
func (c *Config) MediumThreshold() int {
	return 2 * c.ClassSlots
}

// Load loads configuration from .env (optional) and environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("failed to load .env file: %v", err)
	}

	cfg := &Config{}

	// Production origins (default: empty)
	cfg.ProdOrigins = getEnv("PROD_ORIGINS", "")

	// Application environment (default: dev)
	appEnvStr := getEnv("APP_ENV", "dev")
	cfg.IsProduction = appEnvStr == prodString

	// HTTP listen address (default: :8080)
	cfg.HTTPAddr = getEnv("HTTP_ADDR", ":8080")

	// Database DSN is required
	cfg.DBDSN = os.Getenv("DB_DSN")
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required")
	}

	// JWT secret is required for signing tokens
	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	// JWT access token TTL, parsed as a time.Duration (e.g. "15m", "1h")
	ttlStr := getEnv("JWT_ACCESS_TOKEN_TTL", "30m")
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_ACCESS_TOKEN_TTL: %w", err)
	}
	cfg.JWTAccessTokenTTL = ttl

	// Bcrypt cost for password hashing (default: 12)
	cfg.BcryptCost, err = getEnvAsInt("BCRYPT_COST", 12)
	if err != nil {
		return nil, fmt.Errorf("invalid BCRYPT_COST: %w", err)
	}

	// Directory for uploaded material files (default: ./uploads)
	cfg.UploadDir = getEnv("UPLOAD_DIR", "./uploads")

	// Class slots per shift (default: 6)
	cfg.ClassSlots, err = getEnvAsInt("SCHEDULE_CLASS_SLOTS", 6)
	if err != nil {
		return nil, fmt.Errorf("invalid SCHEDULE_CLASS_SLOTS: %w", err)
	}
	if cfg.ClassSlots < 1 {
		return nil, fmt.Errorf("SCHEDULE_CLASS_SLOTS must be at least 1")
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable if set,
// otherwise the provided default.
func getEnv(key, defaultValue string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer, using the
// default when unset and failing when set but not a valid integer.
func getEnvAsInt(key string, defaultValue int) (int, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := strconv.Atoi(valStr)
	if err != nil {
		return 0, fmt.Errorf("env %s value %q is not a valid integer: %w", key, valStr, err)
	}

	return val, nil
}
