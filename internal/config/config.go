package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Store backends
const (
	BackendJSON     = "json"
	BackendMemory   = "memory"
	BackendDatabase = "database"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port        string
	BodyLimitMB int
	LogMode     string

	// Document store configuration
	StoreBackend string // json, memory, database
	DataDir      string

	// Database configuration, used by the database backend only
	DBType            string // mysql, postgres, sqlite, sqlite3, sqlserver
	DBHost            string
	DBPort            string
	DBDatabase        string
	DBUser            string
	DBPassword        string
	DBConnectionLimit int

	// Sync client configuration
	APIBaseURL  string
	SyncTimeout time.Duration
	CacheFile   string
	RedisAddr   string // when set, the client cache lives in redis
	RedisPrefix string
}

// Load loads configuration from environment variables. When ENV_FILE names a
// file, its variables are loaded first without overriding the environment.
func Load() (*Config, error) {
	if envFile := os.Getenv("ENV_FILE"); envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	cfg := &Config{
		Port:              getEnv("PORT", "3000"),
		BodyLimitMB:       getEnvAsInt("BODY_LIMIT_MB", 50),
		LogMode:           getEnv("LOG_MODE", "dev"),
		StoreBackend:      getEnv("STORE_BACKEND", BackendJSON),
		DataDir:           getEnv("DATA_DIR", "./data"),
		DBType:            getEnv("DB_TYPE", "sqlite"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "3306"),
		DBDatabase:        getEnv("DB_DATABASE", ""),
		DBUser:            getEnv("DB_USER", ""),
		DBPassword:        getEnv("DB_PASSWORD", ""),
		DBConnectionLimit: getEnvAsInt("DB_CONNECTION_LIMIT", 5),
		APIBaseURL:        getEnv("API_BASE_URL", "http://localhost:3000/api"),
		SyncTimeout:       time.Duration(getEnvAsInt("SYNC_TIMEOUT_SECONDS", 10)) * time.Second,
		CacheFile:         getEnv("CACHE_FILE", "./lessonsync-cache.json"),
		RedisAddr:         getEnv("REDIS_ADDR", ""),
		RedisPrefix:       getEnv("REDIS_PREFIX", "lessonsync:"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the fields the selected backend depends on
func (cfg *Config) Validate() error {
	switch cfg.StoreBackend {
	case BackendJSON:
		if cfg.DataDir == "" {
			return fmt.Errorf("DATA_DIR is required for the %s store", BackendJSON)
		}
	case BackendMemory:
	case BackendDatabase:
		if cfg.DBDatabase == "" {
			return fmt.Errorf("DB_DATABASE is required for the %s store", BackendDatabase)
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q (supported: json, memory, database)", cfg.StoreBackend)
	}
	if cfg.BodyLimitMB <= 0 {
		return fmt.Errorf("BODY_LIMIT_MB must be positive")
	}
	return nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
