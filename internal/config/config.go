package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const defaultJWTSecret = "your-secret-key-change-in-production"

// Session storage backends
const (
	SessionBackendFile   = "file"
	SessionBackendRedis  = "redis"
	SessionBackendMemory = "memory"
)

// Config holds the whole application configuration.
// Populated from environment variables (a .env file is loaded by cmd/*).
type Config struct {
	App     AppConfig
	API     APIConfig
	Session SessionConfig
	Redis   RedisConfig
	Server  ServerConfig
	JWT     JWTConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Version     string
}

// APIConfig points the client at the external catalog REST service.
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

type SessionConfig struct {
	Backend          string // file, redis, memory
	FilePath         string
	KeyPrefix        string // namespace for the persisted identity/token keys
	PreemptiveExpiry bool   // log out before a call when the token exp has passed
	ExpiryLeeway     time.Duration
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

// ServerConfig and JWTConfig are only read by the reference API (cmd/api).
type ServerConfig struct {
	Port       string
	AdminEmail string
	AdminPass  string
}

type JWTConfig struct {
	Secret            string
	AccessTokenExpiry int // minutes
}

// Load reads config from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Library Catalog"),
			Environment: getEnv("APP_ENV", "development"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		API: APIConfig{
			BaseURL: strings.TrimRight(getEnv("API_BASE_URL", "http://localhost:8080/api"), "/"),
			Timeout: time.Duration(getEnvInt("API_TIMEOUT_SECONDS", 10)) * time.Second,
		},
		Session: SessionConfig{
			Backend:          getEnv("SESSION_BACKEND", SessionBackendFile),
			FilePath:         getEnv("SESSION_FILE", defaultSessionFile()),
			KeyPrefix:        getEnv("SESSION_KEY_PREFIX", "library-ui"),
			PreemptiveExpiry: getEnvBool("SESSION_PREEMPTIVE_EXPIRY", true),
			ExpiryLeeway:     time.Duration(getEnvInt("SESSION_EXPIRY_LEEWAY_SECONDS", 30)) * time.Second,
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Server: ServerConfig{
			Port:       getEnv("APP_PORT", "8080"),
			AdminEmail: getEnv("SEED_ADMIN_EMAIL", "admin@library.local"),
			AdminPass:  getEnv("SEED_ADMIN_PASSWORD", "Admin123"),
		},
		JWT: JWTConfig{
			Secret:            getEnv("JWT_SECRET", defaultJWTSecret),
			AccessTokenExpiry: getEnvInt("JWT_ACCESS_EXPIRY", 60),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks the config for values the application cannot run with
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("API_BASE_URL must not be empty")
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("API_TIMEOUT_SECONDS must be positive")
	}

	switch c.Session.Backend {
	case SessionBackendFile:
		if c.Session.FilePath == "" {
			return fmt.Errorf("SESSION_FILE must be set for the file session backend")
		}
	case SessionBackendRedis, SessionBackendMemory:
	default:
		return fmt.Errorf("unknown SESSION_BACKEND %q", c.Session.Backend)
	}

	if c.Session.KeyPrefix == "" {
		return fmt.Errorf("SESSION_KEY_PREFIX must not be empty")
	}

	if c.App.Environment == "production" && c.JWT.Secret == defaultJWTSecret {
		return fmt.Errorf("JWT_SECRET must be set in production")
	}

	return nil
}

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return ".library-session.json"
	}
	return filepath.Join(dir, "library-catalog", "session.json")
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
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

func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
