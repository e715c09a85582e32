package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type PostgresConfig struct {
	Host     string
	Port     string
	DB       string
	Username string
	Password string
	SSLMode  string
	MaxConns int32
	MinConns int32
}

type SessionConfig struct {
	// JWTSecret signs the auth cookie. Mandatory outside dev.
	JWTSecret    string
	TTL          time.Duration
	CookieSecret string
	SecureCookie bool
}

type Config struct {
	ServerPort string
	Env        string

	// ShutdownTimeout bounds how long in-flight requests may drain after a
	// termination signal.
	ShutdownTimeout time.Duration

	// DataServiceURL selects the remote HTTP data service. When empty the
	// portal falls back to its own Postgres store.
	DataServiceURL string

	Postgres PostgresConfig
	Session  SessionConfig

	StripeSecretKey string
}

func Load() (*Config, error) {
	cfg := &Config{
		ServerPort:      getEnvOrDefault("SERVER_PORT", "8091"),
		Env:             getEnvOrDefault("APP_ENV", "development"),
		ShutdownTimeout: getDurationOrDefault("SERVER_SHUTDOWN_TIMEOUT", 5*time.Second),
		DataServiceURL:  os.Getenv("DATA_SERVICE_URL"),
		Postgres: PostgresConfig{
			Host:     getEnvOrDefault("POSTGRES_HOST", "localhost"),
			Port:     getEnvOrDefault("POSTGRES_PORT", "5432"),
			DB:       getEnvOrDefault("POSTGRES_DB", "campushub"),
			Username: getEnvOrDefault("POSTGRES_USER", "postgres"),
			Password: os.Getenv("POSTGRES_PASSWORD"),
			SSLMode:  getEnvOrDefault("POSTGRES_SSLMODE", "disable"),
			MaxConns: 30,
			MinConns: 5,
		},
		Session: SessionConfig{
			JWTSecret:    os.Getenv("JWT_SECRET"),
			TTL:          getDurationOrDefault("SESSION_TTL", 24*time.Hour),
			CookieSecret: getEnvOrDefault("COOKIE_SECRET", "campushub-flash"),
			SecureCookie: getBoolOrDefault("SECURE_COOKIE", false),
		},
		StripeSecretKey: os.Getenv("STRIPE_SECRET_KEY"),
	}

	if cfg.Session.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}
	if cfg.DataServiceURL == "" && cfg.Postgres.Password == "" {
		return nil, fmt.Errorf("POSTGRES_PASSWORD environment variable is required when DATA_SERVICE_URL is unset")
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
