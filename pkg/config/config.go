package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// DBConfig holds the session database configuration
type DBConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	LogLevel        string
}

// GetDSN returns the PostgreSQL connection string
func (c *DBConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string
	Env             string
	ShutdownTimeout time.Duration
}

// LedgerConfig describes the remote record-keeping API
type LedgerConfig struct {
	BaseURL string
	Timeout time.Duration
}

// SessionConfig controls where the access token is kept and the initial role
type SessionConfig struct {
	Store       string
	DefaultRole string
}

// StoreConfig holds record store settings
type StoreConfig struct {
	ConsistencyPolicy string
	Timezone          string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string
}

// Config holds all configuration
type Config struct {
	ServiceName string
	Server      ServerConfig
	Ledger      LedgerConfig
	Session     SessionConfig
	Store       StoreConfig
	DB          DBConfig
	Log         LogConfig
}

const (
	SessionStorePostgres = "postgres"
	SessionStoreMemory   = "memory"
)

// Load reads configuration from a .env file (if present) and the environment
func Load() (*Config, error) {
	// .env is optional, deployed environments set variables directly
	_ = godotenv.Load()

	cfg := &Config{
		ServiceName: getEnv("SERVICE_NAME", "oak-ledger"),
		Server: ServerConfig{
			Port:            getEnv("SERVER_PORT", "8080"),
			Env:             getEnv("APP_ENV", "development"),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Ledger: LedgerConfig{
			BaseURL: strings.TrimRight(getEnv("LEDGER_API_URL", "http://localhost:10000"), "/"),
			Timeout: getEnvAsDuration("LEDGER_API_TIMEOUT", 10*time.Second),
		},
		Session: SessionConfig{
			Store:       getEnv("SESSION_STORE", SessionStorePostgres),
			DefaultRole: getEnv("DEFAULT_ROLE", "admin"),
		},
		Store: StoreConfig{
			ConsistencyPolicy: getEnv("CONSISTENCY_POLICY", "full"),
			Timezone:          getEnv("TIMEZONE", "UTC"),
		},
		DB: DBConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", "password"),
			DBName:          getEnv("DB_NAME", "oak_ledger"),
			SSLMode:         getEnv("DB_SSL_MODE", "disable"),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 2),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 5),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 1*time.Hour),
			LogLevel:        getEnv("DB_LOG_LEVEL", "warn"),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Session.Store {
	case SessionStorePostgres, SessionStoreMemory:
	default:
		return fmt.Errorf("unsupported SESSION_STORE %q", c.Session.Store)
	}
	switch c.Session.DefaultRole {
	case "admin", "viewer":
	default:
		return fmt.Errorf("unsupported DEFAULT_ROLE %q", c.Session.DefaultRole)
	}
	switch c.Store.ConsistencyPolicy {
	case "full", "coupled":
	default:
		return fmt.Errorf("unsupported CONSISTENCY_POLICY %q", c.Store.ConsistencyPolicy)
	}
	if _, err := time.LoadLocation(c.Store.Timezone); err != nil {
		return fmt.Errorf("invalid TIMEZONE %q: %w", c.Store.Timezone, err)
	}
	if c.Ledger.BaseURL == "" {
		return fmt.Errorf("LEDGER_API_URL is required")
	}
	return nil
}

// Location returns the zone used to decide what "today" is
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Store.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// LogFields returns the configuration as zap fields, without secrets
func (c *Config) LogFields() []zap.Field {
	return []zap.Field{
		zap.String("service", c.ServiceName),
		zap.String("environment", c.Server.Env),
		zap.String("server_port", c.Server.Port),
		zap.String("ledger_api", c.Ledger.BaseURL),
		zap.String("session_store", c.Session.Store),
		zap.String("consistency_policy", c.Store.ConsistencyPolicy),
		zap.String("timezone", c.Store.Timezone),
	}
}

// Helper function to get environment variables with defaults
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
