package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
)

// Supported database drivers
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig

	// Database configuration (sql assistant)
	Database DatabaseConfig

	// Generative model configuration (sql assistant)
	Model ModelConfig

	// YouTube Data API configuration (comment sentiment)
	YouTube YouTubeConfig

	// Request rate limiting
	RateLimit RateLimitConfig

	// Logging configuration
	Log LogConfig

	// Static page served on GET /
	WebIndex string
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	RequestTimeout  time.Duration
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Driver         string
	Host           string
	Port           string
	User           string
	Password       string
	Name           string
	SSLMode        string
	Path           string // sqlite file
	MaxOpenConns   int
	MaxIdleConns   int
	MaxLifetime    time.Duration
	MigrationsPath string
}

// ModelConfig holds generative model settings
type ModelConfig struct {
	APIKey     string
	Name       string
	APIVersion string
	BaseURL    string
}

// YouTubeConfig holds YouTube Data API settings
type YouTubeConfig struct {
	APIKey   string
	Endpoint string
}

// RateLimitConfig holds token bucket settings; RPS <= 0 disables limiting
type RateLimitConfig struct {
	RPS   float64
	Burst int
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string
	Format string // "json" or "pretty"
}

// LoadEnvFile loads KEY=VALUE pairs from a .env file into the process
// environment without overriding variables that are already set.
// A missing default ".env" is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		path = ".env"
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil
		}
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// Load reads configuration from environment variables and validates
// every section
func Load() (*Config, error) {
	cfg := fromEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadWithoutDatabase reads configuration for a binary that never opens
// the database; the database section is left unvalidated.
func LoadWithoutDatabase() (*Config, error) {
	cfg := fromEnv()
	if err := cfg.validateServer(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func fromEnv() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 120*time.Second),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
			RequestTimeout:  getDurationEnv("REQUEST_TIMEOUT", 60*time.Second),
		},
		Database: DatabaseConfig{
			Driver:         getEnv("DB_DRIVER", DriverMySQL),
			Host:           getEnv("DB_HOST", "localhost"),
			Port:           getEnv("DB_PORT", ""),
			User:           getEnv("DB_USER", ""),
			Password:       os.Getenv("DB_PASSWORD"),
			Name:           getEnv("DB_NAME", "analytics"),
			SSLMode:        getEnv("DB_SSLMODE", "disable"),
			Path:           getEnv("DB_PATH", "./data/analytics.db"),
			MaxOpenConns:   getIntEnv("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:   getIntEnv("DB_MAX_IDLE_CONNS", 0),
			MaxLifetime:    getDurationEnv("DB_MAX_LIFETIME", 5*time.Minute),
			MigrationsPath: getEnv("MIGRATIONS_PATH", "./migrations"),
		},
		Model: ModelConfig{
			APIKey:     os.Getenv("GEMINI_API_KEY"),
			Name:       getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			APIVersion: getEnv("GEMINI_API_VERSION", "v1"),
			BaseURL:    os.Getenv("GEMINI_BASE_URL"),
		},
		YouTube: YouTubeConfig{
			APIKey:   os.Getenv("YOUTUBE_API_KEY"),
			Endpoint: os.Getenv("YOUTUBE_ENDPOINT"),
		},
		RateLimit: RateLimitConfig{
			RPS:   getFloatEnv("RATE_LIMIT_RPS", 0),
			Burst: getIntEnv("RATE_LIMIT_BURST", 5),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		WebIndex: os.Getenv("WEB_INDEX"),
	}
}

// Validate checks if the configuration is valid.
// Missing API keys are not errors: the services start and report
// themselves as not configured.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	return c.Database.Validate()
}

func (c *Config) validateServer() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if c.RateLimit.RPS > 0 && c.RateLimit.Burst < 1 {
		return fmt.Errorf("RATE_LIMIT_BURST must be at least 1 when rate limiting is enabled")
	}
	return nil
}

// Validate checks the driver and its required connection settings
func (c *DatabaseConfig) Validate() error {
	switch c.Driver {
	case DriverMySQL, DriverPostgres:
		if c.Host == "" {
			return fmt.Errorf("DB_HOST is required")
		}
		if c.Name == "" {
			return fmt.Errorf("DB_NAME is required")
		}
	case DriverSQLite:
		if c.Path == "" {
			return fmt.Errorf("DB_PATH is required for sqlite")
		}
	default:
		return fmt.Errorf("DB_DRIVER must be one of: mysql, postgres, sqlite (got %q)", c.Driver)
	}
	return nil
}

// GetDSN returns the driver specific connection string.
// MySQL connections accept a single statement per query.
func (c *DatabaseConfig) GetDSN() string {
	return c.dsn(false)
}

// MigrationDSN returns the connection string for schema migrations.
// MySQL migration files may hold several statements, so only this DSN
// enables multiStatements.
func (c *DatabaseConfig) MigrationDSN() string {
	return c.dsn(true)
}

func (c *DatabaseConfig) dsn(multiStatements bool) string {
	switch c.Driver {
	case DriverPostgres:
		port := c.Port
		if port == "" {
			port = "5432"
		}
		return fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			c.Host, port, c.User, c.Password, c.Name, c.SSLMode,
		)
	case DriverSQLite:
		return "file:" + filepath.ToSlash(c.Path) + "?_pragma=busy_timeout(5000)"
	default:
		port := c.Port
		if port == "" {
			port = "3306"
		}
		mc := mysql.NewConfig()
		mc.User = c.User
		mc.Passwd = c.Password
		mc.Net = "tcp"
		mc.Addr = c.Host + ":" + port
		mc.DBName = c.Name
		mc.ParseTime = true
		mc.MultiStatements = multiStatements
		return mc.FormatDSN()
	}
}

// Dialect returns the human readable SQL dialect name for prompts
func (c *DatabaseConfig) Dialect() string {
	switch c.Driver {
	case DriverPostgres:
		return "PostgreSQL"
	case DriverSQLite:
		return "SQLite"
	default:
		return "MariaDB"
	}
}

// Redacted returns a loggable description of the target database
func (c *DatabaseConfig) Redacted() string {
	if c.Driver == DriverSQLite {
		return c.Driver + "://" + c.Path
	}
	u := url.URL{Scheme: c.Driver, Host: c.Host, Path: "/" + c.Name}
	if c.User != "" {
		u.User = url.User(c.User)
	}
	return u.String()
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
