package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "DB_DRIVER", "DB_HOST", "DB_NAME", "DB_PASSWORD", "GEMINI_API_KEY", "YOUTUBE_API_KEY", "RATE_LIMIT_RPS", "DB_MAX_IDLE_CONNS"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 60*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, DriverMySQL, cfg.Database.Driver)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Empty(t, cfg.Database.Password)
	assert.Equal(t, 0, cfg.Database.MaxIdleConns)
	assert.Equal(t, "gemini-2.5-flash", cfg.Model.Name)
	assert.Empty(t, cfg.Model.APIKey)
	assert.Empty(t, cfg.YouTube.APIKey)
	assert.Zero(t, cfg.RateLimit.RPS)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("REQUEST_TIMEOUT", "15s")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("RATE_LIMIT_BURST", "3")
	t.Setenv("DB_MAX_OPEN_CONNS", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "6543", cfg.Database.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, 2.5, cfg.RateLimit.RPS)
	assert.Equal(t, 3, cfg.RateLimit.Burst)
	assert.Equal(t, 10, cfg.Database.MaxOpenConns, "unparsable values fall back to the default")
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:   ServerConfig{Port: "8080"},
			Database: DatabaseConfig{Driver: DriverMySQL, Host: "db", Name: "analytics"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"missing port", func(c *Config) { c.Server.Port = "" }, "PORT is required"},
		{"missing host", func(c *Config) { c.Database.Host = "" }, "DB_HOST is required"},
		{"missing name", func(c *Config) { c.Database.Name = "" }, "DB_NAME is required"},
		{"unknown driver", func(c *Config) { c.Database.Driver = "oracle" }, "DB_DRIVER must be one of"},
		{"sqlite without path", func(c *Config) { c.Database.Driver = DriverSQLite }, "DB_PATH is required"},
		{"sqlite with path", func(c *Config) {
			c.Database.Driver = DriverSQLite
			c.Database.Path = "analytics.db"
		}, ""},
		{"rate limit without burst", func(c *Config) { c.RateLimit.RPS = 1 }, "RATE_LIMIT_BURST"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGetDSN(t *testing.T) {
	mysqlCfg := DatabaseConfig{Driver: DriverMySQL, Host: "db", User: "app", Password: "secret", Name: "analytics"}
	dsn := mysqlCfg.GetDSN()
	assert.True(t, strings.HasPrefix(dsn, "app:secret@tcp(db:3306)/analytics?"), dsn)
	assert.Contains(t, dsn, "parseTime=true")
	assert.NotContains(t, dsn, "multiStatements")

	migrationDSN := mysqlCfg.MigrationDSN()
	assert.True(t, strings.HasPrefix(migrationDSN, "app:secret@tcp(db:3306)/analytics?"), migrationDSN)
	assert.Contains(t, migrationDSN, "multiStatements=true")

	pgCfg := DatabaseConfig{Driver: DriverPostgres, Host: "db", User: "app", Password: "secret", Name: "analytics", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=app password=secret dbname=analytics sslmode=disable", pgCfg.GetDSN())

	sqliteCfg := DatabaseConfig{Driver: DriverSQLite, Path: "data/analytics.db"}
	assert.Equal(t, "file:data/analytics.db?_pragma=busy_timeout(5000)", sqliteCfg.GetDSN())
	assert.Equal(t, sqliteCfg.GetDSN(), sqliteCfg.MigrationDSN())
	assert.Equal(t, pgCfg.GetDSN(), pgCfg.MigrationDSN())
}

func TestDialect(t *testing.T) {
	assert.Equal(t, "MariaDB", (&DatabaseConfig{Driver: DriverMySQL}).Dialect())
	assert.Equal(t, "PostgreSQL", (&DatabaseConfig{Driver: DriverPostgres}).Dialect())
	assert.Equal(t, "SQLite", (&DatabaseConfig{Driver: DriverSQLite}).Dialect())
}

func TestRedacted_OmitsPassword(t *testing.T) {
	cfg := DatabaseConfig{Driver: DriverMySQL, Host: "db", User: "app", Password: "secret", Name: "analytics"}
	assert.Equal(t, "mysql://app@db/analytics", cfg.Redacted())
	assert.NotContains(t, cfg.Redacted(), "secret")
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(path, []byte("GEMINI_MODEL=gemini-test\n"), 0o600))

	t.Setenv("GEMINI_MODEL", "")
	os.Unsetenv("GEMINI_MODEL")

	require.NoError(t, LoadEnvFile(path))
	assert.Equal(t, "gemini-test", os.Getenv("GEMINI_MODEL"))

	assert.Error(t, LoadEnvFile(filepath.Join(dir, "missing.env")))
}

func TestLoadWithoutDatabase_IgnoresDatabaseSettings(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("DB_DRIVER", "oracle")
	t.Setenv("YOUTUBE_API_KEY", "yt-key")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_DRIVER must be one of")

	cfg, err := LoadWithoutDatabase()
	require.NoError(t, err)
	assert.Equal(t, "8081", cfg.Server.Port)
	assert.Equal(t, "yt-key", cfg.YouTube.APIKey)
}

func TestLoadWithoutDatabase_ValidatesServer(t *testing.T) {
	t.Setenv("RATE_LIMIT_RPS", "1")
	t.Setenv("RATE_LIMIT_BURST", "0")

	_, err := LoadWithoutDatabase()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RATE_LIMIT_BURST")
}
