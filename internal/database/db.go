package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	"github.com/querytube/insight-services/internal/config"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

// DB wraps the sql.DB handle with additional functionality
type DB struct {
	*sql.DB
	driver       string
	migrationDSN string
	log          zerolog.Logger
}

// New opens a database handle for the configured driver.
// With MaxIdleConns at 0 every connection acquired through Conn is
// physically closed when released.
func New(cfg *config.DatabaseConfig, log zerolog.Logger) (*DB, error) {
	db, err := sql.Open(cfg.Driver, cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.MaxLifetime)

	wrapper := &DB{
		DB:           db,
		driver:       cfg.Driver,
		migrationDSN: cfg.MigrationDSN(),
		log:          log.With().Str("component", "database").Logger(),
	}

	wrapper.log.Info().
		Str("driver", cfg.Driver).
		Str("target", cfg.Redacted()).
		Int("max_open_conns", cfg.MaxOpenConns).
		Int("max_idle_conns", cfg.MaxIdleConns).
		Msg("Database handle configured")

	return wrapper, nil
}

// Driver returns the configured driver name
func (db *DB) Driver() string {
	return db.driver
}

// Acquire returns a dedicated connection for one unit of work.
// Callers must Close it.
func (db *DB) Acquire(ctx context.Context) (*sql.Conn, error) {
	conn, err := db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire connection: %w", err)
	}
	return conn, nil
}

// HealthCheck verifies the database is reachable
func (db *DB) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return db.PingContext(ctx)
}

// RunMigrations executes all pending migrations using golang-migrate
func (db *DB) RunMigrations(migrationsPath string) error {
	db.log.Info().Str("path", migrationsPath).Msg("Running database migrations")

	m, release, err := db.migrator(migrationsPath)
	if err != nil {
		return err
	}
	defer release()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to get migration version: %w", err)
	}

	db.log.Info().
		Uint("version", version).
		Bool("dirty", dirty).
		Msg("Migrations completed")

	return nil
}

// MigrateDown rolls back the last migration
func (db *DB) MigrateDown(migrationsPath string) error {
	db.log.Info().Str("path", migrationsPath).Msg("Rolling back last migration")

	m, release, err := db.migrator(migrationsPath)
	if err != nil {
		return err
	}
	defer release()

	if err := m.Steps(-1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to rollback migration: %w", err)
	}

	db.log.Info().Msg("Migration rolled back")
	return nil
}

// MigrateToVersion migrates to a specific version
func (db *DB) MigrateToVersion(migrationsPath string, version uint) error {
	db.log.Info().Uint("version", version).Msg("Migrating to specific version")

	m, release, err := db.migrator(migrationsPath)
	if err != nil {
		return err
	}
	defer release()

	if err := m.Migrate(version); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to migrate to version %d: %w", version, err)
	}

	return nil
}

// migrator builds a migrate instance for the configured driver. MySQL
// migrations run on a separate multi-statement handle that release
// closes; the other drivers share db.DB, which release leaves open.
func (db *DB) migrator(migrationsPath string) (*migrate.Migrate, func(), error) {
	var (
		driver  migratedb.Driver
		err     error
		release = func() {}
	)
	switch db.driver {
	case config.DriverPostgres:
		driver, err = postgres.WithInstance(db.DB, &postgres.Config{})
	case config.DriverSQLite:
		driver, err = migratesqlite.WithInstance(db.DB, &migratesqlite.Config{})
	default:
		handle, openErr := sql.Open(db.driver, db.migrationDSN)
		if openErr != nil {
			return nil, nil, fmt.Errorf("failed to open migration connection: %w", openErr)
		}
		release = func() { handle.Close() }
		driver, err = migratemysql.WithInstance(handle, &migratemysql.Config{})
	}
	if err != nil {
		release()
		return nil, nil, fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", migrationsPath),
		db.driver,
		driver,
	)
	if err != nil {
		release()
		return nil, nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	return m, release, nil
}
