package main

import (
	"fmt"
	"strconv"

	"github.com/querytube/insight-services/internal/database"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the sales schema",
}

var migrateUpCmd = &cobra.Command{
	Use:           "up",
	Short:         "Apply all pending migrations",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(db *database.DB, path string) error {
			return db.RunMigrations(path)
		})
	},
}

var migrateDownCmd = &cobra.Command{
	Use:           "down",
	Short:         "Roll back the last migration",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(db *database.DB, path string) error {
			return db.MigrateDown(path)
		})
	},
}

var migrateGotoCmd = &cobra.Command{
	Use:           "goto VERSION",
	Short:         "Migrate up or down to VERSION",
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		version, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			return fmt.Errorf("invalid version %q: %w", args[0], err)
		}
		return withDB(func(db *database.DB, path string) error {
			return db.MigrateToVersion(path, uint(version))
		})
	},
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateGotoCmd)
	rootCmd.AddCommand(migrateCmd)
}

func withDB(fn func(db *database.DB, path string) error) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := database.New(&cfg.Database, log)
	if err != nil {
		log.Error().Err(err).Msg("Failed to open database")
		return err
	}
	defer db.Close()

	if err := fn(db, cfg.Database.MigrationsPath); err != nil {
		log.Error().Err(err).Msg("Migration failed")
		return err
	}
	return nil
}
