package main

import (
	"database/sql"
	"fmt"

	"github.com/anoodleReza/application-tracker/internal/config"
	"github.com/anoodleReza/application-tracker/internal/repository"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewMigrateCmd creates the migrate subcommand.
func NewMigrateCmd(logger *logrus.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDB(func(db *sql.DB) error {
				if err := repository.MigrateUp(db); err != nil {
					return err
				}
				logger.Info("Migrations applied")
				return nil
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back all migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDB(func(db *sql.DB) error {
				if err := repository.MigrateDown(db); err != nil {
					return err
				}
				logger.Info("Migrations rolled back")
				return nil
			})
		},
	})
	return cmd
}

func withDB(fn func(db *sql.DB) error) error {
	db, err := sql.Open("postgres", config.DatabaseURLFromEnv())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return fn(db)
}
