package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"assay-backend/internal/auth"
	"assay-backend/internal/database"
	"assay-backend/internal/db"
	"assay-backend/internal/logging"
	"assay-backend/migrations"
)

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := logging.New(cfg.Log.Level, cfg.Log.Format)

	pool, err := db.Connect(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	applied, err := database.NewMigrator(pool, migrations.FS, ".", log).RunMigrations(cmd.Context())
	if err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	log.WithField("applied", applied).Info("migrations complete")
	return nil
}

func runToken(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if !cfg.AuthEnabled() {
		return fmt.Errorf("jwt.secret is not configured")
	}
	token, err := auth.NewJWTManager(cfg).GenerateToken(operator)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
