package main

import (
	"context"
	"fmt"
	"time"

	"skill-swap/internal/config"
	"skill-swap/internal/database/migration"
	dbpostgres "skill-swap/internal/database/postgres"
	"skill-swap/migrations"

	"github.com/spf13/cobra"
)

var migrateDir string

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	Long:  "Applies V<version>__<name>.sql migrations in order. Uses the migrations built into the binary unless --dir is given.",
	Args:  cobra.NoArgs,
	RunE:  runMigrate,
}

func init() {
	migrateCmd.Flags().StringVar(&migrateDir, "dir", "", "Directory with migration files (default: built-in migrations)")
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadDatabase()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer func() { _ = db.Close() }()

	r := migration.Runner{Dir: migrateDir, Logger: newLogger()}
	if migrateDir == "" {
		r.FS = migrations.FS
	}
	return r.Run(ctx, db.SQLDB())
}
