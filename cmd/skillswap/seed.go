package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"skill-swap/internal/config"
	dbpostgres "skill-swap/internal/database/postgres"
	"skill-swap/internal/database/seeder"
	"skill-swap/seeds"

	"github.com/spf13/cobra"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert demo users and skills",
	Long:  "Loads profile fixtures from YAML and inserts them. Existing users keep their accounts and get their skills reset.",
	Args:  cobra.NoArgs,
	RunE:  runSeed,
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "Path to a profiles YAML file (default: built-in demo profiles)")
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	data := seeds.Profiles
	if seedFile != "" {
		b, err := os.ReadFile(seedFile)
		if err != nil {
			return fmt.Errorf("read %s: %w", seedFile, err)
		}
		data = b
	}

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

	r := seeder.Runner{
		Seeders: []seeder.Seeder{seeder.ProfilesSeeder{Data: data}},
		Logger:  newLogger(),
	}
	return r.Run(ctx, db)
}
