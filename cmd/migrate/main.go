package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"

	"gocatalog/config"
	"gocatalog/internal/pkg/database"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var migrationsDir string

	root := &cobra.Command{
		Use:          "migrate",
		Short:        "Apply gocatalog database migrations (goose)",
		SilenceUsage: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			if err := godotenv.Load(); err != nil {
				log.Printf("warning: .env not found, using system environment only")
			}
		},
	}
	root.PersistentFlags().StringVar(&migrationsDir, "dir", "./sql", "directory with migration files")

	for _, c := range []struct {
		name, short string
	}{
		{"up", "Migrate to the most recent version"},
		{"down", "Roll back one version"},
		{"status", "Print the status of every migration"},
		{"version", "Print the current version"},
		{"reset", "Roll back all migrations"},
	} {
		command := c.name
		root.AddCommand(&cobra.Command{
			Use:   command,
			Short: c.short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return run(cmd.Context(), command, migrationsDir)
			},
		})
	}

	root.AddCommand(&cobra.Command{
		Use:   "up-to VERSION",
		Short: "Migrate up to a specific version",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), "up-to", migrationsDir, args...)
		},
	})

	return root
}

func run(ctx context.Context, command, dir string, args ...string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	db, err := database.NewPostgresDB(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("goose: failed to connect to DB: %w", err)
	}
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	if err := goose.RunContext(ctx, command, db, dir, args...); err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}

	fmt.Printf("goose %s success\n", command)
	return nil
}
