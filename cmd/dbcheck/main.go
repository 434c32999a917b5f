// Command dbcheck verifies that the configured Postgres database is reachable
// and reports how many regions and cultural artifacts it holds.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/akozadaev/budaya_nusantara/internal/config"
	"github.com/akozadaev/budaya_nusantara/internal/storage"
	"github.com/spf13/cobra"
)

// counter is the part of the store the probe needs.
type counter interface {
	Ping(ctx context.Context) error
	CountDaerah(ctx context.Context) (int, error)
	CountKebudayaan(ctx context.Context) (int, error)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		databaseURL string
		timeout     time.Duration
	)

	cmd := &cobra.Command{
		Use:          "dbcheck",
		Short:        "Check the database connection and report record counts",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			if cmd.Flags().Changed("database-url") {
				cfg.DatabaseURL = databaseURL
			}
			if cfg.StoreState() != config.StoreOK {
				return fmt.Errorf("DATABASE_URL must start with postgres:// or postgresql:// (state %s)", cfg.StoreState())
			}

			store, err := storage.NewPostgresStorage(cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer store.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()
			return report(ctx, cmd.OutOrStdout(), store)
		},
	}

	cmd.Flags().StringVar(&databaseURL, "database-url", "", "Postgres URL (overrides DATABASE_URL)")
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "Timeout for the whole check")
	return cmd
}

func report(ctx context.Context, out io.Writer, store counter) error {
	fmt.Fprintln(out, "Testing database connection...")

	if err := store.Ping(ctx); err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}

	daerah, err := store.CountDaerah(ctx)
	if err != nil {
		return err
	}
	kebudayaan, err := store.CountKebudayaan(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Connection successful! Found %d daerah and %d kebudayaan records.\n", daerah, kebudayaan)
	return nil
}
