// Package cli implements bidchemzctl, the operator command line for the marketplace.
package cli

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/config"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/database"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/logger"
)

// RootOptions holds state shared by every subcommand.
type RootOptions struct {
	Timeout time.Duration

	// Config and Now are replaced in tests.
	Config func() *config.AppConfig
	Now    func() time.Time
}

// NewRootCommand creates the bidchemzctl root command.
func NewRootCommand() *cobra.Command {
	return NewRootCommandWith(&RootOptions{
		Config: config.Load,
		Now:    time.Now,
	})
}

// NewRootCommandWith creates the root command around opts.
func NewRootCommandWith(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bidchemzctl",
		Short: "Operator tooling for BidChemz Logistics",
		Long: `Operator tooling for the BidChemz Logistics freight marketplace.

Applies database migrations, provisions admin accounts, runs the quote
expiry sweep on demand and previews lead costs against a rate card.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().DurationVar(&opts.Timeout, "timeout", 30*time.Second, "deadline for database work")

	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewExpireQuotesCommand(opts))
	cmd.AddCommand(NewCreateAdminCommand(opts))
	cmd.AddCommand(NewLeadCostCommand(opts))

	return cmd
}

// commandLogger writes to stderr so stdout stays machine readable.
func commandLogger(w io.Writer, cfg *config.AppConfig) *slog.Logger {
	return logger.NewWithWriter(w, cfg.Logger.LogLevel)
}

func openDB(ctx context.Context, cfg *config.AppConfig, log *slog.Logger) (*sql.DB, error) {
	db, err := database.NewPostgres(ctx, cfg.Database, log)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	return db, nil
}
