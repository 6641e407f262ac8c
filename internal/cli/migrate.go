package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/database/migration"
)

// NewMigrateCommand creates the migrate command.
func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if list {
				for _, name := range migration.Steps() {
					fmt.Fprintln(cmd.OutOrStdout(), name)
				}
				return nil
			}
			return runMigrate(cmd, rootOpts)
		},
	}

	cmd.Flags().BoolVar(&list, "list", false, "print known migration steps and exit")

	return cmd
}

func runMigrate(cmd *cobra.Command, opts *RootOptions) error {
	cfg := opts.Config()
	log := commandLogger(cmd.ErrOrStderr(), cfg)

	ctx, cancel := context.WithTimeout(cmd.Context(), opts.Timeout)
	defer cancel()

	db, err := openDB(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, log, cfg.Database.Host); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "schema up to date")
	return nil
}
