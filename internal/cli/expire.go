package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/app"
)

// NewExpireQuotesCommand creates the expire-quotes command. It runs one
// sweep of the quote timer, the same work the API server does on a ticker.
func NewExpireQuotesCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "expire-quotes",
		Short: "Close every quote whose offer window has elapsed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := rootOpts.Config()
			log := commandLogger(cmd.ErrOrStderr(), cfg)

			ctx, cancel := context.WithTimeout(cmd.Context(), rootOpts.Timeout)
			defer cancel()

			db, err := openDB(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer db.Close()

			comp, err := app.Build(cfg, app.Options{DB: db, Log: log})
			if err != nil {
				return err
			}
			// expiry webhooks are sent in the background
			defer comp.Dispatcher.Wait()

			n, err := comp.Sweeper.RunOnce(ctx)
			if err != nil {
				return fmt.Errorf("expire quotes: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "expired %d quote(s)\n", n)
			return nil
		},
	}
}
