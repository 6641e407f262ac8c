package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/app"
)

type createAdminOptions struct {
	email    string
	password string
	name     string
}

// NewCreateAdminCommand creates the create-admin command. Admin accounts
// cannot be registered over HTTP.
func NewCreateAdminCommand(rootOpts *RootOptions) *cobra.Command {
	o := &createAdminOptions{}

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Provision an ADMIN account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if o.email == "" || o.password == "" {
				return errors.New("--email and --password are required")
			}
			return runCreateAdmin(cmd, rootOpts, o)
		},
	}

	cmd.Flags().StringVar(&o.email, "email", "", "admin email address")
	cmd.Flags().StringVar(&o.password, "password", "", "admin password, at least 8 characters")
	cmd.Flags().StringVar(&o.name, "name", "Administrator", "display name")

	return cmd
}

func runCreateAdmin(cmd *cobra.Command, rootOpts *RootOptions, o *createAdminOptions) error {
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

	u, err := comp.Services.Auth.CreateAdmin(ctx, o.email, o.password, o.name)
	if err != nil {
		return fmt.Errorf("create admin: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "created admin %s (%s)\n", u.Email, u.ID)
	return nil
}
