package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/stevedao0/contract-service/internal/app"
	"github.com/stevedao0/contract-service/internal/config"
	"github.com/stevedao0/contract-service/internal/utils"
)

const migrateTimeout = 2 * time.Minute

// NewMigrateCommand creates the migrate command.
func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema and exit",
		Long: `Create the contracts, annexes, works and audit_logs tables (and their
indexes) on the configured backend. Safe to run repeatedly.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(rootOpts.ConfigPath)
			if err != nil {
				return err
			}
			return runMigrate(cmd.Context(), cfg)
		},
	}
}

func runMigrate(ctx context.Context, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	application, err := app.NewApp(cfg)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer application.Close()

	ctx, cancel := context.WithTimeout(ctx, migrateTimeout)
	defer cancel()
	if err := application.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	utils.Logger.Infof("Schema applied on %s backend", cfg.DBDriver)
	return nil
}
