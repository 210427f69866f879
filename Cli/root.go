// Package Cli holds the mileage command tree.
package Cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"Mileage/Config"
	"Mileage/Models"
)

var envFile string

// NewRootCmd returns the root command with every subcommand attached.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mileage",
		Short: "Mileage - personal drive log",
		Long: `Mileage records drives between job sites with their odometer readings.
Run "mileage serve" for the web interface.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")

	rootCmd.AddCommand(ServeCmd())
	rootCmd.AddCommand(MigrateCmd())
	rootCmd.AddCommand(StatusCmd())
	rootCmd.AddCommand(HashPasswordCmd())

	return rootCmd
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

// openDatabase loads the configuration and opens the database it names.
func openDatabase() (*Config.Config, *gorm.DB, error) {
	cfg, err := Config.Load(envFile)
	if err != nil {
		return nil, nil, err
	}
	db, err := Models.Open(cfg.DatabaseURL, cfg.DBEcho)
	if err != nil {
		return nil, nil, err
	}
	if err := Models.Migrate(db); err != nil {
		Models.Close(db)
		return nil, nil, fmt.Errorf("failed to prepare database: %w", err)
	}
	return cfg, db, nil
}
