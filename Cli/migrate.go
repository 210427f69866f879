package Cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"Mileage/Models"
)

// MigrateCmd returns the migrate command
func MigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database tables",
		Long:  `Create the job_sites and drive_logs tables. Safe to run multiple times.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := openDatabase()
			if err != nil {
				return err
			}
			defer Models.Close(db)

			fmt.Fprintf(cmd.OutOrStdout(), "%s database is up to date\n", color.New(color.FgGreen).Sprint("✓"))
			return nil
		},
	}
}
