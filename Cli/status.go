package Cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"Mileage/Models"
	"Mileage/Reports"
	"Mileage/Store"
)

// StatusCmd returns the status command
func StatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the running drive and logged totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := openDatabase()
			if err != nil {
				return err
			}
			defer Models.Close(db)

			s := Store.New(db)
			ctx := cmd.Context()
			inProgress, err := s.GetEarliestInProgressDriveLog(ctx)
			if err != nil {
				return err
			}
			completed, err := s.ListCompletedDriveLogs(ctx)
			if err != nil {
				return err
			}
			last, err := s.GetLastCompletedOrAnyDriveLog(ctx)
			if err != nil {
				return err
			}
			printStatus(cmd.OutOrStdout(), inProgress, last, Reports.Summarize(completed))
			return nil
		},
	}
}

func printStatus(w io.Writer, inProgress, last *Models.DriveLogWithJobSite, summary Reports.Summary) {
	if inProgress != nil {
		fmt.Fprintf(w, "%s drive %d to %s since %s, started at %d km\n",
			color.New(color.FgYellow).Sprint("IN PROGRESS"),
			inProgress.ID, inProgress.JobSiteName, inProgress.DateString(), inProgress.StartKm)
	} else {
		fmt.Fprintf(w, "%s no drive in progress\n", color.New(color.FgGreen).Sprint("✓"))
	}
	if last != nil && last.EndKm != nil {
		fmt.Fprintf(w, "Odometer: %d km (last drive %s)\n", *last.EndKm, last.DateString())
	}
	fmt.Fprintf(w, "Completed drives: %d, total distance: %d km\n", summary.Count, summary.TotalKm)
}
