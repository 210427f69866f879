package Cli

import (
	"log"

	"github.com/spf13/cobra"

	"Mileage/Config"
	"Mileage/CronJobs"
	"Mileage/FiberConfig"
	"Mileage/Models"
	"Mileage/Store"
	"Mileage/email"
)

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the web interface",
		Long: `Migrate the database and serve the web interface on $PORT.

When REMINDER_SCHEDULE is set, a drive left in progress for longer than
REMINDER_AFTER is reported by mail (or to the log without SMTP settings).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := openDatabase()
			if err != nil {
				return err
			}
			defer func() {
				if err := Models.Close(db); err != nil {
					log.Printf("Error closing database: %v\n", err)
				}
			}()
			if err := cfg.CheckAuth(); err != nil {
				return err
			}

			s := Store.New(db)
			if cfg.ReminderEnabled() {
				reminder := CronJobs.NewInProgressReminder(s, reminderNotifier(cfg), cfg.ReminderAfter)
				if err := reminder.Start(cfg.ReminderSchedule); err != nil {
					return err
				}
				defer reminder.Stop()
			}

			return FiberConfig.FiberConfig(cmd.Context(), cfg, s)
		},
	}
}

func reminderNotifier(cfg *Config.Config) CronJobs.Notifier {
	if cfg.Email.Enabled() && len(cfg.ReminderTo) > 0 {
		return email.NewNotifier(cfg.Email, cfg.ReminderTo)
	}
	log.Println("SMTP not configured, drive reminders go to the log")
	return CronJobs.LogNotifier{}
}
