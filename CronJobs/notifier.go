package CronJobs

import (
	"context"
	"log"

	"Mileage/Models"
)

//go:generate mockgen -source=notifier.go -destination=mock_notifier_test.go -package=CronJobs

// Notifier delivers a reminder message.
type Notifier interface {
	Notify(ctx context.Context, subject, body string) error
}

// InProgressFinder looks up the drive that is still running, if any.
type InProgressFinder interface {
	GetEarliestInProgressDriveLog(ctx context.Context) (*Models.DriveLogWithJobSite, error)
}

// LogNotifier writes reminders to the standard logger. It is used when no
// mail server is configured.
type LogNotifier struct{}

func (LogNotifier) Notify(_ context.Context, subject, body string) error {
	log.Printf("Reminder: %s\n%s\n", subject, body)
	return nil
}
