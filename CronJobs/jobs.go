package CronJobs

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"Mileage/Models"
)

// InProgressReminder periodically checks for a drive that was started but
// never ended, and sends one reminder per such drive.
type InProgressReminder struct {
	cronScheduler *cron.Cron
	finder        InProgressFinder
	notifier      Notifier
	after         time.Duration
	jobID         cron.EntryID

	// Now is the clock used to age drives. Defaults to time.Now.
	Now func() time.Time

	mu           sync.Mutex
	lastReminded int64
}

// NewInProgressReminder creates a reminder that fires for drives older
// than after.
func NewInProgressReminder(finder InProgressFinder, notifier Notifier, after time.Duration) *InProgressReminder {
	return &InProgressReminder{
		cronScheduler: cron.New(),
		finder:        finder,
		notifier:      notifier,
		after:         after,
		Now:           time.Now,
	}
}

// Start schedules the check with a standard five field cron spec or a
// descriptor such as "@hourly".
func (r *InProgressReminder) Start(schedule string) error {
	var err error
	r.jobID, err = r.cronScheduler.AddFunc(schedule, func() {
		if _, err := r.Check(context.Background()); err != nil {
			log.Printf("Error in drive reminder: %v\n", err)
		}
	})
	if err != nil {
		return fmt.Errorf("error scheduling cron job: %w", err)
	}

	r.cronScheduler.Start()
	log.Printf("Drive reminder scheduled: %s\n", schedule)
	return nil
}

// Stop terminates the scheduler and waits for a running check to finish.
func (r *InProgressReminder) Stop() {
	if r.cronScheduler != nil {
		<-r.cronScheduler.Stop().Done()
		log.Println("Drive reminder stopped")
	}
}

// Check sends a reminder when the earliest in-progress drive was started
// more than the configured duration ago. It reports whether a reminder was
// sent. A drive is reminded about at most once.
func (r *InProgressReminder) Check(ctx context.Context) (bool, error) {
	driveLog, err := r.finder.GetEarliestInProgressDriveLog(ctx)
	if err != nil {
		return false, err
	}
	if driveLog == nil {
		return false, nil
	}

	age := r.Now().Sub(driveLog.CreatedAt)
	if age < r.after {
		return false, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.lastReminded == driveLog.ID {
		return false, nil
	}

	subject, body := reminderMessage(*driveLog, age)
	if err := r.notifier.Notify(ctx, subject, body); err != nil {
		return false, fmt.Errorf("failed to send reminder for drive log %d: %w", driveLog.ID, err)
	}
	r.lastReminded = driveLog.ID
	return true, nil
}

func reminderMessage(driveLog Models.DriveLogWithJobSite, age time.Duration) (string, string) {
	subject := fmt.Sprintf("Drive to %s is still in progress", driveLog.JobSiteName)
	body := fmt.Sprintf(
		"The drive started on %s at %d km for %s (%s) has not been ended.\n"+
			"It was started %s ago. End it at /end-drive/%d.\n",
		driveLog.DateString(),
		driveLog.StartKm,
		driveLog.JobSiteName,
		driveLog.JobSiteAddress,
		age.Round(time.Minute),
		driveLog.ID,
	)
	return subject, body
}
