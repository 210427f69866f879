package CronJobs

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Mileage/Models"
)

var startedAt = time.Date(2024, 5, 1, 7, 30, 0, 0, time.UTC)

func runningDrive(t *testing.T, id int64) *Models.DriveLogWithJobSite {
	t.Helper()
	date, err := Models.ParseDate("2024-05-01")
	require.NoError(t, err)
	return &Models.DriveLogWithJobSite{
		DriveLog: Models.DriveLog{
			ID:        id,
			CreatedAt: startedAt,
			Date:      date,
			StartKm:   4200,
			Status:    Models.DriveLogInProgress,
			JobSiteID: 3,
		},
		JobSiteName:    "North Yard",
		JobSiteAddress: "9 Mill Lane",
	}
}

func newReminder(finder InProgressFinder, notifier Notifier, now time.Time) *InProgressReminder {
	r := NewInProgressReminder(finder, notifier, 12*time.Hour)
	r.Now = func() time.Time { return now }
	return r
}

func TestCheckSendsOnceForOverdueDrive(t *testing.T) {
	ctrl := gomock.NewController(t)
	finder := NewMockInProgressFinder(ctrl)
	notifier := NewMockNotifier(ctrl)

	drive := runningDrive(t, 7)
	finder.EXPECT().GetEarliestInProgressDriveLog(gomock.Any()).Return(drive, nil).Times(2)
	notifier.EXPECT().
		Notify(gomock.Any(), "Drive to North Yard is still in progress", gomock.Any()).
		DoAndReturn(func(_ context.Context, _, body string) error {
			assert.True(t, strings.Contains(body, "4200 km"))
			assert.True(t, strings.Contains(body, "/end-drive/7"))
			return nil
		}).
		Times(1)

	r := newReminder(finder, notifier, startedAt.Add(13*time.Hour))

	sent, err := r.Check(context.Background())
	require.NoError(t, err)
	assert.True(t, sent)

	sent, err = r.Check(context.Background())
	require.NoError(t, err)
	assert.False(t, sent, "the same drive is reminded about once")
}

func TestCheckSkipsRecentDrive(t *testing.T) {
	ctrl := gomock.NewController(t)
	finder := NewMockInProgressFinder(ctrl)
	notifier := NewMockNotifier(ctrl)

	finder.EXPECT().GetEarliestInProgressDriveLog(gomock.Any()).Return(runningDrive(t, 7), nil)

	r := newReminder(finder, notifier, startedAt.Add(time.Hour))
	sent, err := r.Check(context.Background())
	require.NoError(t, err)
	assert.False(t, sent)
}

func TestCheckWithoutRunningDrive(t *testing.T) {
	ctrl := gomock.NewController(t)
	finder := NewMockInProgressFinder(ctrl)
	notifier := NewMockNotifier(ctrl)

	finder.EXPECT().GetEarliestInProgressDriveLog(gomock.Any()).Return(nil, nil)

	r := newReminder(finder, notifier, startedAt.Add(48*time.Hour))
	sent, err := r.Check(context.Background())
	require.NoError(t, err)
	assert.False(t, sent)
}

func TestCheckRetriesAfterNotifyFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	finder := NewMockInProgressFinder(ctrl)
	notifier := NewMockNotifier(ctrl)

	finder.EXPECT().GetEarliestInProgressDriveLog(gomock.Any()).Return(runningDrive(t, 9), nil).Times(2)
	gomock.InOrder(
		notifier.EXPECT().Notify(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("smtp down")),
		notifier.EXPECT().Notify(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil),
	)

	r := newReminder(finder, notifier, startedAt.Add(24*time.Hour))

	sent, err := r.Check(context.Background())
	assert.Error(t, err)
	assert.False(t, sent)

	sent, err = r.Check(context.Background())
	require.NoError(t, err)
	assert.True(t, sent)
}

func TestCheckPropagatesStoreError(t *testing.T) {
	ctrl := gomock.NewController(t)
	finder := NewMockInProgressFinder(ctrl)
	notifier := NewMockNotifier(ctrl)

	storeErr := &Models.StoreError{Op: "get earliest in-progress drive log", Err: errors.New("disk full")}
	finder.EXPECT().GetEarliestInProgressDriveLog(gomock.Any()).Return(nil, storeErr)

	r := newReminder(finder, notifier, startedAt)
	_, err := r.Check(context.Background())
	assert.ErrorIs(t, err, storeErr)
}

func TestStartRejectsBadSchedule(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := newReminder(NewMockInProgressFinder(ctrl), NewMockNotifier(ctrl), startedAt)

	assert.Error(t, r.Start("not a schedule"))

	require.NoError(t, r.Start("@every 1h"))
	r.Stop()
}

func TestLogNotifier(t *testing.T) {
	assert.NoError(t, LogNotifier{}.Notify(context.Background(), "subject", "body"))
}
