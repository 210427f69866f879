package Commands

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"Mileage/Models"
	"Mileage/Store"
)

func setupTestStore(t *testing.T) *Store.Store {
	t.Helper()
	db, err := Models.Open("sqlite:"+filepath.Join(t.TempDir(), "test.db"), false)
	require.NoError(t, err)
	require.NoError(t, Models.Migrate(db))
	t.Cleanup(func() {
		if err := Models.Close(db); err != nil {
			t.Logf("db close failed: %v", err)
		}
	})
	s := Store.New(db)
	clock := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	s.Now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return s
}

func day(t *testing.T, s string) datatypes.Date {
	t.Helper()
	d, err := Models.ParseDate(s)
	require.NoError(t, err)
	return d
}

func createSite(t *testing.T, s *Store.Store) int64 {
	t.Helper()
	id, err := CreateJobSiteCommand(context.Background(), s, CreateJobSiteInput{Name: "Site A", Address: "123 Main St"})
	require.NoError(t, err)
	return id
}

func TestCreateJobSiteCommand(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)

	id := createSite(t, s)
	site, err := s.GetJobSite(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Site A", site.Name)
	assert.Equal(t, "123 Main St", site.Address)
}

func TestCreateJobSiteCommandRequiresNameAndAddress(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)

	tests := []struct {
		name   string
		input  CreateJobSiteInput
		fields []string
	}{
		{"missing name", CreateJobSiteInput{Address: "1 A St"}, []string{"job-site-name"}},
		{"missing address", CreateJobSiteInput{Name: "A"}, []string{"job-site-address"}},
		{"missing both", CreateJobSiteInput{}, []string{"job-site-name", "job-site-address"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CreateJobSiteCommand(ctx, s, tt.input)
			var inputErr *Models.InputError
			require.ErrorAs(t, err, &inputErr)
			assert.ErrorIs(t, err, Models.ErrValidation)
			for _, f := range tt.fields {
				assert.Contains(t, inputErr.Fields, f)
			}
		})
	}

	sites, err := s.ListJobSites(ctx)
	require.NoError(t, err)
	assert.Empty(t, sites)
}

func TestEditJobSiteCommand(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)
	id := createSite(t, s)

	require.NoError(t, EditJobSiteCommand(ctx, s, EditJobSiteInput{ID: id, Name: "Site B", Address: "2 B St"}))
	site, err := s.GetJobSite(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Site B", site.Name)

	err = EditJobSiteCommand(ctx, s, EditJobSiteInput{ID: id, Name: "", Address: "2 B St"})
	assert.ErrorIs(t, err, Models.ErrValidation)
	site, err = s.GetJobSite(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Site B", site.Name)
}

func TestStartDriveCommand(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)
	siteID := createSite(t, s)

	id, err := StartDriveCommand(ctx, s, StartDriveInput{Date: day(t, "2024-01-01"), StartKm: 1000, JobSiteID: siteID})
	require.NoError(t, err)

	got, err := s.GetDriveLogByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, Models.DriveLogInProgress, got.Status)
	assert.Nil(t, got.EndKm)
	assert.Equal(t, 1000, got.StartKm)
}

func TestStartDriveCommandRefusesSecondDrive(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)
	siteID := createSite(t, s)

	first, err := StartDriveCommand(ctx, s, StartDriveInput{Date: day(t, "2024-01-01"), StartKm: 1000, JobSiteID: siteID})
	require.NoError(t, err)

	_, err = StartDriveCommand(ctx, s, StartDriveInput{Date: day(t, "2024-01-01"), StartKm: 2000, JobSiteID: siteID})
	var inProgress *Models.DriveInProgressError
	require.ErrorAs(t, err, &inProgress)
	assert.Equal(t, first, inProgress.DriveLogID)

	count, err := s.CountInProgressDriveLogs(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestStartDriveCommandStartKmNotBelowPreviousEnd(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)
	siteID := createSite(t, s)

	_, err := CreateDriveLogCommand(ctx, s, CreateDriveLogInput{Date: day(t, "2024-01-01"), StartKm: 900, EndKm: 1000, JobSiteID: siteID})
	require.NoError(t, err)

	for _, startKm := range []int{0, 500, 999} {
		_, err := StartDriveCommand(ctx, s, StartDriveInput{Date: day(t, "2024-01-02"), StartKm: startKm, JobSiteID: siteID})
		var tooLow *Models.StartKmTooLowError
		require.ErrorAs(t, err, &tooLow, "start km %d", startKm)
		assert.Equal(t, startKm, tooLow.StartKm)
		assert.Equal(t, 1000, tooLow.PreviousEndKm)
	}

	count, err := s.CountInProgressDriveLogs(ctx)
	require.NoError(t, err)
	assert.Zero(t, count, "a rejected start persists nothing")

	for _, startKm := range []int{1000, 1001} {
		id, err := StartDriveCommand(ctx, s, StartDriveInput{Date: day(t, "2024-01-02"), StartKm: startKm, JobSiteID: siteID})
		require.NoError(t, err)
		require.NoError(t, DeleteDriveLogCommand(ctx, s, id))
	}
}

func TestEndDriveCommand(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)
	siteID := createSite(t, s)

	id, err := StartDriveCommand(ctx, s, StartDriveInput{Date: day(t, "2024-01-01"), StartKm: 1000, JobSiteID: siteID})
	require.NoError(t, err)

	err = EndDriveCommand(ctx, s, EndDriveInput{ID: id, EndKm: 999})
	var tooLow *Models.EndKmTooLowError
	require.ErrorAs(t, err, &tooLow)
	assert.Equal(t, 999, tooLow.EndKm)
	assert.Equal(t, 1000, tooLow.StartKm)

	unchanged, err := s.GetDriveLogByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, Models.DriveLogInProgress, unchanged.Status)
	assert.Nil(t, unchanged.EndKm)

	require.NoError(t, EndDriveCommand(ctx, s, EndDriveInput{ID: id, EndKm: 1000}))
	ended, err := s.GetDriveLogByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, Models.DriveLogCompleted, ended.Status)
	require.NotNil(t, ended.EndKm)
	assert.Equal(t, 1000, *ended.EndKm)
}

func TestEndDriveCommandUnknownDrive(t *testing.T) {
	s := setupTestStore(t)
	err := EndDriveCommand(context.Background(), s, EndDriveInput{ID: 77, EndKm: 5})
	assert.ErrorIs(t, err, Models.ErrNotFound)
}

func TestFullDriveScenario(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)
	siteID := createSite(t, s)

	id, err := StartDriveCommand(ctx, s, StartDriveInput{Date: day(t, "2024-01-01"), StartKm: 1000, JobSiteID: siteID})
	require.NoError(t, err)
	count, err := s.CountInProgressDriveLogs(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	require.NoError(t, EndDriveCommand(ctx, s, EndDriveInput{ID: id, EndKm: 1050}))
	count, err = s.CountInProgressDriveLogs(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	completed, err := s.ListCompletedDriveLogs(ctx)
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, 1000, completed[0].StartKm)
	assert.Equal(t, 1050, *completed[0].EndKm)

	// The next drive must start at or above 1050.
	_, err = StartDriveCommand(ctx, s, StartDriveInput{Date: day(t, "2024-01-02"), StartKm: 1049, JobSiteID: siteID})
	assert.ErrorIs(t, err, Models.ErrValidation)
	_, err = StartDriveCommand(ctx, s, StartDriveInput{Date: day(t, "2024-01-02"), StartKm: 1050, JobSiteID: siteID})
	assert.NoError(t, err)
}

func TestCreateDriveLogCommand(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)
	siteID := createSite(t, s)

	// Manual entries bypass the in-progress check.
	_, err := StartDriveCommand(ctx, s, StartDriveInput{Date: day(t, "2024-01-03"), StartKm: 10, JobSiteID: siteID})
	require.NoError(t, err)

	id, err := CreateDriveLogCommand(ctx, s, CreateDriveLogInput{Date: day(t, "2023-12-31"), StartKm: 0, EndKm: 10, JobSiteID: siteID})
	require.NoError(t, err)
	got, err := s.GetDriveLogByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, Models.DriveLogCompleted, got.Status)
	assert.Equal(t, "2023-12-31", got.DateString())

	_, err = CreateDriveLogCommand(ctx, s, CreateDriveLogInput{Date: day(t, "2023-12-31"), StartKm: 20, EndKm: 10, JobSiteID: siteID})
	var tooLow *Models.EndKmTooLowError
	assert.ErrorAs(t, err, &tooLow)

	_, err = CreateDriveLogCommand(ctx, s, CreateDriveLogInput{Date: day(t, "2023-12-31"), StartKm: 0, EndKm: 10, JobSiteID: 9999})
	var storeErr *Models.StoreError
	assert.ErrorAs(t, err, &storeErr, "unknown job site violates the foreign key")
}

func TestDeleteJobSiteCommandKeepsReferencedSite(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)
	siteID := createSite(t, s)
	_, err := StartDriveCommand(ctx, s, StartDriveInput{Date: day(t, "2024-01-01"), StartKm: 1000, JobSiteID: siteID})
	require.NoError(t, err)

	err = DeleteJobSiteCommand(ctx, s, siteID)
	require.Error(t, err)
	assert.False(t, errors.Is(err, Models.ErrNotFound))

	site, err := s.GetJobSite(ctx, siteID)
	require.NoError(t, err)
	assert.Equal(t, "Site A", site.Name)
}

func TestStartDriveCommandValidatesInput(t *testing.T) {
	s := setupTestStore(t)
	_, err := StartDriveCommand(context.Background(), s, StartDriveInput{Date: day(t, "2024-01-01"), StartKm: -1, JobSiteID: 0})
	var inputErr *Models.InputError
	require.ErrorAs(t, err, &inputErr)
	assert.Contains(t, inputErr.Fields, "start_km")
	assert.Contains(t, inputErr.Fields, "job_site_id")
}
