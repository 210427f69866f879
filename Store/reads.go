package Store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"Mileage/Models"
)

const driveLogColumns = `drive_logs.id, drive_logs.created_at, drive_logs.updated_at,
	drive_logs.date, drive_logs.start_km, drive_logs.end_km, drive_logs.status,
	drive_logs.job_site_id,
	job_sites.name AS job_site_name, job_sites.address AS job_site_address`

// driveLogsWithJobSite is the base join shared by the drive log queries.
func (s *Store) driveLogsWithJobSite(ctx context.Context) *gorm.DB {
	return s.DB.WithContext(ctx).
		Table("drive_logs").
		Select(driveLogColumns).
		Joins("JOIN job_sites ON job_sites.id = drive_logs.job_site_id")
}

// ---- JOB SITES ---- //

// ListJobSites returns every job site.
func (s *Store) ListJobSites(ctx context.Context) ([]Models.JobSite, error) {
	jobSites := []Models.JobSite{}
	if err := s.DB.WithContext(ctx).Order("id").Find(&jobSites).Error; err != nil {
		return nil, storeErr("list job sites", err)
	}
	return jobSites, nil
}

// GetJobSite returns the job site with the given id or a NotFoundError.
func (s *Store) GetJobSite(ctx context.Context, id int64) (Models.JobSite, error) {
	var jobSite Models.JobSite
	err := s.DB.WithContext(ctx).Where("id = ?", id).Take(&jobSite).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Models.JobSite{}, &Models.NotFoundError{Entity: "job site", ID: id}
	}
	if err != nil {
		return Models.JobSite{}, storeErr("get job site", err)
	}
	return jobSite, nil
}

// GetMostRecentJobSiteOfAnyDrive returns the job site of the most recently
// created drive log, or nil when there are no drive logs.
func (s *Store) GetMostRecentJobSiteOfAnyDrive(ctx context.Context) (*Models.JobSite, error) {
	var rows []Models.JobSite
	err := s.DB.WithContext(ctx).
		Table("drive_logs").
		Select("job_sites.id, job_sites.created_at, job_sites.updated_at, job_sites.name, job_sites.address").
		Joins("JOIN job_sites ON job_sites.id = drive_logs.job_site_id").
		Order("drive_logs.created_at DESC, drive_logs.id DESC").
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, storeErr("get most recent job site", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// ---- DRIVE LOGS ---- //

// ListCompletedDriveLogs returns completed drive logs, newest first.
func (s *Store) ListCompletedDriveLogs(ctx context.Context) ([]Models.DriveLogWithJobSite, error) {
	driveLogs := []Models.DriveLogWithJobSite{}
	err := s.driveLogsWithJobSite(ctx).
		Where("drive_logs.status = ?", Models.DriveLogCompleted).
		Order("drive_logs.created_at DESC, drive_logs.id DESC").
		Scan(&driveLogs).Error
	if err != nil {
		return nil, storeErr("list completed drive logs", err)
	}
	return driveLogs, nil
}

// GetEarliestInProgressDriveLog returns the oldest drive that has not been
// ended, or nil.
func (s *Store) GetEarliestInProgressDriveLog(ctx context.Context) (*Models.DriveLogWithJobSite, error) {
	return firstDriveLog("get earliest in progress drive log",
		s.driveLogsWithJobSite(ctx).
			Where("drive_logs.status = ?", Models.DriveLogInProgress).
			Order("drive_logs.created_at ASC, drive_logs.id ASC"))
}

// GetLastCompletedOrAnyDriveLog returns the most recently created drive log
// whatever its status, or nil. It seeds the previous end km check when a
// new drive starts.
func (s *Store) GetLastCompletedOrAnyDriveLog(ctx context.Context) (*Models.DriveLogWithJobSite, error) {
	return firstDriveLog("get last drive log",
		s.driveLogsWithJobSite(ctx).
			Order("drive_logs.created_at DESC, drive_logs.id DESC"))
}

// GetDriveLogByID returns the drive log with the given id, or nil.
func (s *Store) GetDriveLogByID(ctx context.Context, id int64) (*Models.DriveLogWithJobSite, error) {
	return firstDriveLog("get drive log",
		s.driveLogsWithJobSite(ctx).
			Where("drive_logs.id = ?", id))
}

// CountInProgressDriveLogs counts drives that have not been ended.
func (s *Store) CountInProgressDriveLogs(ctx context.Context) (int64, error) {
	var count int64
	err := s.DB.WithContext(ctx).
		Model(&Models.DriveLog{}).
		Where("status = ?", Models.DriveLogInProgress).
		Count(&count).Error
	if err != nil {
		return 0, storeErr("count in progress drive logs", err)
	}
	return count, nil
}

func firstDriveLog(op string, query *gorm.DB) (*Models.DriveLogWithJobSite, error) {
	var rows []Models.DriveLogWithJobSite
	if err := query.Limit(1).Scan(&rows).Error; err != nil {
		return nil, storeErr(op, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}
