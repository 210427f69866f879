package Store

import (
	"context"

	"gorm.io/datatypes"

	"Mileage/Models"
)

// StartDriveInput is the data needed to open a new drive.
type StartDriveInput struct {
	Date      datatypes.Date
	StartKm   int
	JobSiteID int64
}

// EndDriveInput closes the drive with the given id.
type EndDriveInput struct {
	ID    int64
	EndKm int
}

// ---- DRIVES ---- //

// StartDrive inserts an in-progress drive log and returns its id. It does
// not validate anything.
func (s *Store) StartDrive(ctx context.Context, input StartDriveInput) (int64, error) {
	now := s.Now()
	driveLog := Models.DriveLog{
		CreatedAt: now,
		UpdatedAt: now,
		Date:      input.Date,
		StartKm:   input.StartKm,
		EndKm:     nil,
		Status:    Models.DriveLogInProgress,
		JobSiteID: input.JobSiteID,
	}
	if err := s.DB.WithContext(ctx).Create(&driveLog).Error; err != nil {
		return 0, storeErr("start drive", err)
	}
	return driveLog.ID, nil
}

// EndDrive records the end reading and marks the drive completed. It does
// not look at the current status, and an unknown id updates nothing.
func (s *Store) EndDrive(ctx context.Context, input EndDriveInput) error {
	err := s.DB.WithContext(ctx).
		Model(&Models.DriveLog{}).
		Where("id = ?", input.ID).
		Updates(map[string]interface{}{
			"end_km":     input.EndKm,
			"status":     Models.DriveLogCompleted,
			"updated_at": s.Now(),
		}).Error
	return storeErr("end drive", err)
}

// ---- JOB SITES ---- //

// InsertJobSite stores a new job site and returns its id.
func (s *Store) InsertJobSite(ctx context.Context, jobSite Models.JobSite) (int64, error) {
	now := s.Now()
	row := Models.JobSite{
		CreatedAt: now,
		UpdatedAt: now,
		Name:      jobSite.Name,
		Address:   jobSite.Address,
	}
	if err := s.DB.WithContext(ctx).Create(&row).Error; err != nil {
		return 0, storeErr("insert job site", err)
	}
	return row.ID, nil
}

// UpdateJobSite changes name and address. created_at is left alone and an
// unknown id updates nothing.
func (s *Store) UpdateJobSite(ctx context.Context, jobSite Models.JobSite) error {
	err := s.DB.WithContext(ctx).
		Model(&Models.JobSite{}).
		Where("id = ?", jobSite.ID).
		Updates(map[string]interface{}{
			"name":       jobSite.Name,
			"address":    jobSite.Address,
			"updated_at": s.Now(),
		}).Error
	return storeErr("update job site", err)
}

// DeleteJobSite removes a job site. A site still referenced by drive logs
// fails with the store's foreign key error.
func (s *Store) DeleteJobSite(ctx context.Context, id int64) error {
	err := s.DB.WithContext(ctx).
		Where("id = ?", id).
		Delete(&Models.JobSite{}).Error
	return storeErr("delete job site", err)
}

// ---- DRIVE LOGS ---- //

// InsertDriveLog stores a drive log with every field supplied by the
// caller, for manual or back-dated entries.
func (s *Store) InsertDriveLog(ctx context.Context, date datatypes.Date, startKm int, endKm *int, status Models.DriveLogStatus, jobSiteID int64) (int64, error) {
	now := s.Now()
	driveLog := Models.DriveLog{
		CreatedAt: now,
		UpdatedAt: now,
		Date:      date,
		StartKm:   startKm,
		EndKm:     endKm,
		Status:    status,
		JobSiteID: jobSiteID,
	}
	if err := s.DB.WithContext(ctx).Create(&driveLog).Error; err != nil {
		return 0, storeErr("insert drive log", err)
	}
	return driveLog.ID, nil
}

// DeleteDriveLog removes a drive log.
func (s *Store) DeleteDriveLog(ctx context.Context, id int64) error {
	err := s.DB.WithContext(ctx).
		Where("id = ?", id).
		Delete(&Models.DriveLog{}).Error
	return storeErr("delete drive log", err)
}
