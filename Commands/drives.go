package Commands

import (
	"context"
	"fmt"

	"gorm.io/datatypes"

	"Mileage/Models"
	"Mileage/Store"
)

// DriveStore is the part of the store the drive commands need.
type DriveStore interface {
	GetEarliestInProgressDriveLog(ctx context.Context) (*Models.DriveLogWithJobSite, error)
	GetLastCompletedOrAnyDriveLog(ctx context.Context) (*Models.DriveLogWithJobSite, error)
	GetDriveLogByID(ctx context.Context, id int64) (*Models.DriveLogWithJobSite, error)
	StartDrive(ctx context.Context, input Store.StartDriveInput) (int64, error)
	EndDrive(ctx context.Context, input Store.EndDriveInput) error
	InsertDriveLog(ctx context.Context, date datatypes.Date, startKm int, endKm *int, status Models.DriveLogStatus, jobSiteID int64) (int64, error)
	DeleteDriveLog(ctx context.Context, id int64) error
}

type StartDriveInput struct {
	Date      datatypes.Date `form:"date"`
	StartKm   int            `form:"start_km" validate:"min=0"`
	JobSiteID int64          `form:"job_site_id" validate:"gt=0"`
}

// StartDriveCommand opens a new drive. A drive that is still in progress
// is reported as a DriveInProgressError so the caller can send the user
// to end it instead. The start reading may not be below the end reading
// of the most recent drive.
//
// The in-progress check and the insert are separate statements; two
// concurrent starts can both pass the check.
func StartDriveCommand(ctx context.Context, s DriveStore, input StartDriveInput) (int64, error) {
	if err := validateInput(input); err != nil {
		return 0, err
	}

	inProgress, err := s.GetEarliestInProgressDriveLog(ctx)
	if err != nil {
		return 0, err
	}
	if inProgress != nil {
		return 0, &Models.DriveInProgressError{DriveLogID: inProgress.ID}
	}

	previous, err := s.GetLastCompletedOrAnyDriveLog(ctx)
	if err != nil {
		return 0, err
	}
	if err := Models.ValidateStartKm(input.StartKm, previous); err != nil {
		return 0, err
	}

	return s.StartDrive(ctx, Store.StartDriveInput{
		Date:      input.Date,
		StartKm:   input.StartKm,
		JobSiteID: input.JobSiteID,
	})
}

type EndDriveInput struct {
	ID    int64 `form:"-" validate:"gt=0"`
	EndKm int   `form:"end_km" validate:"min=0"`
}

// EndDriveCommand records the end reading of a drive. The reading may not
// be below the drive's start reading.
func EndDriveCommand(ctx context.Context, s DriveStore, input EndDriveInput) error {
	if err := validateInput(input); err != nil {
		return err
	}

	driveLog, err := s.GetDriveLogByID(ctx, input.ID)
	if err != nil {
		return err
	}
	if driveLog == nil {
		return &Models.NotFoundError{Entity: "drive log", ID: input.ID}
	}
	if err := Models.ValidateEndKm(input.EndKm, *driveLog); err != nil {
		return err
	}

	return s.EndDrive(ctx, Store.EndDriveInput{ID: input.ID, EndKm: input.EndKm})
}

type CreateDriveLogInput struct {
	Date      datatypes.Date `form:"drive-log-date"`
	StartKm   int            `form:"drive-log-start-km" validate:"min=0"`
	EndKm     int            `form:"drive-log-end-km" validate:"min=0"`
	JobSiteID int64          `form:"job-site-id" validate:"gt=0"`
}

// CreateDriveLogCommand stores a completed drive entered after the fact.
// It skips the in-progress check, but still refuses an end reading below
// the start reading.
func CreateDriveLogCommand(ctx context.Context, s DriveStore, input CreateDriveLogInput) (int64, error) {
	if err := validateInput(input); err != nil {
		return 0, err
	}
	current := Models.DriveLogWithJobSite{DriveLog: Models.DriveLog{StartKm: input.StartKm}}
	if err := Models.ValidateEndKm(input.EndKm, current); err != nil {
		return 0, err
	}
	endKm := input.EndKm
	id, err := s.InsertDriveLog(ctx, input.Date, input.StartKm, &endKm, Models.DriveLogCompleted, input.JobSiteID)
	if err != nil {
		return 0, fmt.Errorf("create drive log: %w", err)
	}
	return id, nil
}

// DeleteDriveLogCommand removes a drive log.
func DeleteDriveLogCommand(ctx context.Context, s DriveStore, id int64) error {
	return s.DeleteDriveLog(ctx, id)
}
