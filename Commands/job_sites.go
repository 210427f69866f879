package Commands

import (
	"context"

	"Mileage/Models"
)

// JobSiteWriter is the part of the store the job site commands need.
type JobSiteWriter interface {
	InsertJobSite(ctx context.Context, jobSite Models.JobSite) (int64, error)
	UpdateJobSite(ctx context.Context, jobSite Models.JobSite) error
	DeleteJobSite(ctx context.Context, id int64) error
}

type CreateJobSiteInput struct {
	Name    string `form:"job-site-name" validate:"required,max=255"`
	Address string `form:"job-site-address" validate:"required,max=255"`
}

// CreateJobSiteCommand stores a new job site and returns its id.
func CreateJobSiteCommand(ctx context.Context, w JobSiteWriter, input CreateJobSiteInput) (int64, error) {
	if err := validateInput(input); err != nil {
		return 0, err
	}
	jobSite := Models.JobSite{Name: input.Name, Address: input.Address}
	return w.InsertJobSite(ctx, jobSite)
}

type EditJobSiteInput struct {
	ID      int64  `form:"-" validate:"gt=0"`
	Name    string `form:"job-site-name" validate:"required,max=255"`
	Address string `form:"job-site-address" validate:"required,max=255"`
}

// EditJobSiteCommand renames or re-addresses an existing job site.
func EditJobSiteCommand(ctx context.Context, w JobSiteWriter, input EditJobSiteInput) error {
	if err := validateInput(input); err != nil {
		return err
	}
	jobSite := Models.JobSite{ID: input.ID, Name: input.Name, Address: input.Address}
	return w.UpdateJobSite(ctx, jobSite)
}

// DeleteJobSiteCommand removes a job site. Sites that still have drive
// logs are refused by the store and the error is returned unchanged.
func DeleteJobSiteCommand(ctx context.Context, w JobSiteWriter, id int64) error {
	return w.DeleteJobSite(ctx, id)
}
