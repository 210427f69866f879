package Controllers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"Mileage/Commands"
	"Mileage/Models"
	"Mileage/Store"
	"Mileage/middleware"
)

// DriveHandler serves the start and end drive pages.
type DriveHandler struct {
	Store    *Store.Store
	Sessions *middleware.Sessions
	// Today picks the default date on the start form.
	Today func() time.Time
}

func NewDriveHandler(s *Store.Store, sessions *middleware.Sessions) *DriveHandler {
	return &DriveHandler{Store: s, Sessions: sessions, Today: time.Now}
}

func (h *DriveHandler) Home(c *fiber.Ctx) error {
	return c.Redirect("/start-drive")
}

func (h *DriveHandler) StartDriveForm(c *fiber.Ctx) error {
	ctx := c.UserContext()

	inProgress, err := h.Store.GetEarliestInProgressDriveLog(ctx)
	if err != nil {
		return err
	}
	if inProgress != nil {
		return c.Redirect(idPath("/end-drive", inProgress.ID))
	}

	values := map[string]string{"date": h.Today().Format(Models.DateLayout)}
	lastJobSite, err := h.Store.GetMostRecentJobSiteOfAnyDrive(ctx)
	if err != nil {
		return err
	}
	if lastJobSite != nil {
		values["job_site_id"] = strconv.FormatInt(lastJobSite.ID, 10)
	}
	return h.renderStartDrive(c, values, nil)
}

func (h *DriveHandler) StartDrive(c *fiber.Ctx) error {
	form := newFormReader(c)
	input := Commands.StartDriveInput{
		Date:      form.date("date"),
		StartKm:   form.int("start_km"),
		JobSiteID: form.int64("job_site_id"),
	}
	if err := form.err(); err != nil {
		return h.renderStartDrive(c, form.values, fieldErrors(err))
	}

	_, err := Commands.StartDriveCommand(c.UserContext(), h.Store, input)
	var inProgress *Models.DriveInProgressError
	switch {
	case errors.As(err, &inProgress):
		return c.Redirect(idPath("/end-drive", inProgress.DriveLogID))
	case errors.Is(err, Models.ErrValidation):
		return h.renderStartDrive(c, form.values, fieldErrors(err))
	case err != nil:
		return err
	}
	return redirectWithFlash(c, h.Sessions, "/", middleware.FlashSuccess, "Drive started")
}

func (h *DriveHandler) renderStartDrive(c *fiber.Ctx, values, errs map[string]string) error {
	ctx := c.UserContext()
	jobSites, err := h.Store.ListJobSites(ctx)
	if err != nil {
		return err
	}
	previous, err := h.Store.GetLastCompletedOrAnyDriveLog(ctx)
	if err != nil {
		return err
	}
	if errs == nil {
		errs = map[string]string{}
	}
	return render(c, h.Sessions, "start_drive", fiber.Map{
		"Title":    "Start drive",
		"JobSites": jobSites,
		"Previous": previous,
		"Values":   values,
		"Errors":   errs,
	})
}

func (h *DriveHandler) EndDriveForm(c *fiber.Ctx) error {
	driveLog, err := h.driveLog(c)
	if err != nil || driveLog == nil {
		return err
	}
	return h.renderEndDrive(c, driveLog, nil, nil)
}

func (h *DriveHandler) EndDrive(c *fiber.Ctx) error {
	driveLog, err := h.driveLog(c)
	if err != nil || driveLog == nil {
		return err
	}

	form := newFormReader(c)
	input := Commands.EndDriveInput{ID: driveLog.ID, EndKm: form.int("end_km")}
	if err := form.err(); err != nil {
		return h.renderEndDrive(c, driveLog, form.values, fieldErrors(err))
	}

	err = Commands.EndDriveCommand(c.UserContext(), h.Store, input)
	switch {
	case errors.Is(err, Models.ErrNotFound):
		return redirectWithFlash(c, h.Sessions, "/", middleware.FlashWarning, "Drive log doesn't exist")
	case errors.Is(err, Models.ErrValidation):
		return h.renderEndDrive(c, driveLog, form.values, fieldErrors(err))
	case err != nil:
		return err
	}
	return redirectWithFlash(c, h.Sessions, "/", middleware.FlashSuccess, "Drive ended")
}

// driveLog loads the drive named in the URL. When it does not exist the
// response is already a redirect and both return values are nil.
func (h *DriveHandler) driveLog(c *fiber.Ctx) (*Models.DriveLogWithJobSite, error) {
	id, err := paramID(c)
	if err != nil {
		return nil, err
	}
	driveLog, err := h.Store.GetDriveLogByID(c.UserContext(), id)
	if err != nil {
		return nil, err
	}
	if driveLog == nil {
		return nil, redirectWithFlash(c, h.Sessions, "/", middleware.FlashWarning, "Drive log doesn't exist")
	}
	return driveLog, nil
}

func (h *DriveHandler) renderEndDrive(c *fiber.Ctx, driveLog *Models.DriveLogWithJobSite, values, errs map[string]string) error {
	if values == nil {
		values = map[string]string{}
	}
	if errs == nil {
		errs = map[string]string{}
	}
	return render(c, h.Sessions, "end_drive", fiber.Map{
		"Title":    "End drive",
		"DriveLog": driveLog,
		"Values":   values,
		"Errors":   errs,
	})
}
