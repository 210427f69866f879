package Controllers

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"Mileage/Commands"
	"Mileage/Models"
	"Mileage/Reports"
	"Mileage/Store"
	"Mileage/middleware"
)

const driveLogsPath = "/drive-logs"

type DriveLogHandler struct {
	Store    *Store.Store
	Sessions *middleware.Sessions
	// Now dates the export files.
	Now func() time.Time
}

func NewDriveLogHandler(s *Store.Store, sessions *middleware.Sessions) *DriveLogHandler {
	return &DriveLogHandler{Store: s, Sessions: sessions, Now: time.Now}
}

func (h *DriveLogHandler) Index(c *fiber.Ctx) error {
	driveLogs, err := h.Store.ListCompletedDriveLogs(c.UserContext())
	if err != nil {
		return err
	}
	return render(c, h.Sessions, "drive_logs/index", fiber.Map{
		"Title":     "Drive logs",
		"DriveLogs": driveLogs,
		"Summary":   Reports.Summarize(driveLogs),
	})
}

func (h *DriveLogHandler) New(c *fiber.Ctx) error {
	values := map[string]string{"drive-log-date": h.Now().Format(Models.DateLayout)}
	return h.renderNew(c, values, nil)
}

// Create stores a completed drive entered by hand. It does not check for a
// drive in progress.
func (h *DriveLogHandler) Create(c *fiber.Ctx) error {
	form := newFormReader(c)
	input := Commands.CreateDriveLogInput{
		Date:      form.date("drive-log-date"),
		StartKm:   form.int("drive-log-start-km"),
		EndKm:     form.int("drive-log-end-km"),
		JobSiteID: form.int64("job-site-id"),
	}
	if err := form.err(); err != nil {
		return h.renderNew(c, form.values, fieldErrors(err))
	}

	_, err := Commands.CreateDriveLogCommand(c.UserContext(), h.Store, input)
	switch {
	case errors.Is(err, Models.ErrValidation):
		return h.renderNew(c, form.values, fieldErrors(err))
	case err != nil:
		return err
	}
	return redirectWithFlash(c, h.Sessions, driveLogsPath, middleware.FlashSuccess, "Drive log added")
}

func (h *DriveLogHandler) renderNew(c *fiber.Ctx, values, errs map[string]string) error {
	jobSites, err := h.Store.ListJobSites(c.UserContext())
	if err != nil {
		return err
	}
	if errs == nil {
		errs = map[string]string{}
	}
	return render(c, h.Sessions, "drive_logs/new", fiber.Map{
		"Title":    "New drive log",
		"JobSites": jobSites,
		"Status":   Models.DriveLogCompleted,
		"Values":   values,
		"Errors":   errs,
	})
}

func (h *DriveLogHandler) ConfirmDelete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	driveLog, err := h.Store.GetDriveLogByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	if driveLog == nil {
		return redirectWithFlash(c, h.Sessions, driveLogsPath, middleware.FlashWarning, "Drive log doesn't exist")
	}
	return render(c, h.Sessions, "drive_logs/delete", fiber.Map{
		"Title":    "Delete drive log",
		"DriveLog": driveLog,
	})
}

func (h *DriveLogHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := Commands.DeleteDriveLogCommand(c.UserContext(), h.Store, id); err != nil {
		log.Printf("Cannot delete drive log %d: %v\n", id, err)
		return redirectWithFlash(c, h.Sessions, driveLogsPath, middleware.FlashDanger, "Drive log cannot be deleted")
	}
	return redirectWithFlash(c, h.Sessions, driveLogsPath, middleware.FlashSuccess, "Drive log deleted")
}

// Edit is a placeholder page; drive logs are corrected by delete and re-add.
func (h *DriveLogHandler) Edit(c *fiber.Ctx) error {
	if _, err := paramID(c); err != nil {
		return err
	}
	return render(c, h.Sessions, "drive_logs/edit", fiber.Map{"Title": "Edit drive log"})
}

func (h *DriveLogHandler) ExportXLSX(c *fiber.Ctx) error {
	driveLogs, err := h.Store.ListCompletedDriveLogs(c.UserContext())
	if err != nil {
		return err
	}
	buf, err := Reports.DriveLogsXLSX(driveLogs)
	if err != nil {
		return err
	}
	return h.sendFile(c, buf, "xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
}

func (h *DriveLogHandler) ExportPDF(c *fiber.Ctx) error {
	driveLogs, err := h.Store.ListCompletedDriveLogs(c.UserContext())
	if err != nil {
		return err
	}
	buf, err := Reports.DriveLogsPDF(driveLogs, h.Now())
	if err != nil {
		return err
	}
	return h.sendFile(c, buf, "pdf", "application/pdf")
}

func (h *DriveLogHandler) sendFile(c *fiber.Ctx, buf *bytes.Buffer, ext, contentType string) error {
	filename := fmt.Sprintf("drive-logs-%s.%s", h.Now().Format(Models.DateLayout), ext)
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", filename))
	return c.Send(buf.Bytes())
}
