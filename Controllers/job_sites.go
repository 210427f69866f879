package Controllers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"Mileage/Commands"
	"Mileage/Models"
	"Mileage/Store"
	"Mileage/middleware"
)

const jobSitesPath = "/job-sites"

type JobSiteHandler struct {
	Store    *Store.Store
	Sessions *middleware.Sessions
}

func NewJobSiteHandler(s *Store.Store, sessions *middleware.Sessions) *JobSiteHandler {
	return &JobSiteHandler{Store: s, Sessions: sessions}
}

func (h *JobSiteHandler) Index(c *fiber.Ctx) error {
	jobSites, err := h.Store.ListJobSites(c.UserContext())
	if err != nil {
		return err
	}
	return render(c, h.Sessions, "job_sites/index", fiber.Map{
		"Title":    "Job sites",
		"JobSites": jobSites,
	})
}

func (h *JobSiteHandler) New(c *fiber.Ctx) error {
	return render(c, h.Sessions, "job_sites/new", fiber.Map{"Title": "New job site"})
}

func (h *JobSiteHandler) Create(c *fiber.Ctx) error {
	var input Commands.CreateJobSiteInput
	if err := c.BodyParser(&input); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	_, err := Commands.CreateJobSiteCommand(c.UserContext(), h.Store, input)
	switch {
	case errors.Is(err, Models.ErrValidation):
		return redirectWithFlash(c, h.Sessions, jobSitesPath, middleware.FlashDanger, "Job site not added")
	case err != nil:
		return err
	}
	return redirectWithFlash(c, h.Sessions, jobSitesPath, middleware.FlashSuccess, "Job site added")
}

func (h *JobSiteHandler) Details(c *fiber.Ctx) error {
	return h.renderJobSite(c, "job_sites/details", "Job site")
}

func (h *JobSiteHandler) EditForm(c *fiber.Ctx) error {
	return h.renderJobSite(c, "job_sites/edit", "Edit job site")
}

func (h *JobSiteHandler) Edit(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var input Commands.EditJobSiteInput
	if err := c.BodyParser(&input); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	input.ID = id

	err = Commands.EditJobSiteCommand(c.UserContext(), h.Store, input)
	switch {
	case errors.Is(err, Models.ErrValidation):
		return redirectWithFlash(c, h.Sessions, jobSitesPath, middleware.FlashDanger, "Job site not edited")
	case err != nil:
		return err
	}
	return redirectWithFlash(c, h.Sessions, jobSitesPath, middleware.FlashSuccess, "Job site edited.")
}

func (h *JobSiteHandler) ConfirmDelete(c *fiber.Ctx) error {
	return h.renderJobSite(c, "job_sites/confirm_delete", "Delete job site")
}

// Delete refuses sites that still have drive logs; the store error becomes
// a flash and the site is left alone.
func (h *JobSiteHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := Commands.DeleteJobSiteCommand(c.UserContext(), h.Store, id); err != nil {
		log.Printf("Cannot delete job site %d: %v\n", id, err)
		return redirectWithFlash(c, h.Sessions, jobSitesPath, middleware.FlashDanger, "Cannot delete job site")
	}
	return redirectWithFlash(c, h.Sessions, jobSitesPath, middleware.FlashSuccess, "Job site deleted")
}

func (h *JobSiteHandler) renderJobSite(c *fiber.Ctx, view, title string) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	jobSite, err := h.Store.GetJobSite(c.UserContext(), id)
	if errors.Is(err, Models.ErrNotFound) {
		return redirectWithFlash(c, h.Sessions, jobSitesPath, middleware.FlashWarning, "Job site doesn't exist")
	}
	if err != nil {
		return err
	}
	return render(c, h.Sessions, view, fiber.Map{
		"Title":   title,
		"JobSite": jobSite,
	})
}
