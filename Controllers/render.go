package Controllers

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"Mileage/Models"
	"Mileage/middleware"
)

// Layout wraps every page.
const Layout = "layouts/main"

// TemplateFuncs are the helpers the views rely on.
func TemplateFuncs() map[string]interface{} {
	return map[string]interface{}{
		"km": func(v *int) string {
			if v == nil {
				return "–"
			}
			return strconv.Itoa(*v)
		},
	}
}

// render fills in what the layout needs and renders name inside it.
// Queued flashes are shown after any passed in directly.
func render(c *fiber.Ctx, sessions *middleware.Sessions, name string, bind fiber.Map, flashes ...middleware.Flash) error {
	queued, err := sessions.PopFlashes(c)
	if err != nil {
		return err
	}
	csrfToken, _ := c.Locals("csrf").(string)
	bind["Flashes"] = append(flashes, queued...)
	bind["User"] = middleware.CurrentUser(c)
	bind["CSRF"] = csrfToken
	if _, ok := bind["Errors"]; !ok {
		bind["Errors"] = map[string]string{}
	}
	if _, ok := bind["Values"]; !ok {
		bind["Values"] = map[string]string{}
	}
	return c.Render(name, bind, Layout)
}

func redirectWithFlash(c *fiber.Ctx, sessions *middleware.Sessions, to, category, message string) error {
	if err := sessions.AddFlash(c, category, message); err != nil {
		return err
	}
	return c.Redirect(to)
}

// paramID reads the :id route parameter. Anything but a positive integer
// is a 404, like an unmatched route.
func paramID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fiber.ErrNotFound
	}
	return id, nil
}

// fieldErrors maps a validation failure onto the form fields it concerns.
func fieldErrors(err error) map[string]string {
	var inputErr *Models.InputError
	var startErr *Models.StartKmTooLowError
	var endErr *Models.EndKmTooLowError
	switch {
	case errors.As(err, &inputErr):
		out := make(map[string]string, len(inputErr.Fields))
		for k, v := range inputErr.Fields {
			out[k] = v
		}
		return out
	case errors.As(err, &startErr):
		return map[string]string{"start_km": startErr.Error()}
	case errors.As(err, &endErr):
		return map[string]string{"end_km": endErr.Error()}
	}
	return map[string]string{"": err.Error()}
}

func idPath(prefix string, id int64) string {
	return fmt.Sprintf("%s/%d", prefix, id)
}
