package Controllers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Mileage/Models"
)

func TestFieldErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want map[string]string
	}{
		{
			name: "input",
			err:  &Models.InputError{Fields: map[string]string{"start_km": "start_km must be 0 or greater"}},
			want: map[string]string{"start_km": "start_km must be 0 or greater"},
		},
		{
			name: "start km",
			err:  &Models.StartKmTooLowError{StartKm: 5, PreviousEndKm: 9},
			want: map[string]string{"start_km": "Start km (5) cannot be lower than previous End km (9)"},
		},
		{
			name: "end km wrapped",
			err:  errors.Join(errors.New("context"), &Models.EndKmTooLowError{EndKm: 1, StartKm: 2}),
			want: map[string]string{"end_km": "End km (1) cannot be lower than Start km (2)"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fieldErrors(tt.err))
		})
	}
}

func TestKmFunc(t *testing.T) {
	km := TemplateFuncs()["km"].(func(*int) string)
	n := 42
	assert.Equal(t, "42", km(&n))
	assert.Equal(t, "–", km(nil))
}

func TestFormReader(t *testing.T) {
	var got map[string]string
	var gotErr error
	app := fiber.New()
	app.Post("/", func(c *fiber.Ctx) error {
		form := newFormReader(c)
		form.date("date")
		form.int("start_km")
		form.int64("job_site_id")
		form.int("end_km")
		got = form.values
		gotErr = form.err()
		return c.SendStatus(fiber.StatusNoContent)
	})

	body := url.Values{"date": {"2024-13-01"}, "start_km": {" 12 "}, "job_site_id": {"x"}}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	_, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, "12", got["start_km"])
	var inputErr *Models.InputError
	require.ErrorAs(t, gotErr, &inputErr)
	assert.Equal(t, "date must be a date (YYYY-MM-DD)", inputErr.Fields["date"])
	assert.Equal(t, "job_site_id must be a whole number", inputErr.Fields["job_site_id"])
	assert.Equal(t, "end_km is required", inputErr.Fields["end_km"])
	assert.NotContains(t, inputErr.Fields, "start_km")
}

func TestParamID(t *testing.T) {
	app := fiber.New()
	app.Get("/:id", func(c *fiber.Ctx) error {
		id, err := paramID(c)
		if err != nil {
			return err
		}
		return c.SendString(idPath("/end-drive", id))
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/7", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	for _, bad := range []string{"/0", "/-3", "/abc"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, bad, nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode, bad)
	}
}
