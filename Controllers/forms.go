package Controllers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"

	"Mileage/Models"
)

// formReader converts posted fields and collects one message per field
// that fails to parse.
type formReader struct {
	c      *fiber.Ctx
	values map[string]string
	errors map[string]string
}

func newFormReader(c *fiber.Ctx) *formReader {
	return &formReader{c: c, values: map[string]string{}, errors: map[string]string{}}
}

func (f *formReader) raw(key string) string {
	v := strings.TrimSpace(f.c.FormValue(key))
	f.values[key] = v
	if v == "" {
		f.errors[key] = key + " is required"
	}
	return v
}

func (f *formReader) date(key string) datatypes.Date {
	v := f.raw(key)
	if v == "" {
		return datatypes.Date{}
	}
	d, err := Models.ParseDate(v)
	if err != nil {
		f.errors[key] = key + " must be a date (YYYY-MM-DD)"
	}
	return d
}

func (f *formReader) int(key string) int {
	v := f.raw(key)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		f.errors[key] = key + " must be a whole number"
	}
	return n
}

func (f *formReader) int64(key string) int64 {
	v := f.raw(key)
	if v == "" {
		return 0
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		f.errors[key] = key + " must be a whole number"
	}
	return n
}

// err returns an InputError when any field failed to parse.
func (f *formReader) err() error {
	if len(f.errors) == 0 {
		return nil
	}
	return &Models.InputError{Fields: f.errors}
}
