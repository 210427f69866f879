package middleware

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// Flash categories, matching the alert styles in the layout.
const (
	FlashSuccess = "success"
	FlashWarning = "warning"
	FlashDanger  = "danger"
)

const flashKey = "_flashes"

// Flash is a one-shot message shown on the next rendered page.
type Flash struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

// Sessions keeps flash messages between a redirect and the page it lands on.
type Sessions struct {
	store *session.Store
}

func NewSessions(lifetime time.Duration) *Sessions {
	return &Sessions{
		store: session.New(session.Config{
			Expiration:     lifetime,
			CookieHTTPOnly: true,
			CookieSameSite: "Lax",
		}),
	}
}

// AddFlash queues a message for the next page.
func (s *Sessions) AddFlash(c *fiber.Ctx, category, message string) error {
	sess, err := s.store.Get(c)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}
	flashes := decodeFlashes(sess.Get(flashKey))
	flashes = append(flashes, Flash{Category: category, Message: message})
	raw, err := json.Marshal(flashes)
	if err != nil {
		return err
	}
	sess.Set(flashKey, string(raw))
	return sess.Save()
}

// PopFlashes returns the queued messages and clears them.
func (s *Sessions) PopFlashes(c *fiber.Ctx) ([]Flash, error) {
	sess, err := s.store.Get(c)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	flashes := decodeFlashes(sess.Get(flashKey))
	if len(flashes) == 0 {
		return nil, nil
	}
	sess.Delete(flashKey)
	return flashes, sess.Save()
}

func decodeFlashes(value interface{}) []Flash {
	raw, ok := value.(string)
	if !ok || raw == "" {
		return nil
	}
	var flashes []Flash
	if err := json.Unmarshal([]byte(raw), &flashes); err != nil {
		return nil
	}
	return flashes
}
