package Controllers

import (
	"crypto/subtle"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"Mileage/middleware"
)

// AuthHandler logs the single configured user in and out.
type AuthHandler struct {
	Username     string
	PasswordHash []byte
	Secret       []byte
	Lifetime     time.Duration
	Sessions     *middleware.Sessions
}

func NewAuthHandler(username string, passwordHash, secret []byte, lifetime time.Duration, sessions *middleware.Sessions) *AuthHandler {
	return &AuthHandler{
		Username:     username,
		PasswordHash: passwordHash,
		Secret:       secret,
		Lifetime:     lifetime,
		Sessions:     sessions,
	}
}

func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	return render(c, h.Sessions, "auth/login", fiber.Map{"Title": "Log in"})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	username := c.FormValue("username")
	password := c.FormValue("password")

	if !h.checkCredentials(username, password) {
		log.Printf("Failed login for %q from %s\n", username, c.IP())
		c.Status(fiber.StatusUnauthorized)
		return render(c, h.Sessions, "auth/login", fiber.Map{
			"Title":    "Log in",
			"Username": username,
		}, middleware.Flash{Category: middleware.FlashDanger, Message: "Invalid credentials"})
	}

	token, err := middleware.IssueToken(h.Secret, username, h.Lifetime, time.Now())
	if err != nil {
		return err
	}
	middleware.SetSessionCookie(c, token, h.Lifetime)
	return c.Redirect("/")
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	middleware.ClearSessionCookie(c)
	return c.Redirect(middleware.LoginPath)
}

func (h *AuthHandler) checkCredentials(username, password string) bool {
	if h.Username == "" || len(h.PasswordHash) == 0 {
		return false
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(h.Username)) == 1
	passwordOK := bcrypt.CompareHashAndPassword(h.PasswordHash, []byte(password)) == nil
	return userOK && passwordOK
}
