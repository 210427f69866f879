package middleware

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// CookieName holds the signed session token.
const CookieName = "jwt"

// LoginPath is where Verify sends requests without a valid session.
const LoginPath = "/auth/"

// IssueToken signs a session token for username that expires after lifetime.
func IssueToken(secret []byte, username string, lifetime time.Duration, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// ParseToken returns the username inside a valid, unexpired token.
func ParseToken(secret []byte, raw string) (string, error) {
	token, err := jwt.ParseWithClaims(raw, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return "", errors.New("invalid token claims")
	}
	return claims.Subject, nil
}

// SetSessionCookie stores token in the session cookie.
func SetSessionCookie(c *fiber.Ctx, token string, lifetime time.Duration) {
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(lifetime),
		HTTPOnly: true,
		SameSite: "Lax",
	})
}

// ClearSessionCookie expires the session cookie.
func ClearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
	})
}

// Verify lets a request through only with a valid session cookie. The
// username is stored in c.Locals("user").
func Verify(secret []byte) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cookie := c.Cookies(CookieName)
		if cookie == "" {
			return c.Redirect(LoginPath)
		}

		username, err := ParseToken(secret, cookie)
		if err != nil {
			ClearSessionCookie(c)
			return c.Redirect(LoginPath)
		}

		c.Locals("user", username)
		return c.Next()
	}
}

// CurrentUser returns the username set by Verify, or "".
func CurrentUser(c *fiber.Ctx) string {
	if user, ok := c.Locals("user").(string); ok {
		return user
	}
	return ""
}
