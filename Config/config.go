// Package Config reads the application settings from the environment. A
// .env file in the working directory is loaded first when present.
package Config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"Mileage/Models"
)

type Config struct {
	DatabaseURL   string
	SessionSecret string

	AuthUsername string
	// AuthPasswordHash is always a bcrypt hash, even when AUTH_PASSWORD was
	// given in plain text.
	AuthPasswordHash []byte

	Port            string
	SessionLifetime time.Duration
	LogFile         string
	DBEcho          bool

	ReminderSchedule string
	ReminderAfter    time.Duration
	ReminderTo       []string
	Email            Models.EmailConfig
}

// Load reads the given env files (".env" when none are named) and then the
// process environment. Missing files are skipped. Variables already set in
// the environment win over file entries.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", file, err)
		}
	}

	var missing []string
	required := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}

	cfg := &Config{
		DatabaseURL:      required("DATABASE_URL"),
		SessionSecret:    required("SESSION_SECRET"),
		AuthUsername:     os.Getenv("AUTH_USERNAME"),
		Port:             getenv("PORT", "3001"),
		LogFile:          getenv("LOG_FILE", "logs/requests.log"),
		ReminderSchedule: strings.TrimSpace(os.Getenv("REMINDER_SCHEDULE")),
		ReminderTo:       splitList(os.Getenv("REMINDER_TO")),
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variable(s): %s", strings.Join(missing, ", "))
	}

	var err error
	if cfg.SessionLifetime, err = durationEnv("SESSION_LIFETIME", 7*24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.ReminderAfter, err = durationEnv("REMINDER_AFTER", 12*time.Hour); err != nil {
		return nil, err
	}
	if cfg.DBEcho, err = boolEnv("DB_ECHO", false); err != nil {
		return nil, err
	}
	if cfg.AuthPasswordHash, err = passwordHash(os.Getenv("AUTH_PASSWORD")); err != nil {
		return nil, err
	}
	if cfg.Email, err = emailConfig(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// CheckAuth reports whether login credentials are configured. The web
// server refuses to start without them.
func (c *Config) CheckAuth() error {
	if c.AuthUsername == "" || len(c.AuthPasswordHash) == 0 {
		return errors.New("AUTH_USERNAME and AUTH_PASSWORD must be set")
	}
	return nil
}

// ReminderEnabled reports whether the in-progress reminder should run.
func (c *Config) ReminderEnabled() bool {
	return c.ReminderSchedule != ""
}

// IsBcryptHash reports whether s looks like a bcrypt hash rather than a
// plain password.
func IsBcryptHash(s string) bool {
	_, err := bcrypt.Cost([]byte(s))
	return err == nil
}

func passwordHash(password string) ([]byte, error) {
	if password == "" {
		return nil, nil
	}
	if IsBcryptHash(password) {
		return []byte(password), nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash AUTH_PASSWORD: %w", err)
	}
	return hash, nil
}

func emailConfig() (Models.EmailConfig, error) {
	port, err := intEnv("SMTP_PORT", 587)
	if err != nil {
		return Models.EmailConfig{}, err
	}
	tlsEnabled, err := boolEnv("SMTP_TLS", false)
	if err != nil {
		return Models.EmailConfig{}, err
	}
	skipVerify, err := boolEnv("SMTP_SKIP_TLS_VERIFY", false)
	if err != nil {
		return Models.EmailConfig{}, err
	}
	return Models.EmailConfig{
		SMTPServer:   os.Getenv("SMTP_HOST"),
		SMTPPort:     port,
		Username:     os.Getenv("SMTP_USERNAME"),
		Password:     os.Getenv("SMTP_PASSWORD"),
		FromEmail:    os.Getenv("SMTP_FROM"),
		FromName:     getenv("SMTP_FROM_NAME", "Mileage"),
		TLSEnabled:   tlsEnabled,
		SkipTLSCheck: skipVerify,
	}, nil
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be positive", key, v)
	}
	return d, nil
}

func boolEnv(key string, fallback bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return b, nil
}

func intEnv(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
