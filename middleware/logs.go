package middleware

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/gofiber/fiber/v2"
)

// LogConfig holds configuration for the logging middleware
type LogConfig struct {
	// Enable console logging
	Console bool
	// Log file path, empty disables file logging
	LogFilePath string
	// Skip logging for paths with these prefixes
	SkipPaths []string
	// Console receives the text lines. Defaults to the standard logger.
	ConsoleOutput *log.Logger
}

// LogData contains all the information that will be logged
type LogData struct {
	Timestamp     time.Time     `json:"timestamp"`
	Method        string        `json:"method"`
	Path          string        `json:"path"`
	URL           string        `json:"url"`
	Status        int           `json:"status"`
	Latency       time.Duration `json:"latency"`
	IP            string        `json:"ip"`
	UserAgent     string        `json:"user_agent"`
	RequestID     string        `json:"request_id"`
	Error         string        `json:"error,omitempty"`
	Username      string        `json:"username,omitempty"`
	ContentLength int64         `json:"content_length"`
}

// DefaultLogConfig returns a default configuration for the logging middleware
func DefaultLogConfig() LogConfig {
	return LogConfig{
		Console:     true,
		LogFilePath: "logs/requests.log",
		SkipPaths:   []string{"/static"},
	}
}

// LoggingMiddleware writes one JSON line per request to the log file and a
// colored text line to the console.
func LoggingMiddleware(config ...LogConfig) fiber.Handler {
	cfg := DefaultLogConfig()
	if len(config) > 0 {
		cfg = config[0]
	}
	if cfg.ConsoleOutput == nil {
		cfg.ConsoleOutput = log.Default()
	}

	var file *lockedWriter
	if cfg.LogFilePath != "" {
		w, err := openLogFile(cfg.LogFilePath)
		if err != nil {
			log.Printf("Error opening log file: %v\n", err)
		} else {
			file = w
		}
	}

	return func(c *fiber.Ctx) error {
		start := time.Now()

		for _, skipPath := range cfg.SkipPaths {
			if strings.HasPrefix(c.Path(), skipPath) {
				return c.Next()
			}
		}

		err := c.Next()

		// The error handler has not run yet; log the status it will send.
		status := c.Response().StatusCode()
		if err != nil {
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		data := LogData{
			Timestamp:     start.UTC(),
			Method:        c.Method(),
			Path:          c.Path(),
			URL:           c.OriginalURL(),
			Status:        status,
			Latency:       time.Since(start),
			IP:            c.IP(),
			UserAgent:     c.Get(fiber.HeaderUserAgent),
			RequestID:     requestIDOf(c),
			Username:      CurrentUser(c),
			ContentLength: int64(len(c.Response().Body())),
		}
		if err != nil {
			data.Error = err.Error()
		}

		if cfg.Console {
			cfg.ConsoleOutput.Println(formatTextLog(data))
		}
		if file != nil {
			file.writeJSON(data)
		}
		return err
	}
}

// RequestLogger is the logger used by the web server.
func RequestLogger(logFilePath string) fiber.Handler {
	return LoggingMiddleware(LogConfig{
		Console:     true,
		LogFilePath: logFilePath,
		SkipPaths:   []string{"/static", "/favicon.ico"},
	})
}

// formatTextLog formats the log data as human-readable text
func formatTextLog(data LogData) string {
	user := ""
	if data.Username != "" {
		user = " user:" + data.Username
	}
	line := fmt.Sprintf(
		"%s %s %s %s %s%s",
		data.Method,
		data.Path,
		statusColor(data.Status).Sprint(data.Status),
		latencyColor(data.Latency).Sprint(data.Latency.Round(time.Microsecond)),
		data.IP,
		user,
	)
	if data.RequestID != "" {
		line += " id:" + data.RequestID
	}
	if data.Error != "" {
		line += " " + color.New(color.FgRed).Sprint(data.Error)
	}
	return line
}

func statusColor(status int) *color.Color {
	switch {
	case status >= 500:
		return color.New(color.FgRed, color.Bold)
	case status >= 400:
		return color.New(color.FgYellow)
	case status >= 300:
		return color.New(color.FgCyan)
	default:
		return color.New(color.FgGreen)
	}
}

func latencyColor(latency time.Duration) *color.Color {
	switch {
	case latency > time.Second:
		return color.New(color.FgRed)
	case latency > 200*time.Millisecond:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgWhite)
	}
}

type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func openLogFile(path string) (*lockedWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, err
	}
	return &lockedWriter{w: f}, nil
}

func (l *lockedWriter) writeJSON(data LogData) {
	line, err := json.Marshal(data)
	if err != nil {
		log.Printf("Error encoding request log: %v\n", err)
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, err := l.w.Write(append(line, '\n')); err != nil {
		log.Printf("Error writing to log file: %v\n", err)
	}
}
