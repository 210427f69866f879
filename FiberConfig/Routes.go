package FiberConfig

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html"

	"Mileage/Config"
	"Mileage/Controllers"
	"Mileage/Store"
	"Mileage/Templates"
	"Mileage/middleware"
)

// CSRFCookieName holds the token echoed back in the _csrf form field.
const CSRFCookieName = "csrf_"

func SetupRoutes(app *fiber.App, cfg *Config.Config, s *Store.Store) {
	sessions := middleware.NewSessions(cfg.SessionLifetime)

	authHandler := Controllers.NewAuthHandler(cfg.AuthUsername, cfg.AuthPasswordHash, []byte(cfg.SessionSecret), cfg.SessionLifetime, sessions)
	driveHandler := Controllers.NewDriveHandler(s, sessions)
	jobSiteHandler := Controllers.NewJobSiteHandler(s, sessions)
	driveLogHandler := Controllers.NewDriveLogHandler(s, sessions)

	// Auth routes
	auth := app.Group("/auth")
	auth.Get("/", authHandler.LoginForm)
	auth.Post("/", authHandler.Login)
	auth.Get("/logout", authHandler.Logout)

	protected := app.Group("/", middleware.Verify([]byte(cfg.SessionSecret)))

	// Drive routes
	protected.Get("/", driveHandler.Home)
	protected.Get("/start-drive", driveHandler.StartDriveForm)
	protected.Post("/start-drive", driveHandler.StartDrive)
	protected.Get("/end-drive/:id", driveHandler.EndDriveForm)
	protected.Post("/end-drive/:id", driveHandler.EndDrive)

	// Job site routes
	jobSites := protected.Group("/job-sites")
	jobSites.Get("/", jobSiteHandler.Index)
	jobSites.Get("/new", jobSiteHandler.New)
	jobSites.Post("/new", jobSiteHandler.Create)
	jobSites.Get("/details/:id", jobSiteHandler.Details)
	jobSites.Get("/edit/:id", jobSiteHandler.EditForm)
	jobSites.Post("/edit/:id", jobSiteHandler.Edit)
	jobSites.Get("/delete/:id", jobSiteHandler.ConfirmDelete)
	jobSites.Post("/delete/:id", jobSiteHandler.Delete)

	// Drive log routes, exports before the :id routes
	driveLogs := protected.Group("/drive-logs")
	driveLogs.Get("/", driveLogHandler.Index)
	driveLogs.Get("/export.xlsx", driveLogHandler.ExportXLSX)
	driveLogs.Get("/export.pdf", driveLogHandler.ExportPDF)
	driveLogs.Get("/new", driveLogHandler.New)
	driveLogs.Post("/new", driveLogHandler.Create)
	driveLogs.Get("/delete/:id", driveLogHandler.ConfirmDelete)
	driveLogs.Post("/delete/:id", driveLogHandler.Delete)
	driveLogs.Get("/edit/:id", driveLogHandler.Edit)
}

// NewApp builds the web application with its view engine, middleware and
// routes.
func NewApp(cfg *Config.Config, s *Store.Store) *fiber.App {
	engine := html.NewFileSystem(http.FS(Templates.FS), ".html")
	for name, fn := range Controllers.TemplateFuncs() {
		engine.AddFunc(name, fn)
	}

	app := fiber.New(fiber.Config{
		Views:                 engine,
		ErrorHandler:          errorHandler,
		DisableStartupMessage: true,
		ReadTimeout:           30 * time.Second,
		WriteTimeout:          30 * time.Second,
	})
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.RequestLogger(cfg.LogFile))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:_csrf",
		CookieName:     CSRFCookieName,
		CookieSameSite: "Lax",
		CookieHTTPOnly: true,
		Expiration:     cfg.SessionLifetime,
		ContextKey:     "csrf",
	}))

	SetupRoutes(app, cfg, s)
	return app
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		message = e.Message
	} else {
		log.Printf("Error handling %s %s: %v\n", c.Method(), c.Path(), err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.Status(code).SendString(message)
}

// FiberConfig serves the application on cfg.Port until ctx is cancelled or
// the process receives SIGINT or SIGTERM.
func FiberConfig(ctx context.Context, cfg *Config.Config, s *Store.Store) error {
	app := NewApp(cfg, s)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Listening on :%s\n", cfg.Port)
		errCh <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Println("Shutting down")
	if err := app.Shutdown(); err != nil {
		return err
	}
	return <-errCh
}
