package api

import (
	"io"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/vilo159/amiga-joystick-tutorial/domain/telemetry"
	"github.com/vilo159/amiga-joystick-tutorial/domain/teleop"
	"github.com/vilo159/amiga-joystick-tutorial/domain/video"
	"github.com/vilo159/amiga-joystick-tutorial/pkg/config"
	"github.com/vilo159/amiga-joystick-tutorial/pkg/joystick"
	customlog "github.com/vilo159/amiga-joystick-tutorial/pkg/log"
	"github.com/vilo159/amiga-joystick-tutorial/pkg/supervisor"
)

// Deps are the services behind the HTTP surface.
type Deps struct {
	Config    *config.Config
	Registry  *supervisor.Registry
	Widget    *joystick.Widget
	Video     *video.VideoService
	Telemetry *telemetry.TelemetryService
	Teleop    *teleop.TeleopService
	Logger    customlog.Logger

	// AccessLog receives one line per request. Nil disables it.
	AccessLog io.Writer
}

// NewApp builds the fiber app with middleware and every route registered.
func NewApp(deps Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Amiga Joystick",
		ErrorHandler:          ErrorHandler,
		DisableStartupMessage: true,
		ReadTimeout:           time.Duration(deps.Config.Server.RequestTimeout) * time.Second,
		BodyLimit:             deps.Config.Server.MaxRequestSize,
	})

	if deps.AccessLog != nil {
		app.Use(logger.New(logger.Config{Output: deps.AccessLog}))
	}
	app.Use(recover.New())

	RegisterRoutes(app, deps)
	return app
}

// RegisterRoutes registers the status, API and WebSocket endpoints.
func RegisterRoutes(app *fiber.App, deps Deps) {
	h := &handlers{deps: deps}

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "online",
			"service": "amiga joystick",
		})
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "healthy"})
	})

	api := app.Group("/api/v1")
	api.Get("/config", h.handleGetConfig)
	api.Get("/streams", h.handleListStreams)
	api.Get("/streams/:name", h.handleGetStream)
	api.Get("/joystick", h.handleGetJoystick)
	api.Get("/telemetry", deps.Telemetry.GetTelemetryHandler)
	api.Get("/command", deps.Teleop.CommandHandler)
	api.Get("/frames", deps.Video.StreamHandler)
	api.Get("/frames/:view", deps.Video.ImageHandler)

	// WebSocket upgrade middleware
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/joystick", websocket.New(func(conn *websocket.Conn) {
		JoystickWebSocketHandler(conn, deps.Widget, deps.Logger)
	}))

	deps.Logger.Infof("Registered API endpoints under /api/v1 and /ws/joystick")
}

// ErrorHandler renders errors as JSON, keeping fiber's status codes.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}
