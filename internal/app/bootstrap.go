package app

import (
	"fmt"
	"strings"

	"github.com/DanielNebe/student-advisor-matcher-frontend/internal/config"
	"github.com/DanielNebe/student-advisor-matcher-frontend/internal/delivery/http/handler"
	"github.com/DanielNebe/student-advisor-matcher-frontend/internal/delivery/http/middleware"
	"github.com/DanielNebe/student-advisor-matcher-frontend/internal/delivery/http/routes"
	"github.com/DanielNebe/student-advisor-matcher-frontend/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func New(c *Container) *App {
	f := fiber.New(fiber.Config{
		AppName: c.Config.App.AppName,
	})

	registerGlobalMiddleware(f, c)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}
}

// Bootstrap builds the container, starts the hub, and returns the wired
// app plus its cleanup.
func Bootstrap(cfg config.Config) (*App, func() error, error) {
	c, err := NewContainer(cfg)
	if err != nil {
		return nil, nil, err
	}

	go c.Hub.Run()

	app := New(c)
	return app, c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	app.Use(middleware.NewErrorMiddleware(c.Logger).Middleware())
	app.Use(middleware.NewAccessLogMiddleware(c.Logger).Middleware())
	secureCookies := strings.EqualFold(c.Config.App.Environment, "production")
	app.Use(middleware.NewGatewaySessionMiddleware(0, secureCookies).Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	reg := &routes.Registry{
		Health:    handler.NewHealthHandler(),
		Auth:      handler.NewAuthHandler(c.Backend, c.Registry),
		Session:   handler.NewSessionHandler(c.Registry),
		Profile:   handler.NewProfileHandler(c.Backend, c.Registry),
		Match:     handler.NewMatchHandler(c.Backend, c.Registry, c.Hub),
		Dashboard: handler.NewDashboardHandler(c.Backend),
		WS:        ws.NewHandler(c.Hub, c.Logger),
		Guard:     middleware.NewGuard(c.Registry),
		Metrics:   c.Scrape,
	}
	reg.Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
