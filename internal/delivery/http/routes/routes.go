package routes

import (
	"net/http"

	"github.com/DanielNebe/student-advisor-matcher-frontend/internal/delivery/http/handler"
	"github.com/DanielNebe/student-advisor-matcher-frontend/internal/delivery/http/middleware"
	"github.com/DanielNebe/student-advisor-matcher-frontend/internal/domain/redirect"
	"github.com/DanielNebe/student-advisor-matcher-frontend/internal/ws"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
)

type Registry struct {
	Health    *handler.HealthHandler
	Auth      *handler.AuthHandler
	Session   *handler.SessionHandler
	Profile   *handler.ProfileHandler
	Match     *handler.MatchHandler
	Dashboard *handler.DashboardHandler
	WS        *ws.Handler
	Guard     *middleware.Guard
	Metrics   http.Handler
}

// Register lays out the whole HTTP surface. Every screen group runs behind
// the guard for its redirect target, so a request for the wrong screen is
// answered with the right one before any handler runs.
func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.Health.RegisterRoutes(app)
	if r.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(r.Metrics))
	}
	if r.WS != nil {
		app.Get("/ws", r.WS.HandleNotifications)
	}

	api := app.Group("/api")

	r.Auth.RegisterRoutes(api.Group("/auth"))
	r.Session.RegisterRoutes(api)

	screens := api.Group("/screens")
	r.Profile.RegisterStudentRoutes(screens.Group("/complete-profile", r.Guard.Screen(redirect.CompleteProfileStudent)))
	r.Profile.RegisterAdvisorRoutes(screens.Group("/advisor-profile", r.Guard.Screen(redirect.CompleteProfileAdvisor)))
	r.Match.RegisterScreenRoutes(screens.Group("/match", r.Guard.Screen(redirect.MatchScreen)))
	r.Dashboard.RegisterStudentRoutes(screens.Group("/student-dashboard", r.Guard.Screen(redirect.StudentDashboard)))
	r.Dashboard.RegisterAdvisorRoutes(screens.Group("/advisor-dashboard", r.Guard.Screen(redirect.AdvisorDashboard)))

	// The matching action shares the match screen's admission rule.
	r.Match.RegisterActionRoutes(api.Group("/match", r.Guard.Screen(redirect.MatchScreen)))
}
