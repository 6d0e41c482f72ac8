package handler

import (
	"errors"

	"github.com/DanielNebe/student-advisor-matcher-frontend/internal/delivery/http/middleware"
	"github.com/DanielNebe/student-advisor-matcher-frontend/internal/domain/profile"
	"github.com/DanielNebe/student-advisor-matcher-frontend/internal/domain/redirect"
	"github.com/DanielNebe/student-advisor-matcher-frontend/internal/infrastructure/upstream"
	"github.com/DanielNebe/student-advisor-matcher-frontend/internal/pkg/response"
	"github.com/DanielNebe/student-advisor-matcher-frontend/internal/usecase/resolver"
	"github.com/DanielNebe/student-advisor-matcher-frontend/internal/ws"

	"github.com/gofiber/fiber/v3"
)

// MatchHandler backs the match screen: the profile recap, the advisor
// listing, and the find-match action itself. Matching is entirely the
// backend's business; this side only triggers it and routes on the result.
type MatchHandler struct {
	backend  upstream.Client
	registry *resolver.Registry
	hub      *ws.Hub
}

func NewMatchHandler(backend upstream.Client, registry *resolver.Registry, hub *ws.Hub) *MatchHandler {
	return &MatchHandler{backend: backend, registry: registry, hub: hub}
}

func (h *MatchHandler) RegisterScreenRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.Screen)
	r.Get("/advisors", h.Advisors)
}

func (h *MatchHandler) RegisterActionRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/", h.Run)
}

func (h *MatchHandler) Screen(c fiber.Ctx) error {
	snap, ok := middleware.Snapshot(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, response.MessageUnauthorized, nil, nil)
	}

	var current *profile.Student
	p, err := h.backend.StudentProfile(c.Context(), snap.Token)
	switch {
	case err == nil:
		current = &p
	case errors.Is(err, upstream.ErrNotFound):
	default:
		return middleware.MapUpstreamError(err, redirect.Login.Path())
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, fiber.Map{
		"profile": current,
	})
}

func (h *MatchHandler) Advisors(c fiber.Ctx) error {
	snap, ok := middleware.Snapshot(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, response.MessageUnauthorized, nil, nil)
	}

	advisors, err := h.backend.AllAdvisors(c.Context(), snap.Token)
	if err != nil {
		return middleware.MapUpstreamError(err, redirect.Login.Path())
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, advisors)
}

func (h *MatchHandler) Run(c fiber.Ctx) error {
	snap, ok := middleware.Snapshot(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, response.MessageUnauthorized, nil, nil)
	}

	res, err := h.backend.FindMatch(c.Context(), snap.Token)
	if err != nil {
		if errors.Is(err, upstream.ErrUnauthorized) {
			h.registry.Controller(middleware.SessionID(c)).Logout(c.Context())
		}
		return middleware.MapUpstreamError(err, redirect.Login.Path())
	}

	if !res.Success {
		// No advisor with free slots and overlapping interests; the screen
		// stays put and shows the backend's message.
		return response.Success(c, fiber.StatusOK, res.Message, fiber.Map{
			"success": false,
		})
	}

	// A match flips the resolved screen from match to dashboard; resolve
	// now so the client navigates off the match screen in one hop.
	next := h.registry.Resolve(c.Context(), middleware.SessionID(c))

	if snap.User != nil {
		h.hub.NotifyMatchFound(snap.User.ID, res.MatchedAdvisor)
	}

	return response.WithRedirect(c, fiber.StatusOK, res.Message, fiber.Map{
		"success":        true,
		"matchedAdvisor": res.MatchedAdvisor,
	}, next.Target.Path())
}
