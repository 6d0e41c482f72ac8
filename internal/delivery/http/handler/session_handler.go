package handler

import (
	"github.com/DanielNebe/student-advisor-matcher-frontend/internal/delivery/http/dto"
	"github.com/DanielNebe/student-advisor-matcher-frontend/internal/delivery/http/middleware"
	"github.com/DanielNebe/student-advisor-matcher-frontend/internal/domain/redirect"
	"github.com/DanielNebe/student-advisor-matcher-frontend/internal/pkg/response"
	"github.com/DanielNebe/student-advisor-matcher-frontend/internal/usecase/resolver"

	"github.com/gofiber/fiber/v3"
)

// SessionHandler serves the boot resolution: the client calls it once on
// startup and again whenever it wants the authoritative screen for the
// current credentials.
type SessionHandler struct {
	registry *resolver.Registry
}

func NewSessionHandler(registry *resolver.Registry) *SessionHandler {
	return &SessionHandler{registry: registry}
}

func (h *SessionHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/session", h.Resolve)
}

func (h *SessionHandler) Resolve(c fiber.Ctx) error {
	snap := h.registry.Resolve(c.Context(), middleware.SessionID(c))

	if snap.Pending() {
		return response.Success(c, fiber.StatusAccepted, response.MessagePending, dto.SessionResponse{
			State: snap.State.String(),
		})
	}

	target := snap.Target
	if !snap.Authenticated() && c.Query("landing") == "true" {
		// The public landing route shows Home to visitors instead of
		// bouncing them to login.
		target = redirect.Anonymous(true)
	}

	return response.WithRedirect(c, fiber.StatusOK, response.MessageOK, dto.SessionResponse{
		State:     snap.State.String(),
		User:      dto.NewUserResponse(snap.User),
		Retryable: snap.Retryable,
	}, target.Path())
}
