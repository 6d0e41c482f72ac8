package middleware

import (
	"github.com/gofiber/fiber/v3"

	"github.com/DanielNebe/student-advisor-matcher-frontend/internal/domain/redirect"
	"github.com/DanielNebe/student-advisor-matcher-frontend/internal/domain/session"
	"github.com/DanielNebe/student-advisor-matcher-frontend/internal/pkg/response"
	"github.com/DanielNebe/student-advisor-matcher-frontend/internal/usecase/resolver"
)

// Guard enforces the resolver's decision on every protected route. Each
// screen route runs a fresh resolution on entry, so match state is never
// trusted from an earlier visit.
type Guard struct {
	registry *resolver.Registry
}

func NewGuard(registry *resolver.Registry) *Guard {
	return &Guard{registry: registry}
}

// Screen admits a request only when the resolver agrees the caller belongs
// on the given screen. The role's complete-profile screen stays reachable
// past completion so profiles can be edited; everything else is pinned to
// the resolved target. A resolution still in flight answers 202 and never
// a redirect.
func (g *Guard) Screen(screen redirect.Target) fiber.Handler {
	return func(c fiber.Ctx) error {
		snap := g.registry.Resolve(c.Context(), SessionID(c))

		if snap.Pending() {
			return response.Success(c, fiber.StatusAccepted, response.MessagePending, fiber.Map{
				"state": snap.State.String(),
			})
		}
		if !snap.Authenticated() {
			return NewRedirectError(fiber.StatusUnauthorized, response.MessageUnauthorized, redirect.Login.Path(), nil)
		}
		if !screenAllowed(screen, snap) {
			return response.WithRedirect(c, fiber.StatusForbidden, response.MessageForbidden, fiber.Map{
				"retryable": snap.Retryable,
			}, snap.Target.Path())
		}

		c.Locals(CtxSnapshotKey, snap)
		return c.Next()
	}
}

func screenAllowed(screen redirect.Target, snap resolver.Snapshot) bool {
	if screen == snap.Target {
		return true
	}
	role := snap.User.Role
	switch screen {
	case redirect.CompleteProfileStudent:
		return role == session.RoleStudent
	case redirect.CompleteProfileAdvisor:
		return role == session.RoleAdvisor
	default:
		return false
	}
}

// Snapshot returns the resolution the guard attached to the request.
func Snapshot(c fiber.Ctx) (resolver.Snapshot, bool) {
	snap, ok := c.Locals(CtxSnapshotKey).(resolver.Snapshot)
	return snap, ok
}
