package middleware

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const (
	// SessionCookie identifies the browser to the gateway. It is not a
	// credential: the bearer token lives server-side in the credential
	// store, keyed by this id.
	SessionCookie = "matcher_sid"

	CtxSessionIDKey = "gateway_sid"
	CtxSnapshotKey  = "session_snapshot"
)

type GatewaySessionMiddleware struct {
	cookieTTL time.Duration
	secure    bool
}

func NewGatewaySessionMiddleware(cookieTTL time.Duration, secure bool) *GatewaySessionMiddleware {
	if cookieTTL <= 0 {
		cookieTTL = 30 * 24 * time.Hour
	}
	return &GatewaySessionMiddleware{cookieTTL: cookieTTL, secure: secure}
}

func (m *GatewaySessionMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		sid := c.Cookies(SessionCookie)
		if _, err := uuid.Parse(sid); err != nil {
			sid = uuid.NewString()
			c.Cookie(&fiber.Cookie{
				Name:     SessionCookie,
				Value:    sid,
				Expires:  time.Now().Add(m.cookieTTL),
				HTTPOnly: true,
				Secure:   m.secure,
				SameSite: fiber.CookieSameSiteLaxMode,
				Path:     "/",
			})
		}
		c.Locals(CtxSessionIDKey, sid)
		return c.Next()
	}
}

// SessionID returns the gateway session id the middleware stashed.
func SessionID(c fiber.Ctx) string {
	sid, _ := c.Locals(CtxSessionIDKey).(string)
	return sid
}
