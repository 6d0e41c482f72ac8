// Package token inspects bearer tokens the backend issued. The gateway
// never verifies signatures (it holds no secret); it only peeks at the
// expiry claim to skip upstream calls that are guaranteed a 401. The
// upstream response stays authoritative either way.
package token

import (
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

type Inspector struct {
	parser *jwtlib.Parser
	now    func() time.Time
}

func NewInspector() *Inspector {
	return &Inspector{
		parser: jwtlib.NewParser(),
		now:    time.Now,
	}
}

// Expiry returns the exp claim of a JWT-shaped token. ok=false means the
// token is not a JWT or carries no expiry; such tokens are opaque and must
// be sent upstream as-is.
func (i *Inspector) Expiry(tok string) (time.Time, bool) {
	if tok == "" {
		return time.Time{}, false
	}
	var claims jwtlib.RegisteredClaims
	if _, _, err := i.parser.ParseUnverified(tok, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

// Expired reports whether the token is past its own expiry claim. Opaque
// tokens never count as expired locally.
func (i *Inspector) Expired(tok string) bool {
	exp, ok := i.Expiry(tok)
	if !ok {
		return false
	}
	return i.now().After(exp)
}
