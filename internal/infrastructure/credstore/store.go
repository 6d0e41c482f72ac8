// Package credstore persists the bearer token and user record for each
// gateway session. Token and user live or die together: a save makes both
// visible atomically, and a load that finds one without the other (or a
// record that no longer parses) clears the pair and reports absent.
package credstore

import (
	"context"

	"github.com/DanielNebe/student-advisor-matcher-frontend/internal/domain/session"
)

type Store interface {
	// Save persists the session under sid, overwriting any prior value.
	Save(ctx context.Context, sid string, s session.Session) error
	// Load returns the persisted session, or ok=false if absent. Malformed
	// or half-present data is cleared and reported absent, never as an
	// error.
	Load(ctx context.Context, sid string) (session.Session, bool)
	// Clear removes the pair. Idempotent.
	Clear(ctx context.Context, sid string) error
}
