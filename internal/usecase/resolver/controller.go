// Package resolver owns the session lifecycle for one browser: it loads
// stored credentials, fetches the role profile, and runs the redirect
// policy, exposing the result as an immutable snapshot. It is the only
// writer of the credential store.
package resolver

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/DanielNebe/student-advisor-matcher-frontend/internal/domain/profile"
	"github.com/DanielNebe/student-advisor-matcher-frontend/internal/domain/redirect"
	"github.com/DanielNebe/student-advisor-matcher-frontend/internal/domain/session"
	"github.com/DanielNebe/student-advisor-matcher-frontend/internal/infrastructure/credstore"
	"github.com/DanielNebe/student-advisor-matcher-frontend/internal/infrastructure/upstream"
	"github.com/DanielNebe/student-advisor-matcher-frontend/internal/pkg/token"
)

type State int

const (
	StateBooting State = iota
	StateAnonymous
	StateResolving
	StateReady
)

func (s State) String() string {
	switch s {
	case StateBooting:
		return "booting"
	case StateAnonymous:
		return "anonymous"
	case StateResolving:
		return "resolving"
	case StateReady:
		return "ready"
	default:
		return "unknown"
	}
}

// Snapshot is the read-only view handed to the delivery layer. Pending
// reports whether a resolution is still running; callers must render a
// neutral loading state then, never a redirect.
type Snapshot struct {
	State     State
	User      *session.User
	Token     string
	Target    redirect.Target
	Retryable bool
}

func (s Snapshot) Pending() bool {
	return s.State == StateBooting || s.State == StateResolving
}

func (s Snapshot) Authenticated() bool {
	return s.User != nil
}

// Metrics is the slice of the metrics collector the resolver reports to.
type Metrics interface {
	RecordResolution(target string, retryable bool)
}

type Controller struct {
	sid     string
	store   credstore.Store
	backend upstream.Client
	tokens  *token.Inspector
	logger  *log.Logger
	metrics Metrics

	mu        sync.Mutex
	cond      *sync.Cond
	state     State
	user      *session.User
	token     string
	target    redirect.Target
	hasTarget bool
	retryable bool
	student   *profile.Student
	advisor   *profile.Advisor
	resolving bool
	// gen invalidates in-flight resolutions: a login or logout bumps it,
	// and a fetch that started under an older value is discarded when it
	// lands.
	gen uint64
}

func NewController(sid string, store credstore.Store, backend upstream.Client, tokens *token.Inspector, logger *log.Logger, metrics Metrics) *Controller {
	if tokens == nil {
		tokens = token.NewInspector()
	}
	c := &Controller{
		sid:     sid,
		store:   store,
		backend: backend,
		tokens:  tokens,
		logger:  logger,
		metrics: metrics,
		state:   StateBooting,
	}
	c.cond = sync.NewCond(&c.mu)
	return c
}

// Snapshot returns the current state without touching the network.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() Snapshot {
	snap := Snapshot{
		State:     c.state,
		Token:     c.token,
		Target:    c.target,
		Retryable: c.retryable,
	}
	if c.resolving {
		snap.State = StateResolving
	}
	if c.user != nil {
		u := *c.user
		snap.User = &u
	}
	if c.state == StateAnonymous {
		snap.Target = redirect.Anonymous(false)
	}
	return snap
}

// Resolve runs one full resolution: credential load, profile fetch,
// redirect policy. It is what boot, login and every protected-route entry
// go through, so the matched state is always refetched rather than trusted
// from an earlier screen. A caller arriving while another resolution is in
// flight gets the pending snapshot back instead of racing it.
func (c *Controller) Resolve(ctx context.Context) Snapshot {
	c.mu.Lock()
	if c.resolving {
		snap := c.snapshotLocked()
		c.mu.Unlock()
		return snap
	}

	s, ok := c.store.Load(ctx, c.sid)
	if !ok {
		c.toAnonymousLocked()
		snap := c.snapshotLocked()
		c.mu.Unlock()
		return snap
	}

	if c.tokens.Expired(s.Token) {
		// The token is past its own exp claim; an upstream call would only
		// confirm the 401.
		_ = c.store.Clear(ctx, c.sid)
		c.toAnonymousLocked()
		snap := c.snapshotLocked()
		c.mu.Unlock()
		return snap
	}

	u := s.User
	c.user = &u
	c.token = s.Token
	c.resolving = true
	gen := c.gen
	c.mu.Unlock()

	student, advisor, err := c.fetchProfile(ctx, s)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.resolving = false
	c.cond.Broadcast()

	if c.gen != gen {
		// A logout or fresh login happened while the fetch was in flight.
		// This result belongs to a dead resolution; dropping it keeps a
		// cleared session cleared.
		return c.snapshotLocked()
	}

	switch {
	case err == nil || errors.Is(err, upstream.ErrNotFound):
		c.student = student
		c.advisor = advisor
		c.target = redirect.Resolve(s.User.Role, student, advisor)
		c.hasTarget = true
		c.retryable = false
		c.state = StateReady
	case errors.Is(err, upstream.ErrUnauthorized):
		// Any 401, even from a background check, invalidates the session.
		_ = c.store.Clear(ctx, c.sid)
		c.toAnonymousLocked()
	default:
		// Transient failure: the session itself is still valid. Hold the
		// last known target, or the safe incomplete-profile fallback when
		// there is none yet, and flag the result retryable.
		if !c.hasTarget {
			c.target = fallbackTarget(s.User.Role)
			c.hasTarget = true
		}
		c.retryable = true
		c.state = StateReady
		if c.logger != nil {
			c.logger.Printf("[Resolver] profile fetch failed, holding target | sid=%s target=%s err=%v", c.sid, c.target, err)
		}
	}

	if c.metrics != nil && c.state == StateReady {
		c.metrics.RecordResolution(c.target.String(), c.retryable)
	}
	return c.snapshotLocked()
}

// Login persists the freshly issued credentials and runs the same
// resolution as boot. The caller blocks until the snapshot is terminal, so
// a fresh student lands on the complete-profile screen with no dashboard
// flash in between.
func (c *Controller) Login(ctx context.Context, user session.User, tok string) (Snapshot, error) {
	c.mu.Lock()
	c.gen++
	u := user
	c.user = &u
	c.token = tok
	c.student = nil
	c.advisor = nil
	c.hasTarget = false
	c.retryable = false
	err := c.store.Save(ctx, c.sid, session.Session{User: user, Token: tok})
	c.mu.Unlock()
	if err != nil {
		return Snapshot{}, err
	}

	// A resolution still in flight belongs to the previous credentials; its
	// result will be discarded by the gen check. Wait it out so the snapshot
	// returned here is always terminal for the credentials just saved.
	for {
		snap := c.Resolve(ctx)
		if !snap.Pending() {
			return snap, nil
		}
		c.mu.Lock()
		for c.resolving {
			c.cond.Wait()
		}
		c.mu.Unlock()
	}
}

// Logout clears everything unconditionally. No backend call is involved,
// and any in-flight resolution is invalidated so its late result cannot
// resurrect the session.
func (c *Controller) Logout(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	_ = c.store.Clear(ctx, c.sid)
	c.toAnonymousLocked()
}

func (c *Controller) toAnonymousLocked() {
	c.state = StateAnonymous
	c.user = nil
	c.token = ""
	c.student = nil
	c.advisor = nil
	c.hasTarget = false
	c.retryable = false
	c.target = redirect.Anonymous(false)
}

func (c *Controller) fetchProfile(ctx context.Context, s session.Session) (*profile.Student, *profile.Advisor, error) {
	switch s.User.Role {
	case session.RoleStudent:
		p, err := c.backend.StudentProfile(ctx, s.Token)
		if err != nil {
			return nil, nil, err
		}
		return &p, nil, nil
	case session.RoleAdvisor:
		p, err := c.backend.AdvisorProfile(ctx, s.Token)
		if err != nil {
			return nil, nil, err
		}
		return nil, &p, nil
	default:
		// Unknown role in a stored record: the policy maps it to Login,
		// no fetch needed.
		return nil, nil, nil
	}
}

func fallbackTarget(role session.Role) redirect.Target {
	if role == session.RoleAdvisor {
		return redirect.CompleteProfileAdvisor
	}
	return redirect.CompleteProfileStudent
}
