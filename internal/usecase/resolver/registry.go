package resolver

import (
	"context"
	"log"
	"sync"

	"github.com/DanielNebe/student-advisor-matcher-frontend/internal/infrastructure/credstore"
	"github.com/DanielNebe/student-advisor-matcher-frontend/internal/infrastructure/upstream"
	"github.com/DanielNebe/student-advisor-matcher-frontend/internal/pkg/token"
)

// Registry hands out one Controller per gateway session id. Controllers are
// created lazily on first sight of a cookie and dropped on logout; the
// credential store, not the registry, is what survives restarts.
type Registry struct {
	store   credstore.Store
	backend upstream.Client
	tokens  *token.Inspector
	logger  *log.Logger
	metrics Metrics

	mu          sync.Mutex
	controllers map[string]*Controller
}

func NewRegistry(store credstore.Store, backend upstream.Client, logger *log.Logger, metrics Metrics) *Registry {
	return &Registry{
		store:       store,
		backend:     backend,
		tokens:      token.NewInspector(),
		logger:      logger,
		metrics:     metrics,
		controllers: make(map[string]*Controller),
	}
}

func (r *Registry) Controller(sid string) *Controller {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.controllers[sid]; ok {
		return c
	}
	c := NewController(sid, r.store, r.backend, r.tokens, r.logger, r.metrics)
	r.controllers[sid] = c
	return c
}

// Resolve runs a resolution for the sid and evicts the controller again
// when it comes back anonymous. Anonymous controllers hold nothing the
// credential store doesn't, and clients that never replay cookies would
// otherwise grow the map by one entry per request.
func (r *Registry) Resolve(ctx context.Context, sid string) Snapshot {
	c := r.Controller(sid)
	snap := c.Resolve(ctx)
	if snap.State == StateAnonymous {
		r.mu.Lock()
		if r.controllers[sid] == c {
			delete(r.controllers, sid)
		}
		r.mu.Unlock()
	}
	return snap
}

func (r *Registry) Drop(sid string) {
	r.mu.Lock()
	delete(r.controllers, sid)
	r.mu.Unlock()
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.controllers)
}
