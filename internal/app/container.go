package app

import (
	"log"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/DanielNebe/student-advisor-matcher-frontend/internal/config"
	"github.com/DanielNebe/student-advisor-matcher-frontend/internal/infrastructure/credstore"
	"github.com/DanielNebe/student-advisor-matcher-frontend/internal/infrastructure/upstream"
	"github.com/DanielNebe/student-advisor-matcher-frontend/internal/metrics"
	"github.com/DanielNebe/student-advisor-matcher-frontend/internal/usecase/resolver"
	"github.com/DanielNebe/student-advisor-matcher-frontend/internal/ws"
)

// Container holds every long-lived dependency in construction order:
// credential store, backend client, resolver registry, hub, metrics.
type Container struct {
	Config   config.Config
	Logger   *log.Logger
	Store    *credstore.Redis
	Backend  upstream.Client
	Registry *resolver.Registry
	Hub      *ws.Hub
	Metrics  *metrics.Collector
	Scrape   http.Handler
}

func NewContainer(cfg config.Config) (*Container, error) {
	logger := log.New(os.Stdout, "", log.LstdFlags)

	promReg := prometheus.NewRegistry()
	collector := metrics.NewCollector(promReg)

	store := credstore.NewRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.CredentialTTL, logger)
	backend := upstream.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout, logger, collector)
	registry := resolver.NewRegistry(store, backend, logger, collector)

	hub := ws.NewHub(logger, collector)

	return &Container{
		Config:   cfg,
		Logger:   logger,
		Store:    store,
		Backend:  backend,
		Registry: registry,
		Hub:      hub,
		Metrics:  collector,
		Scrape:   metrics.Handler(promReg),
	}, nil
}

func (c *Container) Close() error {
	if c == nil || c.Store == nil {
		return nil
	}
	return c.Store.Close()
}
