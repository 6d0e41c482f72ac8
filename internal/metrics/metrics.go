// Package metrics exposes gateway counters over prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	resolutions      *prometheus.CounterVec
	upstreamFailures *prometheus.CounterVec
	upstreamLatency  prometheus.Histogram
	wsClients        prometheus.Gauge
}

func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "matcher_gateway_resolutions_total",
			Help: "Session resolutions by redirect target.",
		}, []string{"target", "retryable"}),
		upstreamFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "matcher_gateway_upstream_failures_total",
			Help: "Backend call failures by operation and kind.",
		}, []string{"op", "kind"}),
		upstreamLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "matcher_gateway_upstream_latency_seconds",
			Help:    "Latency of backend calls.",
			Buckets: prometheus.DefBuckets,
		}),
		wsClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "matcher_gateway_ws_clients",
			Help: "Connected websocket clients.",
		}),
	}
	reg.MustRegister(c.resolutions, c.upstreamFailures, c.upstreamLatency, c.wsClients)
	return c
}

func (c *Collector) RecordResolution(target string, retryable bool) {
	label := "false"
	if retryable {
		label = "true"
	}
	c.resolutions.WithLabelValues(target, label).Inc()
}

func (c *Collector) RecordUpstreamFailure(op, kind string) {
	c.upstreamFailures.WithLabelValues(op, kind).Inc()
}

func (c *Collector) ObserveUpstreamLatency(seconds float64) {
	c.upstreamLatency.Observe(seconds)
}

func (c *Collector) SetWSClients(n int) {
	c.wsClients.Set(float64(n))
}

// Handler serves the scrape endpoint for the given registry.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
