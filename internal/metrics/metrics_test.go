package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestCollector_ServesRecordedMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordResolution("match", false)
	c.RecordResolution("match", true)
	c.RecordUpstreamFailure("student_profile", "transport")
	c.ObserveUpstreamLatency(0.05)
	c.SetWSClients(2)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	Handler(reg).ServeHTTP(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	body, _ := io.ReadAll(resp.Body)
	out := string(body)

	for _, metric := range []string{
		"matcher_gateway_resolutions_total",
		"matcher_gateway_upstream_failures_total",
		"matcher_gateway_upstream_latency_seconds",
		"matcher_gateway_ws_clients",
	} {
		if !strings.Contains(out, metric) {
			t.Errorf("response should contain %s", metric)
		}
	}
}
