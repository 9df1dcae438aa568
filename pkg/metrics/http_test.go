package metrics

import (
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveCountsRequests(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	m.Observe(http.MethodGet, "/api/products", http.StatusOK, 25*time.Millisecond)
	m.Observe(http.MethodGet, "/api/products", http.StatusOK, 40*time.Millisecond)
	m.Observe(http.MethodPost, "/api/products", http.StatusBadRequest, time.Millisecond)

	if got := testutil.ToFloat64(m.requests.WithLabelValues("GET", "/api/products", "200")); got != 2 {
		t.Fatalf("expected 2 GET requests recorded, got %v", got)
	}
	if got := testutil.ToFloat64(m.requests.WithLabelValues("POST", "/api/products", "400")); got != 1 {
		t.Fatalf("expected 1 rejected POST recorded, got %v", got)
	}
}

func TestObserveNilSafe(t *testing.T) {
	var m *HTTPMetrics
	m.Observe(http.MethodGet, "/", http.StatusOK, 0)

	empty := NewHTTPMetrics(nil)
	empty.Observe(http.MethodGet, "/", http.StatusOK, 0)
}
