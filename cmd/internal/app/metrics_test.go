package app

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestWithMetrics_CountsByRoutePattern(t *testing.T) {
	t.Parallel()

	registry := prometheus.NewRegistry()
	m := NewMetrics(registry)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /ping/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	h := WithMetrics(mux, m)
	for _, path := range []string{"/ping/1", "/ping/2"} {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		if rr.Code != http.StatusOK {
			t.Fatalf("GET %s status = %d", path, rr.Code)
		}
	}

	// Both requests collapse into one route label.
	got := testutil.ToFloat64(m.requests.WithLabelValues(http.MethodGet, "GET /ping/{id}", "200"))
	if got != 2 {
		t.Fatalf("requests_total = %v, want 2", got)
	}
}

func TestWithMetrics_UnmatchedRoute(t *testing.T) {
	t.Parallel()

	registry := prometheus.NewRegistry()
	m := NewMetrics(registry)

	h := WithMetrics(http.NewServeMux(), m)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/nope", nil))

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
	got := testutil.ToFloat64(m.requests.WithLabelValues(http.MethodGet, "unmatched", "404"))
	if got != 1 {
		t.Fatalf("requests_total = %v, want 1", got)
	}
}
