package app

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"rolodex/cmd/identity"
	"rolodex/cmd/internal/api"
	"rolodex/cmd/internal/contacts"
)

func testMux(t *testing.T, cfg Config) *http.ServeMux {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	registry := prometheus.NewRegistry()
	metrics := NewMetrics(registry)
	apiHandler := api.NewHandler(log, api.DefaultConfig(), identity.NewMemoryStore(), contacts.NewMemoryStore())

	mux := http.NewServeMux()
	registerHTTP(mux, log, cfg, nil, false, metrics, registry, apiHandler)
	return mux
}

func TestHealthz(t *testing.T) {
	mux := testMux(t, Config{})

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("healthz status = %d", rr.Code)
	}
}

func TestReadyzWithoutDB(t *testing.T) {
	mux := testMux(t, Config{})

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("readyz status = %d, want ready in memory mode", rr.Code)
	}
}

func TestReadyzRequiresDBWhenConfigured(t *testing.T) {
	mux := testMux(t, Config{ReadinessRequireDB: true})

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("readyz status = %d, want %d when DB required but absent", rr.Code, http.StatusServiceUnavailable)
	}
}

func TestMetricsEndpointExposed(t *testing.T) {
	mux := testMux(t, Config{})

	// Generate one instrumented request first.
	metricsMux := WithMetrics(mux, NewMetrics(prometheus.NewRegistry()))
	rr := httptest.NewRecorder()
	metricsMux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("instrumented request status = %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("metrics status = %d", rr.Code)
	}
}

func TestAPIRoutesRegistered(t *testing.T) {
	mux := testMux(t, Config{})

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/contacts", nil))

	// No token: the API answers 401, which proves the route is wired.
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("GET /api/contacts status = %d, want %d", rr.Code, http.StatusUnauthorized)
	}
	if !strings.Contains(rr.Body.String(), "unauthorized") {
		t.Fatalf("body = %q, want unauthorized envelope", rr.Body.String())
	}
}

func TestNonZeroHelpers(t *testing.T) {
	t.Parallel()

	if got := nonZeroInt(0, 7); got != 7 {
		t.Fatalf("nonZeroInt(0)=%d want 7", got)
	}
	if got := nonZeroInt(3, 7); got != 3 {
		t.Fatalf("nonZeroInt(3)=%d want 3", got)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig()

	if cfg.HTTPAddr != "0.0.0.0:8080" {
		t.Fatalf("HTTPAddr = %q", cfg.HTTPAddr)
	}
	if cfg.LogFormat != "json" {
		t.Fatalf("LogFormat = %q", cfg.LogFormat)
	}
	if !cfg.DBMigrate {
		t.Fatalf("DBMigrate default = false, want true")
	}
	if cfg.RequireTokenHMAC {
		t.Fatalf("RequireTokenHMAC default = true, want false")
	}
}
