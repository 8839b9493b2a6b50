package httpserver

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHealthIsPublicAndHealthy(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rr := httptest.NewRecorder()
	server.handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 without a token, got %d body=%s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), `"status":"healthy"`) {
		t.Fatalf("expected healthy status, got %s", rr.Body.String())
	}
	for _, check := range []string{`"db":true`, `"opa":true`, `"vault":true`, `"kafka":true`} {
		if !strings.Contains(rr.Body.String(), check) {
			t.Fatalf("missing %s in %s", check, rr.Body.String())
		}
	}
}

func TestHealthReportsFailingProbe(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	server := New(Options{
		Logger: logger,
		Health: HealthProbes{
			DB: func(context.Context) error { return errors.New("connection refused") },
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rr := httptest.NewRecorder()
	server.handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d body=%s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), `"status":"unhealthy"`) || !strings.Contains(rr.Body.String(), `"db":false`) {
		t.Fatalf("expected unhealthy db, got %s", rr.Body.String())
	}
}

func TestHealthzAlwaysNoContent(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rr := httptest.NewRecorder()
	server.handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rr.Code)
	}
}
