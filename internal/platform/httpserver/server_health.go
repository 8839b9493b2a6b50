package httpserver

import (
	"context"
	"net/http"
	"time"
)

// HealthProbes holds the readiness checks of the backing subsystems. A
// nil probe means the subsystem is disabled and reports healthy without
// dialing.
type HealthProbes struct {
	DB    func(ctx context.Context) error
	OPA   func(ctx context.Context) error
	Vault func(ctx context.Context) error
	Kafka func(ctx context.Context) error
}

type healthResponse struct {
	Status string          `json:"status"`
	Checks map[string]bool `json:"checks"`
}

// handleHealth godoc
// @Summary Service health
// @Description Probes the relational store and, when enabled, the policy engine, Vault and Kafka.
// @Tags health
// @Produce json
// @Success 200 {object} healthResponse
// @Failure 503 {object} healthResponse
// @Router /health [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := map[string]bool{
		"db":    s.probe(ctx, "db", s.health.DB),
		"opa":   s.probe(ctx, "opa", s.health.OPA),
		"vault": s.probe(ctx, "vault", s.health.Vault),
		"kafka": s.probe(ctx, "kafka", s.health.Kafka),
	}

	status := http.StatusOK
	label := "healthy"
	for _, healthy := range checks {
		if !healthy {
			status = http.StatusServiceUnavailable
			label = "unhealthy"
			break
		}
	}
	writeJSON(w, status, healthResponse{Status: label, Checks: checks})
}

func (s *Server) probe(ctx context.Context, name string, check func(ctx context.Context) error) bool {
	if check == nil {
		return true
	}
	if err := check(ctx); err != nil {
		s.logger.Warn("health probe failed",
			"event", "health_probe_failed",
			"module", "internal/platform/httpserver",
			"layer", "platform",
			"check", name,
			"error", err.Error(),
		)
		return false
	}
	return true
}

// handleHealthz is the liveness probe; it answers as long as the
// process serves requests at all.
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}
