package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/josh-kwaku/securebank/internal/repository"
)

type HealthHandler struct {
	store   repository.Pinger
	backend string
}

// NewHealthHandler reports on store. A nil store (the in-memory backend) is
// always ready.
func NewHealthHandler(store repository.Pinger, backend string) *HealthHandler {
	return &HealthHandler{store: store, backend: backend}
}

func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	RespondJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"version":   "1.0.0",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	storeStatus := "ok"
	httpStatus := http.StatusOK

	if h.store != nil {
		if err := h.store.Ping(r.Context()); err != nil {
			slog.Warn("readiness check failed: store unreachable", "backend", h.backend, "error", err)
			storeStatus = "down"
			httpStatus = http.StatusServiceUnavailable
		}
	}

	overallStatus := "ok"
	if httpStatus != http.StatusOK {
		overallStatus = "down"
	}

	RespondJSON(w, httpStatus, map[string]any{
		"status":    overallStatus,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"checks": map[string]string{
			"store": storeStatus,
		},
		"backend": h.backend,
	})
}
