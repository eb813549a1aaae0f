package api

import (
	"net/http"
	"time"

	"github.com/prachi-pandey-github/rest-api-wimbledon/internal/adapters/cache"
)

// HealthHandler reports service and dependency status. The endpoint always
// answers 200; degraded dependencies are reported in the body so monitors
// can alert without probes flapping the whole service.
type HealthHandler struct {
	store cache.Store
	cfg   Config
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(store cache.Store, cfg Config) *HealthHandler {
	return &HealthHandler{store: store, cfg: cfg}
}

// HandleHealth handles GET /health.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeRouteNotFound(w)
		return
	}

	stats := h.store.Stats(r.Context())
	backendStatus := "connected"
	if err := h.store.Ping(r.Context()); err != nil {
		backendStatus = "unavailable"
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   apiVersion,
		"service":   serviceName,
		"cache": map[string]any{
			"enabled": stats.Enabled,
			"backend": stats.Backend,
			"status":  backendStatus,
			"ttl_config": map[string]any{
				"wimbledon_data":  int(h.cfg.RecordTTL / time.Second),
				"available_years": int(h.cfg.YearsTTL / time.Second),
				"health_check":    int(h.cfg.HealthTTL / time.Second),
			},
		},
	})
}
