package api

import (
	"net/http"

	"github.com/prachi-pandey-github/rest-api-wimbledon/internal/domain/record"
)

// StatsDependencies defines the operations the statistics endpoint needs.
type StatsDependencies interface {
	TournamentStats() record.Stats
}

// StatsHandler serves aggregate tournament statistics.
type StatsHandler struct {
	deps StatsDependencies
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(deps StatsDependencies) *StatsHandler {
	return &StatsHandler{deps: deps}
}

// HandleStats handles GET /api/wimbledon/stats.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeRouteNotFound(w)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"statistics": h.deps.TournamentStats(),
		"metadata":   newMetadata(),
	})
}
