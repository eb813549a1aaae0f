package api

import (
	"fmt"
	"net/http"
)

// DocsDependencies defines what the documentation endpoint needs.
type DocsDependencies interface {
	MinYear() int
}

// DocsHandler serves a machine-readable description of the API.
type DocsHandler struct {
	deps DocsDependencies
	cfg  Config
}

// NewDocsHandler creates a new docs handler.
func NewDocsHandler(deps DocsDependencies, cfg Config) *DocsHandler {
	return &DocsHandler{deps: deps, cfg: cfg}
}

// HandleDocs handles GET /api/docs.
func (h *DocsHandler) HandleDocs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeRouteNotFound(w)
		return
	}

	yearParam := map[string]any{
		"name":        "year",
		"type":        "integer",
		"required":    true,
		"description": fmt.Sprintf("Year of the tournament (%d-present)", h.deps.MinYear()),
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"title":       "Wimbledon Finals API",
		"version":     apiVersion,
		"description": "Get information about Wimbledon men's singles finals by year",
		"endpoints": []map[string]any{
			{
				"method":      "GET",
				"path":        "/api/wimbledon",
				"description": "Get Wimbledon final information for a specific year",
				"parameters":  []map[string]any{yearParam},
			},
			{
				"method":      "GET",
				"path":        "/api/wimbledon/years",
				"description": "Get list of available years",
				"parameters":  []map[string]any{},
			},
			{
				"method":      "GET",
				"path":        "/api/wimbledon/stats",
				"description": "Get aggregate statistics across all finals",
				"parameters":  []map[string]any{},
			},
			{
				"method":      "GET",
				"path":        "/api/cache/stats",
				"description": "Get cache statistics and backend information",
				"parameters":  []map[string]any{},
			},
		},
		"response_format": map[string]any{
			"year":      "integer",
			"champion":  "string",
			"runner_up": "string",
			"score":     "string",
			"sets":      "integer",
			"tiebreak":  "boolean",
			"metadata": map[string]string{
				"retrieved_at": "RFC 3339 timestamp",
				"data_source":  "string",
				"api_version":  "string",
			},
		},
		"rate_limits": h.cfg.LimitDocs,
	})
}
