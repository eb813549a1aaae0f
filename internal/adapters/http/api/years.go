package api

import "net/http"

// YearsDependencies defines the operations the years listing needs.
type YearsDependencies interface {
	Years() []int
	Range() (earliest, latest int)
	Played() int
}

// YearsHandler serves the available-years listing.
type YearsHandler struct {
	deps YearsDependencies
}

// NewYearsHandler creates a new years handler.
func NewYearsHandler(deps YearsDependencies) *YearsHandler {
	return &YearsHandler{deps: deps}
}

// HandleYears handles GET /api/wimbledon/years. Years come back newest
// first.
func (h *YearsHandler) HandleYears(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeRouteNotFound(w)
		return
	}

	years := h.deps.Years()
	earliest, latest := h.deps.Range()

	writeJSON(w, http.StatusOK, map[string]any{
		"available_years": years,
		"total_years":     len(years),
		"range": map[string]int{
			"earliest": earliest,
			"latest":   latest,
		},
		"metadata": map[string]any{
			"retrieved_at":      newMetadata().RetrievedAt,
			"total_tournaments": h.deps.Played(),
		},
	})
}
