package api

import (
	"net/http"
	"net/url"

	"github.com/prachi-pandey-github/rest-api-wimbledon/internal/domain/record"
	"github.com/prachi-pandey-github/rest-api-wimbledon/internal/domain/validate"
)

// FinalDependencies defines the operations the lookup endpoints need.
type FinalDependencies interface {
	Lookup(year int) (record.Record, bool)
	ValidateYear(query url.Values) (int, *validate.Failure)
}

// FinalHandler serves the by-year lookup endpoints.
type FinalHandler struct {
	deps FinalDependencies
}

// NewFinalHandler creates a new final-result handler.
func NewFinalHandler(deps FinalDependencies) *FinalHandler {
	return &FinalHandler{deps: deps}
}

// finalResponse is the full record envelope for GET /api/wimbledon.
type finalResponse struct {
	record.Record
	Metadata metadata `json:"metadata"`
}

// HandleFull handles GET /api/wimbledon?year=YYYY.
func (h *FinalHandler) HandleFull(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.resolve(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, finalResponse{Record: rec, Metadata: newMetadata()})
}

// HandleSimple handles GET /wimbledon?year=YYYY, the legacy shape without
// a metadata block.
func (h *FinalHandler) HandleSimple(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.resolve(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// resolve runs validation and lookup, writing the error envelope itself when
// either fails.
func (h *FinalHandler) resolve(w http.ResponseWriter, r *http.Request) (record.Record, bool) {
	if r.Method != http.MethodGet {
		writeRouteNotFound(w)
		return record.Record{}, false
	}
	year, failure := h.deps.ValidateYear(r.URL.Query())
	if failure != nil {
		writeValidationFailure(w, failure)
		return record.Record{}, false
	}
	rec, found := h.deps.Lookup(year)
	if !found {
		writeYearNotFound(w, year)
		return record.Record{}, false
	}
	return rec, true
}
