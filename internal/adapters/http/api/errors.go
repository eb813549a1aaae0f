package api

import (
	"fmt"
	"net/http"

	"github.com/prachi-pandey-github/rest-api-wimbledon/internal/domain/validate"
)

// Stable machine codes for failures raised at the HTTP boundary. Validation
// codes live in the validate package; together they form the full taxonomy:
//
//	400 MISSING_YEAR_PARAMETER, INVALID_YEAR_FORMAT, YEAR_TOO_EARLY, YEAR_IN_FUTURE
//	404 YEAR_NOT_FOUND, NOT_FOUND
//	429 RATE_LIMIT_EXCEEDED
//	500 INTERNAL_ERROR
const (
	CodeYearNotFound      = "YEAR_NOT_FOUND"
	CodeRouteNotFound     = "NOT_FOUND"
	CodeRateLimitExceeded = "RATE_LIMIT_EXCEEDED"
	CodeInternalError     = "INTERNAL_ERROR"
)

// errorBody builds the uniform error envelope. Kind-specific extras are
// added by the caller before writing.
func errorBody(code, message string) map[string]any {
	return map[string]any{
		"error":   message,
		"code":    code,
		"message": message,
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorBody(code, message))
}

// writeValidationFailure maps a typed validation failure to its envelope.
// Validation failures are always client-caused and never cached.
func writeValidationFailure(w http.ResponseWriter, f *validate.Failure) {
	writeError(w, http.StatusBadRequest, f.Code, f.Message)
}

func writeYearNotFound(w http.ResponseWriter, year int) {
	body := errorBody(CodeYearNotFound, fmt.Sprintf("No data available for year %d", year))
	body["year"] = year
	body["available_years_endpoint"] = "/api/wimbledon/years"
	writeJSON(w, http.StatusNotFound, body)
}

func writeRouteNotFound(w http.ResponseWriter) {
	body := errorBody(CodeRouteNotFound, "The requested endpoint does not exist")
	body["available_endpoints"] = availableEndpoints
	writeJSON(w, http.StatusNotFound, body)
}

func writeInternalError(w http.ResponseWriter) {
	writeError(w, http.StatusInternalServerError, CodeInternalError,
		"An unexpected error occurred while processing your request")
}
