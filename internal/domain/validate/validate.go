// Package validate turns raw query parameters into validated domain values.
package validate

import (
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// Kind classifies a validation failure.
type Kind int

const (
	KindMissing Kind = iota
	KindMalformed
	KindTooEarly
	KindTooLate
)

// Stable machine codes, one per failure kind.
const (
	CodeMissingYear   = "MISSING_YEAR_PARAMETER"
	CodeInvalidFormat = "INVALID_YEAR_FORMAT"
	CodeYearTooEarly  = "YEAR_TOO_EARLY"
	CodeYearInFuture  = "YEAR_IN_FUTURE"
)

// Failure is a typed validation failure with a stable code and a
// human-readable message.
type Failure struct {
	Kind    Kind
	Code    string
	Message string
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s: %s", f.Code, f.Message)
}

// Validator checks the year query parameter. The upper bound is the current
// calendar year, so the validator depends on a clock; the clock is injectable
// to keep boundary tests deterministic.
type Validator struct {
	minYear int
	now     func() time.Time
}

// Option applies a configuration option to the Validator.
type Option func(*Validator)

// WithClock overrides the wall clock used for the future-year bound.
func WithClock(now func() time.Time) Option {
	return func(v *Validator) {
		if now != nil {
			v.now = now
		}
	}
}

// New creates a Validator. minYear is the earliest year the deployment
// serves; deployments of this service have shipped with different values,
// so it is configuration rather than a constant.
func New(minYear int, opts ...Option) *Validator {
	v := &Validator{
		minYear: minYear,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// MinYear returns the configured lower bound.
func (v *Validator) MinYear() int {
	return v.minYear
}

// Year extracts and validates the "year" parameter. On success the parsed
// year is returned unchanged; no clamping is applied.
func (v *Validator) Year(query url.Values) (int, *Failure) {
	raw := query.Get("year")
	if raw == "" {
		return 0, &Failure{
			Kind:    KindMissing,
			Code:    CodeMissingYear,
			Message: "Year parameter is required",
		}
	}

	year, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &Failure{
			Kind:    KindMalformed,
			Code:    CodeInvalidFormat,
			Message: "Year must be a valid number",
		}
	}

	if year < v.minYear {
		return 0, &Failure{
			Kind:    KindTooEarly,
			Code:    CodeYearTooEarly,
			Message: fmt.Sprintf("Data is only available from %d onwards", v.minYear),
		}
	}

	if current := v.now().Year(); year > current {
		return 0, &Failure{
			Kind:    KindTooLate,
			Code:    CodeYearInFuture,
			Message: "Cannot request data for future years",
		}
	}

	return year, nil
}
