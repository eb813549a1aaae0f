// Package app provides the core service that implements the dependencies
// required by the HTTP API.
package app

import (
	"context"
	"net/url"
	"time"

	"github.com/prachi-pandey-github/rest-api-wimbledon/internal/domain/record"
	"github.com/prachi-pandey-github/rest-api-wimbledon/internal/domain/validate"
	"github.com/prachi-pandey-github/rest-api-wimbledon/pkg/logger"
	"github.com/prachi-pandey-github/rest-api-wimbledon/pkg/metrics"
)

// Service owns the dataset provider and validator for the process lifetime.
// The provider is loaded once at construction and never mutated, so Service
// methods are safe for any number of concurrent callers.
type Service struct {
	provider  *record.Provider
	validator *validate.Validator

	minYear int
	clock   func() time.Time
	log     logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithMinYear sets the earliest year served.
func WithMinYear(year int) Option {
	return func(s *Service) {
		if year > 0 {
			s.minYear = year
		}
	}
}

// WithClock overrides the wall clock used by validation.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.clock = now
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// New loads the dataset and builds the service.
func New(ctx context.Context, opts ...Option) (*Service, error) {
	s := &Service{
		minYear: 2014,
		clock:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	provider, err := record.NewProvider()
	if err != nil {
		return nil, err
	}
	s.provider = provider
	s.validator = validate.New(s.minYear, validate.WithClock(s.clock))

	metrics.UpdateDatasetYears(provider.Size())
	if s.log != nil {
		earliest, latest := provider.Range()
		s.log.Info(ctx, "dataset loaded",
			logger.Int("years", provider.Size()),
			logger.Int("earliest", earliest),
			logger.Int("latest", latest),
			logger.Int("min_year", s.minYear))
	}
	return s, nil
}

// Lookup returns the final record for year, if covered.
func (s *Service) Lookup(year int) (record.Record, bool) {
	return s.provider.Lookup(year)
}

// Years returns all covered years, newest first.
func (s *Service) Years() []int {
	return s.provider.Years()
}

// Range returns the earliest and latest covered year.
func (s *Service) Range() (earliest, latest int) {
	return s.provider.Range()
}

// Played returns the number of contested tournaments in the dataset.
func (s *Service) Played() int {
	return s.provider.Played()
}

// TournamentStats aggregates the dataset.
func (s *Service) TournamentStats() record.Stats {
	return s.provider.Stats()
}

// ValidateYear checks the year query parameter.
func (s *Service) ValidateYear(query url.Values) (int, *validate.Failure) {
	return s.validator.Year(query)
}

// MinYear returns the configured lower bound.
func (s *Service) MinYear() int {
	return s.minYear
}
