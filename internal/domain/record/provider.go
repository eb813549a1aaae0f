package record

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// Provider serves read-only lookups over the final results table. The table
// is parsed once at construction and never mutated afterwards, so concurrent
// reads need no synchronization.
type Provider struct {
	byYear map[int]Record
	years  []int // descending
}

// Stats aggregates the dataset for the statistics endpoint.
type Stats struct {
	Champions   map[string]int `json:"champions"`
	BySets      map[string]int `json:"finals_by_sets"`
	Tiebreaks   int            `json:"finals_with_tiebreak"`
	Played      int            `json:"tournaments_played"`
	Cancelled   int            `json:"tournaments_cancelled"`
	TotalYears  int            `json:"total_years"`
	TiebreakPct float64        `json:"tiebreak_rate_percent"`
}

// NewProvider parses the embedded dataset.
func NewProvider() (*Provider, error) {
	raw, err := datasetFS.ReadFile(datasetPath)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	return newProviderFromJSON(raw)
}

func newProviderFromJSON(raw []byte) (*Provider, error) {
	var table map[string]Record
	if err := json.Unmarshal(raw, &table); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadDataset, err)
	}
	if len(table) == 0 {
		return nil, ErrEmptyDataset
	}

	p := &Provider{
		byYear: make(map[int]Record, len(table)),
		years:  make([]int, 0, len(table)),
	}
	for key, rec := range table {
		year, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("%w: year key %q", ErrBadDataset, key)
		}
		if rec.Cancelled() && rec.Note == "" {
			return nil, fmt.Errorf("%w: cancelled year %d missing note", ErrBadDataset, year)
		}
		rec.Year = year
		p.byYear[year] = rec
		p.years = append(p.years, year)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(p.years)))
	return p, nil
}

// Lookup returns the record for year, if present.
func (p *Provider) Lookup(year int) (Record, bool) {
	rec, ok := p.byYear[year]
	return rec, ok
}

// Years returns all covered years, newest first.
func (p *Provider) Years() []int {
	out := make([]int, len(p.years))
	copy(out, p.years)
	return out
}

// Range returns the earliest and latest covered year.
func (p *Provider) Range() (earliest, latest int) {
	return p.years[len(p.years)-1], p.years[0]
}

// Size returns the number of covered years.
func (p *Provider) Size() int {
	return len(p.years)
}

// Played returns how many tournaments in the dataset were actually contested.
func (p *Provider) Played() int {
	n := 0
	for _, rec := range p.byYear {
		if !rec.Cancelled() {
			n++
		}
	}
	return n
}

// Stats computes aggregate statistics over the full table.
func (p *Provider) Stats() Stats {
	s := Stats{
		Champions:  make(map[string]int),
		BySets:     make(map[string]int),
		TotalYears: len(p.years),
	}
	for _, rec := range p.byYear {
		if rec.Cancelled() {
			s.Cancelled++
			continue
		}
		s.Played++
		s.Champions[rec.Champion]++
		if rec.Sets != nil {
			s.BySets[strconv.Itoa(*rec.Sets)]++
		}
		if rec.Tiebreak != nil && *rec.Tiebreak {
			s.Tiebreaks++
		}
	}
	if s.Played > 0 {
		s.TiebreakPct = float64(s.Tiebreaks) / float64(s.Played) * 100
	}
	return s
}
