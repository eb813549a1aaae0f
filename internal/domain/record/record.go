// Package record holds the tournament final dataset and read access to it.
package record

// CancelledChampion marks a year in which the tournament was not played.
// Cancelled records carry no result fields and must explain themselves in Note.
const CancelledChampion = "Tournament Cancelled"

// Record is a single final result. Result fields are pointers because a
// cancelled year has none of them.
type Record struct {
	Year     int     `json:"year"`
	Champion string  `json:"champion"`
	RunnerUp *string `json:"runner_up"`
	Score    *string `json:"score"`
	Sets     *int    `json:"sets"`
	Tiebreak *bool   `json:"tiebreak"`
	Note     string  `json:"note,omitempty"`
}

// Cancelled reports whether this year's tournament was cancelled.
func (r Record) Cancelled() bool {
	return r.Champion == CancelledChampion
}
