package models

import "time"

// Category is the three-way classification of a seat marker.
type Category string

const (
	AvailableStandard Category = "available_standard"
	AvailablePremium  Category = "available_premium"
	Sold              Category = "sold"
)

// Categories is the fixed iteration order used by reports and diffs.
var Categories = []Category{AvailableStandard, AvailablePremium, Sold}

// Label returns the operator-facing name of the category.
func (c Category) Label() string {
	switch c {
	case AvailableStandard:
		return "Standard (yellow)"
	case AvailablePremium:
		return "Premium (red)"
	case Sold:
		return "Sold (grey)"
	}
	return string(c)
}

// SeatMarker holds the raw attributes read from one rendered seat element.
// Either attribute may be empty; that is a valid observation, not an error.
type SeatMarker struct {
	Fill  string
	Class string
}

// Snapshot is the set of per-category seat counts captured in one cycle.
// The monitor produces a fresh Snapshot every cycle and overwrites the
// previously persisted one.
type Snapshot struct {
	AvailableStandard int       `json:"available_standard"`
	AvailablePremium  int       `json:"available_premium"`
	Sold              int       `json:"sold"`
	Timestamp         time.Time `json:"timestamp"`
	LastCheck         string    `json:"last_check"`
}

// Count returns the seat count for the given category.
func (s Snapshot) Count(c Category) int {
	switch c {
	case AvailableStandard:
		return s.AvailableStandard
	case AvailablePremium:
		return s.AvailablePremium
	case Sold:
		return s.Sold
	}
	return 0
}

// Add increments the count for the given category by one.
func (s *Snapshot) Add(c Category) {
	switch c {
	case AvailableStandard:
		s.AvailableStandard++
	case AvailablePremium:
		s.AvailablePremium++
	case Sold:
		s.Sold++
	}
}

// Total returns the number of seat markers counted across all categories.
func (s Snapshot) Total() int {
	return s.AvailableStandard + s.AvailablePremium + s.Sold
}
