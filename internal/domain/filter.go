package domain

// Filter is the structured form of a free-text search query.
type Filter struct {
	Cuisines []string  // canonical tags; empty means no constraint
	Price    PriceTier // empty means unset
	Fastest  bool
	Spicy    bool
}

// IsEmpty reports whether the filter constrains nothing.
func (f Filter) IsEmpty() bool {
	return len(f.Cuisines) == 0 && f.Price == "" && !f.Fastest && !f.Spicy
}

// UnparseableETA is the sort sentinel for ETA ranges with no leading number.
const UnparseableETA = 999

// RankedResult pairs a restaurant with fields computed for one query.
type RankedResult struct {
	Restaurant Restaurant
	Distance   *float64 // miles; nil when the user location is unknown
	MinETA     int
}
