package domain

import "time"

// Location identifies a point on earth.
type Location struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// LocationFreshness is how long a cached device location stays usable.
const LocationFreshness = 5 * time.Minute

// CachedLocation is a location plus the moment it was stored.
type CachedLocation struct {
	Location Location  `json:"location"`
	StoredAt time.Time `json:"stored_at"`
}

// Fresh reports whether the cached location is still usable at now.
func (c CachedLocation) Fresh(now time.Time) bool {
	return now.Sub(c.StoredAt) < LocationFreshness
}
