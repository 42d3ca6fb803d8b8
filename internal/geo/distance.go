package geo

import (
	"fmt"
	"math"

	"github.com/noshnavigator/nosh-cli/internal/domain"
)

// earthRadiusMiles matches the radius the web app used for map distances.
const earthRadiusMiles = 3958.761

// Distance returns the great-circle distance between two points in miles,
// using the haversine formula.
func Distance(a, b domain.Location) float64 {
	dLat := radians(b.Lat - a.Lat)
	dLon := radians(b.Lon - a.Lon)
	lat1 := radians(a.Lat)
	lat2 := radians(b.Lat)
	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLon*sinLon
	return 2 * earthRadiusMiles * math.Asin(math.Sqrt(h))
}

// FormatMiles renders a distance the way the map popups did: two decimals
// under a mile, one decimal above.
func FormatMiles(miles float64) string {
	if miles < 1 {
		return fmt.Sprintf("%.2f mi", miles)
	}
	return fmt.Sprintf("%.1f mi", miles)
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
