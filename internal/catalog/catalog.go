package catalog

import (
	"strings"

	"github.com/noshnavigator/nosh-cli/internal/domain"
)

// Catalog is the read-only seed restaurant list.
type Catalog struct {
	restaurants []domain.Restaurant
}

// Seed returns the built-in demo catalog.
func Seed() *Catalog {
	return &Catalog{restaurants: []domain.Restaurant{
		{
			ID:       1,
			Name:     "Mario's Pizzeria",
			Cuisines: []string{"Italian", "Pizza"},
			Price:    domain.PriceModerate,
			Rating:   4.8,
			ETA:      "25-35 min",
			Location: domain.Location{Lat: 37.781, Lon: -122.41},
			Featured: domain.FeaturedItem{Name: "Margherita Pizza", Price: 18.99},
		},
		{
			ID:       2,
			Name:     "Green Garden",
			Cuisines: []string{"Healthy", "Salads"},
			Price:    domain.PricePremium,
			Rating:   4.9,
			ETA:      "15-25 min",
			Location: domain.Location{Lat: 37.786, Lon: -122.407},
			Featured: domain.FeaturedItem{Name: "Caesar Salad", Price: 14.99},
		},
		{
			ID:       3,
			Name:     "Spice Route",
			Cuisines: []string{"Indian", "Spicy"},
			Price:    domain.PriceCheap,
			Rating:   4.6,
			ETA:      "30-40 min",
			Location: domain.Location{Lat: 37.776, Lon: -122.415},
			Featured: domain.FeaturedItem{Name: "Chicken Curry", Price: 12.99},
		},
	}}
}

// All returns a copy of every record.
func (c *Catalog) All() []domain.Restaurant {
	out := make([]domain.Restaurant, len(c.restaurants))
	copy(out, c.restaurants)
	return out
}

// ByID looks a restaurant up by identifier.
func (c *Catalog) ByID(id int) (domain.Restaurant, bool) {
	for _, rec := range c.restaurants {
		if rec.ID == id {
			return rec, true
		}
	}
	return domain.Restaurant{}, false
}

// ByName looks a restaurant up by exact name, case-insensitive.
func (c *Catalog) ByName(name string) (domain.Restaurant, bool) {
	for _, rec := range c.restaurants {
		if strings.EqualFold(rec.Name, strings.TrimSpace(name)) {
			return rec, true
		}
	}
	return domain.Restaurant{}, false
}

// MatchName returns the first restaurant whose name appears inside text.
func (c *Catalog) MatchName(text string) (domain.Restaurant, bool) {
	lowered := strings.ToLower(text)
	for _, rec := range c.restaurants {
		if strings.Contains(lowered, strings.ToLower(rec.Name)) {
			return rec, true
		}
	}
	return domain.Restaurant{}, false
}
