package domain

import "strings"

// PriceTier is the three-level price scale shared by restaurants and filters.
type PriceTier string

const (
	PriceCheap    PriceTier = "cheap"
	PriceModerate PriceTier = "moderate"
	PricePremium  PriceTier = "premium"
)

// Symbol renders the tier as the dollar scale shown next to venue names.
func (p PriceTier) Symbol() string {
	switch p {
	case PriceCheap:
		return "$"
	case PriceModerate:
		return "$$"
	case PricePremium:
		return "$$$"
	default:
		return ""
	}
}

// FeaturedItem is the promoted menu item used as the default add-to-cart target.
type FeaturedItem struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Restaurant is one read-only seed catalog record.
type Restaurant struct {
	ID       int
	Name     string
	Cuisines []string
	Price    PriceTier
	Rating   float64
	ETA      string
	Location Location
	Featured FeaturedItem
}

// HasCuisine reports whether the restaurant carries the tag, case-insensitive.
func (r Restaurant) HasCuisine(tag string) bool {
	for _, cuisine := range r.Cuisines {
		if strings.EqualFold(cuisine, tag) {
			return true
		}
	}
	return false
}
