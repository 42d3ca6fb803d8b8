package search

import (
	"regexp"
	"strings"

	"github.com/noshnavigator/nosh-cli/internal/domain"
)

// cuisineKeywords maps query vocabulary to canonical cuisine tags.
// Both "salad" and "healthy" canonicalize to Healthy.
var cuisineKeywords = []struct {
	keyword string
	tag     string
}{
	{"italian", "Italian"},
	{"pizza", "Pizza"},
	{"indian", "Indian"},
	{"salad", "Healthy"},
	{"healthy", "Healthy"},
	{"spicy", "Spicy"},
}

var (
	fastestPattern = regexp.MustCompile(`\b(fast|fastest|quick|quickest)\b`)
	spicyPattern   = regexp.MustCompile(`\b(spicy|heat)\b`)
	dollarPattern  = regexp.MustCompile(`\${1,3}`)
)

// ParseFilter extracts structured constraints from a free-text query.
// Matching is case-insensitive; an unmatched query yields a filter with
// no constraints.
func ParseFilter(query string) domain.Filter {
	q := strings.ToLower(query)

	var filter domain.Filter
	seen := map[string]bool{}
	for _, entry := range cuisineKeywords {
		if strings.Contains(q, entry.keyword) && !seen[entry.tag] {
			seen[entry.tag] = true
			filter.Cuisines = append(filter.Cuisines, entry.tag)
		}
	}
	filter.Price = parsePriceTier(q)
	filter.Fastest = fastestPattern.MatchString(q)
	filter.Spicy = spicyPattern.MatchString(q)
	return filter
}

// parsePriceTier reads "cheap"/"moderate"/"premium" wording or a dollar
// scale. Dollar signs are matched as whole runs so "$$$" is premium
// rather than a substring hit for "$$".
func parsePriceTier(q string) domain.PriceTier {
	dollars := len(dollarPattern.FindString(q))
	switch {
	case strings.Contains(q, "cheap") || dollars == 1:
		return domain.PriceCheap
	case strings.Contains(q, "moderate") || dollars == 2:
		return domain.PriceModerate
	case strings.Contains(q, "premium") || strings.Contains(q, "expensive") || dollars == 3:
		return domain.PricePremium
	default:
		return ""
	}
}
