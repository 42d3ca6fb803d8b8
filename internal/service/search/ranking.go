package search

import (
	"math"
	"regexp"
	"sort"
	"strconv"

	"github.com/noshnavigator/nosh-cli/internal/catalog"
	"github.com/noshnavigator/nosh-cli/internal/domain"
	"github.com/noshnavigator/nosh-cli/internal/geo"
)

// maxResults caps how many restaurants a search reply shows.
const maxResults = 3

var (
	etaPattern       = regexp.MustCompile(`\d+`)
	spicyNamePattern = regexp.MustCompile(`(?i)spic|chili|hot`)
)

// Ranker filters and orders the catalog for a parsed query.
type Ranker struct {
	catalog *catalog.Catalog
}

// NewRanker creates a ranker over the given catalog.
func NewRanker(c *catalog.Catalog) *Ranker {
	return &Ranker{catalog: c}
}

// Rank returns at most three restaurants matching the filter, best first.
// An empty result means nothing matched; it is not an error.
func (r *Ranker) Rank(filter domain.Filter, location *domain.Location) []domain.RankedResult {
	results := []domain.RankedResult{}
	for _, rec := range r.catalog.All() {
		if !matches(rec, filter) {
			continue
		}
		result := domain.RankedResult{Restaurant: rec, MinETA: minETA(rec.ETA)}
		if location != nil {
			d := geo.Distance(*location, rec.Location)
			result.Distance = &d
		}
		results = append(results, result)
	}
	sortResults(results, filter)
	if len(results) > maxResults {
		results = results[:maxResults]
	}
	return results
}

func matches(rec domain.Restaurant, filter domain.Filter) bool {
	if len(filter.Cuisines) > 0 && !sharesCuisine(rec, filter.Cuisines) {
		return false
	}
	if filter.Price != "" && rec.Price != filter.Price && !cheapPreference(filter) {
		return false
	}
	if filter.Spicy && !rec.HasCuisine("Spicy") && !spicyNamePattern.MatchString(rec.Name) {
		return false
	}
	return true
}

// A cheap ask alongside a cuisine narrows the order, not the candidates:
// "cheapest italian" means the cheapest of the italian places, even when
// none of them sit in the cheap tier.
func cheapPreference(filter domain.Filter) bool {
	return filter.Price == domain.PriceCheap && len(filter.Cuisines) > 0
}

func sharesCuisine(rec domain.Restaurant, tags []string) bool {
	for _, tag := range tags {
		if rec.HasCuisine(tag) {
			return true
		}
	}
	return false
}

// minETA reads the leading minutes from ranges like "25-35 min".
func minETA(eta string) int {
	token := etaPattern.FindString(eta)
	if token == "" {
		return domain.UnparseableETA
	}
	value, err := strconv.Atoi(token)
	if err != nil {
		return domain.UnparseableETA
	}
	return value
}

func sortResults(results []domain.RankedResult, filter domain.Filter) {
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		switch {
		case filter.Fastest:
			if a.MinETA != b.MinETA {
				return a.MinETA < b.MinETA
			}
		case filter.Price == domain.PriceCheap:
			if a.Restaurant.Featured.Price != b.Restaurant.Featured.Price {
				return a.Restaurant.Featured.Price < b.Restaurant.Featured.Price
			}
		}
		if a.Restaurant.Rating != b.Restaurant.Rating {
			return a.Restaurant.Rating > b.Restaurant.Rating
		}
		return sortDistance(a) < sortDistance(b)
	})
}

// Missing distances sort last.
func sortDistance(r domain.RankedResult) float64 {
	if r.Distance == nil {
		return math.MaxFloat64
	}
	return *r.Distance
}
