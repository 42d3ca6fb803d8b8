package catalog_test

import (
	"testing"

	"github.com/noshnavigator/nosh-cli/internal/catalog"
)

func TestSeedHasThreeRestaurants(t *testing.T) {
	c := catalog.Seed()
	if got := len(c.All()); got != 3 {
		t.Fatalf("expected 3 seed restaurants, got %d", got)
	}
	for _, rec := range c.All() {
		if rec.Name == "" || rec.Featured.Name == "" || rec.Featured.Price <= 0 {
			t.Fatalf("incomplete seed record: %+v", rec)
		}
		if rec.Rating < 0 || rec.Rating > 5 {
			t.Fatalf("rating out of range: %+v", rec)
		}
	}
}

func TestByNameIsCaseInsensitive(t *testing.T) {
	c := catalog.Seed()
	rec, ok := c.ByName("green garden")
	if !ok || rec.ID != 2 {
		t.Fatalf("expected Green Garden, got %+v ok=%v", rec, ok)
	}
}

func TestByIDMiss(t *testing.T) {
	if _, ok := catalog.Seed().ByID(42); ok {
		t.Fatal("expected miss for unknown id")
	}
}

func TestMatchNameFindsSubstring(t *testing.T) {
	c := catalog.Seed()
	rec, ok := c.MatchName("please add spice route to my order")
	if !ok || rec.Name != "Spice Route" {
		t.Fatalf("expected Spice Route, got %+v ok=%v", rec, ok)
	}
	if _, ok := c.MatchName("some other place"); ok {
		t.Fatal("expected no match for unknown name")
	}
}
