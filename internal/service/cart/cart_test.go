package cart_test

import (
	"math"
	"testing"

	"github.com/noshnavigator/nosh-cli/internal/service/cart"
)

func TestAddMergesRepeatPairs(t *testing.T) {
	store := cart.NewStore(nil)
	store.Add("Mario's Pizzeria", "Margherita Pizza", 18.99)
	store.Add("Spice Route", "Chicken Curry", 12.99)
	store.Add("Mario's Pizzeria", "Margherita Pizza", 18.99)
	store.Add("Mario's Pizzeria", "Margherita Pizza", 18.99)

	lines := store.Lines()
	if len(lines) != 2 {
		t.Fatalf("expected 2 distinct lines, got %d", len(lines))
	}
	if lines[0].Quantity != 3 {
		t.Fatalf("expected quantity 3 for repeated pair, got %d", lines[0].Quantity)
	}
	if lines[1].Quantity != 1 {
		t.Fatalf("expected quantity 1, got %d", lines[1].Quantity)
	}
	if lines[0].ID == lines[1].ID || lines[0].ID == "" {
		t.Fatalf("expected distinct non-empty line ids, got %q and %q", lines[0].ID, lines[1].ID)
	}
	if store.Count() != 4 {
		t.Fatalf("expected badge count 4, got %d", store.Count())
	}
}

func TestSameItemNameAtDifferentRestaurantsStaysSeparate(t *testing.T) {
	store := cart.NewStore(nil)
	store.Add("Mario's Pizzeria", "House Special", 10)
	store.Add("Green Garden", "House Special", 12)
	if len(store.Lines()) != 2 {
		t.Fatalf("expected separate lines per restaurant, got %d", len(store.Lines()))
	}
}

func TestRemove(t *testing.T) {
	store := cart.NewStore(nil)
	line := store.Add("Green Garden", "Caesar Salad", 14.99)

	if !store.Remove(line.ID) {
		t.Fatal("expected removal to succeed")
	}
	if len(store.Lines()) != 0 {
		t.Fatalf("expected empty cart, got %d lines", len(store.Lines()))
	}
	if store.Remove("missing") {
		t.Fatal("expected no-op removal for unknown id")
	}
}

func TestUpdateQuantity(t *testing.T) {
	store := cart.NewStore(nil)
	line := store.Add("Spice Route", "Chicken Curry", 12.99)
	store.Add("Spice Route", "Chicken Curry", 12.99)

	updated, ok := store.UpdateQuantity(line.ID, 3)
	if !ok || updated.Quantity != 5 {
		t.Fatalf("expected quantity 5, got %+v ok=%v", updated, ok)
	}

	if _, ok := store.UpdateQuantity(line.ID, -5); ok {
		t.Fatal("expected line removal when quantity drops to zero")
	}
	if len(store.Lines()) != 0 {
		t.Fatalf("expected empty cart, got %d lines", len(store.Lines()))
	}

	if _, ok := store.UpdateQuantity("missing", 1); ok {
		t.Fatal("expected miss for unknown id")
	}
}

func TestSubtotal(t *testing.T) {
	store := cart.NewStore(nil)
	if store.Subtotal() != 0 {
		t.Fatalf("expected empty subtotal 0, got %f", store.Subtotal())
	}
	store.Add("Mario's Pizzeria", "Margherita Pizza", 18.99)
	store.Add("Mario's Pizzeria", "Margherita Pizza", 18.99)
	store.Add("Green Garden", "Caesar Salad", 14.99)
	if got, want := store.Subtotal(), 2*18.99+14.99; !closeTo(got, want) {
		t.Fatalf("expected subtotal %f, got %f", want, got)
	}
}

func TestClear(t *testing.T) {
	store := cart.NewStore(nil)
	store.Add("Mario's Pizzeria", "Margherita Pizza", 18.99)
	store.Clear()
	if len(store.Lines()) != 0 || store.Subtotal() != 0 {
		t.Fatal("expected cleared cart")
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	totals := cart.Checkout(0)
	if totals.DeliveryFee != 0 || totals.Tax != 0 || totals.Total != 0 {
		t.Fatalf("expected zero totals, got %+v", totals)
	}
}

func TestCheckoutHundredDollarCart(t *testing.T) {
	totals := cart.Checkout(100)
	if !closeTo(totals.DeliveryFee, 2.99) {
		t.Fatalf("expected delivery fee 2.99, got %f", totals.DeliveryFee)
	}
	if !closeTo(totals.Tax, 8.875) {
		t.Fatalf("expected tax 8.875, got %f", totals.Tax)
	}
	if !closeTo(totals.Total, 111.865) {
		t.Fatalf("expected total 111.865, got %f", totals.Total)
	}
}

func closeTo(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
