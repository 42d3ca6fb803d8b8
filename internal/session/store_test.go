package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/noshnavigator/nosh-cli/internal/domain"
)

func TestNewStoreUsesEnvSessionPath(t *testing.T) {
	t.Setenv(envSessionPath, "/tmp/custom-nosh-session.json")
	store, err := NewStore()
	if err != nil {
		t.Fatalf("unexpected error creating store: %v", err)
	}
	if store.Path() != "/tmp/custom-nosh-session.json" {
		t.Fatalf("expected env path, got %q", store.Path())
	}
}

func TestLoadMissingFileDegradesToEmptySession(t *testing.T) {
	store := &Store{path: filepath.Join(t.TempDir(), "missing.json")}
	sess, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sess.Cart) != 0 || sess.Location != nil {
		t.Fatalf("expected empty session, got %+v", sess)
	}
}

func TestLoadCorruptFileDegradesToEmptySession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatalf("write corrupt session: %v", err)
	}
	store := &Store{path: path}
	sess, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sess.Cart) != 0 {
		t.Fatalf("expected empty session, got %+v", sess)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	store := &Store{path: filepath.Join(t.TempDir(), "session.json")}
	input := domain.Session{
		Cart:        []domain.CartLine{{ID: "a", Restaurant: "Mario's Pizzeria", Item: "Margherita Pizza", Price: 18.99, Quantity: 2}},
		LastResults: []int{2, 1},
	}
	if err := store.Save(context.Background(), input); err != nil {
		t.Fatalf("unexpected save error: %v", err)
	}
	output, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}
	if len(output.Cart) != 1 || output.Cart[0].Quantity != 2 {
		t.Fatalf("unexpected roundtrip cart: %+v", output.Cart)
	}
	if len(output.LastResults) != 2 || output.LastResults[0] != 2 {
		t.Fatalf("unexpected roundtrip last results: %+v", output.LastResults)
	}
}

func TestFreshLocationHonorsWindow(t *testing.T) {
	now := time.Now()
	sess := domain.Session{}

	if _, ok := FreshLocation(sess, now); ok {
		t.Fatal("expected no location on empty session")
	}

	RememberLocation(&sess, domain.Location{Lat: 37.783, Lon: -122.41}, now.Add(-4*time.Minute))
	if loc, ok := FreshLocation(sess, now); !ok || loc.Lat != 37.783 {
		t.Fatalf("expected fresh location, got %+v ok=%v", loc, ok)
	}

	RememberLocation(&sess, domain.Location{Lat: 37.783, Lon: -122.41}, now.Add(-6*time.Minute))
	if _, ok := FreshLocation(sess, now); ok {
		t.Fatal("expected stale location to behave as absent")
	}
}

func TestRememberLocationOverwrites(t *testing.T) {
	now := time.Now()
	sess := domain.Session{}
	RememberLocation(&sess, domain.Location{Lat: 1, Lon: 1}, now.Add(-10*time.Minute))
	RememberLocation(&sess, domain.Location{Lat: 2, Lon: 2}, now)
	loc, ok := FreshLocation(sess, now)
	if !ok || loc.Lat != 2 {
		t.Fatalf("expected latest location, got %+v ok=%v", loc, ok)
	}
}
