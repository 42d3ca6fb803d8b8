package geocode

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	client := &Client{
		httpClient: &http.Client{Timeout: time.Second},
		baseURL:    server.URL,
	}
	return client, server
}

func TestResolveParsesStringCoordinates(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "123 Market St" {
			t.Errorf("unexpected query %q", got)
		}
		if got := r.URL.Query().Get("limit"); got != "1" {
			t.Errorf("unexpected limit %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"lat":"37.7936","lon":"-122.3965"}]`))
	})
	defer server.Close()

	loc, err := client.Resolve(context.Background(), "123 Market St")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loc.Lat != 37.7936 || loc.Lon != -122.3965 {
		t.Fatalf("unexpected location %+v", loc)
	}
}

func TestResolveEmptyResultIsLookupError(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})
	defer server.Close()

	_, err := client.Resolve(context.Background(), "nowhere at all")
	if !errors.Is(err, ErrLookup) {
		t.Fatalf("expected ErrLookup, got %v", err)
	}
}

func TestResolveServerErrorIsLookupError(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	defer server.Close()

	_, err := client.Resolve(context.Background(), "anywhere")
	if !errors.Is(err, ErrLookup) {
		t.Fatalf("expected ErrLookup, got %v", err)
	}
}
