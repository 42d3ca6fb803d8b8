package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/noshnavigator/nosh-cli/internal/domain"
)

const defaultNominatimURL = "https://nominatim.openstreetmap.org/search"

// ErrLookup is returned when geocoding fails or finds nothing.
var ErrLookup = errors.New("error when trying to resolve location")

// Client resolves addresses to coordinates via OSM Nominatim.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

type coordinate float64

// Nominatim serializes coordinates as strings.
func (c *coordinate) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		value, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err != nil {
			return fmt.Errorf("parse coordinate %q: %w", text, err)
		}
		*c = coordinate(value)
		return nil
	}

	var value float64
	if err := json.Unmarshal(data, &value); err == nil {
		*c = coordinate(value)
		return nil
	}

	return fmt.Errorf("coordinate must be a string or number")
}

type nominatimResult struct {
	Lat coordinate `json:"lat"`
	Lon coordinate `json:"lon"`
}

// NewClient creates a geocoding client.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 8 * time.Second},
		baseURL:    defaultNominatimURL,
	}
}

// Resolve turns an address into a coordinate. A lookup with no hits is
// an ErrLookup; callers degrade to "no location" rather than failing.
func (c *Client) Resolve(ctx context.Context, address string) (domain.Location, error) {
	query := url.Values{}
	query.Set("q", address)
	query.Set("format", "json")
	query.Set("limit", "1")
	uri := c.baseURL + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return domain.Location{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "nosh-cli/1.0")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return domain.Location{}, fmt.Errorf("%w: %v", ErrLookup, err)
	}
	defer func() {
		_ = res.Body.Close()
	}()
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return domain.Location{}, ErrLookup
	}

	var payload []nominatimResult
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return domain.Location{}, fmt.Errorf("%w: %v", ErrLookup, err)
	}
	if len(payload) == 0 {
		return domain.Location{}, ErrLookup
	}
	return domain.Location{
		Lat: float64(payload[0].Lat),
		Lon: float64(payload[0].Lon),
	}, nil
}
