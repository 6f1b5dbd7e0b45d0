package geocode

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"googlemaps.github.io/maps"

	"go-landwatch/types"
)

// Geocoder converts a place name into a coordinate. ok is false when the place
// could not be found.
type Geocoder interface {
	Geocode(ctx context.Context, location string) (coord types.Coordinate, ok bool, err error)
}

// these never go to the API
var nationwide = map[string]bool{
	"nationwide":    true,
	"all us states": true,
	"various":       true,
}

// Nationwide resolves names that cover the whole country to the US center.
func Nationwide(location string) (types.Coordinate, bool) {
	if !nationwide[strings.ToLower(strings.TrimSpace(location))] {
		return types.Coordinate{}, false
	}
	coord := types.USCenter
	coord.Label = location
	return coord, true
}

type mapsAPI interface {
	Geocode(ctx context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error)
}

// GoogleGeocoder geocodes with the Google Maps API and caches every hit in memory.
type GoogleGeocoder struct {
	api mapsAPI

	mu    sync.RWMutex
	cache map[string]types.Coordinate
}

func NewGoogleGeocoder(apiKey string) (*GoogleGeocoder, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("MAPS_CREDENTIALS environment variable not set")
	}
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create maps client: %w", err)
	}
	return newGoogleGeocoder(client), nil
}

func newGoogleGeocoder(api mapsAPI) *GoogleGeocoder {
	return &GoogleGeocoder{api: api, cache: make(map[string]types.Coordinate)}
}

func (g *GoogleGeocoder) Geocode(ctx context.Context, location string) (types.Coordinate, bool, error) {
	key := strings.ToLower(strings.TrimSpace(location))
	if key == "" {
		return types.Coordinate{}, false, nil
	}

	g.mu.RLock()
	coord, hit := g.cache[key]
	g.mu.RUnlock()
	if hit {
		coord.Label = location
		return coord, true, nil
	}

	if nationwide[key] {
		coord = types.USCenter
	} else {
		// "Georgia" should resolve to the state, not the country
		results, err := g.api.Geocode(ctx, &maps.GeocodingRequest{
			Address: location + ", USA",
			Region:  "us",
		})
		if err != nil {
			return types.Coordinate{}, false, fmt.Errorf("geocode %q: %w", location, err)
		}
		if len(results) == 0 {
			return types.Coordinate{}, false, nil
		}
		loc := results[0].Geometry.Location
		coord = types.Coordinate{Lat: loc.Lat, Lng: loc.Lng}
	}

	g.mu.Lock()
	g.cache[key] = coord
	g.mu.Unlock()

	coord.Label = location
	return coord, true, nil
}

// Len reports how many places are cached.
func (g *GoogleGeocoder) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.cache)
}
