package maps

import (
	"context"
	"fmt"

	"googlemaps.github.io/maps"
)

// Geocoder canonicalizes free-text place names ("nyc", "the big apple") to a
// locality name using the Google Maps Geocoding API.
type Geocoder struct {
	client *maps.Client
}

// NewGeocoder creates a Geocoder with the given API Key.
func NewGeocoder(apiKey string) (*Geocoder, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &Geocoder{client: client}, nil
}

// Canonicalize returns the locality name for place, or false when the API
// returns nothing that looks like a city.
func (g *Geocoder) Canonicalize(ctx context.Context, place string) (string, bool, error) {
	results, err := g.client.Geocode(ctx, &maps.GeocodingRequest{
		Address:  place,
		Language: "en",
	})
	if err != nil {
		return "", false, fmt.Errorf("maps api error: %w", err)
	}
	name, ok := localityFromResults(results)
	return name, ok, nil
}

// localityFromResults takes the first locality component, falling back to the
// first administrative area for city-states and metro regions.
func localityFromResults(results []maps.GeocodingResult) (string, bool) {
	var fallback string
	for _, r := range results {
		for _, c := range r.AddressComponents {
			for _, t := range c.Types {
				switch t {
				case "locality", "postal_town":
					return c.LongName, true
				case "administrative_area_level_1":
					if fallback == "" {
						fallback = c.LongName
					}
				}
			}
		}
	}
	return fallback, fallback != ""
}
