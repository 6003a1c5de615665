// Package geocode resolves location strings to coordinates through the
// OpenCage forward-geocoding API.
package geocode

import (
	"context"
	"errors"
)

// Geocoder resolves a free-text location to (lat, lng). Implementations may
// fail on transport errors or unresolvable queries; the pipeline maps any
// error to the (0, 0) sentinel.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (lat, lng float64, err error)
}

var (
	// ErrDisabled is returned by the no-op geocoder selected when no API key
	// is configured.
	ErrDisabled = errors.New("geocode: collaborator disabled")

	// ErrNotFound is returned when the service has no result for the query.
	ErrNotFound = errors.New("geocode: no results")
)

// Disabled is the no-op Geocoder.
type Disabled struct{}

func (Disabled) Geocode(context.Context, string) (float64, float64, error) {
	return 0, 0, ErrDisabled
}
