// Package geo resolves free-text location strings into coordinates.
// Geocoding itself is an external collaborator; this package holds the
// interface, an HTTP client implementation, and a Redis read-through cache.
package geo

import (
	"context"

	"linguadir/internal/profile/models"
)

// Geocoder maps a free-text location string to coordinates. Implementations
// must be bounded by a timeout; an unresolvable or slow lookup is an error,
// never a hang.
type Geocoder interface {
	Resolve(ctx context.Context, location string) (models.Coordinates, error)
}

// ResolverFunc adapts a function to the Geocoder interface, for tests.
type ResolverFunc func(ctx context.Context, location string) (models.Coordinates, error)

func (f ResolverFunc) Resolve(ctx context.Context, location string) (models.Coordinates, error) {
	return f(ctx, location)
}
