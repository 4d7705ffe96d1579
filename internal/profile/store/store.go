// Package store persists interpreter profiles. Two implementations exist: an
// in-memory store for tests and local runs, and a PostgreSQL store for
// production. Both speak sentinel errors at the boundary; the service layer
// translates them into coded domain errors.
package store

import (
	"context"

	"linguadir/internal/profile/models"
	id "linguadir/pkg/domain"
)

// ProfileStore is the persistence boundary for the profile aggregate.
//
// Save is optimistic: it succeeds only when the given profile's Version still
// matches the stored one, and bumps the version on success. A stale version
// yields sentinel.ErrConflict so callers can re-read and retry.
type ProfileStore interface {
	// Create inserts a new profile. Returns sentinel.ErrAlreadyUsed when the
	// email is already taken.
	Create(ctx context.Context, p *models.Profile) error

	// FindByID returns the profile or sentinel.ErrNotFound.
	FindByID(ctx context.Context, profileID id.ProfileID) (*models.Profile, error)

	// FindByEmail returns the profile or sentinel.ErrNotFound. Emails are
	// matched case-insensitively.
	FindByEmail(ctx context.Context, email string) (*models.Profile, error)

	// Save persists a mutated profile under optimistic concurrency control.
	// On success the profile's Version is bumped in place.
	Save(ctx context.Context, p *models.Profile) error

	// Sample returns up to limit random profiles passing a coarse discovery
	// pre-filter (active, rated above the discovery floor). Callers must
	// re-apply the full discovery predicate; the store only narrows the pool.
	Sample(ctx context.Context, limit int) ([]*models.Profile, error)

	// ListWithPendingCertifications returns every profile holding at least
	// one certification awaiting review.
	ListWithPendingCertifications(ctx context.Context) ([]*models.Profile, error)
}
