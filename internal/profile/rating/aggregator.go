// Package rating implements the incremental rating aggregator. The running
// mean is carried as (mean, count) on the profile record, so folding in a new
// review is O(1) instead of re-scanning the full review history.
package rating

import (
	dErrors "linguadir/pkg/domain-errors"
)

const (
	// Min and Max bound a single review rating.
	Min = 0.0
	Max = 5.0
)

// Validate checks that a rating is within [0,5]. The aggregator never clamps
// silently; out-of-range input is the caller's bug to surface.
func Validate(r float64) error {
	if r < Min || r > Max {
		return dErrors.Newf(dErrors.CodeValidation, "rating must be between %g and %g", Min, Max)
	}
	return nil
}

// Apply folds one new rating into a running mean. A nil currentMean means no
// prior reviews exist; the new rating becomes the mean. The pair returned is
// the state to persist alongside the review itself.
func Apply(currentMean *float64, currentCount int, newRating float64) (float64, int, error) {
	if err := Validate(newRating); err != nil {
		return 0, 0, err
	}
	if currentMean == nil || currentCount == 0 {
		return newRating, 1, nil
	}
	newCount := currentCount + 1
	newMean := (*currentMean*float64(currentCount) + newRating) / float64(newCount)
	return newMean, newCount, nil
}
