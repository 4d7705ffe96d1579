package models

import (
	"time"

	dErrors "linguadir/pkg/domain-errors"
)

// Review is one user-submitted rating with optional commentary. Reviews are
// append-only; the profile's running mean is maintained separately so pruning
// old reviews can never change the rating.
type Review struct {
	Rating       float64   `json:"rating"`
	ReviewerName string    `json:"reviewer_name"`
	Comment      string    `json:"comment"`
	SubmittedAt  time.Time `json:"submitted_at"`
}

// NewReview builds a review; rating range is enforced later by the
// aggregator, so this only checks shape.
func NewReview(rating float64, reviewerName, comment string, now time.Time) (Review, error) {
	if reviewerName == "" {
		return Review{}, dErrors.New(dErrors.CodeValidation, "reviewer name is required")
	}
	return Review{
		Rating:       rating,
		ReviewerName: reviewerName,
		Comment:      comment,
		SubmittedAt:  now,
	}, nil
}
