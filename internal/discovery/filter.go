// Package discovery holds the single eligibility predicate for public
// listing. The home sampling path and the search projection's discoverable
// flag both call IsEligible, so the index and the listings can never diverge
// on policy.
package discovery

import (
	"linguadir/internal/profile/models"
)

// MinRating is the exclusive rating threshold for public discovery.
const MinRating = 2.0

// IsEligible reports whether a profile may appear in public search and
// sampling results: it must be active, rated strictly above MinRating, and
// hold at least one validated certification.
func IsEligible(p *models.Profile) bool {
	if p == nil || !p.Active {
		return false
	}
	if p.Rating == nil || *p.Rating <= MinRating {
		return false
	}
	return p.IsVerified()
}
