// Package search keeps the external search index in step with the profile
// store. The store is the source of truth; the index is a derived, eventually
// consistent projection that the synchronizer repairs on every profile
// mutation.
package search

import (
	"linguadir/internal/discovery"
	"linguadir/internal/profile/models"
)

// GeoLoc is the index's geographic point format.
type GeoLoc struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Document is the denormalized projection of a profile that the index stores.
// ObjectID is the profile id, so repeated upserts for the same profile
// overwrite rather than accumulate.
type Document struct {
	ObjectID    string   `json:"objectID"`
	Name        string   `json:"name"`
	Avatar      string   `json:"avatar"`
	Summary     string   `json:"summary"`
	Languages   []string `json:"languages"`
	Services    []string `json:"services"`
	Location    string   `json:"location"`
	Geoloc      *GeoLoc  `json:"_geoloc,omitempty"`
	Rating      float64  `json:"rating"`
	ReviewCount int      `json:"review_count"`
	Verified    bool     `json:"verified"`

	// Discoverable mirrors the discovery predicate at projection time.
	// Queries filter on it; profiles that fall out of eligibility stay in the
	// index but stop matching.
	Discoverable bool `json:"discoverable"`
}

// Project flattens a profile into its index document.
func Project(p *models.Profile) Document {
	doc := Document{
		ObjectID:     p.ID.String(),
		Name:         p.Name,
		Avatar:       p.Avatar,
		Summary:      p.Summary,
		Location:     p.Location.Text,
		ReviewCount:  p.ReviewCount,
		Verified:     p.IsVerified(),
		Discoverable: discovery.IsEligible(p),
	}
	if p.Rating != nil {
		doc.Rating = *p.Rating
	}
	if c := p.Location.Coordinates; c != nil {
		doc.Geoloc = &GeoLoc{Lat: c.Latitude, Lng: c.Longitude}
	}
	for _, lf := range p.Languages {
		doc.Languages = append(doc.Languages, lf.Language)
	}
	for _, svc := range p.Services {
		doc.Services = append(doc.Services, string(svc))
	}
	return doc
}
