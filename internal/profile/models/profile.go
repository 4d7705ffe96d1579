package models

import (
	"strings"
	"time"

	"linguadir/internal/profile/rating"
	id "linguadir/pkg/domain"
	dErrors "linguadir/pkg/domain-errors"
)

// DefaultAvatarURL is used for profiles created without an avatar.
const DefaultAvatarURL = "https://cdn.linguadir.io/static/avatar-default.png"

// ServiceType enumerates the interpretation offerings a profile can list.
type ServiceType string

const (
	ServiceSimultaneous ServiceType = "simultaneous"
	ServiceConsecutive  ServiceType = "consecutive"
	ServiceRelaying     ServiceType = "relaying"
	ServiceTranslating  ServiceType = "translating"
)

// ParseServiceType validates an external service name.
func ParseServiceType(s string) (ServiceType, error) {
	switch ServiceType(strings.ToLower(strings.TrimSpace(s))) {
	case ServiceSimultaneous:
		return ServiceSimultaneous, nil
	case ServiceConsecutive:
		return ServiceConsecutive, nil
	case ServiceRelaying:
		return ServiceRelaying, nil
	case ServiceTranslating:
		return ServiceTranslating, nil
	default:
		return "", dErrors.Newf(dErrors.CodeValidation, "unknown service type %q", s)
	}
}

// LanguageFluency pairs a language with a self-reported fluency from 1 to 5.
type LanguageFluency struct {
	Language string `json:"language"`
	Fluency  int    `json:"fluency"`
}

// Coordinates are derived from the location string by the geocoder. They are
// never edited directly.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Location is the free-text location plus its derived coordinates.
type Location struct {
	Text        string       `json:"text"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}

// Profile is the aggregate root for an interpreter.
//
// Invariants:
//   - No two language entries share the same language value
//   - Rating is nil until the first review; thereafter in [0,5]
//   - ReviewCount is the number of reviews folded into Rating, which is not
//     necessarily len(Reviews) once history is pruned
//   - Coordinates are derived from Location.Text, recomputed whenever the
//     text changes, never set independently
//   - Certification status transitions happen only through the methods here
//   - Version is bumped by the store on save; mutations never touch it
type Profile struct {
	ID             id.ProfileID     `json:"id"`
	Name           string           `json:"name"`
	Email          string           `json:"email"`
	Avatar         string           `json:"avatar"`
	Summary        string           `json:"summary"`
	Location       Location         `json:"location"`
	Languages      []LanguageFluency `json:"languages"`
	Services       []ServiceType    `json:"services"`
	Rating         *float64         `json:"rating"`
	ReviewCount    int              `json:"review_count"`
	Reviews        []Review         `json:"reviews"`
	Certifications []*Certification `json:"certifications"`
	Active         bool             `json:"active"`
	Version        int64            `json:"version"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// NewProfile constructs a profile at signup. Coordinates must already be
// derived; a profile without coordinates is never created.
func NewProfile(name, email, avatar, summary, locationText string, coords Coordinates,
	languages []LanguageFluency, services []ServiceType, now time.Time) (*Profile, error) {

	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "name is required")
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, dErrors.New(dErrors.CodeValidation, "a valid email is required")
	}
	if strings.TrimSpace(locationText) == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "location is required")
	}
	if len(languages) == 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "at least one language is required")
	}
	if err := validateLanguages(languages); err != nil {
		return nil, err
	}
	if avatar == "" {
		avatar = DefaultAvatarURL
	}

	return &Profile{
		ID:        id.NewProfileID(),
		Name:      name,
		Email:     email,
		Avatar:    avatar,
		Summary:   summary,
		Location:  Location{Text: locationText, Coordinates: &coords},
		Languages: append([]LanguageFluency(nil), languages...),
		Services:  append([]ServiceType(nil), services...),
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func validateLanguages(languages []LanguageFluency) error {
	seen := make(map[string]struct{}, len(languages))
	for _, lf := range languages {
		lang := strings.ToLower(strings.TrimSpace(lf.Language))
		if lang == "" {
			return dErrors.New(dErrors.CodeValidation, "language name must not be empty")
		}
		if lf.Fluency < 1 || lf.Fluency > 5 {
			return dErrors.Newf(dErrors.CodeValidation,
				"fluency for %q must be between 1 and 5", lf.Language)
		}
		if _, dup := seen[lang]; dup {
			return dErrors.Newf(dErrors.CodeValidation,
				"language %q listed more than once", lf.Language)
		}
		seen[lang] = struct{}{}
	}
	return nil
}

// AddReview folds a new rating into the running mean and appends the review.
// The (Rating, ReviewCount) pair and the review list change together or not
// at all.
func (p *Profile) AddReview(r float64, reviewerName, comment string, now time.Time) error {
	review, err := NewReview(r, reviewerName, comment, now)
	if err != nil {
		return err
	}
	mean, count, err := rating.Apply(p.Rating, p.ReviewCount, r)
	if err != nil {
		return err
	}
	p.Rating = &mean
	p.ReviewCount = count
	p.Reviews = append(p.Reviews, review)
	p.UpdatedAt = now
	return nil
}

// SetLocation replaces the location text together with its freshly derived
// coordinates. Callers geocode first; a profile never holds a location text
// with stale coordinates.
func (p *Profile) SetLocation(text string, coords Coordinates, now time.Time) error {
	if strings.TrimSpace(text) == "" {
		return dErrors.New(dErrors.CodeValidation, "location is required")
	}
	p.Location = Location{Text: text, Coordinates: &coords}
	p.UpdatedAt = now
	return nil
}

// SetLanguages replaces the language list, enforcing uniqueness per language.
func (p *Profile) SetLanguages(languages []LanguageFluency, now time.Time) error {
	if len(languages) == 0 {
		return dErrors.New(dErrors.CodeValidation, "at least one language is required")
	}
	if err := validateLanguages(languages); err != nil {
		return err
	}
	p.Languages = append([]LanguageFluency(nil), languages...)
	p.UpdatedAt = now
	return nil
}

// SetServices replaces the offered services.
func (p *Profile) SetServices(services []ServiceType, now time.Time) {
	p.Services = append([]ServiceType(nil), services...)
	p.UpdatedAt = now
}

// SetSummary replaces the free-text summary.
func (p *Profile) SetSummary(summary string, now time.Time) {
	p.Summary = summary
	p.UpdatedAt = now
}

// SubmitCertification appends a pending certification record.
func (p *Profile) SubmitCertification(title, fileRef string, now time.Time) (*Certification, error) {
	cert, err := NewCertification(title, fileRef, now)
	if err != nil {
		return nil, err
	}
	p.Certifications = append(p.Certifications, cert)
	p.UpdatedAt = now
	return cert, nil
}

// CertificationByID finds a certification on this profile.
func (p *Profile) CertificationByID(certID id.CertificationID) (*Certification, error) {
	for _, c := range p.Certifications {
		if c.ID == certID {
			return c, nil
		}
	}
	return nil, dErrors.New(dErrors.CodeNotFound, "certification not found")
}

// ValidateCertification transitions one certification to validated.
func (p *Profile) ValidateCertification(certID id.CertificationID, now time.Time) error {
	cert, err := p.CertificationByID(certID)
	if err != nil {
		return err
	}
	if err := cert.Validate(now); err != nil {
		return err
	}
	p.UpdatedAt = now
	return nil
}

// RejectCertification transitions one certification to rejected.
func (p *Profile) RejectCertification(certID id.CertificationID, now time.Time) error {
	cert, err := p.CertificationByID(certID)
	if err != nil {
		return err
	}
	if err := cert.Reject(now); err != nil {
		return err
	}
	p.UpdatedAt = now
	return nil
}

// IsVerified is derived, never stored: true iff at least one certification is
// validated.
func (p *Profile) IsVerified() bool {
	for _, c := range p.Certifications {
		if c.Status == CertificationValidated {
			return true
		}
	}
	return false
}

// PublicCertifications projects validated certifications for anonymous
// callers. urlFor resolves a blob ref to a retrievable URL.
func (p *Profile) PublicCertifications(urlFor func(ref string) string) []PublicCertification {
	out := make([]PublicCertification, 0, len(p.Certifications))
	for _, c := range p.Certifications {
		if c.Status == CertificationValidated {
			out = append(out, PublicCertification{Title: c.Title, ImageURL: urlFor(c.FileRef)})
		}
	}
	return out
}

// PendingCertifications returns the records awaiting administrative review,
// in insertion order.
func (p *Profile) PendingCertifications() []*Certification {
	var out []*Certification
	for _, c := range p.Certifications {
		if c.Status == CertificationPending {
			out = append(out, c)
		}
	}
	return out
}

// CanDeactivate checks the flag transition.
func (p *Profile) CanDeactivate() error {
	if !p.Active {
		return dErrors.New(dErrors.CodeInvariantViolation, "profile is already inactive")
	}
	return nil
}

// Deactivate flips the profile inactive. Deactivation is a state change;
// profiles are never hard-deleted.
func (p *Profile) Deactivate(now time.Time) error {
	if err := p.CanDeactivate(); err != nil {
		return err
	}
	p.Active = false
	p.UpdatedAt = now
	return nil
}

// CanReactivate checks the flag transition.
func (p *Profile) CanReactivate() error {
	if p.Active {
		return dErrors.New(dErrors.CodeInvariantViolation, "profile is already active")
	}
	return nil
}

// Reactivate flips the profile back to active.
func (p *Profile) Reactivate(now time.Time) error {
	if err := p.CanReactivate(); err != nil {
		return err
	}
	p.Active = true
	p.UpdatedAt = now
	return nil
}

// Clone deep-copies the profile so stores can hand out records without
// sharing mutable state.
func (p *Profile) Clone() *Profile {
	cp := *p
	if p.Rating != nil {
		r := *p.Rating
		cp.Rating = &r
	}
	if p.Location.Coordinates != nil {
		c := *p.Location.Coordinates
		cp.Location.Coordinates = &c
	}
	cp.Languages = append([]LanguageFluency(nil), p.Languages...)
	cp.Services = append([]ServiceType(nil), p.Services...)
	cp.Reviews = append([]Review(nil), p.Reviews...)
	cp.Certifications = make([]*Certification, len(p.Certifications))
	for i, c := range p.Certifications {
		cc := *c
		if c.ReviewedAt != nil {
			t := *c.ReviewedAt
			cc.ReviewedAt = &t
		}
		cp.Certifications[i] = &cc
	}
	return &cp
}
