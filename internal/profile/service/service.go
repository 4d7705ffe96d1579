// Package service orchestrates profile mutations. Every write follows the
// same shape: resolve external facts first (geocode, blob writes), apply the
// mutation through the aggregate's methods, save under optimistic concurrency,
// then hand the profile id to the index synchronizer. The sync hand-off is
// fire-and-forget; a committed mutation never fails because the index is down.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"linguadir/internal/discovery"
	"linguadir/internal/geo"
	"linguadir/internal/platform/metrics"
	"linguadir/internal/profile/models"
	"linguadir/internal/profile/store"
	id "linguadir/pkg/domain"
	dErrors "linguadir/pkg/domain-errors"
	"linguadir/pkg/email"
	"linguadir/pkg/platform/sentinel"
	pstrings "linguadir/pkg/platform/strings"
	"linguadir/pkg/requestcontext"
)

var tracer = otel.Tracer("linguadir/internal/profile/service")

// saveAttempts bounds the read-modify-write retry loop on version conflicts.
const saveAttempts = 3

// BlobStore is the slice of blob storage the service needs.
type BlobStore interface {
	Put(ctx context.Context, data []byte, contentType string) (string, error)
	URL(ref string) string
}

// IndexSyncer receives profile ids whose index documents are stale.
type IndexSyncer interface {
	Enqueue(ctx context.Context, profileID id.ProfileID)
}

// Service implements the profile operations behind the HTTP handlers.
type Service struct {
	profiles store.ProfileStore
	geocoder geo.Geocoder
	blobs    BlobStore
	syncer   IndexSyncer
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// New constructs a Service.
func New(profiles store.ProfileStore, geocoder geo.Geocoder, blobs BlobStore,
	syncer IndexSyncer, opts ...Option) *Service {

	s := &Service{
		profiles: profiles,
		geocoder: geocoder,
		blobs:    blobs,
		syncer:   syncer,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateProfileRequest carries the signup payload.
type CreateProfileRequest struct {
	Name      string
	Email     string
	Avatar    string
	Summary   string
	Location  string
	Languages []models.LanguageFluency
	Services  []string
}

// CreateProfile registers a new interpreter. The location is geocoded before
// anything is persisted; an unresolvable location aborts the signup.
func (s *Service) CreateProfile(ctx context.Context, req CreateProfileRequest) (*models.Profile, error) {
	ctx, span := tracer.Start(ctx, "profile.create")
	defer span.End()

	services, err := parseServices(req.Services)
	if err != nil {
		return nil, err
	}

	coords, err := s.geocoder.Resolve(ctx, req.Location)
	if err != nil {
		return nil, err
	}

	profile, err := models.NewProfile(req.Name, req.Email, req.Avatar, req.Summary,
		req.Location, coords, req.Languages, services, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}

	if err := s.profiles.Create(ctx, profile); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			return nil, dErrors.New(dErrors.CodeConflict, "email is already registered")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create profile")
	}

	span.SetAttributes(attribute.String("profile.id", profile.ID.String()))
	s.logger.InfoContext(ctx, "profile created", "profile_id", profile.ID.String())
	if s.metrics != nil {
		s.metrics.ProfilesCreated.Inc()
	}
	s.syncer.Enqueue(ctx, profile.ID)
	return profile, nil
}

// Get loads one profile.
func (s *Service) Get(ctx context.Context, profileID id.ProfileID) (*models.Profile, error) {
	profile, err := s.profiles.FindByID(ctx, profileID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "profile not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load profile")
	}
	return profile, nil
}

// Details is the public read model for a single profile.
type Details struct {
	Profile        *models.Profile
	Certifications []models.PublicCertification
}

// Details returns a profile together with its publicly visible
// certifications. Pending and rejected certifications never appear here.
func (s *Service) Details(ctx context.Context, profileID id.ProfileID) (*Details, error) {
	profile, err := s.Get(ctx, profileID)
	if err != nil {
		return nil, err
	}
	return &Details{
		Profile:        profile,
		Certifications: profile.PublicCertifications(s.blobs.URL),
	}, nil
}

// UpdateProfile applies a partial update. Only the allow-listed fields may
// change this way; any other key fails the whole request before any field is
// applied.
func (s *Service) UpdateProfile(ctx context.Context, profileID id.ProfileID,
	fields map[string]json.RawMessage) (*models.Profile, error) {

	ctx, span := tracer.Start(ctx, "profile.update",
		trace.WithAttributes(attribute.String("profile.id", profileID.String())))
	defer span.End()

	upd, err := parseUpdate(fields)
	if err != nil {
		return nil, err
	}

	// Geocode once, outside the retry loop. The same text resolves to the
	// same point regardless of which attempt wins.
	var coords *models.Coordinates
	if upd.location != nil {
		c, err := s.geocoder.Resolve(ctx, *upd.location)
		if err != nil {
			return nil, err
		}
		coords = &c
	}

	profile, err := s.mutate(ctx, profileID, func(p *models.Profile) error {
		now := requestcontext.Now(ctx)
		if upd.location != nil {
			if err := p.SetLocation(*upd.location, *coords, now); err != nil {
				return err
			}
		}
		if upd.languages != nil {
			if err := p.SetLanguages(upd.languages, now); err != nil {
				return err
			}
		}
		if upd.services != nil {
			p.SetServices(upd.services, now)
		}
		if upd.summary != nil {
			p.SetSummary(*upd.summary, now)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.syncer.Enqueue(ctx, profileID)
	return profile, nil
}

// AddReview folds a rating into the profile's running mean. A missing
// reviewer name is derived from the reviewer's email.
func (s *Service) AddReview(ctx context.Context, profileID id.ProfileID,
	rating float64, reviewerName, reviewerEmail, comment string) (*models.Profile, error) {

	ctx, span := tracer.Start(ctx, "profile.add_review",
		trace.WithAttributes(attribute.String("profile.id", profileID.String())))
	defer span.End()

	if reviewerName == "" {
		reviewerName = email.DeriveDisplayName(reviewerEmail)
	}

	profile, err := s.mutate(ctx, profileID, func(p *models.Profile) error {
		return p.AddReview(rating, reviewerName, comment, requestcontext.Now(ctx))
	})
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.ReviewsAdded.Inc()
	}
	s.syncer.Enqueue(ctx, profileID)
	return profile, nil
}

// SubmitCertification stores the uploaded document and appends a pending
// certification. The blob write happens first so a stored record always has a
// resolvable file behind it.
func (s *Service) SubmitCertification(ctx context.Context, profileID id.ProfileID,
	title string, document []byte, contentType string) (*models.Certification, error) {

	ctx, span := tracer.Start(ctx, "profile.submit_certification",
		trace.WithAttributes(attribute.String("profile.id", profileID.String())))
	defer span.End()

	if len(document) == 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "certification document is required")
	}

	ref, err := s.blobs.Put(ctx, document, contentType)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store certification document")
	}

	var cert *models.Certification
	_, err = s.mutate(ctx, profileID, func(p *models.Profile) error {
		c, err := p.SubmitCertification(title, ref, requestcontext.Now(ctx))
		if err != nil {
			return err
		}
		cert = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.CertificationsSubmitted.Inc()
	}
	s.syncer.Enqueue(ctx, profileID)
	return cert, nil
}

// OwnerCertifications lists every certification on a profile, including
// pending and rejected ones. This is the owner's view, not the public one.
func (s *Service) OwnerCertifications(ctx context.Context, profileID id.ProfileID) ([]*models.Certification, error) {
	profile, err := s.Get(ctx, profileID)
	if err != nil {
		return nil, err
	}
	return profile.Certifications, nil
}

// ValidateCertification marks a pending certification validated.
func (s *Service) ValidateCertification(ctx context.Context, profileID id.ProfileID,
	certID id.CertificationID) error {

	ctx, span := tracer.Start(ctx, "profile.validate_certification",
		trace.WithAttributes(attribute.String("profile.id", profileID.String())))
	defer span.End()

	_, err := s.mutate(ctx, profileID, func(p *models.Profile) error {
		return p.ValidateCertification(certID, requestcontext.Now(ctx))
	})
	if err != nil {
		return err
	}

	if s.metrics != nil {
		s.metrics.CertificationsValidated.Inc()
	}
	s.syncer.Enqueue(ctx, profileID)
	return nil
}

// RejectCertification marks a pending certification rejected.
func (s *Service) RejectCertification(ctx context.Context, profileID id.ProfileID,
	certID id.CertificationID) error {

	ctx, span := tracer.Start(ctx, "profile.reject_certification",
		trace.WithAttributes(attribute.String("profile.id", profileID.String())))
	defer span.End()

	_, err := s.mutate(ctx, profileID, func(p *models.Profile) error {
		return p.RejectCertification(certID, requestcontext.Now(ctx))
	})
	if err != nil {
		return err
	}

	if s.metrics != nil {
		s.metrics.CertificationsRejected.Inc()
	}
	s.syncer.Enqueue(ctx, profileID)
	return nil
}

// PendingReview is one review-queue entry.
type PendingReview struct {
	ProfileID     id.ProfileID
	ProfileName   string
	Certification *models.Certification
	DocumentURL   string
}

// ReviewQueue lists every pending certification across all profiles, oldest
// profile activity first.
func (s *Service) ReviewQueue(ctx context.Context) ([]PendingReview, error) {
	profiles, err := s.profiles.ListWithPendingCertifications(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load review queue")
	}

	var queue []PendingReview
	for _, p := range profiles {
		for _, cert := range p.PendingCertifications() {
			queue = append(queue, PendingReview{
				ProfileID:     p.ID,
				ProfileName:   p.Name,
				Certification: cert,
				DocumentURL:   s.blobs.URL(cert.FileRef),
			})
		}
	}
	return queue, nil
}

// HomeSample returns up to limit random discoverable profiles. The store's
// sample is only a coarse pre-filter; the discovery predicate is re-applied
// here so storage never owns listing policy.
func (s *Service) HomeSample(ctx context.Context, limit int) ([]*models.Profile, error) {
	if limit < 1 {
		limit = 1
	}

	// Oversample to survive the fine filter dropping coarse matches.
	candidates, err := s.profiles.Sample(ctx, limit*3)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to sample profiles")
	}

	out := make([]*models.Profile, 0, limit)
	for _, p := range candidates {
		if discovery.IsEligible(p) {
			out = append(out, p)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

// Deactivate takes a profile out of public listing without deleting it.
func (s *Service) Deactivate(ctx context.Context, profileID id.ProfileID) error {
	_, err := s.mutate(ctx, profileID, func(p *models.Profile) error {
		return p.Deactivate(requestcontext.Now(ctx))
	})
	if err != nil {
		return err
	}
	s.syncer.Enqueue(ctx, profileID)
	return nil
}

// Reactivate restores a deactivated profile.
func (s *Service) Reactivate(ctx context.Context, profileID id.ProfileID) error {
	_, err := s.mutate(ctx, profileID, func(p *models.Profile) error {
		return p.Reactivate(requestcontext.Now(ctx))
	})
	if err != nil {
		return err
	}
	s.syncer.Enqueue(ctx, profileID)
	return nil
}

// mutate runs a read-modify-write cycle under optimistic concurrency,
// retrying a bounded number of times when another writer got there first.
func (s *Service) mutate(ctx context.Context, profileID id.ProfileID,
	fn func(*models.Profile) error) (*models.Profile, error) {

	for attempt := 1; ; attempt++ {
		profile, err := s.profiles.FindByID(ctx, profileID)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return nil, dErrors.New(dErrors.CodeNotFound, "profile not found")
			}
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load profile")
		}

		if err := fn(profile); err != nil {
			return nil, err
		}

		err = s.profiles.Save(ctx, profile)
		if err == nil {
			return profile, nil
		}
		if !errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save profile")
		}

		if s.metrics != nil {
			s.metrics.SaveConflicts.Inc()
		}
		if attempt >= saveAttempts {
			s.logger.WarnContext(ctx, "profile save contention exhausted retries",
				"profile_id", profileID.String(), "attempts", attempt)
			return nil, dErrors.New(dErrors.CodeConflict,
				"profile was modified concurrently, retry the request")
		}
	}
}

func parseServices(raw []string) ([]models.ServiceType, error) {
	out := make([]models.ServiceType, 0, len(raw))
	for _, s := range pstrings.DedupeAndTrimLower(raw) {
		svc, err := models.ParseServiceType(s)
		if err != nil {
			return nil, err
		}
		out = append(out, svc)
	}
	return out, nil
}

// update is the decoded allow-listed partial update. nil means "not present".
type update struct {
	location  *string
	languages []models.LanguageFluency
	services  []models.ServiceType
	summary   *string
}

func parseUpdate(fields map[string]json.RawMessage) (*update, error) {
	if len(fields) == 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "no fields to update")
	}

	upd := &update{}
	for key, raw := range fields {
		switch key {
		case "location":
			var v string
			if err := json.Unmarshal(raw, &v); err != nil {
				return nil, dErrors.New(dErrors.CodeValidation, "location must be a string")
			}
			upd.location = &v
		case "languages":
			var v []models.LanguageFluency
			if err := json.Unmarshal(raw, &v); err != nil {
				return nil, dErrors.New(dErrors.CodeValidation, "languages must be a list of language entries")
			}
			upd.languages = v
		case "services":
			var v []string
			if err := json.Unmarshal(raw, &v); err != nil {
				return nil, dErrors.New(dErrors.CodeValidation, "services must be a list of strings")
			}
			services, err := parseServices(v)
			if err != nil {
				return nil, err
			}
			upd.services = services
		case "summary":
			var v string
			if err := json.Unmarshal(raw, &v); err != nil {
				return nil, dErrors.New(dErrors.CodeValidation, "summary must be a string")
			}
			upd.summary = &v
		default:
			return nil, dErrors.Newf(dErrors.CodeForbidden, "field %q cannot be updated", key)
		}
	}
	return upd, nil
}
