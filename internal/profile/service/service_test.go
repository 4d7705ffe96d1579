package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"linguadir/internal/blob"
	"linguadir/internal/geo"
	"linguadir/internal/profile/models"
	"linguadir/internal/profile/store"
	id "linguadir/pkg/domain"
	dErrors "linguadir/pkg/domain-errors"
	"linguadir/pkg/platform/sentinel"
)

// enqueueRecorder captures sync hand-offs.
type enqueueRecorder struct {
	mu  sync.Mutex
	ids []id.ProfileID
}

func (r *enqueueRecorder) Enqueue(_ context.Context, profileID id.ProfileID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ids = append(r.ids, profileID)
}

func (r *enqueueRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.ids)
}

// conflictingStore fails the first n saves with a version conflict.
type conflictingStore struct {
	*store.InMemory
	remaining int
}

func (s *conflictingStore) Save(ctx context.Context, p *models.Profile) error {
	if s.remaining > 0 {
		s.remaining--
		return sentinel.ErrConflict
	}
	return s.InMemory.Save(ctx, p)
}

type ServiceSuite struct {
	suite.Suite
	store    *store.InMemory
	blobs    *blob.Memory
	syncs    *enqueueRecorder
	service  *Service
	ctx      context.Context
	geocoded []string
}

func (s *ServiceSuite) SetupTest() {
	s.store = store.NewInMemory()
	s.blobs = blob.NewMemory("https://assets.example.com")
	s.syncs = &enqueueRecorder{}
	s.ctx = context.Background()
	s.geocoded = nil

	geocoder := geo.ResolverFunc(func(_ context.Context, location string) (models.Coordinates, error) {
		s.geocoded = append(s.geocoded, location)
		return models.Coordinates{Latitude: 48.85, Longitude: 2.35}, nil
	})
	s.service = New(s.store, geocoder, s.blobs, s.syncs)
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) createProfile(email string) *models.Profile {
	p, err := s.service.CreateProfile(s.ctx, CreateProfileRequest{
		Name:      "Elena Petrova",
		Email:     email,
		Summary:   "Conference interpreter.",
		Location:  "Paris, France",
		Languages: []models.LanguageFluency{{Language: "Russian", Fluency: 5}, {Language: "French", Fluency: 4}},
		Services:  []string{"simultaneous"},
	})
	s.Require().NoError(err)
	return p
}

func (s *ServiceSuite) TestCreateProfile() {
	s.Run("geocodes location and enqueues sync", func() {
		p := s.createProfile("elena@example.com")

		s.Equal([]string{"Paris, France"}, s.geocoded)
		s.Require().NotNil(p.Location.Coordinates)
		s.InDelta(48.85, p.Location.Coordinates.Latitude, 0.001)
		s.Equal(models.DefaultAvatarURL, p.Avatar)
		s.Equal(1, s.syncs.count())
	})

	s.Run("rejects duplicate email", func() {
		s.createProfile("dup@example.com")
		_, err := s.service.CreateProfile(s.ctx, CreateProfileRequest{
			Name:      "Other Person",
			Email:     "dup@example.com",
			Location:  "Lyon, France",
			Languages: []models.LanguageFluency{{Language: "French", Fluency: 5}},
		})
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	})

	s.Run("rejects unknown service type", func() {
		_, err := s.service.CreateProfile(s.ctx, CreateProfileRequest{
			Name:      "Sam",
			Email:     "sam@example.com",
			Location:  "Nice, France",
			Languages: []models.LanguageFluency{{Language: "French", Fluency: 5}},
			Services:  []string{"whispering"},
		})
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("aborts when geocoding fails, nothing persisted", func() {
		failing := geo.ResolverFunc(func(context.Context, string) (models.Coordinates, error) {
			return models.Coordinates{}, dErrors.New(dErrors.CodeValidation, "location could not be resolved")
		})
		svc := New(s.store, failing, s.blobs, s.syncs)

		before := s.syncs.count()
		_, err := svc.CreateProfile(s.ctx, CreateProfileRequest{
			Name:      "Ghost",
			Email:     "ghost@example.com",
			Location:  "Nowhere",
			Languages: []models.LanguageFluency{{Language: "French", Fluency: 5}},
		})
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
		_, err = s.store.FindByEmail(s.ctx, "ghost@example.com")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
		s.Equal(before, s.syncs.count())
	})
}

func (s *ServiceSuite) TestUpdateProfile() {
	s.Run("applies allow-listed fields", func() {
		p := s.createProfile("upd@example.com")

		updated, err := s.service.UpdateProfile(s.ctx, p.ID, map[string]json.RawMessage{
			"summary":  json.RawMessage(`"Now also legal interpreting."`),
			"services": json.RawMessage(`["consecutive", "translating", "consecutive"]`),
		})
		s.Require().NoError(err)
		s.Equal("Now also legal interpreting.", updated.Summary)
		s.Equal([]models.ServiceType{models.ServiceConsecutive, models.ServiceTranslating},
			updated.Services, "duplicates collapse")
	})

	s.Run("re-geocodes on location change", func() {
		p := s.createProfile("move@example.com")
		s.geocoded = nil

		updated, err := s.service.UpdateProfile(s.ctx, p.ID, map[string]json.RawMessage{
			"location": json.RawMessage(`"Berlin, Germany"`),
		})
		s.Require().NoError(err)
		s.Equal([]string{"Berlin, Germany"}, s.geocoded)
		s.Equal("Berlin, Germany", updated.Location.Text)
		s.Require().NotNil(updated.Location.Coordinates)
	})

	s.Run("rejects forbidden field without applying anything", func() {
		p := s.createProfile("frozen@example.com")

		_, err := s.service.UpdateProfile(s.ctx, p.ID, map[string]json.RawMessage{
			"summary": json.RawMessage(`"sneaky"`),
			"rating":  json.RawMessage(`5`),
		})
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))

		found, err := s.store.FindByID(s.ctx, p.ID)
		s.Require().NoError(err)
		s.Equal("Conference interpreter.", found.Summary)
	})

	s.Run("rejects empty update", func() {
		p := s.createProfile("empty@example.com")
		_, err := s.service.UpdateProfile(s.ctx, p.ID, nil)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("unknown profile", func() {
		_, err := s.service.UpdateProfile(s.ctx, id.NewProfileID(), map[string]json.RawMessage{
			"summary": json.RawMessage(`"x"`),
		})
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *ServiceSuite) TestAddReview() {
	s.Run("folds ratings into the running mean", func() {
		p := s.createProfile("rated@example.com")

		_, err := s.service.AddReview(s.ctx, p.ID, 4, "Jo", "jo@example.com", "solid")
		s.Require().NoError(err)
		updated, err := s.service.AddReview(s.ctx, p.ID, 2, "Kim", "kim@example.com", "")
		s.Require().NoError(err)

		s.Require().NotNil(updated.Rating)
		s.InDelta(3.0, *updated.Rating, 1e-9)
		s.Equal(2, updated.ReviewCount)
		s.Len(updated.Reviews, 2)
	})

	s.Run("derives reviewer name from email when missing", func() {
		p := s.createProfile("derive@example.com")

		updated, err := s.service.AddReview(s.ctx, p.ID, 5, "", "ana.souza@example.com", "")
		s.Require().NoError(err)
		s.Equal("Ana Souza", updated.Reviews[0].ReviewerName)
	})

	s.Run("rejects out-of-range rating without mutating", func() {
		p := s.createProfile("range@example.com")

		_, err := s.service.AddReview(s.ctx, p.ID, 5.5, "Jo", "jo@example.com", "")
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))

		found, err := s.store.FindByID(s.ctx, p.ID)
		s.Require().NoError(err)
		s.Nil(found.Rating)
		s.Zero(found.ReviewCount)
	})
}

func (s *ServiceSuite) TestCertificationLifecycle() {
	p := s.createProfile("cert@example.com")

	cert, err := s.service.SubmitCertification(s.ctx, p.ID, "DPSI Law", []byte("pdf bytes"), "application/pdf")
	s.Require().NoError(err)
	s.Equal(models.CertificationPending, cert.Status)

	// The document is retrievable through the stored ref.
	data, contentType, err := s.blobs.Get(s.ctx, cert.FileRef)
	s.Require().NoError(err)
	s.Equal([]byte("pdf bytes"), data)
	s.Equal("application/pdf", contentType)

	s.Run("owner sees pending certification, public does not", func() {
		owned, err := s.service.OwnerCertifications(s.ctx, p.ID)
		s.Require().NoError(err)
		s.Require().Len(owned, 1)

		details, err := s.service.Details(s.ctx, p.ID)
		s.Require().NoError(err)
		s.Empty(details.Certifications)
	})

	s.Run("validation makes it public", func() {
		s.Require().NoError(s.service.ValidateCertification(s.ctx, p.ID, cert.ID))

		details, err := s.service.Details(s.ctx, p.ID)
		s.Require().NoError(err)
		s.Require().Len(details.Certifications, 1)
		s.Equal("DPSI Law", details.Certifications[0].Title)
		s.Equal("https://assets.example.com/blobs/"+cert.FileRef, details.Certifications[0].ImageURL)
	})

	s.Run("terminal states stay terminal", func() {
		err := s.service.RejectCertification(s.ctx, p.ID, cert.ID)
		s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
		err = s.service.ValidateCertification(s.ctx, p.ID, cert.ID)
		s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})

	s.Run("unknown certification", func() {
		err := s.service.ValidateCertification(s.ctx, p.ID, id.NewCertificationID())
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *ServiceSuite) TestReviewQueue() {
	first := s.createProfile("queue1@example.com")
	second := s.createProfile("queue2@example.com")

	certA, err := s.service.SubmitCertification(s.ctx, first.ID, "NAATI", []byte("a"), "image/png")
	s.Require().NoError(err)
	_, err = s.service.SubmitCertification(s.ctx, second.ID, "DPSI", []byte("b"), "image/png")
	s.Require().NoError(err)
	s.Require().NoError(s.service.ValidateCertification(s.ctx, first.ID, certA.ID))

	queue, err := s.service.ReviewQueue(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(queue, 1)
	s.Equal(second.ID, queue[0].ProfileID)
	s.Equal("DPSI", queue[0].Certification.Title)
	s.NotEmpty(queue[0].DocumentURL)
}

func (s *ServiceSuite) TestHomeSample() {
	eligible := s.createProfile("star@example.com")
	_, err := s.service.AddReview(s.ctx, eligible.ID, 5, "Jo", "jo@example.com", "")
	s.Require().NoError(err)
	cert, err := s.service.SubmitCertification(s.ctx, eligible.ID, "EU accreditation", []byte("x"), "image/png")
	s.Require().NoError(err)
	s.Require().NoError(s.service.ValidateCertification(s.ctx, eligible.ID, cert.ID))

	// Rated well but never certified: passes the coarse sample, fails the
	// discovery predicate.
	uncertified := s.createProfile("uncertified@example.com")
	_, err = s.service.AddReview(s.ctx, uncertified.ID, 5, "Jo", "jo@example.com", "")
	s.Require().NoError(err)

	sample, err := s.service.HomeSample(s.ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(sample, 1)
	s.Equal(eligible.ID, sample[0].ID)
}

func (s *ServiceSuite) TestActivationLifecycle() {
	p := s.createProfile("flag@example.com")

	s.Require().NoError(s.service.Deactivate(s.ctx, p.ID))
	found, err := s.store.FindByID(s.ctx, p.ID)
	s.Require().NoError(err)
	s.False(found.Active)

	err = s.service.Deactivate(s.ctx, p.ID)
	s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))

	s.Require().NoError(s.service.Reactivate(s.ctx, p.ID))
	found, err = s.store.FindByID(s.ctx, p.ID)
	s.Require().NoError(err)
	s.True(found.Active)
}

func (s *ServiceSuite) TestConflictRetry() {
	s.Run("retries past transient conflicts", func() {
		p := s.createProfile("retry@example.com")
		flaky := &conflictingStore{InMemory: s.store, remaining: 2}
		svc := New(flaky, s.service.geocoder, s.blobs, s.syncs)

		updated, err := svc.AddReview(s.ctx, p.ID, 4, "Jo", "jo@example.com", "")
		s.Require().NoError(err)
		s.Equal(1, updated.ReviewCount)
	})

	s.Run("gives up after bounded attempts", func() {
		p := s.createProfile("hotspot@example.com")
		flaky := &conflictingStore{InMemory: s.store, remaining: saveAttempts}
		svc := New(flaky, s.service.geocoder, s.blobs, s.syncs)

		_, err := svc.AddReview(s.ctx, p.ID, 4, "Jo", "jo@example.com", "")
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	})
}
