package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	dErrors "linguadir/pkg/domain-errors"
)

type ProfileSuite struct {
	suite.Suite
	now time.Time
}

func (s *ProfileSuite) SetupTest() {
	s.now = time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)
}

func TestProfileSuite(t *testing.T) {
	suite.Run(t, new(ProfileSuite))
}

func (s *ProfileSuite) newProfile() *Profile {
	p, err := NewProfile(
		"Maria Flores", "maria@example.com", "", "Certified court interpreter.",
		"Davis, CA", Coordinates{Latitude: 38.54, Longitude: -121.74},
		[]LanguageFluency{{Language: "Mixteco", Fluency: 5}, {Language: "Spanish", Fluency: 4}},
		[]ServiceType{ServiceSimultaneous, ServiceTranslating},
		s.now,
	)
	s.Require().NoError(err)
	return p
}

func (s *ProfileSuite) TestNewProfileDefaults() {
	p := s.newProfile()

	s.True(p.Active)
	s.Nil(p.Rating)
	s.Zero(p.ReviewCount)
	s.Equal(DefaultAvatarURL, p.Avatar)
	s.Require().NotNil(p.Location.Coordinates)
	s.Equal(38.54, p.Location.Coordinates.Latitude)
}

func (s *ProfileSuite) TestNewProfileRejectsDuplicateLanguages() {
	_, err := NewProfile(
		"Maria Flores", "maria@example.com", "", "",
		"Davis, CA", Coordinates{},
		[]LanguageFluency{{Language: "Spanish", Fluency: 4}, {Language: "spanish", Fluency: 2}},
		nil, s.now,
	)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
}

func (s *ProfileSuite) TestNewProfileRejectsFluencyOutOfRange() {
	for _, fluency := range []int{0, 6} {
		_, err := NewProfile(
			"Maria Flores", "maria@example.com", "", "",
			"Davis, CA", Coordinates{},
			[]LanguageFluency{{Language: "Spanish", Fluency: fluency}},
			nil, s.now,
		)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	}
}

func (s *ProfileSuite) TestAddReviewMaintainsRunningMean() {
	p := s.newProfile()

	s.Require().NoError(p.AddReview(4, "Ana", "great", s.now))
	s.Require().NotNil(p.Rating)
	s.Equal(4.0, *p.Rating)
	s.Equal(1, p.ReviewCount)

	s.Require().NoError(p.AddReview(2, "Joe", "", s.now))
	s.Equal(3.0, *p.Rating)
	s.Equal(2, p.ReviewCount)

	s.Require().NoError(p.AddReview(5, "Kim", "excellent", s.now))
	s.InDelta(11.0/3.0, *p.Rating, 1e-9)
	s.Equal(3, p.ReviewCount)
	s.Len(p.Reviews, 3)
}

func (s *ProfileSuite) TestAddReviewRejectsOutOfRangeAndLeavesStateUntouched() {
	p := s.newProfile()
	s.Require().NoError(p.AddReview(4, "Ana", "", s.now))

	err := p.AddReview(5.5, "Joe", "", s.now)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))

	s.Equal(4.0, *p.Rating)
	s.Equal(1, p.ReviewCount)
	s.Len(p.Reviews, 1)
}

func (s *ProfileSuite) TestIsVerifiedDerivedFromCertifications() {
	p := s.newProfile()
	s.False(p.IsVerified())

	cert, err := p.SubmitCertification("Medical Interpreter", "blob-1", s.now)
	s.Require().NoError(err)
	s.False(p.IsVerified(), "pending certification does not verify")

	s.Require().NoError(p.RejectCertification(cert.ID, s.now))
	s.False(p.IsVerified(), "rejected certification does not verify")

	cert2, err := p.SubmitCertification("Court Interpreter", "blob-2", s.now)
	s.Require().NoError(err)
	s.Require().NoError(p.ValidateCertification(cert2.ID, s.now))
	s.True(p.IsVerified())
}

func (s *ProfileSuite) TestPublicCertificationsProjection() {
	p := s.newProfile()

	pending, err := p.SubmitCertification("Pending Cert", "blob-1", s.now)
	s.Require().NoError(err)
	_ = pending

	validated, err := p.SubmitCertification("Validated Cert", "blob-2", s.now)
	s.Require().NoError(err)
	s.Require().NoError(p.ValidateCertification(validated.ID, s.now))

	rejected, err := p.SubmitCertification("Rejected Cert", "blob-3", s.now)
	s.Require().NoError(err)
	s.Require().NoError(p.RejectCertification(rejected.ID, s.now))

	public := p.PublicCertifications(func(ref string) string { return "https://blobs/" + ref })
	s.Require().Len(public, 1)
	s.Equal("Validated Cert", public[0].Title)
	s.Equal("https://blobs/blob-2", public[0].ImageURL)
}

func (s *ProfileSuite) TestPendingCertificationsOrder() {
	p := s.newProfile()
	first, _ := p.SubmitCertification("First", "blob-1", s.now)
	second, _ := p.SubmitCertification("Second", "blob-2", s.now)

	pending := p.PendingCertifications()
	s.Require().Len(pending, 2)
	s.Equal(first.ID, pending[0].ID)
	s.Equal(second.ID, pending[1].ID)
}

func (s *ProfileSuite) TestDeactivationIsAFlagChange() {
	p := s.newProfile()

	s.Require().NoError(p.Deactivate(s.now))
	s.False(p.Active)
	s.True(dErrors.HasCode(p.Deactivate(s.now), dErrors.CodeInvariantViolation))

	s.Require().NoError(p.Reactivate(s.now))
	s.True(p.Active)
}

func (s *ProfileSuite) TestCloneIsDeep() {
	p := s.newProfile()
	s.Require().NoError(p.AddReview(4, "Ana", "", s.now))
	cert, err := p.SubmitCertification("Cert", "blob-1", s.now)
	s.Require().NoError(err)

	cp := p.Clone()
	s.Require().NoError(cp.ValidateCertification(cert.ID, s.now))
	*cp.Rating = 1.0
	cp.Languages[0].Fluency = 1

	s.Equal(CertificationPending, p.Certifications[0].Status)
	s.Equal(4.0, *p.Rating)
	s.Equal(5, p.Languages[0].Fluency)
}

func TestParseServiceType(t *testing.T) {
	st, err := ParseServiceType(" Simultaneous ")
	require.NoError(t, err)
	assert.Equal(t, ServiceSimultaneous, st)

	_, err = ParseServiceType("telepathy")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
}
