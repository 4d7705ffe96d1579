package handler

import (
	"time"

	"linguadir/internal/profile/models"
	"linguadir/internal/profile/service"
)

type coordinatesResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type locationResponse struct {
	Text        string               `json:"text"`
	Coordinates *coordinatesResponse `json:"coordinates,omitempty"`
}

// profileResponse is the shared projection of a profile.
type profileResponse struct {
	ID          string                   `json:"id"`
	Name        string                   `json:"name"`
	Avatar      string                   `json:"avatar"`
	Summary     string                   `json:"summary,omitempty"`
	Location    locationResponse         `json:"location"`
	Languages   []models.LanguageFluency `json:"languages"`
	Services    []string                 `json:"services"`
	Rating      *float64                 `json:"rating"`
	ReviewCount int                      `json:"review_count"`
	Verified    bool                     `json:"verified"`
	Active      bool                     `json:"active"`
	CreatedAt   time.Time                `json:"created_at"`
}

func toProfileResponse(p *models.Profile) profileResponse {
	resp := profileResponse{
		ID:          p.ID.String(),
		Name:        p.Name,
		Avatar:      p.Avatar,
		Summary:     p.Summary,
		Location:    locationResponse{Text: p.Location.Text},
		Languages:   p.Languages,
		Services:    make([]string, 0, len(p.Services)),
		Rating:      p.Rating,
		ReviewCount: p.ReviewCount,
		Verified:    p.IsVerified(),
		Active:      p.Active,
		CreatedAt:   p.CreatedAt,
	}
	if c := p.Location.Coordinates; c != nil {
		resp.Location.Coordinates = &coordinatesResponse{
			Latitude:  c.Latitude,
			Longitude: c.Longitude,
		}
	}
	for _, svc := range p.Services {
		resp.Services = append(resp.Services, string(svc))
	}
	return resp
}

type reviewResponse struct {
	Rating       float64   `json:"rating"`
	ReviewerName string    `json:"reviewer_name"`
	Comment      string    `json:"comment,omitempty"`
	SubmittedAt  time.Time `json:"submitted_at"`
}

// detailsResponse is the public single-profile view: the profile, its review
// history, and only the validated certifications.
type detailsResponse struct {
	profileResponse
	Reviews        []reviewResponse             `json:"reviews"`
	Certifications []models.PublicCertification `json:"certifications"`
}

func toDetailsResponse(d *service.Details) detailsResponse {
	resp := detailsResponse{
		profileResponse: toProfileResponse(d.Profile),
		Reviews:         make([]reviewResponse, 0, len(d.Profile.Reviews)),
		Certifications:  d.Certifications,
	}
	for _, r := range d.Profile.Reviews {
		resp.Reviews = append(resp.Reviews, reviewResponse{
			Rating:       r.Rating,
			ReviewerName: r.ReviewerName,
			Comment:      r.Comment,
			SubmittedAt:  r.SubmittedAt,
		})
	}
	if resp.Certifications == nil {
		resp.Certifications = []models.PublicCertification{}
	}
	return resp
}

// certificationResponse is the owner's view of one certification.
type certificationResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Status      string     `json:"status"`
	SubmittedAt time.Time  `json:"submitted_at"`
	ReviewedAt  *time.Time `json:"reviewed_at,omitempty"`
}

func toCertificationResponse(c *models.Certification) certificationResponse {
	return certificationResponse{
		ID:          c.ID.String(),
		Title:       c.Title,
		Status:      string(c.Status),
		SubmittedAt: c.SubmittedAt,
		ReviewedAt:  c.ReviewedAt,
	}
}

// reviewQueueEntry is one pending certification awaiting a decision.
type reviewQueueEntry struct {
	ProfileID   string    `json:"profile_id"`
	ProfileName string    `json:"profile_name"`
	CertID      string    `json:"certification_id"`
	Title       string    `json:"title"`
	DocumentURL string    `json:"document_url"`
	SubmittedAt time.Time `json:"submitted_at"`
}

type quoteResponse struct {
	Text   string `json:"text"`
	Author string `json:"author"`
}

// homeResponse is the landing page payload: a featured quote plus a random
// sample of discoverable interpreters.
type homeResponse struct {
	Quote        quoteResponse     `json:"quote"`
	Interpreters []profileResponse `json:"interpreters"`
}
