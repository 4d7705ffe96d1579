package handler

import (
	"linguadir/internal/profile/models"
)

// createProfileRequest is the signup payload.
type createProfileRequest struct {
	Name      string                   `json:"name"`
	Email     string                   `json:"email"`
	Avatar    string                   `json:"avatar,omitempty"`
	Summary   string                   `json:"summary,omitempty"`
	Location  string                   `json:"location"`
	Languages []models.LanguageFluency `json:"languages"`
	Services  []string                 `json:"services,omitempty"`
}

// addReviewRequest rates a profile. Rating is a pointer so a missing field is
// distinguishable from an explicit zero.
type addReviewRequest struct {
	Rating        *float64 `json:"rating"`
	ReviewerName  string   `json:"reviewer_name,omitempty"`
	ReviewerEmail string   `json:"reviewer_email,omitempty"`
	Comment       string   `json:"comment,omitempty"`
}
