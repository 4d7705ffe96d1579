// Package handler exposes the profile API over HTTP.
package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"math/rand"
	"net/http"

	"github.com/go-chi/chi/v5"

	"linguadir/internal/admin"
	"linguadir/internal/platform/middleware"
	"linguadir/internal/profile/models"
	"linguadir/internal/profile/service"
	id "linguadir/pkg/domain"
	dErrors "linguadir/pkg/domain-errors"
	"linguadir/pkg/platform/httputil"
)

// homeSampleSize is how many interpreters the landing page shows.
const homeSampleSize = 10

// maxCertificationUpload bounds certification document uploads.
const maxCertificationUpload = 10 << 20

// Service defines the profile operations the handler needs.
type Service interface {
	CreateProfile(ctx context.Context, req service.CreateProfileRequest) (*models.Profile, error)
	Details(ctx context.Context, profileID id.ProfileID) (*service.Details, error)
	UpdateProfile(ctx context.Context, profileID id.ProfileID, fields map[string]json.RawMessage) (*models.Profile, error)
	AddReview(ctx context.Context, profileID id.ProfileID, rating float64, reviewerName, reviewerEmail, comment string) (*models.Profile, error)
	SubmitCertification(ctx context.Context, profileID id.ProfileID, title string, document []byte, contentType string) (*models.Certification, error)
	OwnerCertifications(ctx context.Context, profileID id.ProfileID) ([]*models.Certification, error)
	ValidateCertification(ctx context.Context, profileID id.ProfileID, certID id.CertificationID) error
	RejectCertification(ctx context.Context, profileID id.ProfileID, certID id.CertificationID) error
	ReviewQueue(ctx context.Context) ([]service.PendingReview, error)
	HomeSample(ctx context.Context, limit int) ([]*models.Profile, error)
	Deactivate(ctx context.Context, profileID id.ProfileID) error
	Reactivate(ctx context.Context, profileID id.ProfileID) error
}

// Handler serves the interpreter profile endpoints.
type Handler struct {
	service Service
	codes   *admin.Codes
	logger  *slog.Logger
}

// New creates a profile Handler.
func New(svc Service, codes *admin.Codes, logger *slog.Logger) *Handler {
	return &Handler{service: svc, codes: codes, logger: logger}
}

// Register mounts the profile routes on the given router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/home", h.handleHome)

	r.Route("/interpreters", func(r chi.Router) {
		r.Post("/", h.handleCreate)
		r.Route("/{profileID}", func(r chi.Router) {
			r.Get("/details", h.handleDetails)
			r.Patch("/", h.handleUpdate)
			r.Post("/reviews", h.handleAddReview)
			r.Post("/certificates", h.handleSubmitCertification)
			r.Get("/certificates", h.handleOwnerCertifications)
			r.Post("/deactivate", h.handleDeactivate)
			r.Post("/reactivate", h.handleReactivate)
		})
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.RequireAdminCode(h.codes, h.logger))
		r.Get("/certificates/pending", h.handleReviewQueue)
		r.Post("/interpreters/{profileID}/certificates/{certID}/validate", h.handleValidateCertification)
		r.Post("/interpreters/{profileID}/certificates/{certID}/reject", h.handleRejectCertification)
	})
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req createProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	profile, err := h.service.CreateProfile(ctx, service.CreateProfileRequest{
		Name:      req.Name,
		Email:     req.Email,
		Avatar:    req.Avatar,
		Summary:   req.Summary,
		Location:  req.Location,
		Languages: req.Languages,
		Services:  req.Services,
	})
	if err != nil {
		h.writeError(ctx, w, err, "failed to create profile")
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, toProfileResponse(profile))
}

func (h *Handler) handleDetails(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	profileID, err := id.ParseProfileID(chi.URLParam(r, "profileID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	details, err := h.service.Details(ctx, profileID)
	if err != nil {
		h.writeError(ctx, w, err, "failed to load profile details")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toDetailsResponse(details))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	profileID, err := id.ParseProfileID(chi.URLParam(r, "profileID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	var fields map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	profile, err := h.service.UpdateProfile(ctx, profileID, fields)
	if err != nil {
		h.writeError(ctx, w, err, "failed to update profile")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toProfileResponse(profile))
}

func (h *Handler) handleAddReview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	profileID, err := id.ParseProfileID(chi.URLParam(r, "profileID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	var req addReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if req.Rating == nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "rating is required"))
		return
	}

	profile, err := h.service.AddReview(ctx, profileID, *req.Rating,
		req.ReviewerName, req.ReviewerEmail, req.Comment)
	if err != nil {
		h.writeError(ctx, w, err, "failed to add review")
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, toProfileResponse(profile))
}

// handleSubmitCertification accepts a multipart upload with a "title" field
// and a "document" file.
func (h *Handler) handleSubmitCertification(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	profileID, err := id.ParseProfileID(chi.URLParam(r, "profileID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := r.ParseMultipartForm(maxCertificationUpload); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "expected multipart form upload"))
		return
	}

	file, header, err := r.FormFile("document")
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "document file is required"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxCertificationUpload))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "failed to read document"))
		return
	}

	cert, err := h.service.SubmitCertification(ctx, profileID,
		r.FormValue("title"), data, header.Header.Get("Content-Type"))
	if err != nil {
		h.writeError(ctx, w, err, "failed to submit certification")
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, toCertificationResponse(cert))
}

func (h *Handler) handleOwnerCertifications(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	profileID, err := id.ParseProfileID(chi.URLParam(r, "profileID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	certs, err := h.service.OwnerCertifications(ctx, profileID)
	if err != nil {
		h.writeError(ctx, w, err, "failed to list certifications")
		return
	}

	out := make([]certificationResponse, 0, len(certs))
	for _, c := range certs {
		out = append(out, toCertificationResponse(c))
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"certifications": out})
}

func (h *Handler) handleDeactivate(w http.ResponseWriter, r *http.Request) {
	h.handleActiveFlag(w, r, h.service.Deactivate)
}

func (h *Handler) handleReactivate(w http.ResponseWriter, r *http.Request) {
	h.handleActiveFlag(w, r, h.service.Reactivate)
}

func (h *Handler) handleActiveFlag(w http.ResponseWriter, r *http.Request,
	op func(context.Context, id.ProfileID) error) {

	ctx := r.Context()

	profileID, err := id.ParseProfileID(chi.URLParam(r, "profileID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := op(ctx, profileID); err != nil {
		h.writeError(ctx, w, err, "failed to change profile state")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleHome(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	profiles, err := h.service.HomeSample(ctx, homeSampleSize)
	if err != nil {
		h.writeError(ctx, w, err, "failed to load home sample")
		return
	}

	resp := homeResponse{
		Quote:        featuredQuotes[rand.Intn(len(featuredQuotes))],
		Interpreters: make([]profileResponse, 0, len(profiles)),
	}
	for _, p := range profiles {
		resp.Interpreters = append(resp.Interpreters, toProfileResponse(p))
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleReviewQueue(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	queue, err := h.service.ReviewQueue(ctx)
	if err != nil {
		h.writeError(ctx, w, err, "failed to load review queue")
		return
	}

	entries := make([]reviewQueueEntry, 0, len(queue))
	for _, item := range queue {
		entries = append(entries, reviewQueueEntry{
			ProfileID:   item.ProfileID.String(),
			ProfileName: item.ProfileName,
			CertID:      item.Certification.ID.String(),
			Title:       item.Certification.Title,
			DocumentURL: item.DocumentURL,
			SubmittedAt: item.Certification.SubmittedAt,
		})
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"pending": entries})
}

func (h *Handler) handleValidateCertification(w http.ResponseWriter, r *http.Request) {
	h.handleReviewDecision(w, r, h.service.ValidateCertification)
}

func (h *Handler) handleRejectCertification(w http.ResponseWriter, r *http.Request) {
	h.handleReviewDecision(w, r, h.service.RejectCertification)
}

func (h *Handler) handleReviewDecision(w http.ResponseWriter, r *http.Request,
	op func(context.Context, id.ProfileID, id.CertificationID) error) {

	ctx := r.Context()

	profileID, err := id.ParseProfileID(chi.URLParam(r, "profileID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	certID, err := id.ParseCertificationID(chi.URLParam(r, "certID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := op(ctx, profileID, certID); err != nil {
		h.writeError(ctx, w, err, "failed to review certification")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writeError logs unexpected failures and maps domain errors onto HTTP
// statuses. Internal details never leak to the response body.
func (h *Handler) writeError(ctx context.Context, w http.ResponseWriter, err error, msg string) {
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		h.logger.ErrorContext(ctx, msg,
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
	}
	httputil.WriteError(w, err)
}

// featuredQuotes rotate on the landing page.
var featuredQuotes = []quoteResponse{
	{Text: "Translation is that which transforms everything so that nothing changes.", Author: "Günter Grass"},
	{Text: "Without translation, we would be living in provinces bordering on silence.", Author: "George Steiner"},
	{Text: "The limits of my language mean the limits of my world.", Author: "Ludwig Wittgenstein"},
	{Text: "To have another language is to possess a second soul.", Author: "Charlemagne"},
}
