package models

import (
	"time"

	id "linguadir/pkg/domain"
	dErrors "linguadir/pkg/domain-errors"
)

// CertificationStatus is the validation state of an uploaded credential.
//
// Transitions: pending -> validated, pending -> rejected. Validated and
// rejected are terminal and mutually exclusive; nothing moves out of them.
type CertificationStatus string

const (
	CertificationPending   CertificationStatus = "pending"
	CertificationValidated CertificationStatus = "validated"
	CertificationRejected  CertificationStatus = "rejected"
)

// CanTransitionTo reports whether the status machine allows the move.
func (s CertificationStatus) CanTransitionTo(target CertificationStatus) bool {
	if s != CertificationPending {
		return false
	}
	return target == CertificationValidated || target == CertificationRejected
}

// Certification is one uploaded credential document plus its validation
// state. The document bytes live in the blob store; the record carries only
// the opaque reference.
type Certification struct {
	ID          id.CertificationID  `json:"id"`
	Title       string              `json:"title"`
	FileRef     string              `json:"file_ref"`
	Status      CertificationStatus `json:"status"`
	SubmittedAt time.Time           `json:"submitted_at"`
	ReviewedAt  *time.Time          `json:"reviewed_at,omitempty"`
}

// NewCertification creates a pending certification with a fresh id. The blob
// write must have happened already; fileRef is the proof.
func NewCertification(title, fileRef string, now time.Time) (*Certification, error) {
	if title == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "certification title is required")
	}
	if fileRef == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "certification file reference is required")
	}
	return &Certification{
		ID:          id.NewCertificationID(),
		Title:       title,
		FileRef:     fileRef,
		Status:      CertificationPending,
		SubmittedAt: now,
	}, nil
}

// CanValidate checks the transition without applying it.
func (c *Certification) CanValidate() error {
	if !c.Status.CanTransitionTo(CertificationValidated) {
		return dErrors.Newf(dErrors.CodeInvariantViolation,
			"certification is already %s", c.Status)
	}
	return nil
}

// ApplyValidation marks the certification validated. Call CanValidate first.
func (c *Certification) ApplyValidation(now time.Time) {
	c.Status = CertificationValidated
	c.ReviewedAt = &now
}

// Validate validates and applies in one call.
func (c *Certification) Validate(now time.Time) error {
	if err := c.CanValidate(); err != nil {
		return err
	}
	c.ApplyValidation(now)
	return nil
}

// CanReject checks the transition without applying it.
func (c *Certification) CanReject() error {
	if !c.Status.CanTransitionTo(CertificationRejected) {
		return dErrors.Newf(dErrors.CodeInvariantViolation,
			"certification is already %s", c.Status)
	}
	return nil
}

// ApplyRejection marks the certification rejected. Call CanReject first.
func (c *Certification) ApplyRejection(now time.Time) {
	c.Status = CertificationRejected
	c.ReviewedAt = &now
}

// Reject validates and applies in one call.
func (c *Certification) Reject(now time.Time) error {
	if err := c.CanReject(); err != nil {
		return err
	}
	c.ApplyRejection(now)
	return nil
}

// PublicCertification is the projection exposed to anonymous callers: never
// the state, never the raw file reference.
type PublicCertification struct {
	Title    string `json:"title"`
	ImageURL string `json:"image_url"`
}
