// Package domain defines typed identifiers shared across layers. Wrapping
// uuid.UUID in distinct types makes it a compile error to pass a
// certification id where a profile id belongs.
package domain

import (
	"github.com/google/uuid"

	dErrors "linguadir/pkg/domain-errors"
)

// ProfileID identifies an interpreter profile.
type ProfileID uuid.UUID

// CertificationID identifies a certification record within a profile.
type CertificationID uuid.UUID

func NewProfileID() ProfileID {
	return ProfileID(uuid.New())
}

func NewCertificationID() CertificationID {
	return CertificationID(uuid.New())
}

func (id ProfileID) String() string {
	return uuid.UUID(id).String()
}

func (id ProfileID) IsZero() bool {
	return uuid.UUID(id) == uuid.Nil
}

func (id CertificationID) String() string {
	return uuid.UUID(id).String()
}

func (id CertificationID) IsZero() bool {
	return uuid.UUID(id) == uuid.Nil
}

// ParseProfileID parses and validates an external profile id. IDs must be
// valid, non-nil UUIDs.
func ParseProfileID(s string) (ProfileID, error) {
	u, err := parseUUID(s, "profile id")
	return ProfileID(u), err
}

// ParseCertificationID parses and validates an external certification id.
func ParseCertificationID(s string) (CertificationID, error) {
	u, err := parseUUID(s, "certification id")
	return CertificationID(u), err
}

func parseUUID(s, what string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.Newf(dErrors.CodeBadRequest, "%s is required", what)
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.Newf(dErrors.CodeBadRequest, "%s is not a valid UUID", what)
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.Newf(dErrors.CodeBadRequest, "%s must not be the nil UUID", what)
	}
	return u, nil
}

// MarshalText lets typed ids serialize as plain UUID strings in JSON.
func (id ProfileID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *ProfileID) UnmarshalText(b []byte) error {
	u, err := uuid.Parse(string(b))
	if err != nil {
		return err
	}
	*id = ProfileID(u)
	return nil
}

func (id CertificationID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *CertificationID) UnmarshalText(b []byte) error {
	u, err := uuid.Parse(string(b))
	if err != nil {
		return err
	}
	*id = CertificationID(u)
	return nil
}
