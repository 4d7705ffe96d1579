// Package admin gates the certification review surface. Reviewers present a
// shared admin code; only bcrypt hashes of the accepted codes are ever
// configured or stored.
package admin

import (
	"golang.org/x/crypto/bcrypt"

	dErrors "linguadir/pkg/domain-errors"
)

// Codes checks presented admin codes against the configured hashes.
type Codes struct {
	hashes [][]byte
}

// NewCodes builds a checker from bcrypt hash strings.
func NewCodes(hashes []string) *Codes {
	c := &Codes{}
	for _, h := range hashes {
		if h != "" {
			c.hashes = append(c.hashes, []byte(h))
		}
	}
	return c
}

// HashCode produces a bcrypt hash for provisioning a new admin code.
func HashCode(code string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// Check returns nil when the presented code matches any configured hash.
// No codes configured means the review surface is closed, not open.
func (c *Codes) Check(code string) error {
	if code == "" {
		return dErrors.New(dErrors.CodeUnauthorized, "admin code is required")
	}
	for _, hash := range c.hashes {
		if bcrypt.CompareHashAndPassword(hash, []byte(code)) == nil {
			return nil
		}
	}
	return dErrors.New(dErrors.CodeUnauthorized, "admin code not recognized")
}
