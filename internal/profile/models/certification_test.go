package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "linguadir/pkg/domain-errors"
)

func TestNewCertificationStartsPending(t *testing.T) {
	now := time.Now()
	cert, err := NewCertification("Court Interpreter Level II", "blob-123", now)
	require.NoError(t, err)

	assert.Equal(t, CertificationPending, cert.Status)
	assert.False(t, cert.ID.IsZero())
	assert.Nil(t, cert.ReviewedAt)
}

func TestNewCertificationValidation(t *testing.T) {
	now := time.Now()

	_, err := NewCertification("", "blob-123", now)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))

	_, err = NewCertification("Title", "", now)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
}

func TestTerminalStatesRejectFurtherTransitions(t *testing.T) {
	now := time.Now()

	t.Run("validated is terminal", func(t *testing.T) {
		cert, err := NewCertification("Title", "blob-1", now)
		require.NoError(t, err)
		require.NoError(t, cert.Validate(now))

		err = cert.Validate(now)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))

		err = cert.Reject(now)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
		assert.Equal(t, CertificationValidated, cert.Status)
	})

	t.Run("rejected is terminal", func(t *testing.T) {
		cert, err := NewCertification("Title", "blob-2", now)
		require.NoError(t, err)
		require.NoError(t, cert.Reject(now))

		err = cert.Validate(now)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))

		err = cert.Reject(now)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
		assert.Equal(t, CertificationRejected, cert.Status)
	})
}

func TestTransitionRecordsReviewTime(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	cert, err := NewCertification("Title", "blob-3", now.Add(-time.Hour))
	require.NoError(t, err)

	require.NoError(t, cert.Validate(now))
	require.NotNil(t, cert.ReviewedAt)
	assert.Equal(t, now, *cert.ReviewedAt)
}
