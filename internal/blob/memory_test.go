package blob

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linguadir/pkg/platform/sentinel"
)

func TestMemoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemory("https://assets.example.com")

	ref, err := store.Put(ctx, []byte("certificate bytes"), "application/pdf")
	require.NoError(t, err)
	require.NotEmpty(t, ref)

	data, contentType, err := store.Get(ctx, ref)
	require.NoError(t, err)
	assert.Equal(t, []byte("certificate bytes"), data)
	assert.Equal(t, "application/pdf", contentType)

	assert.Equal(t, "https://assets.example.com/blobs/"+ref, store.URL(ref))
}

func TestMemoryGetUnknownRef(t *testing.T) {
	store := NewMemory("https://assets.example.com")
	_, _, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}
