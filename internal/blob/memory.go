package blob

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"linguadir/pkg/platform/sentinel"
)

type stored struct {
	data        []byte
	contentType string
}

// Memory is the in-memory blob store used in development and tests.
type Memory struct {
	mu      sync.RWMutex
	blobs   map[string]stored
	baseURL string
}

// NewMemory constructs an empty in-memory store. baseURL prefixes the URLs
// handed to public projections.
func NewMemory(baseURL string) *Memory {
	return &Memory{blobs: make(map[string]stored), baseURL: baseURL}
}

func (m *Memory) Put(_ context.Context, data []byte, contentType string) (string, error) {
	ref := uuid.NewString()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[ref] = stored{data: append([]byte(nil), data...), contentType: contentType}
	return ref, nil
}

func (m *Memory) Get(_ context.Context, ref string) ([]byte, string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if b, ok := m.blobs[ref]; ok {
		return append([]byte(nil), b.data...), b.contentType, nil
	}
	return nil, "", sentinel.ErrNotFound
}

func (m *Memory) URL(ref string) string {
	return fmt.Sprintf("%s/blobs/%s", m.baseURL, ref)
}
