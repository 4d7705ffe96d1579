package store

import (
	"context"
	"math/rand"
	"strings"
	"sync"

	"linguadir/internal/discovery"
	"linguadir/internal/profile/models"
	id "linguadir/pkg/domain"
	"linguadir/pkg/platform/sentinel"
)

// InMemory is a thread-safe map-backed ProfileStore. Profiles are deep-copied
// on the way in and out so callers never share mutable state with the store.
type InMemory struct {
	mu       sync.RWMutex
	profiles map[id.ProfileID]*models.Profile
	byEmail  map[string]id.ProfileID
}

func NewInMemory() *InMemory {
	return &InMemory{
		profiles: make(map[id.ProfileID]*models.Profile),
		byEmail:  make(map[string]id.ProfileID),
	}
}

func (s *InMemory) Create(_ context.Context, p *models.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	email := strings.ToLower(p.Email)
	if _, taken := s.byEmail[email]; taken {
		return sentinel.ErrAlreadyUsed
	}
	p.Version = 1
	s.profiles[p.ID] = p.Clone()
	s.byEmail[email] = p.ID
	return nil
}

func (s *InMemory) FindByID(_ context.Context, profileID id.ProfileID) (*models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[profileID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return p.Clone(), nil
}

func (s *InMemory) FindByEmail(_ context.Context, email string) (*models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	profileID, ok := s.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return s.profiles[profileID].Clone(), nil
}

func (s *InMemory) Save(_ context.Context, p *models.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.profiles[p.ID]
	if !ok {
		return sentinel.ErrNotFound
	}
	if current.Version != p.Version {
		return sentinel.ErrConflict
	}
	p.Version++
	s.profiles[p.ID] = p.Clone()
	return nil
}

func (s *InMemory) Sample(_ context.Context, limit int) ([]*models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var pool []*models.Profile
	for _, p := range s.profiles {
		if p.Active && p.Rating != nil && *p.Rating > discovery.MinRating {
			pool = append(pool, p)
		}
	}
	rand.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	if len(pool) > limit {
		pool = pool[:limit]
	}
	out := make([]*models.Profile, len(pool))
	for i, p := range pool {
		out[i] = p.Clone()
	}
	return out, nil
}

func (s *InMemory) ListWithPendingCertifications(_ context.Context) ([]*models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.Profile
	for _, p := range s.profiles {
		if len(p.PendingCertifications()) > 0 {
			out = append(out, p.Clone())
		}
	}
	return out, nil
}
