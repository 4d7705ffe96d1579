package search

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linguadir/internal/ops"
	"linguadir/internal/platform/config"
	"linguadir/internal/platform/metrics"
	"linguadir/internal/profile/models"
	"linguadir/internal/profile/store"
	id "linguadir/pkg/domain"
)

// failingIndex fails every upsert until succeedAfter attempts have happened.
// succeedAfter <= 0 means it never recovers.
type failingIndex struct {
	attempts     atomic.Int32
	succeedAfter int32
}

func (f *failingIndex) Upsert(context.Context, Document) error {
	n := f.attempts.Add(1)
	if f.succeedAfter > 0 && n > f.succeedAfter {
		return nil
	}
	return errors.New("index unavailable")
}

type syncFixture struct {
	store   *store.InMemory
	index   *MemoryIndex
	events  *ops.Recorder
	syncer  *Syncer
	profile *models.Profile
}

func newSyncFixture(t *testing.T, idx Index, cfg config.SyncConfig) *syncFixture {
	t.Helper()

	f := &syncFixture{
		store:  store.NewInMemory(),
		events: &ops.Recorder{},
	}
	if mem, ok := idx.(*MemoryIndex); ok {
		f.index = mem
	}

	p, err := models.NewProfile(
		"Noor Haddad", "noor@example.com", "", "Medical interpreter.",
		"Utrecht, NL", models.Coordinates{Latitude: 52.09, Longitude: 5.12},
		[]models.LanguageFluency{{Language: "Arabic", Fluency: 5}, {Language: "Dutch", Fluency: 4}},
		[]models.ServiceType{models.ServiceSimultaneous},
		time.Now(),
	)
	require.NoError(t, err)
	require.NoError(t, f.store.Create(context.Background(), p))
	f.profile = p

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	f.syncer = NewSyncer(f.store, idx, f.events,
		metrics.NewWith(prometheus.NewRegistry()), logger, cfg)
	return f
}

func TestSyncProjectsLatestState(t *testing.T) {
	idx := NewMemoryIndex()
	f := newSyncFixture(t, idx, config.SyncConfig{MaxAttempts: 3, BaseBackoff: time.Millisecond, QueueSize: 8})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = f.syncer.Run(ctx) }()

	// Mutate after enqueueing: the worker must pick up the committed state,
	// not the state at enqueue time.
	f.syncer.Enqueue(ctx, f.profile.ID)
	latest, err := f.store.FindByID(ctx, f.profile.ID)
	require.NoError(t, err)
	require.NoError(t, latest.AddReview(5, "Reviewer", "great", time.Now()))
	require.NoError(t, f.store.Save(ctx, latest))
	f.syncer.Enqueue(ctx, f.profile.ID)

	require.Eventually(t, func() bool {
		doc, ok := idx.Get(f.profile.ID.String())
		return ok && doc.ReviewCount == 1
	}, 2*time.Second, 5*time.Millisecond)

	doc, _ := idx.Get(f.profile.ID.String())
	assert.Equal(t, 5.0, doc.Rating)
	assert.Empty(t, f.events.Events())
}

func TestSyncRetriesThenSucceeds(t *testing.T) {
	idx := &failingIndex{succeedAfter: 2}
	f := newSyncFixture(t, idx, config.SyncConfig{MaxAttempts: 5, BaseBackoff: time.Millisecond, QueueSize: 8})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = f.syncer.Run(ctx) }()

	f.syncer.Enqueue(ctx, f.profile.ID)

	require.Eventually(t, func() bool {
		return idx.attempts.Load() == 3
	}, 2*time.Second, 5*time.Millisecond)

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(3), idx.attempts.Load(), "no attempts after success")
	assert.Empty(t, f.events.Events())
}

func TestSyncAbandonsAfterBoundedRetries(t *testing.T) {
	idx := &failingIndex{}
	f := newSyncFixture(t, idx, config.SyncConfig{MaxAttempts: 3, BaseBackoff: time.Millisecond, QueueSize: 8})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = f.syncer.Run(ctx) }()

	f.syncer.Enqueue(ctx, f.profile.ID)

	require.Eventually(t, func() bool {
		return len(f.events.Events()) == 1
	}, 2*time.Second, 5*time.Millisecond)

	assert.Equal(t, int32(3), idx.attempts.Load(), "retry schedule is bounded")

	event := f.events.Events()[0]
	assert.Equal(t, ops.KindIndexSyncAbandoned, event.Kind)
	assert.Equal(t, f.profile.ID.String(), event.ProfileID)
	assert.Equal(t, 3, event.Attempts)
	assert.NotEmpty(t, event.Reason)
}

func TestEnqueueNeverBlocks(t *testing.T) {
	idx := NewMemoryIndex()
	// No worker running and a queue of one: the second enqueue must drop,
	// not block.
	f := newSyncFixture(t, idx, config.SyncConfig{MaxAttempts: 1, BaseBackoff: time.Millisecond, QueueSize: 1})

	ctx := context.Background()
	done := make(chan struct{})
	go func() {
		f.syncer.Enqueue(ctx, f.profile.ID)
		f.syncer.Enqueue(ctx, f.profile.ID)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Enqueue blocked the caller")
	}

	events := f.events.Events()
	require.Len(t, events, 1)
	assert.Equal(t, ops.KindSyncQueueSaturated, events[0].Kind)
}

func TestSyncDropsVanishedProfile(t *testing.T) {
	idx := NewMemoryIndex()
	f := newSyncFixture(t, idx, config.SyncConfig{MaxAttempts: 3, BaseBackoff: time.Millisecond, QueueSize: 8})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = f.syncer.Run(ctx) }()

	f.syncer.Enqueue(ctx, id.NewProfileID())
	f.syncer.Enqueue(ctx, f.profile.ID)

	require.Eventually(t, func() bool {
		return idx.Len() == 1
	}, 2*time.Second, 5*time.Millisecond)
	assert.Empty(t, f.events.Events())
}
