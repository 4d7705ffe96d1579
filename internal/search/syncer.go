package search

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"linguadir/internal/ops"
	"linguadir/internal/platform/config"
	"linguadir/internal/platform/metrics"
	"linguadir/internal/profile/store"
	id "linguadir/pkg/domain"
	"linguadir/pkg/platform/circuit"
	"linguadir/pkg/platform/sentinel"
)

var tracer = otel.Tracer("linguadir/internal/search")

// Syncer pushes profile mutations into the search index asynchronously.
//
// Enqueue never blocks and never fails the caller: a full queue drops the
// request and raises an ops event instead. The worker reloads the latest
// profile before projecting, so a queued id enqueued several times collapses
// into whatever the store holds when the job runs.
type Syncer struct {
	store   store.ProfileStore
	index   Index
	events  ops.Publisher
	metrics *metrics.Metrics
	logger  *slog.Logger
	breaker *circuit.Breaker

	queue       chan id.ProfileID
	maxAttempts int
	baseBackoff time.Duration
}

func NewSyncer(profiles store.ProfileStore, index Index, events ops.Publisher,
	m *metrics.Metrics, logger *slog.Logger, cfg config.SyncConfig) *Syncer {

	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	if cfg.QueueSize < 1 {
		cfg.QueueSize = 1
	}
	return &Syncer{
		store:       profiles,
		index:       index,
		events:      events,
		metrics:     m,
		logger:      logger,
		breaker:     circuit.New("search-index"),
		queue:       make(chan id.ProfileID, cfg.QueueSize),
		maxAttempts: cfg.MaxAttempts,
		baseBackoff: cfg.BaseBackoff,
	}
}

// Enqueue requests a sync for the profile. It returns immediately; the
// mutation that triggered it has already committed and must not be failed or
// delayed here.
func (s *Syncer) Enqueue(ctx context.Context, profileID id.ProfileID) {
	select {
	case s.queue <- profileID:
	default:
		s.metrics.SyncQueueDropped.Inc()
		_ = s.events.Publish(ctx, ops.Event{
			Kind:      ops.KindSyncQueueSaturated,
			ProfileID: profileID.String(),
			Reason:    "sync queue full, request dropped",
		})
		s.logger.WarnContext(ctx, "sync queue full, dropping request",
			"profile_id", profileID.String())
	}
}

// Run drains the queue until ctx is cancelled. Call it from a dedicated
// goroutine.
func (s *Syncer) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case profileID := <-s.queue:
			s.sync(ctx, profileID)
		}
	}
}

func (s *Syncer) sync(ctx context.Context, profileID id.ProfileID) {
	ctx, span := tracer.Start(ctx, "search.sync",
		trace.WithAttributes(attribute.String("profile.id", profileID.String())))
	defer span.End()

	start := time.Now()

	// Always project the latest committed state. The queue entry is only a
	// hint that something changed.
	profile, err := s.store.FindByID(ctx, profileID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			s.logger.WarnContext(ctx, "sync target no longer exists",
				"profile_id", profileID.String())
			return
		}
		span.RecordError(err)
		s.logger.ErrorContext(ctx, "sync reload failed",
			"profile_id", profileID.String(), "error", err.Error())
		return
	}
	doc := Project(profile)

	// While the breaker is open each job gets a single probe attempt; the
	// full retry schedule resumes once the index answers again.
	attempts := s.maxAttempts
	if s.breaker.IsOpen() {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		s.metrics.SyncAttempts.Inc()
		lastErr = s.index.Upsert(ctx, doc)
		if lastErr == nil {
			if _, change := s.breaker.RecordSuccess(); change.Closed {
				s.logger.InfoContext(ctx, "search index circuit closed")
			}
			s.metrics.SyncDurationSeconds.Observe(time.Since(start).Seconds())
			return
		}

		s.metrics.SyncFailures.Inc()
		if _, change := s.breaker.RecordFailure(); change.Opened {
			s.logger.ErrorContext(ctx, "search index circuit opened",
				"error", lastErr.Error())
		}
		s.logger.WarnContext(ctx, "index upsert failed",
			"profile_id", profileID.String(),
			"attempt", attempt,
			"error", lastErr.Error(),
		)

		if attempt < attempts {
			if !s.backoff(ctx, attempt) {
				return
			}
		}
	}

	span.RecordError(lastErr)
	s.metrics.SyncRetriesExhausted.Inc()
	_ = s.events.Publish(ctx, ops.Event{
		Kind:      ops.KindIndexSyncAbandoned,
		ProfileID: profileID.String(),
		Attempts:  attempts,
		Reason:    lastErr.Error(),
	})
	s.logger.ErrorContext(ctx, "index sync abandoned",
		"profile_id", profileID.String(),
		"attempts", attempts,
		"error", lastErr.Error(),
	)
}

// backoff sleeps for baseBackoff doubled per prior attempt. Returns false when
// ctx was cancelled during the wait.
func (s *Syncer) backoff(ctx context.Context, attempt int) bool {
	delay := s.baseBackoff << (attempt - 1)
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
