// Package ops carries observability events that must not surface to end
// users: notably the terminal failure of an index sync after its bounded
// retries. Events fan out to a log sink always, and to Kafka when brokers
// are configured.
package ops

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Kind classifies an ops event.
type Kind string

const (
	// KindIndexSyncAbandoned is emitted when a sync job exhausted its retry
	// budget; the profile and the index are known to disagree until the next
	// successful sync.
	KindIndexSyncAbandoned Kind = "index_sync_abandoned"
	// KindSyncQueueSaturated is emitted when a sync request is dropped
	// because the queue was full.
	KindSyncQueueSaturated Kind = "sync_queue_saturated"
)

// Event is emitted from domain logic to capture operational facts. Keep it
// transport-agnostic so sinks can fan out.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Kind      Kind      `json:"kind"`
	ProfileID string    `json:"profile_id,omitempty"`
	Attempts  int       `json:"attempts,omitempty"`
	Reason    string    `json:"reason,omitempty"`
}

// Publisher delivers ops events to an observability sink. Publish must be
// cheap and must not block domain operations.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// LogPublisher writes events to the structured log. It is the fallback sink
// and always available.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	p.logger.WarnContext(ctx, "ops event",
		"kind", string(event.Kind),
		"profile_id", event.ProfileID,
		"attempts", event.Attempts,
		"reason", event.Reason,
	)
	return nil
}

// Recorder is a test sink that captures published events. Safe for
// publication from worker goroutines.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Publish(_ context.Context, event Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

// Events returns a snapshot of everything published so far.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}
