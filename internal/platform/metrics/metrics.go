package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	ProfilesCreated          prometheus.Counter
	ReviewsAdded             prometheus.Counter
	CertificationsSubmitted  prometheus.Counter
	CertificationsValidated  prometheus.Counter
	CertificationsRejected   prometheus.Counter
	SaveConflicts            prometheus.Counter
	GeocodeCacheHits         prometheus.Counter
	GeocodeCacheMisses       prometheus.Counter
	SyncAttempts             prometheus.Counter
	SyncFailures             prometheus.Counter
	SyncRetriesExhausted     prometheus.Counter
	SyncQueueDropped         prometheus.Counter
	SyncDurationSeconds      prometheus.Histogram
}

// New creates all metrics and registers them with the default registerer.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers the metrics with the given registerer. Tests pass a fresh
// prometheus.NewRegistry so repeated construction never collides.
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ProfilesCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "linguadir_profiles_created_total",
			Help: "Total number of interpreter profiles created",
		}),
		ReviewsAdded: factory.NewCounter(prometheus.CounterOpts{
			Name: "linguadir_reviews_added_total",
			Help: "Total number of reviews folded into profile ratings",
		}),
		CertificationsSubmitted: factory.NewCounter(prometheus.CounterOpts{
			Name: "linguadir_certifications_submitted_total",
			Help: "Total number of certifications submitted for review",
		}),
		CertificationsValidated: factory.NewCounter(prometheus.CounterOpts{
			Name: "linguadir_certifications_validated_total",
			Help: "Total number of certifications validated by an administrator",
		}),
		CertificationsRejected: factory.NewCounter(prometheus.CounterOpts{
			Name: "linguadir_certifications_rejected_total",
			Help: "Total number of certifications rejected by an administrator",
		}),
		SaveConflicts: factory.NewCounter(prometheus.CounterOpts{
			Name: "linguadir_profile_save_conflicts_total",
			Help: "Optimistic version conflicts observed on profile saves",
		}),
		GeocodeCacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "linguadir_geocode_cache_hits_total",
			Help: "Geocode lookups served from the cache",
		}),
		GeocodeCacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Name: "linguadir_geocode_cache_misses_total",
			Help: "Geocode lookups that fell through to the geocoder",
		}),
		SyncAttempts: factory.NewCounter(prometheus.CounterOpts{
			Name: "linguadir_index_sync_attempts_total",
			Help: "Individual index upsert attempts, including retries",
		}),
		SyncFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "linguadir_index_sync_failures_total",
			Help: "Index upsert attempts that failed",
		}),
		SyncRetriesExhausted: factory.NewCounter(prometheus.CounterOpts{
			Name: "linguadir_index_sync_retries_exhausted_total",
			Help: "Sync jobs abandoned after the bounded retry schedule",
		}),
		SyncQueueDropped: factory.NewCounter(prometheus.CounterOpts{
			Name: "linguadir_index_sync_queue_dropped_total",
			Help: "Sync requests dropped because the queue was full",
		}),
		SyncDurationSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "linguadir_index_sync_duration_seconds",
			Help:    "End-to-end duration of a successful sync job",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
	}
}
