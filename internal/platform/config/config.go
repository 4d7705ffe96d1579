package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures everything the server needs from the environment so main
// stays lean.
type Config struct {
	Addr string

	// PostgresURL selects the durable profile store; empty falls back to the
	// in-memory store (dev and tests).
	PostgresURL string

	Redis RedisConfig

	// KafkaBrokers enables the Kafka ops-event publisher; empty falls back
	// to log-only observability events.
	KafkaBrokers  []string
	KafkaOpsTopic string

	Geocoder GeocoderConfig
	Index    IndexConfig
	Sync     SyncConfig
	Blob     BlobConfig

	// AdminCodeHashes are bcrypt hashes of the codes accepted on
	// certification review endpoints.
	AdminCodeHashes []string
}

// RedisConfig configures the geocode result cache.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	GeocodeTTL   time.Duration
}

// GeocoderConfig points at the external geocoding service.
type GeocoderConfig struct {
	BaseURL string
	Timeout time.Duration
}

// IndexConfig points at the external search index.
type IndexConfig struct {
	BaseURL   string
	AppID     string
	APIKey    string
	IndexName string
	Timeout   time.Duration
}

// BlobConfig configures certification document storage. An empty Dir selects
// the in-memory store.
type BlobConfig struct {
	Dir     string
	BaseURL string
}

// SyncConfig bounds the index synchronizer's retry schedule.
type SyncConfig struct {
	MaxAttempts int
	BaseBackoff time.Duration
	QueueSize   int
}

// FromEnv builds a Config from environment variables with development
// defaults.
func FromEnv() Config {
	return Config{
		Addr:          envOr("LINGUADIR_ADDR", ":8080"),
		PostgresURL:   os.Getenv("LINGUADIR_POSTGRES_URL"),
		KafkaBrokers:  splitNonEmpty(os.Getenv("LINGUADIR_KAFKA_BROKERS")),
		KafkaOpsTopic: envOr("LINGUADIR_KAFKA_OPS_TOPIC", "linguadir.ops"),
		Redis: RedisConfig{
			URL:          os.Getenv("LINGUADIR_REDIS_URL"),
			PoolSize:     envInt("LINGUADIR_REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("LINGUADIR_REDIS_MIN_IDLE", 2),
			DialTimeout:  envDuration("LINGUADIR_REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("LINGUADIR_REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("LINGUADIR_REDIS_WRITE_TIMEOUT", 3*time.Second),
			GeocodeTTL:   envDuration("LINGUADIR_GEOCODE_CACHE_TTL", 30*24*time.Hour),
		},
		Geocoder: GeocoderConfig{
			BaseURL: envOr("LINGUADIR_GEOCODER_URL", "https://nominatim.openstreetmap.org"),
			Timeout: envDuration("LINGUADIR_GEOCODER_TIMEOUT", 5*time.Second),
		},
		Index: IndexConfig{
			BaseURL:   os.Getenv("LINGUADIR_INDEX_URL"),
			AppID:     os.Getenv("LINGUADIR_INDEX_APP_ID"),
			APIKey:    os.Getenv("LINGUADIR_INDEX_API_KEY"),
			IndexName: envOr("LINGUADIR_INDEX_NAME", "interpreters"),
			Timeout:   envDuration("LINGUADIR_INDEX_TIMEOUT", 5*time.Second),
		},
		Blob: BlobConfig{
			Dir:     os.Getenv("LINGUADIR_BLOB_DIR"),
			BaseURL: envOr("LINGUADIR_ASSET_BASE_URL", "http://localhost:8080"),
		},
		Sync: SyncConfig{
			MaxAttempts: envInt("LINGUADIR_SYNC_MAX_ATTEMPTS", 5),
			BaseBackoff: envDuration("LINGUADIR_SYNC_BASE_BACKOFF", 500*time.Millisecond),
			QueueSize:   envInt("LINGUADIR_SYNC_QUEUE_SIZE", 256),
		},
		AdminCodeHashes: splitNonEmpty(os.Getenv("LINGUADIR_ADMIN_CODE_HASHES")),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func splitNonEmpty(v string) []string {
	if v == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
