package geo

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"linguadir/internal/platform/metrics"
	"linguadir/internal/profile/models"
)

const cacheKeyPrefix = "geo:loc:"

// CachedGeocoder is a Redis read-through decorator. Location strings are
// stable, so hits avoid a slow external call on every signup from the same
// town. Cache failures degrade to the inner geocoder, never to a caller
// error.
type CachedGeocoder struct {
	inner   Geocoder
	client  *redis.Client
	ttl     time.Duration
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewCachedGeocoder wraps inner with a Redis cache. metrics may be nil.
func NewCachedGeocoder(inner Geocoder, client *redis.Client, ttl time.Duration,
	m *metrics.Metrics, logger *slog.Logger) *CachedGeocoder {
	return &CachedGeocoder{inner: inner, client: client, ttl: ttl, metrics: m, logger: logger}
}

func (c *CachedGeocoder) Resolve(ctx context.Context, location string) (models.Coordinates, error) {
	key := cacheKeyPrefix + strings.ToLower(strings.TrimSpace(location))

	if data, err := c.client.Get(ctx, key).Bytes(); err == nil {
		var coords models.Coordinates
		if err := json.Unmarshal(data, &coords); err == nil {
			c.recordHit()
			return coords, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		c.logger.WarnContext(ctx, "geocode cache read failed", "error", err.Error())
	}
	c.recordMiss()

	coords, err := c.inner.Resolve(ctx, location)
	if err != nil {
		return models.Coordinates{}, err
	}

	if data, err := json.Marshal(coords); err == nil {
		if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
			c.logger.WarnContext(ctx, "geocode cache write failed", "error", err.Error())
		}
	}
	return coords, nil
}

func (c *CachedGeocoder) recordHit() {
	if c.metrics != nil {
		c.metrics.GeocodeCacheHits.Inc()
	}
}

func (c *CachedGeocoder) recordMiss() {
	if c.metrics != nil {
		c.metrics.GeocodeCacheMisses.Inc()
	}
}
