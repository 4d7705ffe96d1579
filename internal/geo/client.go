package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"linguadir/internal/profile/models"
	dErrors "linguadir/pkg/domain-errors"
)

// Client calls a Nominatim-compatible geocoding endpoint.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a geocoding client with a hard per-call timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

type geocodeResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Resolve looks the location up and returns its best-match coordinates.
// Unresolvable input and transport failures surface as coded errors so the
// caller can abort the profile mutation.
func (c *Client) Resolve(ctx context.Context, location string) (models.Coordinates, error) {
	q := url.Values{}
	q.Set("q", location)
	q.Set("format", "json")
	q.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/search?%s", c.baseURL, q.Encode()), nil)
	if err != nil {
		return models.Coordinates{}, dErrors.Wrap(err, dErrors.CodeInternal, "build geocode request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return models.Coordinates{}, dErrors.Wrap(err, dErrors.CodeUnavailable, "geocoder unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.Coordinates{}, dErrors.Newf(dErrors.CodeUnavailable,
			"geocoder returned status %d", resp.StatusCode)
	}

	var results []geocodeResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return models.Coordinates{}, dErrors.Wrap(err, dErrors.CodeUnavailable, "decode geocoder response")
	}
	if len(results) == 0 {
		return models.Coordinates{}, dErrors.Newf(dErrors.CodeValidation,
			"location %q could not be resolved", location)
	}

	lat, latErr := strconv.ParseFloat(results[0].Lat, 64)
	lon, lonErr := strconv.ParseFloat(results[0].Lon, 64)
	if latErr != nil || lonErr != nil {
		return models.Coordinates{}, dErrors.New(dErrors.CodeUnavailable, "geocoder returned malformed coordinates")
	}

	return models.Coordinates{Latitude: lat, Longitude: lon}, nil
}
