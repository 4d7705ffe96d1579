// Package httpapi assembles the top-level router: the shared middleware
// stack, operational endpoints, blob serving, and the profile API.
package httpapi

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"linguadir/internal/blob"
	"linguadir/internal/platform/middleware"
	profilehandler "linguadir/internal/profile/handler"
	dErrors "linguadir/pkg/domain-errors"
	"linguadir/pkg/platform/httputil"
	"linguadir/pkg/platform/sentinel"
)

const requestTimeout = 30 * time.Second

// New builds the router. The profile handler owns its own route tree; this
// layer only adds what every route shares.
func New(profiles *profilehandler.Handler, blobs blob.Store, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Get("/blobs/{ref}", serveBlob(blobs))

	profiles.Register(r)
	return r
}

// serveBlob streams a stored certification document. The ref is opaque; the
// store decides whether it resolves.
func serveBlob(blobs blob.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, contentType, err := blobs.Get(r.Context(), chi.URLParam(r, "ref"))
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "document not found"))
				return
			}
			httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load document"))
			return
		}
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
