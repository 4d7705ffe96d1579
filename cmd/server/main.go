// Command server runs the interpreter directory API: profile CRUD over HTTP,
// a PostgreSQL (or in-memory) profile store, geocoding with an optional Redis
// cache, and the background search-index synchronizer.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"linguadir/internal/admin"
	"linguadir/internal/blob"
	"linguadir/internal/geo"
	httpapi "linguadir/internal/http"
	"linguadir/internal/ops"
	"linguadir/internal/platform/config"
	"linguadir/internal/platform/httpserver"
	"linguadir/internal/platform/logger"
	"linguadir/internal/platform/metrics"
	platformredis "linguadir/internal/platform/redis"
	profilehandler "linguadir/internal/profile/handler"
	"linguadir/internal/profile/service"
	"linguadir/internal/profile/store"
	"linguadir/internal/search"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.FromEnv()
	log := logger.New()
	m := metrics.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Profile store: PostgreSQL when configured, in-memory otherwise.
	var profiles store.ProfileStore
	if cfg.PostgresURL != "" {
		pool, err := pgxpool.New(ctx, cfg.PostgresURL)
		if err != nil {
			log.Error("failed to open postgres pool", "error", err.Error())
			os.Exit(1)
		}
		defer pool.Close()

		pg := store.NewPostgres(pool)
		if err := pg.Migrate(ctx); err != nil {
			log.Error("failed to migrate schema", "error", err.Error())
			os.Exit(1)
		}
		profiles = pg
		log.Info("using postgres profile store")
	} else {
		profiles = store.NewInMemory()
		log.Warn("no postgres configured, using in-memory profile store")
	}

	// Geocoder, optionally behind a Redis read-through cache.
	var geocoder geo.Geocoder = geo.NewClient(cfg.Geocoder.BaseURL, cfg.Geocoder.Timeout)
	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("failed to connect redis", "error", err.Error())
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		geocoder = geo.NewCachedGeocoder(geocoder, redisClient.Client, cfg.Redis.GeocodeTTL, m, log)
		log.Info("geocode cache enabled")
	}

	// Certification document storage.
	var blobs blob.Store
	if cfg.Blob.Dir != "" {
		fsStore, err := blob.NewFS(cfg.Blob.Dir, cfg.Blob.BaseURL)
		if err != nil {
			log.Error("failed to open blob dir", "error", err.Error())
			os.Exit(1)
		}
		blobs = fsStore
	} else {
		blobs = blob.NewMemory(cfg.Blob.BaseURL)
		log.Warn("no blob dir configured, certification documents are not durable")
	}

	// Ops events go to Kafka when brokers are configured, to the log
	// otherwise.
	var events ops.Publisher = ops.NewLogPublisher(log)
	if len(cfg.KafkaBrokers) > 0 {
		kafka, err := ops.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaOpsTopic, log)
		if err != nil {
			log.Error("failed to connect kafka", "error", err.Error())
			os.Exit(1)
		}
		defer func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := kafka.Close(closeCtx); err != nil {
				log.Warn("kafka close failed", "error", err.Error())
			}
		}()
		events = kafka
		log.Info("kafka ops events enabled", "topic", cfg.KafkaOpsTopic)
	}

	// Search index: the hosted engine when configured, in-process otherwise.
	var index search.Index
	if cfg.Index.BaseURL != "" {
		index = search.NewHTTPIndex(cfg.Index)
		log.Info("search index sync enabled", "index", cfg.Index.IndexName)
	} else {
		index = search.NewMemoryIndex()
		log.Warn("no search index configured, using in-process index")
	}

	syncer := search.NewSyncer(profiles, index, events, m, log, cfg.Sync)
	svc := service.New(profiles, geocoder, blobs, syncer,
		service.WithLogger(log), service.WithMetrics(m))

	handler := profilehandler.New(svc, admin.NewCodes(cfg.AdminCodeHashes), log)
	srv := httpserver.New(cfg.Addr, httpapi.New(handler, blobs, log))

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		if err := syncer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		log.Info("server listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		log.Error("server exited with error", "error", err.Error())
		os.Exit(1)
	}
	log.Info("server stopped")
}
