package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"speech2text/internal/api/server"
	"speech2text/internal/api/v1/routes"
	"speech2text/internal/api/v1/services"
	"speech2text/internal/app/api/provider"
	"speech2text/internal/app/logging"
	"speech2text/internal/app/metrics"
	"speech2text/internal/app/repository"
	"speech2text/internal/app/repository/migrate"
	"speech2text/internal/app/repository/pg"
	"speech2text/internal/app/repository/sqlite"
	"speech2text/internal/app/repository/supabase"
	"speech2text/internal/app/storage"
	"speech2text/internal/config"
)

// Application is everything `s2t serve` runs
type Application struct {
	Server *server.Server
	Logger *zap.Logger
}

// ProviderSet builds the HTTP service from a validated Config
var ProviderSet = wire.NewSet(
	ProvideLogger,
	ProvideRegistry,
	wire.Bind(new(prometheus.Registerer), new(*prometheus.Registry)),
	wire.Bind(new(prometheus.Gatherer), new(*prometheus.Registry)),
	metrics.New,
	ProvideTranscriber,
	ProvideStore,
	ProvideArchive,
	ProvideTranscriptService,
	ProvideServiceContainer,
	ProvideServerConfig,
	server.NewServer,
	wire.Struct(new(Application), "*"),
)

// ProvideLogger builds the process logger; development unless APP_ENV=production
func ProvideLogger(cfg *config.Config) (*zap.Logger, func(), error) {
	logger, err := logging.New(!cfg.Server.IsProduction())
	if err != nil {
		return nil, nil, err
	}
	return logger, func() { _ = logger.Sync() }, nil
}

// ProvideRegistry returns a registry carrying the Go runtime and process collectors
func ProvideRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// ProvideTranscriber builds the configured vendor client with metrics
func ProvideTranscriber(cfg *config.Config, m *metrics.Metrics, logger *zap.Logger) (provider.Transcriber, error) {
	t, err := provider.New(cfg.Transcription)
	if err != nil {
		return nil, err
	}
	logger.Info("Transcription provider ready",
		zap.String("provider", t.Name()),
		zap.Duration("timeout", cfg.Transcription.Timeout()),
	)
	return provider.Instrument(t, m), nil
}

// ProvideStore opens the configured transcript store. SQL stores get their
// schema created on first use; Supabase tables are managed in the project.
func ProvideStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repository.TranscriptDAO, func(), error) {
	store, err := OpenStore(ctx, cfg.Store)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("Transcript store ready", zap.String("driver", cfg.Store.Driver), zap.String("table", cfg.Store.Table))

	cleanup := func() {
		if err := store.Close(); err != nil {
			logger.Warn("Failed to close transcript store", zap.Error(err))
		}
	}
	return store, cleanup, nil
}

// OpenStore opens the store selected by cfg.Driver
func OpenStore(ctx context.Context, cfg config.StoreConfig) (repository.TranscriptDAO, error) {
	switch cfg.Driver {
	case config.DriverSupabase:
		store, err := supabase.NewStore(supabase.Config{
			URL:   cfg.SupabaseURL,
			Key:   cfg.SupabaseKey,
			Table: cfg.Table,
		})
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.DriverPostgres:
		db, err := pg.NewPostgresDB(ctx, cfg.DatabaseURL, cfg.Table)
		if err != nil {
			return nil, err
		}
		if err := migrate.EnsureSchema(ctx, db.DB(), db.DriverName(), db.Table()); err != nil {
			db.Close()
			return nil, err
		}
		return db, nil
	case config.DriverSQLite:
		db, err := sqlite.NewSQLiteDB(ctx, cfg.DatabaseURL, cfg.Table)
		if err != nil {
			return nil, err
		}
		if err := migrate.EnsureSchema(ctx, db.DB(), db.DriverName(), db.Table()); err != nil {
			db.Close()
			return nil, err
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Driver)
	}
}

// ProvideArchive connects the optional audio archive. It returns a nil
// Archive when archival is not configured.
func ProvideArchive(ctx context.Context, cfg *config.Config, logger *zap.Logger) (storage.Archive, error) {
	if !cfg.Archive.Enabled() {
		return nil, nil
	}

	archive, err := storage.NewMinioArchive(ctx, cfg.Archive)
	if err != nil {
		return nil, err
	}
	logger.Info("Audio archive ready", zap.String("endpoint", cfg.Archive.Endpoint), zap.String("bucket", cfg.Archive.Bucket))
	return archive, nil
}

func ProvideTranscriptService(
	store repository.TranscriptDAO,
	transcriber provider.Transcriber,
	archive storage.Archive,
	m *metrics.Metrics,
	logger *zap.Logger,
) services.TranscriptService {
	return services.NewTranscriptService(store, transcriber, archive, m, logger)
}

func ProvideServiceContainer(cfg *config.Config, service services.TranscriptService) *routes.ServiceContainer {
	return &routes.ServiceContainer{
		TranscriptService: service,
		MaxUploadBytes:    int64(cfg.Server.MaxUploadMB) << 20,
	}
}

func ProvideServerConfig(cfg *config.Config) server.Config {
	return server.Config{
		Host:              cfg.Server.Host,
		Port:              cfg.Server.Port,
		ReadTimeout:       time.Duration(cfg.Server.ReadTimeoutSec) * time.Second,
		ReadHeaderTimeout: time.Duration(cfg.Server.ReadHeaderTimeoutSec) * time.Second,
		WriteTimeout:      time.Duration(cfg.Server.WriteTimeoutSec) * time.Second,
		IdleTimeout:       time.Duration(cfg.Server.IdleTimeoutSec) * time.Second,
		Environment:       cfg.Server.Environment,
		CORSOrigin:        cfg.Server.CORSOrigin,
	}
}
