package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/bizdex/internal/config"
	"github.com/kailas-cloud/bizdex/internal/db"
	dbRedis "github.com/kailas-cloud/bizdex/internal/db/redis"
	dbValkey "github.com/kailas-cloud/bizdex/internal/db/valkey"
	"github.com/kailas-cloud/bizdex/internal/domain/ranking"
	logpkg "github.com/kailas-cloud/bizdex/internal/logger"
	"github.com/kailas-cloud/bizdex/internal/metrics"
	businessrepo "github.com/kailas-cloud/bizdex/internal/repository/business"
	"github.com/kailas-cloud/bizdex/internal/repository/guard"
	"github.com/kailas-cloud/bizdex/internal/repository/loccache"
	pgrepo "github.com/kailas-cloud/bizdex/internal/repository/postgres"
	chiTransport "github.com/kailas-cloud/bizdex/internal/transport/chi"
	"github.com/kailas-cloud/bizdex/internal/transport/geoip"
	"github.com/kailas-cloud/bizdex/internal/version"
	businessuc "github.com/kailas-cloud/bizdex/internal/usecase/business"
	healthuc "github.com/kailas-cloud/bizdex/internal/usecase/health"
	searchuc "github.com/kailas-cloud/bizdex/internal/usecase/search"
)

// repository is everything the API needs from a storage backend.
type repository interface {
	businessuc.Repository
	searchuc.Repository
	healthuc.DBPinger
}

// backend bundles the storage selected by config.
type backend struct {
	repo  repository
	kv    db.KVStore // nil for postgres; disables the location cache
	close func()
}

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting bizdex API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	ctx := context.Background()
	be, err := openBackend(ctx, &cfg)
	if err != nil {
		logger.Fatal("Failed to open storage backend", zap.Error(err))
	}
	defer be.close()
	logger.Info("Connected to database")

	// Register metrics explicitly (no init())
	metrics.RegisterHTTPMetrics()
	metrics.RegisterSearchMetrics()

	weights, err := ranking.LoadCalibration(cfg.Ranking.CalibrationFile, logger)
	if err != nil {
		logger.Warn("Ranking calibration ignored", zap.Error(err))
	}

	guarded := guard.New(be.repo, guard.Config{
		FetchTimeout:    cfg.Search.FetchTimeout(),
		MaxRetries:      cfg.Resilience.MaxRetries,
		BaseDelay:       time.Duration(cfg.Resilience.BaseDelayMs) * time.Millisecond,
		MaxDelay:        time.Duration(cfg.Resilience.MaxDelayMs) * time.Millisecond,
		BreakerFailures: cfg.Resilience.BreakerFailures,
		BreakerWindow:   cfg.Resilience.BreakerWindow,
		BreakerDelay:    time.Duration(cfg.Resilience.BreakerDelaySec) * time.Second,
	}, guard.WithLogger(logger), guard.WithStateObserver(metrics.GuardStateChanged))

	reader, err := geoip.Open(cfg.GeoIP.MMDBPath)
	if err != nil {
		logger.Warn("GeoIP database unusable, caller location disabled",
			zap.String("path", cfg.GeoIP.MMDBPath), zap.Error(err))
		reader = nil
	}
	defer func() { _ = reader.Close() }()

	searchSvc := searchuc.New(guarded, ranking.New(weights), logger).
		WithObserver(metrics.SearchObserver{}).
		WithHomeRadius(cfg.Search.HomeRadiusKm)

	if reader.Loaded() {
		searchSvc.WithLocator(buildLocator(reader, be.kv, &cfg, logger), cfg.GeoIP.Timeout())
		logger.Info("GeoIP enabled", zap.String("path", reader.Path()))
	}

	businessSvc := businessuc.New(be.repo).
		WithMaxBatchSize(cfg.Search.MaxBatchSize).
		WithSeedEnabled(cfg.Seed.Enabled)
	healthSvc := healthuc.New(be.repo).
		WithBreaker(guarded).
		WithLocation(reader)

	server := chiTransport.NewServer(businessSvc, searchSvc, healthSvc, logger).
		WithDefaultLimit(cfg.Search.DefaultLimit).
		WithMaxBatchSize(cfg.Search.MaxBatchSize)
	handler := chiTransport.NewRouter(server, chiTransport.RouterConfig{
		APIKeys: cfg.Auth.APIKeys,
		Logger:  logger,
	})

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// openBackend connects to the configured driver and prepares its index or schema.
func openBackend(ctx context.Context, cfg *config.Config) (*backend, error) {
	readiness := time.Duration(cfg.Database.ReadinessTimeout) * time.Second

	if cfg.Database.Driver == config.DriverPostgres {
		conn, err := pgrepo.Open(ctx, cfg.Database.DSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		repo := pgrepo.New(conn)
		if err := repo.EnsureSchema(ctx); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("ensure schema: %w", err)
		}
		return &backend{repo: repo, close: func() { _ = conn.Close() }}, nil
	}

	rc := dbRedis.Config{Addrs: cfg.Database.Addrs, Password: cfg.Database.Password}
	var (
		store db.Store
		err   error
	)
	switch cfg.Database.Driver {
	case config.DriverValkey:
		store, err = dbValkey.NewStore(rc)
	case config.DriverRedis:
		store, err = dbRedis.NewStore(rc)
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("create store: %w", err)
	}

	if err := store.WaitForReady(ctx, readiness); err != nil {
		store.Close()
		return nil, fmt.Errorf("database not ready: %w", err)
	}

	repo := businessrepo.New(store, cfg.Storage.KeyPrefix)
	if err := repo.EnsureIndex(ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("ensure index: %w", err)
	}

	return &backend{
		repo:  &pingingRepo{Repo: repo, pinger: store},
		kv:    store,
		close: store.Close,
	}, nil
}

// pingingRepo adds store health to the hash repository.
type pingingRepo struct {
	*businessrepo.Repo
	pinger db.Pinger
}

func (p *pingingRepo) Ping(ctx context.Context) error {
	return p.pinger.Ping(ctx)
}

// buildLocator assembles the caller lookup chain: MMDB -> Cached -> Locator.
func buildLocator(reader *geoip.Reader, kv db.KVStore, cfg *config.Config, logger *zap.Logger) *geoip.Locator {
	if kv == nil {
		return geoip.NewLocator(reader)
	}
	cached := loccache.New(reader, kv, cfg.Storage.KeyPrefix, cfg.GeoIP.CacheTTL(), metrics.LocationCacheTotal, logger)
	return geoip.NewLocator(cached)
}
