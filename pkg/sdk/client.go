package bizdex

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/bizdex/internal/db"
	dbRedis "github.com/kailas-cloud/bizdex/internal/db/redis"
	dbValkey "github.com/kailas-cloud/bizdex/internal/db/valkey"
	dombatch "github.com/kailas-cloud/bizdex/internal/domain/batch"
	dombiz "github.com/kailas-cloud/bizdex/internal/domain/business"
	"github.com/kailas-cloud/bizdex/internal/domain/business/patch"
	"github.com/kailas-cloud/bizdex/internal/domain/geo"
	"github.com/kailas-cloud/bizdex/internal/domain/ranking"
	"github.com/kailas-cloud/bizdex/internal/domain/search/request"
	businessrepo "github.com/kailas-cloud/bizdex/internal/repository/business"
	"github.com/kailas-cloud/bizdex/internal/repository/guard"
	businessuc "github.com/kailas-cloud/bizdex/internal/usecase/business"
	healthuc "github.com/kailas-cloud/bizdex/internal/usecase/health"
	searchuc "github.com/kailas-cloud/bizdex/internal/usecase/search"
)

const defaultReadinessTimeout = 10 * time.Second

// Internal interfaces, swapped for fakes in tests.
type businessUseCase interface {
	Get(ctx context.Context, id string) (dombiz.Business, error)
	Create(ctx context.Context, b dombiz.Business) (dombiz.Business, error)
	Update(ctx context.Context, id string, p patch.Patch) (dombiz.Business, error)
	Import(ctx context.Context, items []dombiz.Business) []dombatch.Result
	Seed(ctx context.Context) ([]dombatch.Result, error)
}

type searchUseCase interface {
	Search(ctx context.Context, req *request.Request) ([]dombiz.Business, error)
	Featured(ctx context.Context, coords *geo.Coordinates) ([]dombiz.Business, error)
	Similar(ctx context.Context, id, categoryID string, coords *geo.Coordinates, limit int) ([]dombiz.Business, error)
	Ranker() *ranking.Ranker
}

var (
	_ businessUseCase = (*businessuc.Service)(nil)
	_ searchUseCase   = (*searchuc.Service)(nil)
)

// Client is the bizdex SDK entry point.
type Client struct {
	store     db.Store
	bizSvc    businessUseCase
	searchSvc searchUseCase
	healthSvc healthUseCase
	obs       *observer
}

// New creates a bizdex Client, connects to the database and ensures the
// business index exists. The provided context is used for the initial
// readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("bizdex: database address required (use WithValkey or WithRedis)")
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	store, err := createStore(cfg)
	if err != nil {
		return nil, err
	}

	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("bizdex: database not ready: %w", err)
	}

	repo := businessrepo.New(store, cfg.keyPrefix)
	if err := repo.EnsureIndex(ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("bizdex: ensure index: %w", err)
	}

	return wireClient(store, repo, cfg, obs), nil
}

func createStore(cfg *clientConfig) (db.Store, error) {
	rc := dbRedis.Config{Addrs: cfg.addrs, Password: cfg.password}
	switch cfg.driver {
	case driverValkey:
		s, err := dbValkey.NewStore(rc)
		if err != nil {
			return nil, fmt.Errorf("bizdex: create valkey store: %w", err)
		}
		return s, nil
	case driverRedis:
		s, err := dbRedis.NewStore(rc)
		if err != nil {
			return nil, fmt.Errorf("bizdex: create redis store: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("bizdex: unknown driver %q", cfg.driver)
	}
}

func wireClient(store db.Store, repo *businessrepo.Repo, cfg *clientConfig, obs *observer) *Client {
	ranker := ranking.Default()
	if cfg.weights != nil {
		ranker = ranking.New(cfg.weights.toRanking())
	}

	guarded := guard.New(repo, guard.DefaultConfig())
	searchSvc := searchuc.New(guarded, ranker, nil)

	// The SDK caller owns the data; seeding is always allowed.
	bizSvc := businessuc.New(repo).WithSeedEnabled(true)
	if cfg.maxBatchSize > 0 {
		bizSvc = bizSvc.WithMaxBatchSize(cfg.maxBatchSize)
	}

	return &Client{
		store:     store,
		bizSvc:    bizSvc,
		searchSvc: searchSvc,
		healthSvc: healthuc.New(store).WithBreaker(guarded),
		obs:       obs,
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Businesses returns the business directory service.
func (c *Client) Businesses() *BusinessService {
	return &BusinessService{biz: c.bizSvc, search: c.searchSvc, obs: c.obs}
}

// Weights returns the ranking weights in use.
func (c *Client) Weights() Weights {
	return fromRankingWeights(c.searchSvc.Ranker().Weights())
}
