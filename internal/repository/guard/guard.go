// Package guard bounds storage fetches with a timeout, retries with backoff
// and a circuit breaker.
package guard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/failsafe-go/failsafe-go"
	"github.com/failsafe-go/failsafe-go/circuitbreaker"
	"github.com/failsafe-go/failsafe-go/retrypolicy"
	"go.uber.org/zap"

	"github.com/kailas-cloud/bizdex/internal/domain/business"
	"github.com/kailas-cloud/bizdex/internal/domain/search/filter"
)

// Fetcher is the guarded storage call.
type Fetcher interface {
	Fetch(ctx context.Context, expr filter.Expression, limit int) ([]business.Business, error)
}

// Config tunes the guard.
type Config struct {
	FetchTimeout    time.Duration
	MaxRetries      int
	BaseDelay       time.Duration
	MaxDelay        time.Duration
	BreakerFailures uint
	BreakerWindow   uint
	BreakerDelay    time.Duration
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		FetchTimeout:    5 * time.Second,
		MaxRetries:      2,
		BaseDelay:       50 * time.Millisecond,
		MaxDelay:        500 * time.Millisecond,
		BreakerFailures: 5,
		BreakerWindow:   10,
		BreakerDelay:    15 * time.Second,
	}
}

func normalize(cfg Config) Config {
	d := DefaultConfig()
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = d.FetchTimeout
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = d.BaseDelay
	}
	if cfg.MaxDelay < cfg.BaseDelay {
		cfg.MaxDelay = cfg.BaseDelay
	}
	if cfg.BreakerWindow == 0 {
		cfg.BreakerWindow = d.BreakerWindow
	}
	if cfg.BreakerFailures == 0 || cfg.BreakerFailures > cfg.BreakerWindow {
		cfg.BreakerFailures = min(d.BreakerFailures, cfg.BreakerWindow)
	}
	if cfg.BreakerDelay <= 0 {
		cfg.BreakerDelay = d.BreakerDelay
	}
	return cfg
}

// Option configures a Guard.
type Option func(*Guard)

// WithLogger logs breaker transitions.
func WithLogger(l *zap.Logger) Option {
	return func(g *Guard) { g.logger = l }
}

// WithStateObserver is called on every breaker transition.
func WithStateObserver(fn func(from, to string)) Option {
	return func(g *Guard) { g.observe = fn }
}

// Guard wraps a Fetcher. It is safe for concurrent use.
type Guard struct {
	next    Fetcher
	timeout time.Duration
	breaker circuitbreaker.CircuitBreaker[[]business.Business]
	exec    failsafe.Executor[[]business.Business]
	logger  *zap.Logger
	observe func(from, to string)
}

// New creates a Guard around next.
func New(next Fetcher, cfg Config, opts ...Option) *Guard {
	cfg = normalize(cfg)
	g := &Guard{next: next, timeout: cfg.FetchTimeout, logger: zap.NewNop()}
	for _, o := range opts {
		o(g)
	}

	g.breaker = circuitbreaker.NewBuilder[[]business.Business]().
		HandleIf(func(_ []business.Business, err error) bool { return countsAsFailure(err) }).
		WithFailureThresholdRatio(cfg.BreakerFailures, cfg.BreakerWindow).
		WithDelay(cfg.BreakerDelay).
		WithSuccessThreshold(1).
		OnStateChanged(func(e circuitbreaker.StateChangedEvent) {
			from, to := stateName(e.OldState), stateName(e.NewState)
			g.logger.Warn("Storage circuit breaker state change",
				zap.String("from_state", from),
				zap.String("to_state", to),
			)
			if g.observe != nil {
				g.observe(from, to)
			}
		}).
		Build()

	retry := retrypolicy.NewBuilder[[]business.Business]().
		HandleIf(func(_ []business.Business, err error) bool {
			return countsAsFailure(err) && !errors.Is(err, circuitbreaker.ErrOpen)
		}).
		WithBackoff(cfg.BaseDelay, cfg.MaxDelay).
		WithMaxRetries(cfg.MaxRetries).
		WithJitterFactor(0.1).
		Build()

	g.exec = failsafe.With[[]business.Business](retry, g.breaker)
	return g
}

// Fetch runs next.Fetch under the timeout, retry policy and breaker.
func (g *Guard) Fetch(ctx context.Context, expr filter.Expression, limit int) ([]business.Business, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	out, err := g.exec.WithContext(ctx).Get(func() ([]business.Business, error) {
		return g.next.Fetch(ctx, expr, limit)
	})
	if err != nil {
		return nil, fmt.Errorf("guarded fetch: %w", err)
	}
	return out, nil
}

// State reports the breaker state: closed, half-open or open.
func (g *Guard) State() string {
	return stateName(g.breaker.State())
}

// countsAsFailure ignores caller cancellation.
func countsAsFailure(err error) bool {
	return err != nil && !errors.Is(err, context.Canceled)
}

func stateName(s circuitbreaker.State) string {
	switch s {
	case circuitbreaker.ClosedState:
		return "closed"
	case circuitbreaker.HalfOpenState:
		return "half-open"
	case circuitbreaker.OpenState:
		return "open"
	default:
		return "unknown"
	}
}
