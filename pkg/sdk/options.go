package bizdex

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

const (
	driverValkey = "valkey"
	driverRedis  = "redis"
)

type clientConfig struct {
	driver    string
	addrs     []string
	password  string
	keyPrefix string

	weights      *Weights
	maxBatchSize int

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithValkey connects to Valkey. Filtered listings fall back to SCAN there.
func WithValkey(addr, password string) Option {
	return backend(driverValkey, addr, password)
}

// WithRedis connects to Redis 8+ and lists through FT.SEARCH.
func WithRedis(addr, password string) Option {
	return backend(driverRedis, addr, password)
}

func backend(driver, addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = driver
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithKeyPrefix namespaces all keys. Default: "bizdex:".
func WithKeyPrefix(prefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.keyPrefix = prefix
	})
}

// WithWeights overrides the ranking weights. Weights that do not sum to 1
// fall back to the defaults.
func WithWeights(w Weights) Option {
	return optionFunc(func(c *clientConfig) {
		c.weights = &w
	})
}

// WithMaxBatchSize sets the maximum number of items per import.
// Default: 100.
func WithMaxBatchSize(size int) Option {
	return optionFunc(func(c *clientConfig) {
		c.maxBatchSize = size
	})
}

// WithLogger logs failed operations at Warn and completed ones at Debug.
// Logging is off by default.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers the bizdex_sdk_* operation and result-count
// metrics on reg. Several clients may share one registry.
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
