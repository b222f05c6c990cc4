package loccache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/bizdex/internal/db"
	"github.com/kailas-cloud/bizdex/internal/domain"
	"github.com/kailas-cloud/bizdex/internal/domain/geo"
)

// DefaultTTL bounds how long a resolved IP stays cached.
const DefaultTTL = 60 * time.Second

const cacheKeySuffix = "loc_cache:"

// resolver is the uncached IP lookup being decorated.
type resolver interface {
	Lookup(ctx context.Context, ip string) (geo.Coordinates, error)
}

// store is the consumer interface for the location cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// CachedResolver caches IP-to-coordinates lookups in a key-value store.
type CachedResolver struct {
	inner      resolver
	store      store
	ttl        time.Duration
	prefix     string
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a caching decorator. A non-positive ttl uses DefaultTTL and an
// empty keyPrefix uses domain.KeyPrefix.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func New(
	inner resolver,
	s store,
	keyPrefix string,
	ttl time.Duration,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *CachedResolver {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if keyPrefix == "" {
		keyPrefix = domain.KeyPrefix
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedResolver{
		inner:      inner,
		store:      s,
		ttl:        ttl,
		prefix:     keyPrefix + cacheKeySuffix,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// Lookup returns cached coordinates or asks the inner resolver.
// Failed lookups are not cached. Addresses are keyed by host, so
// "ip:port" from different connections shares one entry.
func (c *CachedResolver) Lookup(ctx context.Context, ip string) (geo.Coordinates, error) {
	key := c.cacheKey(hostOnly(ip))

	if coords, ok := c.getFromCache(ctx, key); ok {
		c.incCache("hit")
		return coords, nil
	}

	c.incCache("miss")

	coords, err := c.inner.Lookup(ctx, ip)
	if err != nil {
		return geo.Coordinates{}, fmt.Errorf("resolve ip: %w", err)
	}

	c.putToCache(ctx, key, coords)
	return coords, nil
}

func (c *CachedResolver) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

func (c *CachedResolver) cacheKey(ip string) string {
	h := sha256.Sum256([]byte(ip))
	return c.prefix + hex.EncodeToString(h[:])
}

// hostOnly strips the port from a RemoteAddr-style address and
// canonicalises the IP text when it parses.
func hostOnly(addr string) string {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		host = addr
	}
	host = strings.TrimSpace(host)
	if ip := net.ParseIP(host); ip != nil {
		return ip.String()
	}
	return host
}

func (c *CachedResolver) getFromCache(ctx context.Context, key string) (geo.Coordinates, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached location", zap.String("key", key), zap.Error(err))
		}
		return geo.Coordinates{}, false
	}
	if len(data) == 0 {
		return geo.Coordinates{}, false
	}

	var coords geo.Coordinates
	if err := json.Unmarshal(data, &coords); err != nil || !coords.IsSet() || !coords.Valid() {
		c.logger.Warn("Failed to parse cached location", zap.String("key", key), zap.Error(err))
		return geo.Coordinates{}, false
	}
	return coords, true
}

func (c *CachedResolver) putToCache(ctx context.Context, key string, coords geo.Coordinates) {
	data, err := json.Marshal(coords)
	if err != nil {
		return
	}
	if err := c.store.SetWithTTL(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("Failed to cache location", zap.String("key", key), zap.Error(err))
	}
}
