package loccache

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/bizdex/internal/db"
	"github.com/kailas-cloud/bizdex/internal/domain/geo"
)

type mockResolver struct {
	coords geo.Coordinates
	err    error
	calls  int
}

func (m *mockResolver) Lookup(_ context.Context, _ string) (geo.Coordinates, error) {
	m.calls++
	return m.coords, m.err
}

// mockKVStore implements the consumer interface for tests.
type mockKVStore struct {
	getFn func(ctx context.Context, key string) ([]byte, error)
	setFn func(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

func (m *mockKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockKVStore) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.setFn != nil {
		return m.setFn(ctx, key, value, ttl)
	}
	return nil
}

func newTestResolver(t *testing.T, inner *mockResolver) (*CachedResolver, *mockKVStore) {
	t.Helper()
	ms := &mockKVStore{}
	return New(inner, ms, "", 0, nil, zap.NewNop()), ms
}
