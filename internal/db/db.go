// Package db defines the storage contracts the business repository and the
// location cache are written against. Implementations live in db/redis and
// db/valkey.
package db

import (
	"context"
	"time"
)

// Store is everything a hash-backed business directory needs from its backend.
//
//nolint:interfacebloat // consumers declare their own narrow views
type Store interface {
	Pinger
	HashStore
	KVStore
	IndexManager
	Lister
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Hash is one business record (or any other hash) ready to be written.
type Hash struct {
	Key    string
	Fields map[string]string
}

// HashStore reads and writes whole hashes.
type HashStore interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HSetMulti(ctx context.Context, hashes []Hash) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// KVStore holds expiring blobs such as cached IP lookups.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// IndexManager creates the secondary index used for filtered listings.
type IndexManager interface {
	CreateIndex(ctx context.Context, def *IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
}

// Lister pages through hashes matching an equality filter.
type Lister interface {
	SearchList(ctx context.Context, q *ListQuery) (*SearchResult, error)
	SearchCount(ctx context.Context, q *ListQuery) (int, error)
}
