// Package valkey adapts the rueidis store to valkey-search, which only answers
// vector queries through FT.SEARCH. Filtered listings fall back to SCAN.
package valkey

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/kailas-cloud/bizdex/internal/db"
	"github.com/kailas-cloud/bizdex/internal/db/redis"
)

// Compile-time check: Store implements db.Store.
var _ db.Store = (*Store)(nil)

const fetchBatch = 100

// Store implements db.Store for Valkey. Everything except listing is
// delegated to the Redis implementation.
type Store struct {
	*redis.Store
}

// NewStore creates a Valkey store via rueidis.
func NewStore(cfg redis.Config) (*Store, error) {
	inner, err := redis.NewStore(cfg)
	if err != nil {
		return nil, err
	}
	return &Store{Store: inner}, nil
}

// SearchList returns hashes under the query prefix that satisfy its filter,
// in sorted key order. SCAN cannot resume from an offset, so every match from
// q.Offset onward comes back in one result and q.Limit only has to be positive.
// Callers draining a listing stop after the first page because Total is reached.
func (s *Store) SearchList(ctx context.Context, q *db.ListQuery) (*db.SearchResult, error) {
	if q.Limit <= 0 {
		return nil, fmt.Errorf("limit must be positive")
	}

	matched, err := s.scanMatches(ctx, q)
	if err != nil {
		return nil, err
	}

	total := len(matched)
	if q.Offset >= total {
		return &db.SearchResult{Total: total}, nil
	}

	entries := matched[q.Offset:]
	if len(q.ReturnFields) > 0 {
		for i := range entries {
			entries[i].Fields = project(entries[i].Fields, q.ReturnFields)
		}
	}
	return &db.SearchResult{Total: total, Entries: entries}, nil
}

// SearchCount returns the number of hashes under the prefix that satisfy the filter.
func (s *Store) SearchCount(ctx context.Context, q *db.ListQuery) (int, error) {
	if q.Filters.IsEmpty() {
		keys, err := s.Scan(ctx, keyPrefix(q)+"*")
		if err != nil {
			return 0, fmt.Errorf("scan for count: %w", err)
		}
		return len(keys), nil
	}
	matched, err := s.scanMatches(ctx, q)
	if err != nil {
		return 0, err
	}
	return len(matched), nil
}

func (s *Store) scanMatches(ctx context.Context, q *db.ListQuery) ([]db.SearchEntry, error) {
	keys, err := s.Scan(ctx, keyPrefix(q)+"*")
	if err != nil {
		return nil, fmt.Errorf("scan for list: %w", err)
	}
	sort.Strings(keys)

	var out []db.SearchEntry
	for start := 0; start < len(keys); start += fetchBatch {
		batch := keys[start:min(start+fetchBatch, len(keys))]
		hashes, err := s.HGetAllMulti(ctx, batch)
		if err != nil {
			return nil, fmt.Errorf("fetch listing page: %w", err)
		}
		for i, fields := range hashes {
			// deleted between SCAN and HGETALL
			if len(fields) == 0 {
				continue
			}
			if !q.Filters.Matches(fields) {
				continue
			}
			out = append(out, db.SearchEntry{Key: batch[i], Fields: fields})
		}
	}
	return out, nil
}

func project(fields map[string]string, keep []string) map[string]string {
	out := make(map[string]string, len(keep))
	for _, k := range keep {
		if v, ok := fields[k]; ok {
			out[k] = v
		}
	}
	return out
}

func keyPrefix(q *db.ListQuery) string {
	if q.KeyPrefix != "" {
		return q.KeyPrefix
	}
	return indexToKeyPrefix(q.IndexName)
}

// indexToKeyPrefix converts index name to a SCAN prefix.
// "bizdex:business:idx" -> "bizdex:business:"
func indexToKeyPrefix(index string) string {
	if strings.HasSuffix(index, ":idx") {
		return index[:len(index)-3]
	}
	return index + ":"
}
