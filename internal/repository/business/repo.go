package business

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kailas-cloud/bizdex/internal/db"
	"github.com/kailas-cloud/bizdex/internal/domain"
	dombiz "github.com/kailas-cloud/bizdex/internal/domain/business"
	"github.com/kailas-cloud/bizdex/internal/domain/search/filter"
)

// fetchPage is the FT.SEARCH page size used while draining a filter.
const fetchPage = 100

// store is the consumer interface for business hashes (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HSetMulti(ctx context.Context, items []db.Hash) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	Exists(ctx context.Context, key string) (bool, error)
	SearchList(ctx context.Context, q *db.ListQuery) (*db.SearchResult, error)
	SearchCount(ctx context.Context, q *db.ListQuery) (int, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
}

// Repo stores businesses as hashes behind an FT index.
type Repo struct {
	store  store
	prefix string
}

// New creates a business repository. An empty keyPrefix uses domain.KeyPrefix.
func New(s store, keyPrefix string) *Repo {
	if keyPrefix == "" {
		keyPrefix = domain.KeyPrefix
	}
	return &Repo{store: s, prefix: keyPrefix}
}

// EnsureIndex creates the business index when it does not exist yet.
func (r *Repo) EnsureIndex(ctx context.Context) error {
	name := r.indexName()
	exists, err := r.store.IndexExists(ctx, name)
	if err != nil {
		return fmt.Errorf("check index %s: %w", name, err)
	}
	if exists {
		return nil
	}
	if err := r.store.CreateIndex(ctx, buildIndex(name, r.keyPrefix())); err != nil {
		if errors.Is(err, db.ErrIndexExists) {
			return nil
		}
		return fmt.Errorf("create index %s: %w", name, err)
	}
	return nil
}

// Fetch returns records matching expr in index order. limit 0 means all.
func (r *Repo) Fetch(ctx context.Context, expr filter.Expression, limit int) ([]dombiz.Business, error) {
	var out []dombiz.Business
	offset := 0
	for {
		page := fetchPage
		if limit > 0 {
			page = min(page, limit-len(out))
		}
		result, err := r.store.SearchList(ctx, &db.ListQuery{
			IndexName: r.indexName(),
			KeyPrefix: r.keyPrefix(),
			Filters:   expr,
			Offset:    offset,
			Limit:     page,
		})
		if err != nil {
			return nil, fmt.Errorf("search list: %w", err)
		}
		for _, e := range result.Entries {
			out = append(out, fromHash(r.extractID(e.Key), e.Fields))
		}

		offset += len(result.Entries)
		switch {
		case len(result.Entries) < page,
			offset >= result.Total,
			limit > 0 && len(out) >= limit:
			if limit > 0 && len(out) > limit {
				out = out[:limit]
			}
			return out, nil
		}
	}
}

// Get returns a business by id.
func (r *Repo) Get(ctx context.Context, id string) (dombiz.Business, error) {
	key := r.key(id)
	m, err := r.store.HGetAll(ctx, key)
	if err != nil {
		return dombiz.Business{}, fmt.Errorf("hgetall %s: %w", key, err)
	}
	// HGETALL on a missing key returns an empty hash
	if len(m) == 0 {
		return dombiz.Business{}, domain.ErrNotFound
	}
	return fromHash(id, m), nil
}

// Exists reports whether a business with id is stored.
func (r *Repo) Exists(ctx context.Context, id string) (bool, error) {
	key := r.key(id)
	ok, err := r.store.Exists(ctx, key)
	if err != nil {
		return false, fmt.Errorf("check exists %s: %w", key, err)
	}
	return ok, nil
}

// Save writes the business, replacing stored fields.
func (r *Repo) Save(ctx context.Context, b dombiz.Business) error {
	key := r.key(b.ID)
	if err := r.store.HSet(ctx, key, toHash(&b)); err != nil {
		return fmt.Errorf("hset %s: %w", key, err)
	}
	return nil
}

// SaveMany writes businesses in one pipelined round-trip.
func (r *Repo) SaveMany(ctx context.Context, bs []dombiz.Business) error {
	items := make([]db.Hash, len(bs))
	for i := range bs {
		items[i] = db.Hash{Key: r.key(bs[i].ID), Fields: toHash(&bs[i])}
	}
	if err := r.store.HSetMulti(ctx, items); err != nil {
		return fmt.Errorf("hset multi: %w", err)
	}
	return nil
}

// Count returns the number of stored businesses.
func (r *Repo) Count(ctx context.Context) (int, error) {
	n, err := r.store.SearchCount(ctx, &db.ListQuery{
		IndexName: r.indexName(),
		KeyPrefix: r.keyPrefix(),
	})
	if err != nil {
		return 0, fmt.Errorf("search count: %w", err)
	}
	return n, nil
}

func (r *Repo) keyPrefix() string {
	return r.prefix + "business:"
}

func (r *Repo) key(id string) string {
	return r.keyPrefix() + id
}

func (r *Repo) indexName() string {
	return r.prefix + "business:idx"
}

func (r *Repo) extractID(key string) string {
	return strings.TrimPrefix(key, r.keyPrefix())
}
