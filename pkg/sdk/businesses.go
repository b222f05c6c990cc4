package bizdex

import (
	"context"
	"fmt"
	"time"

	dombiz "github.com/kailas-cloud/bizdex/internal/domain/business"
	"github.com/kailas-cloud/bizdex/internal/domain/search/request"
)

// BusinessService manages and searches business listings.
type BusinessService struct {
	biz    businessUseCase
	search searchUseCase
	obs    *observer
}

// Search returns businesses ranked best first.
func (s *BusinessService) Search(ctx context.Context, p SearchParams) (_ []Business, err error) {
	start := time.Now()
	defer func() { s.obs.observe("business.search", start, err) }()

	req, err := toRequest(p)
	if err != nil {
		return nil, err
	}
	res, err := s.search.Search(ctx, &req)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	s.obs.results("business.search", len(res))
	return fromInternalList(res), nil
}

// Explain runs Search and returns every result with its score breakdown.
func (s *BusinessService) Explain(ctx context.Context, p SearchParams) (_ []Explanation, err error) {
	start := time.Now()
	defer func() { s.obs.observe("business.explain", start, err) }()

	req, err := toRequest(p)
	if err != nil {
		return nil, err
	}
	res, err := s.search.Search(ctx, &req)
	if err != nil {
		return nil, fmt.Errorf("explain: %w", err)
	}
	s.obs.results("business.explain", len(res))

	ranker := s.search.Ranker()
	out := make([]Explanation, len(res))
	for i := range res {
		out[i] = Explanation{
			Business:  fromInternalBusiness(&res[i]),
			Breakdown: fromBreakdown(ranker.Breakdown(&res[i], req.Coords(), req.Terms())),
		}
	}
	return out, nil
}

// Featured returns the top featured businesses.
func (s *BusinessService) Featured(ctx context.Context, near *Coordinates) (_ []Business, err error) {
	start := time.Now()
	defer func() { s.obs.observe("business.featured", start, err) }()

	res, err := s.search.Featured(ctx, near.toGeo())
	if err != nil {
		return nil, fmt.Errorf("featured: %w", err)
	}
	s.obs.results("business.featured", len(res))
	return fromInternalList(res), nil
}

// Similar returns other businesses in the same category as id.
// limit <= 0 uses the default of 4.
func (s *BusinessService) Similar(
	ctx context.Context, id string, near *Coordinates, limit int,
) (_ []Business, err error) {
	start := time.Now()
	defer func() { s.obs.observe("business.similar", start, err) }()

	current, err := s.biz.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("similar: %w", err)
	}
	res, err := s.search.Similar(ctx, current.ID, current.CategoryID, near.toGeo(), limit)
	if err != nil {
		return nil, fmt.Errorf("similar: %w", err)
	}
	s.obs.results("business.similar", len(res))
	return fromInternalList(res), nil
}

// Get retrieves a business by ID.
func (s *BusinessService) Get(ctx context.Context, id string) (_ Business, err error) {
	start := time.Now()
	defer func() { s.obs.observe("business.get", start, err) }()

	b, err := s.biz.Get(ctx, id)
	if err != nil {
		return Business{}, fmt.Errorf("get business: %w", err)
	}
	return fromInternalBusiness(&b), nil
}

// Create stores a new business. An empty ID is replaced with a UUID.
func (s *BusinessService) Create(ctx context.Context, b Business) (_ Business, err error) {
	start := time.Now()
	defer func() { s.obs.observe("business.create", start, err) }()

	created, err := s.biz.Create(ctx, toInternalBusiness(&b))
	if err != nil {
		return Business{}, fmt.Errorf("create business: %w", err)
	}
	return fromInternalBusiness(&created), nil
}

// Update applies a partial update.
func (s *BusinessService) Update(ctx context.Context, id string, p BusinessPatch) (_ Business, err error) {
	start := time.Now()
	defer func() { s.obs.observe("business.update", start, err) }()

	updated, err := s.biz.Update(ctx, id, toInternalPatch(&p))
	if err != nil {
		return Business{}, fmt.Errorf("update business: %w", err)
	}
	return fromInternalBusiness(&updated), nil
}

// Import stores businesses in bulk with per-item results.
func (s *BusinessService) Import(ctx context.Context, items []Business) []BatchResult {
	start := time.Now()
	in := make([]dombiz.Business, len(items))
	for i := range items {
		in[i] = toInternalBusiness(&items[i])
	}
	out := fromBatchResults(s.biz.Import(ctx, in))
	s.obs.observeBatch("business.import", start, out)
	return out
}

// Seed loads the reference data set.
func (s *BusinessService) Seed(ctx context.Context) (_ []BatchResult, err error) {
	start := time.Now()
	defer func() { s.obs.observe("business.seed", start, err) }()

	res, err := s.biz.Seed(ctx)
	if err != nil {
		return nil, fmt.Errorf("seed: %w", err)
	}
	return fromBatchResults(res), nil
}

func toRequest(p SearchParams) (request.Request, error) {
	req, err := request.New(request.Params{
		CategoryID: p.CategoryID,
		Query:      p.Query,
		Coords:     p.Near.toGeo(),
		RadiusKm:   p.RadiusKm,
		RemoteOnly: p.RemoteOnly,
		Limit:      p.Limit,
	})
	if err != nil {
		return request.Request{}, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	return req, nil
}
