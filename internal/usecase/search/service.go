package search

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/bizdex/internal/domain"
	dombiz "github.com/kailas-cloud/bizdex/internal/domain/business"
	"github.com/kailas-cloud/bizdex/internal/domain/geo"
	"github.com/kailas-cloud/bizdex/internal/domain/ranking"
	"github.com/kailas-cloud/bizdex/internal/domain/search/filter"
	"github.com/kailas-cloud/bizdex/internal/domain/search/request"
	"github.com/kailas-cloud/bizdex/internal/domain/search/text"
)

// Listing sizes for the supplementary queries.
const (
	FeaturedFetch = 12
	FeaturedLimit = 6
	SimilarFetch  = 20
	SimilarLimit  = 4

	// DefaultLocationTimeout bounds a caller lookup.
	DefaultLocationTimeout = 10 * time.Second
)

// Operation names reported to the Observer.
const (
	OpSearch   = "search"
	OpFeatured = "featured"
	OpSimilar  = "similar"
)

// Service runs the fetch, filter, rank and truncate pipeline.
type Service struct {
	repo            Repository
	ranker          *ranking.Ranker
	locator         Locator
	locationTimeout time.Duration
	homeRadiusKm    float64
	observer        Observer
	logger          *zap.Logger
}

// New creates a search service. A nil ranker uses the default weights.
func New(repo Repository, ranker *ranking.Ranker, logger *zap.Logger) *Service {
	if ranker == nil {
		ranker = ranking.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:            repo,
		ranker:          ranker,
		locationTimeout: DefaultLocationTimeout,
		observer:        nopObserver{},
		logger:          logger,
	}
}

// WithLocator enables caller lookup for requests that ask for it.
func (s *Service) WithLocator(l Locator, timeout time.Duration) *Service {
	s.locator = l
	if timeout > 0 {
		s.locationTimeout = timeout
	}
	return s
}

// WithHomeRadius sets the radius applied when the caller was located and
// the request carries no radius of its own. 0 disables it.
func (s *Service) WithHomeRadius(km float64) *Service {
	if km >= 0 {
		s.homeRadiusKm = km
	}
	return s
}

// WithObserver attaches a metrics observer.
func (s *Service) WithObserver(o Observer) *Service {
	if o != nil {
		s.observer = o
	}
	return s
}

// Ranker returns the ranker in use.
func (s *Service) Ranker() *ranking.Ranker { return s.ranker }

// Search returns ranked businesses for req.
func (s *Service) Search(ctx context.Context, req *request.Request) ([]dombiz.Business, error) {
	coords := req.Coords()
	radius := req.RadiusKm()

	if coords == nil && req.LocateCaller() {
		if located, ok := s.locate(ctx); ok {
			coords = &located
			if radius == nil && s.homeRadiusKm > 0 {
				home := s.homeRadiusKm
				radius = &home
			}
		}
	}

	records, err := s.fetch(ctx, OpSearch, req.Filter(), 0)
	if err != nil {
		s.observer.SearchCompleted(OpSearch, 0, err)
		return nil, err
	}

	records = filterByText(records, req.Terms())
	if coords != nil && radius != nil {
		records = filterByRadius(records, *coords, *radius)
	}

	ranked := s.ranker.RankAndSort(records, coords, req.Terms())
	if req.Limit() > 0 && len(ranked) > req.Limit() {
		ranked = ranked[:req.Limit()]
	}

	s.observer.SearchCompleted(OpSearch, len(ranked), nil)
	return ranked, nil
}

// Featured returns the top featured businesses.
func (s *Service) Featured(ctx context.Context, coords *geo.Coordinates) ([]dombiz.Business, error) {
	expr := filter.Build(filter.Options{FeaturedOnly: true})
	records, err := s.fetch(ctx, OpFeatured, expr, FeaturedFetch)
	if err != nil {
		s.observer.SearchCompleted(OpFeatured, 0, err)
		return nil, err
	}

	ranked := truncate(s.ranker.RankAndSort(records, coords, nil), FeaturedLimit)
	s.observer.SearchCompleted(OpFeatured, len(ranked), nil)
	return ranked, nil
}

// Similar returns other businesses in the same category as id. A business
// without a category is matched against the other uncategorised listings.
// limit <= 0 uses SimilarLimit.
func (s *Service) Similar(
	ctx context.Context, id, categoryID string, coords *geo.Coordinates, limit int,
) ([]dombiz.Business, error) {
	if limit <= 0 {
		limit = SimilarLimit
	}

	// an empty tag cannot be pushed down, so uncategorised rows are picked in memory
	fetchLimit := SimilarFetch
	if categoryID == "" {
		fetchLimit = 0
	}
	expr := filter.Build(filter.Options{CategoryID: categoryID})
	records, err := s.fetch(ctx, OpSimilar, expr, fetchLimit)
	if err != nil {
		s.observer.SearchCompleted(OpSimilar, 0, err)
		return nil, err
	}

	others := records[:0]
	for i := range records {
		if records[i].ID == id || records[i].CategoryID != categoryID {
			continue
		}
		others = append(others, records[i])
		if len(others) == SimilarFetch {
			break
		}
	}

	ranked := truncate(s.ranker.RankAndSort(others, coords, nil), limit)
	s.observer.SearchCompleted(OpSimilar, len(ranked), nil)
	return ranked, nil
}

func (s *Service) fetch(
	ctx context.Context, op string, expr filter.Expression, limit int,
) ([]dombiz.Business, error) {
	records, err := s.repo.Fetch(ctx, expr, limit)
	if err != nil {
		s.observer.BackendError(op)
		s.logger.Error("Business fetch failed", zap.String("operation", op), zap.Error(err))
		return nil, fmt.Errorf("fetch businesses: %w: %w", domain.ErrBackendUnavailable, err)
	}
	return records, nil
}

// locate resolves the caller position; failure degrades to no coordinates.
func (s *Service) locate(ctx context.Context) (geo.Coordinates, bool) {
	if s.locator == nil {
		s.observer.LocationFallback()
		return geo.Coordinates{}, false
	}

	lctx, cancel := context.WithTimeout(ctx, s.locationTimeout)
	defer cancel()

	c, err := s.locator.Locate(lctx)
	if err != nil {
		s.observer.LocationFallback()
		s.logger.Warn("Caller location unavailable, ranking without distance", zap.Error(err))
		return geo.Coordinates{}, false
	}
	return c, true
}

func filterByText(records []dombiz.Business, terms []string) []dombiz.Business {
	if len(terms) == 0 {
		return records
	}
	out := records[:0]
	for i := range records {
		if text.AllTermsPresent(&records[i], terms) {
			out = append(out, records[i])
		}
	}
	return out
}

// filterByRadius keeps located records within radiusKm of coords and
// attaches their distance. Unlocated records never qualify.
func filterByRadius(records []dombiz.Business, coords geo.Coordinates, radiusKm float64) []dombiz.Business {
	out := records[:0]
	for i := range records {
		b := records[i]
		if !b.HasLocation() {
			continue
		}
		d := geo.DistanceKm(coords, b.Location())
		if !(d <= radiusKm) {
			continue
		}
		b.DistanceKm = &d
		out = append(out, b)
	}
	return out
}

func truncate(records []dombiz.Business, n int) []dombiz.Business {
	if len(records) > n {
		return records[:n]
	}
	return records
}
