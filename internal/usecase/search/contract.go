package search

import (
	"context"

	dombiz "github.com/kailas-cloud/bizdex/internal/domain/business"
	"github.com/kailas-cloud/bizdex/internal/domain/geo"
	"github.com/kailas-cloud/bizdex/internal/domain/search/filter"
)

// Repository fetches candidate businesses by equality filter.
// limit 0 means all matches. Implementations must not pre-filter on text,
// radius or score.
type Repository interface {
	Fetch(ctx context.Context, expr filter.Expression, limit int) ([]dombiz.Business, error)
}

// Locator resolves the caller's position. Failures wrap
// domain.ErrLocationUnavailable.
type Locator interface {
	Locate(ctx context.Context) (geo.Coordinates, error)
}

// Observer receives search outcomes for metrics.
type Observer interface {
	SearchCompleted(operation string, results int, err error)
	BackendError(operation string)
	LocationFallback()
}

type nopObserver struct{}

func (nopObserver) SearchCompleted(string, int, error) {}
func (nopObserver) BackendError(string)                {}
func (nopObserver) LocationFallback()                  {}
