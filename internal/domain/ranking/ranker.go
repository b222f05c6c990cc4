package ranking

import (
	"sort"

	"github.com/kailas-cloud/bizdex/internal/domain/business"
	"github.com/kailas-cloud/bizdex/internal/domain/geo"
)

// Breakdown holds the five factor values behind a score.
type Breakdown struct {
	Rating       float64
	Experience   float64
	Completeness float64
	Distance     float64
	TextMatch    float64
	Total        float64
}

// Ranker computes composite scores with a fixed set of weights.
// It holds no mutable state and is safe for concurrent use.
type Ranker struct {
	w Weights
}

// New creates a Ranker. Invalid weights fall back to DefaultWeights.
func New(w Weights) *Ranker {
	if w.Validate() != nil {
		w = DefaultWeights()
	}
	return &Ranker{w: w}
}

// Default creates a Ranker with DefaultWeights.
func Default() *Ranker {
	return &Ranker{w: DefaultWeights()}
}

// Weights returns the weights in use.
func (r *Ranker) Weights() Weights { return r.w }

// Breakdown returns the factor values and weighted total for b.
// b.DistanceKm is read as-is; attach it first when coords are known.
func (r *Ranker) Breakdown(b *business.Business, coords *geo.Coordinates, terms []string) Breakdown {
	bd := Breakdown{
		Rating:       RatingFactor(b),
		Experience:   ExperienceFactor(b),
		Completeness: business.Completeness(b),
		Distance:     DistanceFactor(b, coords != nil),
		TextMatch:    TextFactor(b, terms),
	}
	bd.Total = bd.Rating*r.w.Rating +
		bd.Experience*r.w.Experience +
		bd.Completeness*r.w.Completeness +
		bd.Distance*r.w.Distance +
		bd.TextMatch*r.w.TextMatch
	bd.Total = clamp01(bd.Total)
	return bd
}

// Score returns the composite score of b in [0,1].
func (r *Ranker) Score(b *business.Business, coords *geo.Coordinates, terms []string) float64 {
	return r.Breakdown(b, coords, terms).Total
}

// RankAndSort returns copies of records with DistanceKm and Score attached,
// ordered by descending score. Equal scores keep their input order.
//
// With coords, every located record gets a fresh distance. Unlocated records
// keep whatever DistanceKm the caller supplied.
func (r *Ranker) RankAndSort(records []business.Business, coords *geo.Coordinates, terms []string) []business.Business {
	out := make([]business.Business, len(records))
	for i := range records {
		b := records[i].Clone()
		AttachDistance(&b, coords)
		s := r.Score(&b, coords, terms)
		b.Score = &s
		out[i] = b
	}
	sort.SliceStable(out, func(i, j int) bool {
		return *out[i].Score > *out[j].Score
	})
	return out
}

// AttachDistance sets b.DistanceKm relative to coords when both points are real.
func AttachDistance(b *business.Business, coords *geo.Coordinates) {
	if coords == nil || !b.HasLocation() {
		return
	}
	d := geo.DistanceKm(*coords, b.Location())
	b.DistanceKm = &d
}
