package bizdex

import (
	"time"

	dombatch "github.com/kailas-cloud/bizdex/internal/domain/batch"
	dombiz "github.com/kailas-cloud/bizdex/internal/domain/business"
	"github.com/kailas-cloud/bizdex/internal/domain/business/patch"
	"github.com/kailas-cloud/bizdex/internal/domain/geo"
	"github.com/kailas-cloud/bizdex/internal/domain/ranking"
)

// Coordinates is a WGS84 position in decimal degrees.
type Coordinates struct {
	Lat float64
	Lng float64
}

// Business is a directory listing. DistanceKm and Score are set only on
// search results.
type Business struct {
	ID                string
	Name              string
	Category          string
	CategoryID        string
	Description       string
	City              string
	Address           string
	Lat               float64
	Lng               float64
	IsVerified        bool
	IsFeatured        bool
	IsPremium         bool
	IsRemote          bool
	Rating            float64
	ReviewCount       int
	YearsOfExperience int
	Images            []string
	Phone             string
	Email             string
	Website           string
	OwnerID           string
	CreatedAt         time.Time
	UpdatedAt         time.Time

	DistanceKm *float64
	Score      *float64
}

// DistanceLabel renders DistanceKm for display ("850 m away"), or ""
// when unknown.
func (b *Business) DistanceLabel() string {
	if b.DistanceKm == nil {
		return ""
	}
	return geo.FormatDistance(*b.DistanceKm)
}

// BusinessPatch is a partial update. Nil fields are unchanged.
type BusinessPatch struct {
	Name              *string
	Category          *string
	CategoryID        *string
	Description       *string
	City              *string
	Address           *string
	Lat               *float64
	Lng               *float64
	IsVerified        *bool
	IsFeatured        *bool
	IsPremium         *bool
	IsRemote          *bool
	Rating            *float64
	ReviewCount       *int
	YearsOfExperience *int
	Images            *[]string
	Phone             *string
	Email             *string
	Website           *string
}

// SearchParams are the optional inputs of a search. The zero value
// returns every business ranked without location.
type SearchParams struct {
	CategoryID string
	Query      string
	Near       *Coordinates
	RadiusKm   *float64
	RemoteOnly bool
	Limit      int // 0 = all
}

// Weights are the ranking factor weights. They must sum to 1.
type Weights struct {
	Rating       float64
	Experience   float64
	Completeness float64
	Distance     float64
	TextMatch    float64
}

// DefaultWeights returns the production weighting.
func DefaultWeights() Weights {
	return fromRankingWeights(ranking.DefaultWeights())
}

// ScoreBreakdown shows the factor values behind a score.
type ScoreBreakdown struct {
	Rating       float64
	Experience   float64
	Completeness float64
	Distance     float64
	TextMatch    float64
	Total        float64
}

// Explanation pairs a ranked business with its score breakdown.
type Explanation struct {
	Business  Business
	Breakdown ScoreBreakdown
}

// BatchResult is the outcome of one item in an import.
type BatchResult struct {
	ID  string
	OK  bool
	Err error
}

// Float returns a pointer to v.
func Float(v float64) *float64 { return &v }

func (c *Coordinates) toGeo() *geo.Coordinates {
	if c == nil {
		return nil
	}
	return &geo.Coordinates{Lat: c.Lat, Lng: c.Lng}
}

func (w Weights) toRanking() ranking.Weights {
	return ranking.Weights{
		Rating:       w.Rating,
		Experience:   w.Experience,
		Completeness: w.Completeness,
		Distance:     w.Distance,
		TextMatch:    w.TextMatch,
	}
}

func fromRankingWeights(w ranking.Weights) Weights {
	return Weights{
		Rating:       w.Rating,
		Experience:   w.Experience,
		Completeness: w.Completeness,
		Distance:     w.Distance,
		TextMatch:    w.TextMatch,
	}
}

func fromBreakdown(bd ranking.Breakdown) ScoreBreakdown {
	return ScoreBreakdown{
		Rating:       bd.Rating,
		Experience:   bd.Experience,
		Completeness: bd.Completeness,
		Distance:     bd.Distance,
		TextMatch:    bd.TextMatch,
		Total:        bd.Total,
	}
}

func toInternalBusiness(b *Business) dombiz.Business {
	return dombiz.Business{
		ID:                b.ID,
		Name:              b.Name,
		Category:          b.Category,
		CategoryID:        b.CategoryID,
		Description:       b.Description,
		City:              b.City,
		Address:           b.Address,
		Lat:               b.Lat,
		Lng:               b.Lng,
		IsVerified:        b.IsVerified,
		IsFeatured:        b.IsFeatured,
		IsPremium:         b.IsPremium,
		IsRemote:          b.IsRemote,
		Rating:            b.Rating,
		ReviewCount:       b.ReviewCount,
		YearsOfExperience: b.YearsOfExperience,
		Images:            b.Images,
		Phone:             b.Phone,
		Email:             b.Email,
		Website:           b.Website,
		OwnerID:           b.OwnerID,
		CreatedAt:         b.CreatedAt,
		UpdatedAt:         b.UpdatedAt,
	}
}

func fromInternalBusiness(b *dombiz.Business) Business {
	return Business{
		ID:                b.ID,
		Name:              b.Name,
		Category:          b.Category,
		CategoryID:        b.CategoryID,
		Description:       b.Description,
		City:              b.City,
		Address:           b.Address,
		Lat:               b.Lat,
		Lng:               b.Lng,
		IsVerified:        b.IsVerified,
		IsFeatured:        b.IsFeatured,
		IsPremium:         b.IsPremium,
		IsRemote:          b.IsRemote,
		Rating:            b.Rating,
		ReviewCount:       b.ReviewCount,
		YearsOfExperience: b.YearsOfExperience,
		Images:            b.Images,
		Phone:             b.Phone,
		Email:             b.Email,
		Website:           b.Website,
		OwnerID:           b.OwnerID,
		CreatedAt:         b.CreatedAt,
		UpdatedAt:         b.UpdatedAt,
		DistanceKm:        b.DistanceKm,
		Score:             b.Score,
	}
}

func fromInternalList(bs []dombiz.Business) []Business {
	out := make([]Business, len(bs))
	for i := range bs {
		out[i] = fromInternalBusiness(&bs[i])
	}
	return out
}

func toInternalPatch(p *BusinessPatch) patch.Patch {
	return patch.Patch{
		Name:        p.Name,
		Category:    p.Category,
		CategoryID:  p.CategoryID,
		Description: p.Description,
		City:        p.City,
		Address:     p.Address,
		Lat:         p.Lat,
		Lng:         p.Lng,
		IsVerified:  p.IsVerified,
		IsFeatured:  p.IsFeatured,
		IsPremium:   p.IsPremium,
		IsRemote:    p.IsRemote,
		Rating:      p.Rating,
		ReviewCount: p.ReviewCount,
		Years:       p.YearsOfExperience,
		Images:      p.Images,
		Phone:       p.Phone,
		Email:       p.Email,
		Website:     p.Website,
	}
}

func fromBatchResults(results []dombatch.Result) []BatchResult {
	out := make([]BatchResult, len(results))
	for i, r := range results {
		out[i] = BatchResult{
			ID:  r.ID(),
			OK:  r.Status() == dombatch.StatusOK,
			Err: r.Err(),
		}
	}
	return out
}
