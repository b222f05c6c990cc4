package ranking

import (
	"github.com/kailas-cloud/bizdex/internal/domain/business"
	"github.com/kailas-cloud/bizdex/internal/domain/search/text"
)

// RatingFactor is rating/5.
func RatingFactor(b *business.Business) float64 {
	return clamp01(b.Rating / business.MaxRating)
}

// ExperienceFactor is min(years, 20)/20.
func ExperienceFactor(b *business.Business) float64 {
	years := min(b.YearsOfExperience, ExperienceCapYears)
	if years < 0 {
		years = 0
	}
	return float64(years) / ExperienceCapYears
}

// DistanceFactor scores proximity. Remote businesses get a fixed 0.85.
// With caller coordinates and a known distance it decays linearly to 0 at 50 km.
// Otherwise it is the neutral 0.5.
func DistanceFactor(b *business.Business, hasCoords bool) float64 {
	if b.IsRemote {
		return RemoteDistanceScore
	}
	if hasCoords && b.DistanceKm != nil {
		return max(0, 1-*b.DistanceKm/DistanceDecayKm)
	}
	return NeutralDistanceScore
}

// TextFactor is the fraction of query terms present; 1 with no query.
func TextFactor(b *business.Business, terms []string) float64 {
	return text.MatchFraction(b, terms)
}

func clamp01(v float64) float64 {
	switch {
	case v < 0 || v != v:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
