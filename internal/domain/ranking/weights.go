// Package ranking scores business records with a weighted composite of
// rating, experience, profile completeness, distance and text match, and
// orders them by that score.
package ranking

import (
	"fmt"
	"math"
)

// Policy constants of the distance and experience factors.
const (
	// RemoteDistanceScore is the fixed distance factor of remote-capable businesses.
	RemoteDistanceScore = 0.85
	// NeutralDistanceScore applies when distance cannot be computed.
	NeutralDistanceScore = 0.5
	// DistanceDecayKm is where the linear distance decay reaches zero.
	DistanceDecayKm = 50.0
	// ExperienceCapYears saturates the experience factor.
	ExperienceCapYears = 20
)

const weightSumTolerance = 1e-9

// Weights are the factor weights of the composite score. They sum to 1.
type Weights struct {
	Rating       float64 `yaml:"rating"`
	Experience   float64 `yaml:"experience"`
	Completeness float64 `yaml:"completeness"`
	Distance     float64 `yaml:"distance"`
	TextMatch    float64 `yaml:"text_match"`
}

// DefaultWeights returns the production weighting:
// 0.25 rating, 0.15 experience, 0.20 completeness, 0.30 distance, 0.10 text.
func DefaultWeights() Weights {
	return Weights{
		Rating:       0.25,
		Experience:   0.15,
		Completeness: 0.20,
		Distance:     0.30,
		TextMatch:    0.10,
	}
}

// Sum returns the total of all weights.
func (w Weights) Sum() float64 {
	return w.Rating + w.Experience + w.Completeness + w.Distance + w.TextMatch
}

// Validate checks each weight is in [0,1] and that they sum to 1.
func (w Weights) Validate() error {
	named := []struct {
		name string
		v    float64
	}{
		{"rating", w.Rating},
		{"experience", w.Experience},
		{"completeness", w.Completeness},
		{"distance", w.Distance},
		{"text_match", w.TextMatch},
	}
	for _, n := range named {
		if math.IsNaN(n.v) || n.v < 0 || n.v > 1 {
			return fmt.Errorf("weight %s must be in [0,1], got %v", n.name, n.v)
		}
	}
	if sum := w.Sum(); math.Abs(sum-1) > weightSumTolerance {
		return fmt.Errorf("weights must sum to 1, got %v", sum)
	}
	return nil
}
