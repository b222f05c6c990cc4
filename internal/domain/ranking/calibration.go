package ranking

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Calibration is the YAML layout of a weights override file.
// Omitted weights keep their default value; an explicit 0 is honoured.
type Calibration struct {
	Version string             `yaml:"version"`
	Weights CalibrationWeights `yaml:"weights"`
}

// CalibrationWeights holds optional per-factor overrides.
type CalibrationWeights struct {
	Rating       *float64 `yaml:"rating"`
	Experience   *float64 `yaml:"experience"`
	Completeness *float64 `yaml:"completeness"`
	Distance     *float64 `yaml:"distance"`
	TextMatch    *float64 `yaml:"text_match"`
}

// LoadCalibration reads weights from a YAML file and merges them over the defaults.
// An empty path yields the defaults. On any error the defaults are returned with it.
func LoadCalibration(path string, logger *zap.Logger) (Weights, error) {
	defaults := DefaultWeights()
	if path == "" {
		return defaults, nil
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		logger.Warn("Failed to read ranking calibration, using defaults",
			zap.String("path", path), zap.Error(err))
		return defaults, fmt.Errorf("read calibration: %w", err)
	}

	var cal Calibration
	if err := yaml.Unmarshal(data, &cal); err != nil {
		logger.Warn("Failed to parse ranking calibration, using defaults",
			zap.String("path", path), zap.Error(err))
		return defaults, fmt.Errorf("parse calibration: %w", err)
	}

	merged := Merge(defaults, cal.Weights)
	if err := merged.Validate(); err != nil {
		logger.Warn("Invalid ranking calibration, using defaults",
			zap.String("path", path), zap.Error(err))
		return defaults, fmt.Errorf("invalid calibration: %w", err)
	}

	logOverrides(logger, defaults, merged, cal.Version)
	return merged, nil
}

// Merge applies the set overrides to base.
func Merge(base Weights, o CalibrationWeights) Weights {
	if o.Rating != nil {
		base.Rating = *o.Rating
	}
	if o.Experience != nil {
		base.Experience = *o.Experience
	}
	if o.Completeness != nil {
		base.Completeness = *o.Completeness
	}
	if o.Distance != nil {
		base.Distance = *o.Distance
	}
	if o.TextMatch != nil {
		base.TextMatch = *o.TextMatch
	}
	return base
}

func logOverrides(logger *zap.Logger, defaults, loaded Weights, version string) {
	var overrides []string
	add := func(name string, from, to float64) {
		if from != to {
			overrides = append(overrides, fmt.Sprintf("%s: %.2f -> %.2f", name, from, to))
		}
	}
	add("rating", defaults.Rating, loaded.Rating)
	add("experience", defaults.Experience, loaded.Experience)
	add("completeness", defaults.Completeness, loaded.Completeness)
	add("distance", defaults.Distance, loaded.Distance)
	add("text_match", defaults.TextMatch, loaded.TextMatch)

	if len(overrides) == 0 {
		logger.Info("Ranking calibration matches defaults", zap.String("version", version))
		return
	}
	logger.Info("Loaded ranking calibration",
		zap.String("version", version),
		zap.Strings("overrides", overrides),
	)
}
