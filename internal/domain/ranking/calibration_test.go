package ranking

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func writeCalibration(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "weights.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write calibration: %v", err)
	}
	return path
}

func TestLoadCalibration_EmptyPath(t *testing.T) {
	w, err := LoadCalibration("", zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w != DefaultWeights() {
		t.Errorf("expected defaults, got %+v", w)
	}
}

func TestLoadCalibration_Overrides(t *testing.T) {
	path := writeCalibration(t, `
version: "2026-10"
weights:
  distance: 0.20
  text_match: 0.20
`)
	w, err := LoadCalibration(path, zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.Distance != 0.20 || w.TextMatch != 0.20 {
		t.Errorf("overrides not applied: %+v", w)
	}
	if w.Rating != 0.25 {
		t.Errorf("expected untouched rating 0.25, got %v", w.Rating)
	}
}

func TestLoadCalibration_ExplicitZero(t *testing.T) {
	path := writeCalibration(t, `
weights:
  text_match: 0
  rating: 0.35
`)
	w, err := LoadCalibration(path, zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.TextMatch != 0 || w.Rating != 0.35 {
		t.Errorf("unexpected weights: %+v", w)
	}
}

func TestLoadCalibration_Errors(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(t.TempDir(), "nope.yaml")},
		{"bad yaml", writeCalibration(t, "weights: [")},
		{"bad sum", writeCalibration(t, "weights:\n  rating: 0.9\n")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := LoadCalibration(tt.path, zap.NewNop())
			if err == nil {
				t.Fatal("expected error")
			}
			if w != DefaultWeights() {
				t.Errorf("expected defaults on error, got %+v", w)
			}
		})
	}
}
