package business

import (
	"strings"
	"testing"
)

func TestValidateID(t *testing.T) {
	tests := []struct {
		id      string
		wantErr bool
	}{
		{"sandton-legal-group", false},
		{"abc_123", false},
		{"", true},
		{"has space", true},
		{"slash/id", true},
		{"search", true},
		{"featured", true},
		{"batch", true},
		{strings.Repeat("a", 257), true},
	}
	for _, tc := range tests {
		err := ValidateID(tc.id)
		if (err != nil) != tc.wantErr {
			t.Errorf("ValidateID(%q) err=%v, wantErr=%v", tc.id, err, tc.wantErr)
		}
	}
}

func TestClone_Independent(t *testing.T) {
	d, s := 3.0, 0.5
	b := Business{Images: []string{"a"}, DistanceKm: &d, Score: &s}
	c := b.Clone()
	c.Images[0] = "b"
	*c.DistanceKm = 9
	*c.Score = 1
	if b.Images[0] != "a" || *b.DistanceKm != 3 || *b.Score != 0.5 {
		t.Error("Clone shares state with the original")
	}
}

func TestWithoutDerived(t *testing.T) {
	d, s := 3.0, 0.5
	b := Business{ID: "x", DistanceKm: &d, Score: &s}
	c := b.WithoutDerived()
	if c.DistanceKm != nil || c.Score != nil {
		t.Error("derived fields must be dropped")
	}
	if b.DistanceKm == nil || b.Score == nil {
		t.Error("original must be untouched")
	}
}

func TestHasLocation(t *testing.T) {
	if (&Business{}).HasLocation() {
		t.Error("(0,0) must be unset")
	}
	if !(&Business{Lat: -26.1}).HasLocation() {
		t.Error("lat only must be set")
	}
}
