package business

import (
	"strings"
	"testing"
)

func fullProfile() Business {
	return Business{
		Name:              "Sandton Legal Group",
		Description:       strings.Repeat("x", 31),
		Phone:             "+27 11 123 4567",
		Email:             "info@sandtonlegal.co.za",
		Website:           "https://sandtonlegal.co.za",
		Address:           "15 Alice Lane, Sandton",
		City:              "Johannesburg",
		Images:            []string{"a.jpg"},
		Lat:               -26.1067,
		Lng:               28.0567,
		YearsOfExperience: 14,
	}
}

func TestCompleteness_Full(t *testing.T) {
	b := fullProfile()
	if got := Completeness(&b); got != 1 {
		t.Errorf("Completeness = %v, want 1", got)
	}
}

func TestCompleteness_Empty(t *testing.T) {
	if got := Completeness(&Business{}); got != 0 {
		t.Errorf("Completeness = %v, want 0", got)
	}
}

func TestCompleteness_EachItemWorthOneTenth(t *testing.T) {
	tests := []struct {
		name  string
		strip func(b *Business)
	}{
		{"name", func(b *Business) { b.Name = "" }},
		{"description exactly 30", func(b *Business) { b.Description = strings.Repeat("x", 30) }},
		{"phone", func(b *Business) { b.Phone = "" }},
		{"email", func(b *Business) { b.Email = "" }},
		{"website", func(b *Business) { b.Website = "" }},
		{"address", func(b *Business) { b.Address = "" }},
		{"city", func(b *Business) { b.City = "" }},
		{"images", func(b *Business) { b.Images = []string{} }},
		{"location", func(b *Business) { b.Lat, b.Lng = 0, 0 }},
		{"experience", func(b *Business) { b.YearsOfExperience = 0 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := fullProfile()
			tc.strip(&b)
			if got := Completeness(&b); got != 0.9 {
				t.Errorf("Completeness = %v, want 0.9", got)
			}
		})
	}
}

func TestCompleteness_LatOnlyCountsAsLocated(t *testing.T) {
	b := fullProfile()
	b.Lng = 0
	if got := Completeness(&b); got != 1 {
		t.Errorf("Completeness = %v, want 1", got)
	}
}
