// Package business defines the business record the ranking engine operates on.
package business

import (
	"fmt"
	"regexp"
	"time"

	"github.com/kailas-cloud/bizdex/internal/domain/geo"
)

var (
	idRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	// reservedIDs collide with fixed routes under /businesses.
	reservedIDs = map[string]bool{"search": true, "featured": true, "batch": true}
)

// MaxRating is the upper bound of the rating scale.
const MaxRating = 5.0

// Business is a single directory listing.
//
// DistanceKm and Score are derived per query and are never persisted.
type Business struct {
	ID          string
	Name        string
	Category    string
	CategoryID  string
	Description string
	City        string
	Address     string

	Lat float64
	Lng float64

	IsVerified bool
	IsFeatured bool
	IsPremium  bool
	IsRemote   bool

	Rating            float64
	ReviewCount       int
	YearsOfExperience int

	Images []string

	Phone   string
	Email   string
	Website string

	OwnerID   string
	CreatedAt time.Time
	UpdatedAt time.Time

	DistanceKm *float64
	Score      *float64
}

// HasLocation reports whether the record carries a real position.
func (b *Business) HasLocation() bool {
	return b.Lat != 0 || b.Lng != 0
}

// Location returns the record position.
func (b *Business) Location() geo.Coordinates {
	return geo.Coordinates{Lat: b.Lat, Lng: b.Lng}
}

// Clone returns a copy that shares no mutable state with b.
func (b *Business) Clone() Business {
	c := *b
	if b.Images != nil {
		c.Images = append([]string(nil), b.Images...)
	}
	if b.DistanceKm != nil {
		d := *b.DistanceKm
		c.DistanceKm = &d
	}
	if b.Score != nil {
		s := *b.Score
		c.Score = &s
	}
	return c
}

// WithoutDerived drops the request-scoped fields.
func (b *Business) WithoutDerived() Business {
	c := b.Clone()
	c.DistanceKm = nil
	c.Score = nil
	return c
}

// ValidateID checks id format: ^[a-zA-Z0-9_-]+$, 1-256 chars, not reserved.
func ValidateID(id string) error {
	if id == "" {
		return fmt.Errorf("business ID is required")
	}
	if len(id) > 256 {
		return fmt.Errorf("business ID too long (max 256)")
	}
	if !idRegex.MatchString(id) {
		return fmt.Errorf("business ID must be alphanumeric with underscores and hyphens")
	}
	if reservedIDs[id] {
		return fmt.Errorf("business ID %q is reserved", id)
	}
	return nil
}
