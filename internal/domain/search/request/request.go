package request

import (
	"fmt"

	"github.com/kailas-cloud/bizdex/internal/domain/geo"
	"github.com/kailas-cloud/bizdex/internal/domain/search/filter"
	"github.com/kailas-cloud/bizdex/internal/domain/search/text"
)

// Search parameter limits.
const (
	// MaxQueryLength is the maximum allowed search query length.
	MaxQueryLength = 512
	// MaxLimit caps the number of returned results.
	MaxLimit = 100
)

// Params are the raw, optional inputs of a search.
type Params struct {
	CategoryID   string
	Query        string
	Coords       *geo.Coordinates
	RadiusKm     *float64
	RemoteOnly   bool
	Limit        int // 0 = no truncation
	LocateCaller bool
}

// Request is a validated search query.
type Request struct {
	categoryID   string
	query        string
	terms        []string
	coords       *geo.Coordinates
	radiusKm     *float64
	remoteOnly   bool
	limit        int
	locateCaller bool
}

// New validates search parameters. Coordinates are copied.
func New(p Params) (Request, error) {
	if len(p.Query) > MaxQueryLength {
		return Request{}, fmt.Errorf("query too long (max %d chars)", MaxQueryLength)
	}
	if p.RadiusKm != nil && *p.RadiusKm <= 0 {
		return Request{}, fmt.Errorf("radiusKm must be positive")
	}
	if p.Limit < 0 || p.Limit > MaxLimit {
		return Request{}, fmt.Errorf("limit must be between 0 and %d", MaxLimit)
	}
	if p.Coords != nil && !p.Coords.Valid() {
		return Request{}, fmt.Errorf("coordinates out of range")
	}

	r := Request{
		categoryID:   p.CategoryID,
		query:        p.Query,
		terms:        text.Tokenize(p.Query),
		remoteOnly:   p.RemoteOnly,
		limit:        p.Limit,
		locateCaller: p.LocateCaller,
	}
	if p.Coords != nil {
		c := *p.Coords
		r.coords = &c
	}
	if p.RadiusKm != nil {
		km := *p.RadiusKm
		r.radiusKm = &km
	}
	return r, nil
}

// CategoryID returns the category equality filter, empty if unset.
func (r *Request) CategoryID() string { return r.categoryID }

// Query returns the raw query text.
func (r *Request) Query() string { return r.query }

// Terms returns the tokenized query.
func (r *Request) Terms() []string { return r.terms }

// Coords returns the caller coordinates, nil if unknown.
func (r *Request) Coords() *geo.Coordinates { return r.coords }

// RadiusKm returns the hard distance cutoff, nil if unset.
func (r *Request) RadiusKm() *float64 { return r.radiusKm }

// RemoteOnly reports whether only remote-capable businesses are wanted.
func (r *Request) RemoteOnly() bool { return r.remoteOnly }

// Limit returns the truncation size; 0 means no truncation.
func (r *Request) Limit() int { return r.limit }

// LocateCaller reports whether the caller's position should be resolved
// when Coords is absent.
func (r *Request) LocateCaller() bool { return r.locateCaller }

// WithCoords returns a copy of r with the given coordinates.
func (r *Request) WithCoords(c *geo.Coordinates) Request {
	out := *r
	out.coords = nil
	if c != nil {
		cc := *c
		out.coords = &cc
	}
	return out
}

// Filter returns the coarse equality filter pushed down to storage.
func (r *Request) Filter() filter.Expression {
	return filter.Build(filter.Options{CategoryID: r.categoryID, RemoteOnly: r.remoteOnly})
}
