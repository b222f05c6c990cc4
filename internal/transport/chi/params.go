package chi

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/oapi-codegen/runtime"

	"github.com/kailas-cloud/bizdex/internal/domain/geo"
	"github.com/kailas-cloud/bizdex/internal/domain/search/request"
)

// searchQuery holds the optional query parameters of GET /businesses/search.
type searchQuery struct {
	CategoryID *string
	Q          *string
	Lat        *float64
	Lng        *float64
	RadiusKm   *float64
	RemoteOnly *bool
	Limit      *int
	Locate     *bool
}

func bindOptional(q url.Values, name string, dest any) error {
	if err := runtime.BindQueryParameter("form", true, false, name, q, dest); err != nil {
		return fmt.Errorf("invalid %s: %w", name, err)
	}
	return nil
}

func bindSearchQuery(q url.Values) (searchQuery, error) {
	var sq searchQuery
	binds := []struct {
		name string
		dest any
	}{
		{"categoryId", &sq.CategoryID},
		{"q", &sq.Q},
		{"lat", &sq.Lat},
		{"lng", &sq.Lng},
		{"radiusKm", &sq.RadiusKm},
		{"remoteOnly", &sq.RemoteOnly},
		{"limit", &sq.Limit},
		{"locate", &sq.Locate},
	}
	for _, b := range binds {
		if err := bindOptional(q, b.name, b.dest); err != nil {
			return searchQuery{}, err
		}
	}
	return sq, nil
}

// params converts the bound query into search parameters. defaultLimit
// applies when limit is absent.
func (sq *searchQuery) params(defaultLimit int) (request.Params, error) {
	coords, err := coordsOf(sq.Lat, sq.Lng)
	if err != nil {
		return request.Params{}, err
	}
	p := request.Params{
		CategoryID:   deref(sq.CategoryID),
		Query:        deref(sq.Q),
		Coords:       coords,
		RadiusKm:     sq.RadiusKm,
		RemoteOnly:   deref(sq.RemoteOnly),
		Limit:        defaultLimit,
		LocateCaller: deref(sq.Locate),
	}
	if sq.Limit != nil {
		p.Limit = *sq.Limit
	}
	return p, nil
}

// bindCoords reads the optional lat/lng pair.
func bindCoords(q url.Values) (*geo.Coordinates, error) {
	var lat, lng *float64
	if err := bindOptional(q, "lat", &lat); err != nil {
		return nil, err
	}
	if err := bindOptional(q, "lng", &lng); err != nil {
		return nil, err
	}
	return coordsOf(lat, lng)
}

func bindLimit(q url.Values) (int, error) {
	var limit *int
	if err := bindOptional(q, "limit", &limit); err != nil {
		return 0, err
	}
	if limit == nil {
		return 0, nil
	}
	if *limit < 1 || *limit > request.MaxLimit {
		return 0, fmt.Errorf("limit must be between 1 and %d", request.MaxLimit)
	}
	return *limit, nil
}

func coordsOf(lat, lng *float64) (*geo.Coordinates, error) {
	if lat == nil && lng == nil {
		return nil, nil
	}
	if lat == nil || lng == nil {
		return nil, errors.New("lat and lng must be provided together")
	}
	c := geo.Coordinates{Lat: *lat, Lng: *lng}
	if !c.Valid() {
		return nil, errors.New("coordinates out of range")
	}
	return &c, nil
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
