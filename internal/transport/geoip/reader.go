// Package geoip resolves the caller's approximate coordinates from their IP
// address using a MaxMind-format MMDB database.
package geoip

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"strings"

	"github.com/oschwald/geoip2-golang"

	"github.com/kailas-cloud/bizdex/internal/domain"
	"github.com/kailas-cloud/bizdex/internal/domain/geo"
)

// cityLookup is the subset of *geoip2.Reader used here.
type cityLookup interface {
	City(ip net.IP) (*geoip2.City, error)
	Close() error
}

// Reader resolves IP addresses to coordinates.
type Reader struct {
	db   cityLookup
	path string
}

// Open loads an MMDB file. An empty path or a missing file yields a nil
// Reader and no error: location lookup is then disabled.
func Open(path string) (*Reader, error) {
	if path == "" {
		return nil, nil
	}
	db, err := geoip2.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || strings.Contains(err.Error(), "no such file") {
			return nil, nil
		}
		return nil, fmt.Errorf("open mmdb %s: %w", path, err)
	}
	return &Reader{db: db, path: path}, nil
}

// Lookup returns the coordinates recorded for ip. Private, malformed and
// unknown addresses give domain.ErrLocationUnavailable.
func (r *Reader) Lookup(ctx context.Context, ip string) (geo.Coordinates, error) {
	if r == nil || r.db == nil {
		return geo.Coordinates{}, fmt.Errorf("no geoip database: %w", domain.ErrLocationUnavailable)
	}
	if err := ctx.Err(); err != nil {
		return geo.Coordinates{}, fmt.Errorf("%w: %w", domain.ErrLocationUnavailable, err)
	}

	parsed := ParseIP(ip)
	if parsed == nil {
		return geo.Coordinates{}, fmt.Errorf("invalid ip %q: %w", ip, domain.ErrLocationUnavailable)
	}
	if isPrivateIP(parsed) {
		return geo.Coordinates{}, fmt.Errorf("private ip %s: %w", parsed, domain.ErrLocationUnavailable)
	}

	record, err := r.db.City(parsed)
	if err != nil {
		return geo.Coordinates{}, fmt.Errorf("lookup %s: %w: %w", parsed, domain.ErrLocationUnavailable, err)
	}

	c := geo.Coordinates{Lat: record.Location.Latitude, Lng: record.Location.Longitude}
	if !c.IsSet() || !c.Valid() {
		return geo.Coordinates{}, fmt.Errorf("no coordinates for %s: %w", parsed, domain.ErrLocationUnavailable)
	}
	return c, nil
}

// Loaded reports whether a database is open.
func (r *Reader) Loaded() bool {
	return r != nil && r.db != nil
}

// Path returns the database file path.
func (r *Reader) Path() string {
	if r == nil {
		return ""
	}
	return r.path
}

// Close closes the underlying database.
func (r *Reader) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

// ParseIP accepts "ip" or "ip:port".
func ParseIP(s string) net.IP {
	host, _, err := net.SplitHostPort(s)
	if err != nil {
		host = s
	}
	return net.ParseIP(strings.TrimSpace(host))
}

func isPrivateIP(ip net.IP) bool {
	return ip.IsLoopback() || ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast() ||
		ip.IsPrivate() || ip.IsUnspecified()
}
