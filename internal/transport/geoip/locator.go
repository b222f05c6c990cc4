package geoip

import (
	"context"
	"fmt"
	"net/http"

	"github.com/kailas-cloud/bizdex/internal/domain"
	"github.com/kailas-cloud/bizdex/internal/domain/geo"
)

type ctxKey struct{}

// WithClientIP stores the caller's address in ctx.
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, ctxKey{}, ip)
}

// ClientIPFromContext returns the address stored by WithClientIP.
func ClientIPFromContext(ctx context.Context) (string, bool) {
	ip, ok := ctx.Value(ctxKey{}).(string)
	return ip, ok && ip != ""
}

// ClientIPMiddleware records r.RemoteAddr for Locator. Mount it after
// chi's RealIP so proxies are honoured.
func ClientIPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(WithClientIP(r.Context(), r.RemoteAddr)))
	})
}

// resolver turns an address into coordinates. Satisfied by *Reader and
// the location cache.
type resolver interface {
	Lookup(ctx context.Context, ip string) (geo.Coordinates, error)
}

// Locator resolves the coordinates of the caller attached to a context.
type Locator struct {
	resolver resolver
}

// NewLocator creates a Locator.
func NewLocator(r resolver) *Locator {
	return &Locator{resolver: r}
}

// Locate returns the caller's coordinates or domain.ErrLocationUnavailable.
func (l *Locator) Locate(ctx context.Context) (geo.Coordinates, error) {
	ip, ok := ClientIPFromContext(ctx)
	if !ok {
		return geo.Coordinates{}, fmt.Errorf("no client ip in context: %w", domain.ErrLocationUnavailable)
	}
	c, err := l.resolver.Lookup(ctx, ip)
	if err != nil {
		return geo.Coordinates{}, fmt.Errorf("locate %s: %w", ip, err)
	}
	return c, nil
}
