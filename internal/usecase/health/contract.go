package health

import "context"

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// LocationChecker reports whether an IP geolocation database is open.
type LocationChecker interface {
	Loaded() bool
}

// BreakerReporter exposes the state of the circuit breaker guarding
// search fetches: "closed", "half-open" or "open".
type BreakerReporter interface {
	State() string
}
