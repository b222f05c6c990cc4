package health

import (
	"context"
	"time"
)

// Status is the overall verdict served by GET /health.
type Status string

const (
	// Healthy means every required component answered.
	Healthy Status = "ok"
	// Degraded means storage answers but searches are being shed.
	Degraded Status = "degraded"
	// Unhealthy means the database is unreachable.
	Unhealthy Status = "error"
)

// CheckResult is the outcome of a single component probe.
type CheckResult string

const (
	CheckOK       CheckResult = "ok"
	CheckError    CheckResult = "error"
	CheckDisabled CheckResult = "disabled"
)

// Component names used as Report.Checks keys.
const (
	ComponentDatabase = "database"
	ComponentBreaker  = "search_breaker"
	ComponentGeoIP    = "geoip"
)

// pingTimeout bounds the database probe so a hung backend cannot stall /health.
const pingTimeout = 2 * time.Second

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// worsen lowers the overall status to s unless it is already lower.
func (r *Report) worsen(s Status) {
	if r.Status == Unhealthy {
		return
	}
	if s == Unhealthy || r.Status == Healthy {
		r.Status = s
	}
}

// Service probes the components a search depends on.
type Service struct {
	db       DBPinger
	location LocationChecker
	breaker  BreakerReporter
}

// New creates a Service that only checks the database.
func New(db DBPinger) *Service {
	return &Service{db: db}
}

// WithLocation reports IP geolocation. A closed database shows as
// "disabled" and never lowers the status.
func (s *Service) WithLocation(l LocationChecker) *Service {
	s.location = l
	return s
}

// WithBreaker reports the search circuit breaker. An open breaker degrades
// the service.
func (s *Service) WithBreaker(b BreakerReporter) *Service {
	s.breaker = b
	return s
}

// Check runs every configured probe.
func (s *Service) Check(ctx context.Context) Report {
	r := Report{Status: Healthy, Checks: make(map[string]CheckResult, 3)}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := s.db.Ping(pingCtx); err != nil {
		r.Checks[ComponentDatabase] = CheckError
		r.worsen(Unhealthy)
	} else {
		r.Checks[ComponentDatabase] = CheckOK
	}

	if s.breaker != nil {
		if s.breaker.State() == "open" {
			r.Checks[ComponentBreaker] = CheckError
			r.worsen(Degraded)
		} else {
			r.Checks[ComponentBreaker] = CheckOK
		}
	}

	if s.location != nil {
		r.Checks[ComponentGeoIP] = CheckDisabled
		if s.location.Loaded() {
			r.Checks[ComponentGeoIP] = CheckOK
		}
	}

	return r
}
