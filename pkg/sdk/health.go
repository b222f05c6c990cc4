package bizdex

import (
	"context"

	healthuc "github.com/kailas-cloud/bizdex/internal/usecase/health"
)

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}

// HealthStatus is the outcome of Client.Health. Status is "ok", "degraded"
// (search breaker open) or "error" (database unreachable); Checks maps each
// probed component to "ok", "error" or "disabled".
type HealthStatus struct {
	Status string
	Checks map[string]string
}

// OK reports whether the client can serve searches.
func (h HealthStatus) OK() bool {
	return h.Status == string(healthuc.Healthy)
}

// Health probes the database and the search circuit breaker.
func (c *Client) Health(ctx context.Context) HealthStatus {
	report := c.healthSvc.Check(ctx)
	h := HealthStatus{
		Status: string(report.Status),
		Checks: make(map[string]string, len(report.Checks)),
	}
	for component, result := range report.Checks {
		h.Checks[component] = string(result)
	}
	return h
}
