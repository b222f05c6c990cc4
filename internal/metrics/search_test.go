package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestSearchObserver(t *testing.T) {
	var o SearchObserver

	okBefore := testutil.ToFloat64(SearchesTotal.WithLabelValues("featured", "ok"))
	errBefore := testutil.ToFloat64(SearchesTotal.WithLabelValues("featured", "error"))
	backendBefore := testutil.ToFloat64(BackendErrorsTotal.WithLabelValues("featured"))
	fallbackBefore := testutil.ToFloat64(LocationFallbacksTotal)

	o.SearchCompleted("featured", 6, nil)
	o.SearchCompleted("featured", 0, errors.New("down"))
	o.BackendError("featured")
	o.LocationFallback()

	if d := testutil.ToFloat64(SearchesTotal.WithLabelValues("featured", "ok")) - okBefore; d != 1 {
		t.Errorf("ok delta = %v", d)
	}
	if d := testutil.ToFloat64(SearchesTotal.WithLabelValues("featured", "error")) - errBefore; d != 1 {
		t.Errorf("error delta = %v", d)
	}
	if d := testutil.ToFloat64(BackendErrorsTotal.WithLabelValues("featured")) - backendBefore; d != 1 {
		t.Errorf("backend delta = %v", d)
	}
	if d := testutil.ToFloat64(LocationFallbacksTotal) - fallbackBefore; d != 1 {
		t.Errorf("fallback delta = %v", d)
	}
	if testutil.CollectAndCount(SearchResults) == 0 {
		t.Error("expected search_results observations")
	}
}

func TestGuardStateChanged(t *testing.T) {
	GuardStateChanged("closed", "open")
	if v := testutil.ToFloat64(GuardStateChangesTotal.WithLabelValues("closed", "open")); v < 1 {
		t.Errorf("expected transition recorded, got %v", v)
	}
}

func TestRegister_Idempotent(t *testing.T) {
	RegisterSearchMetrics()
	RegisterSearchMetrics()
	RegisterHTTPMetrics()
	RegisterHTTPMetrics()
}
