package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCollectorCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordEvent("open-blog")
	c.RecordEvent("open-blog")
	c.RecordTransition("VIEWING")
	c.RecordNameFetch(true)
	c.RecordNameFetch(false)
	c.RecordCredentialOp("get", "found")

	if got := testutil.ToFloat64(c.events.WithLabelValues("open-blog")); got != 2 {
		t.Errorf("events{open-blog} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.transitions.WithLabelValues("VIEWING")); got != 1 {
		t.Errorf("transitions{VIEWING} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.nameFetches.WithLabelValues("failure")); got != 1 {
		t.Errorf("nameFetches{failure} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.credentialOps.WithLabelValues("get", "found")); got != 1 {
		t.Errorf("credentialOps{get,found} = %v, want 1", got)
	}
}

func TestHandlerExposesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordEvent("night-shift")

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `ghostdesk_events_total{event="night-shift"} 1`) {
		t.Errorf("metrics output missing events counter:\n%s", rec.Body.String())
	}
}
