package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCollector_RecordsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordJobCreated()
	c.RecordJobCreated()
	c.RecordApplicationCreated()
	c.RecordNotificationSent()
	c.RecordNotificationFailed()

	if got := testutil.ToFloat64(c.jobsCreated); got != 2 {
		t.Errorf("jobs created = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.applicationsCreated); got != 1 {
		t.Errorf("applications created = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.notificationsSent); got != 1 {
		t.Errorf("notifications sent = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.notificationsFailed); got != 1 {
		t.Errorf("notifications failed = %v, want 1", got)
	}
}

func TestCollector_RecordsHTTPRequest(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordHTTPRequest("GET", "/api/v1/job", 200)
	c.RecordHTTPRequest("GET", "/api/v1/job", 200)
	c.RecordHTTPDuration("GET", "/api/v1/job", 30*time.Millisecond)

	if got := testutil.ToFloat64(c.httpRequests.WithLabelValues("GET", "/api/v1/job", "200")); got != 2 {
		t.Errorf("http requests = %v, want 2", got)
	}
}

func TestNopCollector_ImplementsInterface(t *testing.T) {
	var _ MetricsCollector = NopCollector{}
}
