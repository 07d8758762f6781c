package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCollectorCounters(t *testing.T) {
	c := NewCollector()

	c.RecordEnginePass()
	c.RecordTasksSpawned(3)
	c.RecordEngineTaskFailure()
	c.RecordHTTPRequest("GET", 200)
	c.RecordHTTPRequest("GET", 200)
	c.RecordHTTPRequest("POST", 404)

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	body := rec.Body.String()
	for _, want := range []string{
		"taskflow_recurrence_passes_total 1",
		"taskflow_recurrence_spawned_total 3",
		"taskflow_recurrence_task_failures_total 1",
		`taskflow_http_requests_total{method="GET",status="200"} 2`,
		`taskflow_http_requests_total{method="POST",status="404"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}
