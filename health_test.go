package recall

import (
	"context"
	"net/http"
	"testing"

	"github.com/recallhq/recall-go/testutil"
)

func TestHealthPerformance(t *testing.T) {
	srv := testutil.NewServer(
		testutil.Route{
			Method: http.MethodGet,
			Path:   "/health",
			Status: http.StatusOK,
			Body:   `{"status":"ok","version":"1.4.2"}`,
		},
		testutil.Route{
			Method: http.MethodGet,
			Path:   "/health/performance",
			Status: http.StatusOK,
			Body:   `{"uptime_seconds":86400,"requests_per_second":240.5,"avg_latency_ms":12.1,"p95_latency_ms":40.2,"p99_latency_ms":88.7}`,
		},
	)
	defer srv.Close()

	client := newTestClient(t, srv.URL, Config{})
	health, err := client.Health.Check(context.Background())
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	status, err := health.Result()
	if err != nil {
		t.Fatalf("result: %v", err)
	}
	if status.Status != "ok" {
		t.Fatalf("unexpected status %q", status.Status)
	}

	perf, err := client.Health.Performance(context.Background())
	if err != nil {
		t.Fatalf("performance: %v", err)
	}
	report, err := perf.Result()
	if err != nil {
		t.Fatalf("result: %v", err)
	}
	if report.P95LatencyMS != 40.2 || report.UptimeSeconds != 86400 {
		t.Fatalf("unexpected report: %#v", report)
	}
}

func TestHealthUnknownRouteIs404(t *testing.T) {
	srv := testutil.NewServer()
	defer srv.Close()

	client := newTestClient(t, srv.URL, Config{})
	resp, err := client.Health.Check(context.Background())
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound || resp.Value != nil {
		t.Fatalf("expected unparsed 404, got %#v", resp)
	}
}
