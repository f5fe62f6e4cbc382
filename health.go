package recall

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/recallhq/recall-go/jsonx"
	"github.com/recallhq/recall-go/routes"
)

// HealthStatus is the liveness payload.
type HealthStatus struct {
	Status  string `json:"status"`
	Version string `json:"version"`

	Extra map[string]json.RawMessage `json:"-"`
}

func (h HealthStatus) MarshalJSON() ([]byte, error) {
	type plain HealthStatus
	return jsonx.MarshalExtra(plain(h), h.Extra)
}

func (h *HealthStatus) UnmarshalJSON(data []byte) error {
	type plain HealthStatus
	var p plain
	extra, err := jsonx.UnmarshalExtra(data, &p)
	if err != nil {
		return err
	}
	*h = HealthStatus(p)
	h.Extra = extra
	return nil
}

// PerformanceReport summarizes server-side latency and throughput.
type PerformanceReport struct {
	UptimeSeconds     float64 `json:"uptime_seconds"`
	RequestsPerSecond float64 `json:"requests_per_second"`
	AvgLatencyMS      float64 `json:"avg_latency_ms"`
	P95LatencyMS      float64 `json:"p95_latency_ms"`
	P99LatencyMS      float64 `json:"p99_latency_ms"`

	Extra map[string]json.RawMessage `json:"-"`
}

func (r PerformanceReport) MarshalJSON() ([]byte, error) {
	type plain PerformanceReport
	return jsonx.MarshalExtra(plain(r), r.Extra)
}

func (r *PerformanceReport) UnmarshalJSON(data []byte) error {
	type plain PerformanceReport
	var p plain
	extra, err := jsonx.UnmarshalExtra(data, &p)
	if err != nil {
		return err
	}
	*r = PerformanceReport(p)
	r.Extra = extra
	return nil
}

// HealthClient wraps the unauthenticated health endpoints.
type HealthClient struct {
	client *Client
}

func (c *HealthClient) ensureInitialized() error {
	if c == nil || c.client == nil {
		return ConfigError{Reason: "health client not initialized"}
	}
	return nil
}

// Check returns the server liveness status.
func (c *HealthClient) Check(ctx context.Context, opts ...CallOption) (*Response[HealthStatus], error) {
	if err := c.ensureInitialized(); err != nil {
		return nil, err
	}
	return do[HealthStatus](ctx, c.client, http.MethodGet, routes.Health, nil, nil, opts...)
}

// Performance returns server latency and throughput figures.
func (c *HealthClient) Performance(ctx context.Context, opts ...CallOption) (*Response[PerformanceReport], error) {
	if err := c.ensureInitialized(); err != nil {
		return nil, err
	}
	return do[PerformanceReport](ctx, c.client, http.MethodGet, routes.HealthPerformance, nil, nil, opts...)
}
