package recall

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// TelemetryHooks expose observability callbacks without forcing a logging
// dependency on the caller.
type TelemetryHooks struct {
	// OnHTTPRequest fires before the HTTP request is sent.
	OnHTTPRequest func(ctx context.Context, req *http.Request)
	// OnHTTPResponse fires after the request completes (even when err != nil).
	OnHTTPResponse func(ctx context.Context, req *http.Request, resp *http.Response, err error, latency time.Duration)
	// OnLogEntry allows callers to capture SDK log events (info/errors).
	OnLogEntry func(ctx context.Context, entry LogEntry)
	// OnMetric records lightweight counters/gauges for observability dashboards.
	OnMetric func(ctx context.Context, metric Metric)
}

// LogLevel encodes the severity for log hooks.
type LogLevel string

const (
	LogLevelInfo  LogLevel = "info"
	LogLevelError LogLevel = "error"
)

// LogEntry captures structured log details for SDK consumers.
type LogEntry struct {
	Level   LogLevel
	Message string
	Fields  map[string]any
}

// Metric represents a single observability datapoint.
type Metric struct {
	Name   string
	Value  float64
	Labels map[string]string
}

func (t TelemetryHooks) log(ctx context.Context, level LogLevel, msg string, fields map[string]any) {
	if t.OnLogEntry == nil {
		return
	}
	t.OnLogEntry(ctx, LogEntry{Level: level, Message: msg, Fields: fields})
}

func (t TelemetryHooks) metric(ctx context.Context, name string, value float64, labels map[string]string) {
	if t.OnMetric == nil {
		return
	}
	t.OnMetric(ctx, Metric{Name: name, Value: value, Labels: labels})
}

// ZerologHooks adapts the hook surface to a zerolog logger: request/response
// lifecycles log at debug/info, failures at error, metrics at debug.
func ZerologHooks(logger zerolog.Logger) TelemetryHooks {
	return TelemetryHooks{
		OnHTTPRequest: func(ctx context.Context, req *http.Request) {
			logger.Debug().
				Str("method", req.Method).
				Str("url", req.URL.String()).
				Msg("http request")
		},
		OnHTTPResponse: func(ctx context.Context, req *http.Request, resp *http.Response, err error, latency time.Duration) {
			evt := logger.Info()
			if err != nil {
				evt = logger.Error().Err(err)
			}
			evt = evt.Str("method", req.Method).
				Str("url", req.URL.String()).
				Dur("latency", latency)
			if resp != nil {
				evt = evt.Int("status", resp.StatusCode)
			}
			evt.Msg("http response")
		},
		OnLogEntry: func(ctx context.Context, entry LogEntry) {
			evt := logger.Info()
			if entry.Level == LogLevelError {
				evt = logger.Error()
			}
			evt.Fields(entry.Fields).Msg(entry.Message)
		},
		OnMetric: func(ctx context.Context, metric Metric) {
			evt := logger.Debug().Float64("value", metric.Value)
			for key, value := range metric.Labels {
				evt = evt.Str(key, value)
			}
			evt.Msg(metric.Name)
		},
	}
}
