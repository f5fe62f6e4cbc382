package recall

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func fastRetry() *RetryConfig {
	return &RetryConfig{
		MaxAttempts: 3,
		BaseBackoff: time.Millisecond,
		MaxBackoff:  5 * time.Millisecond,
	}
}

func TestRetryRecoversFromServerError(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"status":"ok","version":"1.4.2"}`)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, Config{Retry: fastRetry()})
	resp, err := client.Health.Check(context.Background())
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !resp.IsSuccess() {
		t.Fatalf("expected recovered success, got %d", resp.StatusCode)
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("expected 2 attempts, got %d", got)
	}
}

func TestRetryDoesNotRepeatPostByDefault(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, Config{Retry: fastRetry()})
	resp, err := client.Memories.Create(context.Background(), MemoryCreateRequest{Content: "once only"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("unexpected status %d", resp.StatusCode)
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("POST must not retry by default, got %d attempts", got)
	}
}

func TestRetryPostOptIn(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"id":"11111111-1111-1111-1111-111111111111","tenant_id":"11111111-1111-1111-1111-111111111111","content":"retried","created_at":"2024-06-01T12:00:00Z","updated_at":"2024-06-01T12:00:00Z"}`)
	}))
	defer srv.Close()

	retryCfg := fastRetry()
	retryCfg.RetryPost = true
	client := newTestClient(t, srv.URL, Config{Retry: retryCfg})
	resp, err := client.Memories.Create(context.Background(), MemoryCreateRequest{Content: "retried"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected recovered 201, got %d", resp.StatusCode)
	}
	if got := calls.Load(); got != 3 {
		t.Fatalf("expected 3 attempts, got %d", got)
	}
}

func TestRetryExhaustionReturnsLastResponse(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
		fmt.Fprint(w, `{"detail":"upstream down"}`)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, Config{Retry: fastRetry()})
	resp, err := client.Health.Check(context.Background())
	if err != nil {
		t.Fatalf("expected final response, got error %v", err)
	}
	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("unexpected status %d", resp.StatusCode)
	}
	if len(resp.Body) == 0 {
		t.Fatal("final response body must be readable")
	}
	if got := calls.Load(); got != 3 {
		t.Fatalf("expected 3 attempts, got %d", got)
	}
}
