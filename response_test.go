package recall

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(t *testing.T, url string, cfg Config) *Client {
	t.Helper()
	cfg.BaseURL = url
	if cfg.AccessToken == "" {
		cfg.AccessToken = "test-token"
	}
	client, err := NewClient(cfg)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client
}

func TestResponseDeclaredSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"status":"ok","version":"1.4.2"}`)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, Config{})
	resp, err := client.Health.Check(context.Background())
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !resp.IsSuccess() || resp.Value == nil {
		t.Fatalf("expected parsed success, got %#v", resp)
	}
	if resp.Value.Status != "ok" || resp.Value.Version != "1.4.2" {
		t.Fatalf("unexpected payload: %#v", resp.Value)
	}
	if len(resp.Body) == 0 {
		t.Fatal("expected raw body to be retained")
	}
}

func TestResponseValidationErrorIsData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		fmt.Fprint(w, `{"detail":[{"loc":["body","email"],"msg":"value is not a valid email address","type":"value_error.email"}]}`)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, Config{})
	resp, err := client.Identities.Create(context.Background(), IdentityCreateRequest{Email: "ok@example.com"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if resp.Value != nil {
		t.Fatalf("expected no parsed value, got %#v", resp.Value)
	}
	if resp.ValidationError == nil || len(resp.ValidationError.Detail) != 1 {
		t.Fatalf("expected one validation failure, got %#v", resp.ValidationError)
	}
	detail := resp.ValidationError.Detail[0]
	if detail.Field() != "body.email" {
		t.Fatalf("unexpected field path %q", detail.Field())
	}
	if _, err := resp.Result(); err == nil {
		t.Fatal("Result should convert validation payload into an error")
	}
}

func TestResponseUndeclaredStatusSentinelMode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"detail":"forbidden"}`)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, Config{})
	resp, err := client.Health.Check(context.Background())
	if err != nil {
		t.Fatalf("expected unparsed envelope, got error %v", err)
	}
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("unexpected status %d", resp.StatusCode)
	}
	if resp.Value != nil || resp.ValidationError != nil {
		t.Fatalf("expected unparsed sentinel, got %#v", resp)
	}
	if _, err := resp.Result(); err == nil {
		t.Fatal("Result on unparsed envelope should error")
	}
}

func TestResponseUndeclaredStatusRaiseMode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"detail":"forbidden"}`)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, Config{RaiseOnUnexpectedStatus: true})
	_, err := client.Health.Check(context.Background())
	var unexpected *UnexpectedStatusError
	if !errors.As(err, &unexpected) {
		t.Fatalf("expected UnexpectedStatusError, got %v", err)
	}
	if unexpected.Status != http.StatusForbidden {
		t.Fatalf("unexpected status %d", unexpected.Status)
	}
	if len(unexpected.Body) == 0 {
		t.Fatal("expected raw body on error")
	}
}

func TestResponseNoContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, Config{})
	resp, err := client.Memories.Delete(context.Background(), mustUUID(t, "11111111-1111-1111-1111-111111111111"))
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if resp.StatusCode != http.StatusNoContent || resp.Value != nil {
		t.Fatalf("expected empty 204 envelope, got %#v", resp)
	}
	if _, err := resp.Result(); err != nil {
		t.Fatalf("Result on 204: %v", err)
	}
}

func TestResponseDecodeFailureIsHardError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"status": not-json`)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, Config{})
	_, err := client.Health.Check(context.Background())
	var decodeErr DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected DecodeError, got %v", err)
	}
	if decodeErr.Status != http.StatusOK {
		t.Fatalf("unexpected status on decode error: %d", decodeErr.Status)
	}
}
