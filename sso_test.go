package recall

import (
	"context"
	"net/http"
	"testing"

	"github.com/recallhq/recall-go/testutil"
)

func TestSSOCallbackExchangesCode(t *testing.T) {
	srv := testutil.NewServer(testutil.Route{
		Method: http.MethodGet,
		Path:   "/v1/auth/sso/callback",
		Status: http.StatusOK,
		Body:   `{"access_token":"tok-sso","token_type":"bearer","expires_at":"2024-06-01T13:00:00Z","refresh_token":"ref-sso"}`,
	})
	defer srv.Close()

	client := newTestClient(t, srv.URL, Config{})
	resp, err := client.Auth.SSOCallback(context.Background(), "auth-code", "state-123")
	if err != nil {
		t.Fatalf("sso callback: %v", err)
	}
	token, err := resp.Result()
	if err != nil {
		t.Fatalf("result: %v", err)
	}
	if token.AccessToken != "tok-sso" {
		t.Fatalf("unexpected token %q", token.AccessToken)
	}
	if token.RefreshToken.Or("") != "ref-sso" {
		t.Fatalf("unexpected refresh token: %#v", token.RefreshToken)
	}
}

func TestSSOCallbackRequiresCodeAndState(t *testing.T) {
	client := newTestClient(t, "http://localhost:1", Config{})
	if _, err := client.Auth.SSOCallback(context.Background(), "", "state-123"); err == nil {
		t.Fatal("expected error for empty code")
	}
	if _, err := client.Auth.SSOCallback(context.Background(), "auth-code", " "); err == nil {
		t.Fatal("expected error for blank state")
	}
}

func TestSSOCallbackSendsQueryParams(t *testing.T) {
	srv := testutil.NewServer(testutil.Route{
		Method: http.MethodGet,
		Path:   "/v1/auth/sso/callback",
		Status: http.StatusOK,
		Body:   `{"access_token":"tok","token_type":"bearer","expires_at":"2024-06-01T13:00:00Z"}`,
	})
	defer srv.Close()

	client := newTestClient(t, srv.URL, Config{})
	resp, err := client.Auth.SSOCallback(context.Background(), "code/with/slashes", "s1")
	if err != nil {
		t.Fatalf("sso callback: %v", err)
	}
	if !resp.IsSuccess() {
		t.Fatalf("unexpected status %d", resp.StatusCode)
	}
	if resp.Value.RefreshToken.IsPresent() {
		t.Fatal("refresh_token was not sent and must decode as absent")
	}
}
