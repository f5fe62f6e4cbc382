package recall

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestInvitationsCreateAndAccept(t *testing.T) {
	invitationID := mustUUID(t, "12121212-3434-5656-7878-909090909090")
	inviterID := mustUUID(t, "7b7e0ef8-3f38-4b52-b70e-dd79f3b0f0a1")

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/invitations", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		fmt.Fprintf(w, `{"id":"%s","email":"new@example.com","role":"member","status":"pending","invited_by":"%s","expires_at":"2024-06-08T12:00:00Z","created_at":"2024-06-01T12:00:00Z"}`, invitationID, inviterID)
	})
	mux.HandleFunc("POST /v1/invitations/{id}/accept", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != invitationID.String() {
			t.Errorf("unexpected invitation id %q", r.PathValue("id"))
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"id":"%s","email":"new@example.com","role":"member","status":"accepted","invited_by":"%s","accepted_at":"2024-06-02T09:00:00Z","expires_at":"2024-06-08T12:00:00Z","created_at":"2024-06-01T12:00:00Z"}`, invitationID, inviterID)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := newTestClient(t, srv.URL, Config{})
	created, err := client.Invitations.Create(context.Background(), InvitationCreateRequest{
		Email: "new@example.com",
		Role:  RoleMember,
	})
	if err != nil {
		t.Fatalf("create invitation: %v", err)
	}
	if created.StatusCode != http.StatusCreated || created.Value == nil {
		t.Fatalf("unexpected create response: %#v", created)
	}
	if created.Value.Status != InvitationPending {
		t.Fatalf("expected pending status, got %q", created.Value.Status)
	}

	accepted, err := client.Invitations.Accept(context.Background(), invitationID)
	if err != nil {
		t.Fatalf("accept invitation: %v", err)
	}
	inv, err := accepted.Result()
	if err != nil {
		t.Fatalf("result: %v", err)
	}
	if inv.Status != InvitationAccepted || !inv.AcceptedAt.IsPresent() {
		t.Fatalf("unexpected invitation: %#v", inv)
	}
}

func TestInvitationsListStatusFilter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("status"); got != "pending" {
			t.Errorf("expected status=pending, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"invitations":[],"total":0,"limit":50,"offset":0}`)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, Config{})
	_, err := client.Invitations.List(context.Background(), InvitationListOptions{
		Status: Some(InvitationPending),
	})
	if err != nil {
		t.Fatalf("list invitations: %v", err)
	}
}

func TestInvitationsCreateRejectsBadEmail(t *testing.T) {
	client := newTestClient(t, "http://localhost:1", Config{})
	if _, err := client.Invitations.Create(context.Background(), InvitationCreateRequest{Email: "nope"}); err == nil {
		t.Fatal("expected client-side validation error")
	}
}
