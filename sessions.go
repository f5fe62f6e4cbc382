package recall

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/recallhq/recall-go/jsonx"
	"github.com/recallhq/recall-go/routes"
)

// Session is an authenticated session tied to an identity's bearer token.
type Session struct {
	ID             uuid.UUID           `json:"id"`
	IdentityID     uuid.UUID           `json:"identity_id"`
	IPAddress      Optional[string]    `json:"ip_address,omitzero"`
	UserAgent      Optional[string]    `json:"user_agent,omitzero"`
	LastActivityAt Optional[time.Time] `json:"last_activity_at,omitzero"`
	RevokedAt      Optional[time.Time] `json:"revoked_at,omitzero"`
	ExpiresAt      time.Time           `json:"expires_at"`
	CreatedAt      time.Time           `json:"created_at"`

	Extra map[string]json.RawMessage `json:"-"`
}

func (s Session) MarshalJSON() ([]byte, error) {
	type plain Session
	return jsonx.MarshalExtra(plain(s), s.Extra)
}

func (s *Session) UnmarshalJSON(data []byte) error {
	type plain Session
	var p plain
	extra, err := jsonx.UnmarshalExtra(data, &p)
	if err != nil {
		return err
	}
	*s = Session(p)
	s.Extra = extra
	return nil
}

// SessionList is a page of sessions.
type SessionList struct {
	Sessions []Session `json:"sessions"`
	Total    int64     `json:"total"`
	Limit    int       `json:"limit"`
	Offset   int       `json:"offset"`
}

// SessionListOptions filters List.
type SessionListOptions struct {
	IdentityID Optional[uuid.UUID]
	Active     Optional[bool]
	Limit      int
	Offset     int
}

func (o SessionListOptions) query() url.Values {
	params := url.Values{}
	setOptional(params, "identity_id", o.IdentityID)
	setOptional(params, "active", o.Active)
	setPage(params, o.Limit, o.Offset)
	return params
}

// SessionsClient wraps the session endpoints. Sessions are created
// server-side on authentication; the SDK can list, inspect, and revoke them.
type SessionsClient struct {
	client *Client
}

func (c *SessionsClient) ensureInitialized() error {
	if c == nil || c.client == nil {
		return ConfigError{Reason: "sessions client not initialized"}
	}
	return nil
}

// List returns a page of sessions matching the filters.
func (c *SessionsClient) List(ctx context.Context, options SessionListOptions, opts ...CallOption) (*Response[SessionList], error) {
	if err := c.ensureInitialized(); err != nil {
		return nil, err
	}
	return do[SessionList](ctx, c.client, http.MethodGet, routes.Sessions, options.query(), nil, opts...)
}

// Get retrieves a session by ID.
func (c *SessionsClient) Get(ctx context.Context, id uuid.UUID, opts ...CallOption) (*Response[Session], error) {
	if err := c.ensureInitialized(); err != nil {
		return nil, err
	}
	if id == uuid.Nil {
		return nil, ConfigError{Reason: "session id required"}
	}
	return do[Session](ctx, c.client, http.MethodGet, expandPath(routes.SessionByID, id.String()), nil, nil, opts...)
}

// Revoke terminates a session; its token stops authorizing calls.
func (c *SessionsClient) Revoke(ctx context.Context, id uuid.UUID, opts ...CallOption) (*Response[NoContent], error) {
	if err := c.ensureInitialized(); err != nil {
		return nil, err
	}
	if id == uuid.Nil {
		return nil, ConfigError{Reason: "session id required"}
	}
	return do[NoContent](ctx, c.client, http.MethodDelete, expandPath(routes.SessionByID, id.String()), nil, nil, opts...)
}
