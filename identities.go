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

// Identity describes a tenant-scoped identity (human or service principal).
type Identity struct {
	ID         uuid.UUID            `json:"id"`
	TenantID   uuid.UUID            `json:"tenant_id"`
	Email      string               `json:"email"`
	Name       Optional[string]     `json:"name,omitzero"`
	Role       Role                 `json:"role"`
	IsActive   bool                 `json:"is_active"`
	Metadata   map[string]any       `json:"metadata,omitempty"`
	LastSeenAt Optional[time.Time]  `json:"last_seen_at,omitzero"`
	CreatedAt  time.Time            `json:"created_at"`
	UpdatedAt  time.Time            `json:"updated_at"`

	// Extra preserves JSON keys the server sends beyond this schema.
	Extra map[string]json.RawMessage `json:"-"`
}

func (i Identity) MarshalJSON() ([]byte, error) {
	type plain Identity
	return jsonx.MarshalExtra(plain(i), i.Extra)
}

func (i *Identity) UnmarshalJSON(data []byte) error {
	type plain Identity
	var p plain
	extra, err := jsonx.UnmarshalExtra(data, &p)
	if err != nil {
		return err
	}
	*i = Identity(p)
	i.Extra = extra
	return nil
}

// IdentityWithToken is returned by Create: the new identity plus a bearer
// token scoped to it. The token is only ever returned here.
type IdentityWithToken struct {
	Identity    Identity  `json:"identity"`
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`

	Extra map[string]json.RawMessage `json:"-"`
}

func (i IdentityWithToken) MarshalJSON() ([]byte, error) {
	type plain IdentityWithToken
	return jsonx.MarshalExtra(plain(i), i.Extra)
}

func (i *IdentityWithToken) UnmarshalJSON(data []byte) error {
	type plain IdentityWithToken
	var p plain
	extra, err := jsonx.UnmarshalExtra(data, &p)
	if err != nil {
		return err
	}
	*i = IdentityWithToken(p)
	i.Extra = extra
	return nil
}

// IdentityCreateRequest mirrors POST /v1/identities.
type IdentityCreateRequest struct {
	Email    string           `json:"email" validate:"required,email"`
	Name     Optional[string] `json:"name,omitzero"`
	Role     Role             `json:"role,omitempty"`
	Metadata map[string]any   `json:"metadata,omitempty"`
}

// IdentityUpdateRequest mirrors PATCH /v1/identities/{identity_id}. Absent
// fields are left untouched by the server; explicit null clears a field.
type IdentityUpdateRequest struct {
	Name     Optional[string]         `json:"name,omitzero"`
	Role     Optional[Role]           `json:"role,omitzero"`
	IsActive Optional[bool]           `json:"is_active,omitzero"`
	Metadata Optional[map[string]any] `json:"metadata,omitzero"`
}

// IdentityList is a page of identities.
type IdentityList struct {
	Identities []Identity `json:"identities"`
	Total      int64      `json:"total"`
	Limit      int        `json:"limit"`
	Offset     int        `json:"offset"`
}

// IdentityListOptions filters List. Absent filters are dropped from the
// query string entirely.
type IdentityListOptions struct {
	Role     Optional[Role]
	IsActive Optional[bool]
	Limit    int
	Offset   int
}

func (o IdentityListOptions) query() url.Values {
	params := url.Values{}
	setOptional(params, "role", o.Role)
	setOptional(params, "is_active", o.IsActive)
	setPage(params, o.Limit, o.Offset)
	return params
}

// IdentitiesClient wraps the identity CRUD endpoints.
type IdentitiesClient struct {
	client *Client
}

func (c *IdentitiesClient) ensureInitialized() error {
	if c == nil || c.client == nil {
		return ConfigError{Reason: "identities client not initialized"}
	}
	return nil
}

// Create registers an identity and returns it together with a bearer token.
func (c *IdentitiesClient) Create(ctx context.Context, req IdentityCreateRequest, opts ...CallOption) (*Response[IdentityWithToken], error) {
	if err := c.ensureInitialized(); err != nil {
		return nil, err
	}
	return do[IdentityWithToken](ctx, c.client, http.MethodPost, routes.Identities, nil, req, opts...)
}

// List returns a page of identities matching the filters.
func (c *IdentitiesClient) List(ctx context.Context, options IdentityListOptions, opts ...CallOption) (*Response[IdentityList], error) {
	if err := c.ensureInitialized(); err != nil {
		return nil, err
	}
	return do[IdentityList](ctx, c.client, http.MethodGet, routes.Identities, options.query(), nil, opts...)
}

// Get retrieves an identity by ID.
func (c *IdentitiesClient) Get(ctx context.Context, id uuid.UUID, opts ...CallOption) (*Response[Identity], error) {
	if err := c.ensureInitialized(); err != nil {
		return nil, err
	}
	if id == uuid.Nil {
		return nil, ConfigError{Reason: "identity id required"}
	}
	return do[Identity](ctx, c.client, http.MethodGet, expandPath(routes.IdentityByID, id.String()), nil, nil, opts...)
}

// Update applies a partial update to an identity.
func (c *IdentitiesClient) Update(ctx context.Context, id uuid.UUID, req IdentityUpdateRequest, opts ...CallOption) (*Response[Identity], error) {
	if err := c.ensureInitialized(); err != nil {
		return nil, err
	}
	if id == uuid.Nil {
		return nil, ConfigError{Reason: "identity id required"}
	}
	return do[Identity](ctx, c.client, http.MethodPatch, expandPath(routes.IdentityByID, id.String()), nil, req, opts...)
}

// Delete removes an identity permanently. Prefer Deactivate for a
// reversible cutoff.
func (c *IdentitiesClient) Delete(ctx context.Context, id uuid.UUID, opts ...CallOption) (*Response[NoContent], error) {
	if err := c.ensureInitialized(); err != nil {
		return nil, err
	}
	if id == uuid.Nil {
		return nil, ConfigError{Reason: "identity id required"}
	}
	return do[NoContent](ctx, c.client, http.MethodDelete, expandPath(routes.IdentityByID, id.String()), nil, nil, opts...)
}

// Activate re-enables a deactivated identity.
func (c *IdentitiesClient) Activate(ctx context.Context, id uuid.UUID, opts ...CallOption) (*Response[Identity], error) {
	return c.Update(ctx, id, IdentityUpdateRequest{IsActive: Some(true)}, opts...)
}

// Deactivate disables an identity; its tokens stop authorizing calls.
func (c *IdentitiesClient) Deactivate(ctx context.Context, id uuid.UUID, opts ...CallOption) (*Response[Identity], error) {
	return c.Update(ctx, id, IdentityUpdateRequest{IsActive: Some(false)}, opts...)
}
