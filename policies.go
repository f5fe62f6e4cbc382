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

// Policy is an authorization rule: when active, it allows or denies the
// listed actions on the listed resource patterns for the whole tenant.
// Higher priority wins when policies conflict.
type Policy struct {
	ID        uuid.UUID    `json:"id"`
	TenantID  uuid.UUID    `json:"tenant_id"`
	Name      string       `json:"name"`
	Effect    PolicyEffect `json:"effect"`
	Actions   []string     `json:"actions"`
	Resources []string     `json:"resources"`
	Priority  int          `json:"priority"`
	IsActive  bool         `json:"is_active"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`

	Extra map[string]json.RawMessage `json:"-"`
}

func (p Policy) MarshalJSON() ([]byte, error) {
	type plain Policy
	return jsonx.MarshalExtra(plain(p), p.Extra)
}

func (p *Policy) UnmarshalJSON(data []byte) error {
	type plain Policy
	var pl plain
	extra, err := jsonx.UnmarshalExtra(data, &pl)
	if err != nil {
		return err
	}
	*p = Policy(pl)
	p.Extra = extra
	return nil
}

// PolicyCreateRequest mirrors POST /v1/policies.
type PolicyCreateRequest struct {
	Name      string       `json:"name" validate:"required"`
	Effect    PolicyEffect `json:"effect" validate:"required,oneof=allow deny"`
	Actions   []string     `json:"actions" validate:"required,min=1"`
	Resources []string     `json:"resources" validate:"required,min=1"`
	Priority  int          `json:"priority,omitempty"`
	IsActive  bool         `json:"is_active"`
}

// PolicyUpdateRequest mirrors PATCH /v1/policies/{policy_id}.
type PolicyUpdateRequest struct {
	Name      Optional[string]       `json:"name,omitzero"`
	Effect    Optional[PolicyEffect] `json:"effect,omitzero"`
	Actions   Optional[[]string]     `json:"actions,omitzero"`
	Resources Optional[[]string]     `json:"resources,omitzero"`
	Priority  Optional[int]          `json:"priority,omitzero"`
	IsActive  Optional[bool]         `json:"is_active,omitzero"`
}

// PolicyList is a page of policies.
type PolicyList struct {
	Policies []Policy `json:"policies"`
	Total    int64    `json:"total"`
	Limit    int      `json:"limit"`
	Offset   int      `json:"offset"`
}

// PolicyListOptions filters List.
type PolicyListOptions struct {
	Effect   Optional[PolicyEffect]
	IsActive Optional[bool]
	Limit    int
	Offset   int
}

func (o PolicyListOptions) query() url.Values {
	params := url.Values{}
	setOptional(params, "effect", o.Effect)
	setOptional(params, "is_active", o.IsActive)
	setPage(params, o.Limit, o.Offset)
	return params
}

// PoliciesClient wraps the policy CRUD endpoints.
type PoliciesClient struct {
	client *Client
}

func (c *PoliciesClient) ensureInitialized() error {
	if c == nil || c.client == nil {
		return ConfigError{Reason: "policies client not initialized"}
	}
	return nil
}

// Create registers a policy. Policies take effect immediately when active.
func (c *PoliciesClient) Create(ctx context.Context, req PolicyCreateRequest, opts ...CallOption) (*Response[Policy], error) {
	if err := c.ensureInitialized(); err != nil {
		return nil, err
	}
	return do[Policy](ctx, c.client, http.MethodPost, routes.Policies, nil, req, opts...)
}

// List returns a page of policies matching the filters.
func (c *PoliciesClient) List(ctx context.Context, options PolicyListOptions, opts ...CallOption) (*Response[PolicyList], error) {
	if err := c.ensureInitialized(); err != nil {
		return nil, err
	}
	return do[PolicyList](ctx, c.client, http.MethodGet, routes.Policies, options.query(), nil, opts...)
}

// Get retrieves a policy by ID.
func (c *PoliciesClient) Get(ctx context.Context, id uuid.UUID, opts ...CallOption) (*Response[Policy], error) {
	if err := c.ensureInitialized(); err != nil {
		return nil, err
	}
	if id == uuid.Nil {
		return nil, ConfigError{Reason: "policy id required"}
	}
	return do[Policy](ctx, c.client, http.MethodGet, expandPath(routes.PolicyByID, id.String()), nil, nil, opts...)
}

// Update applies a partial update to a policy.
func (c *PoliciesClient) Update(ctx context.Context, id uuid.UUID, req PolicyUpdateRequest, opts ...CallOption) (*Response[Policy], error) {
	if err := c.ensureInitialized(); err != nil {
		return nil, err
	}
	if id == uuid.Nil {
		return nil, ConfigError{Reason: "policy id required"}
	}
	return do[Policy](ctx, c.client, http.MethodPatch, expandPath(routes.PolicyByID, id.String()), nil, req, opts...)
}

// Delete removes a policy.
func (c *PoliciesClient) Delete(ctx context.Context, id uuid.UUID, opts ...CallOption) (*Response[NoContent], error) {
	if err := c.ensureInitialized(); err != nil {
		return nil, err
	}
	if id == uuid.Nil {
		return nil, ConfigError{Reason: "policy id required"}
	}
	return do[NoContent](ctx, c.client, http.MethodDelete, expandPath(routes.PolicyByID, id.String()), nil, nil, opts...)
}

// Activate turns a policy on.
func (c *PoliciesClient) Activate(ctx context.Context, id uuid.UUID, opts ...CallOption) (*Response[Policy], error) {
	return c.Update(ctx, id, PolicyUpdateRequest{IsActive: Some(true)}, opts...)
}

// Deactivate turns a policy off without deleting it.
func (c *PoliciesClient) Deactivate(ctx context.Context, id uuid.UUID, opts ...CallOption) (*Response[Policy], error) {
	return c.Update(ctx, id, PolicyUpdateRequest{IsActive: Some(false)}, opts...)
}
