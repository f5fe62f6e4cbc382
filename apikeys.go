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

// APIKey describes a long-lived secret key. SecretKey is populated only in
// the Create response; afterwards only RedactedKey is returned.
type APIKey struct {
	ID          uuid.UUID           `json:"id"`
	Label       string              `json:"label"`
	RedactedKey string              `json:"redacted_key"`
	SecretKey   string              `json:"secret_key,omitempty"`
	ExpiresAt   Optional[time.Time] `json:"expires_at,omitzero"`
	LastUsedAt  Optional[time.Time] `json:"last_used_at,omitzero"`
	CreatedAt   time.Time           `json:"created_at"`

	Extra map[string]json.RawMessage `json:"-"`
}

func (k APIKey) MarshalJSON() ([]byte, error) {
	type plain APIKey
	return jsonx.MarshalExtra(plain(k), k.Extra)
}

func (k *APIKey) UnmarshalJSON(data []byte) error {
	type plain APIKey
	var p plain
	extra, err := jsonx.UnmarshalExtra(data, &p)
	if err != nil {
		return err
	}
	*k = APIKey(p)
	k.Extra = extra
	return nil
}

// APIKeyCreateRequest mirrors POST /v1/api-keys.
type APIKeyCreateRequest struct {
	Label     string              `json:"label" validate:"required"`
	ExpiresAt Optional[time.Time] `json:"expires_at,omitzero"`
}

// APIKeyList is a page of API keys.
type APIKeyList struct {
	APIKeys []APIKey `json:"api_keys"`
	Total   int64    `json:"total"`
	Limit   int      `json:"limit"`
	Offset  int      `json:"offset"`
}

// APIKeyListOptions paginates List.
type APIKeyListOptions struct {
	Limit  int
	Offset int
}

func (o APIKeyListOptions) query() url.Values {
	params := url.Values{}
	setPage(params, o.Limit, o.Offset)
	return params
}

// APIKeysClient wraps API key CRUD endpoints.
type APIKeysClient struct {
	client *Client
}

func (c *APIKeysClient) ensureInitialized() error {
	if c == nil || c.client == nil {
		return ConfigError{Reason: "api keys client not initialized"}
	}
	return nil
}

// Create issues a new secret key. The raw key appears once in the response
// and is never retrievable again.
func (c *APIKeysClient) Create(ctx context.Context, req APIKeyCreateRequest, opts ...CallOption) (*Response[APIKey], error) {
	if err := c.ensureInitialized(); err != nil {
		return nil, err
	}
	return do[APIKey](ctx, c.client, http.MethodPost, routes.APIKeys, nil, req, opts...)
}

// List returns the API keys for the authenticated tenant.
func (c *APIKeysClient) List(ctx context.Context, options APIKeyListOptions, opts ...CallOption) (*Response[APIKeyList], error) {
	if err := c.ensureInitialized(); err != nil {
		return nil, err
	}
	return do[APIKeyList](ctx, c.client, http.MethodGet, routes.APIKeys, options.query(), nil, opts...)
}

// Get retrieves a key's metadata by ID.
func (c *APIKeysClient) Get(ctx context.Context, id uuid.UUID, opts ...CallOption) (*Response[APIKey], error) {
	if err := c.ensureInitialized(); err != nil {
		return nil, err
	}
	if id == uuid.Nil {
		return nil, ConfigError{Reason: "api key id required"}
	}
	return do[APIKey](ctx, c.client, http.MethodGet, expandPath(routes.APIKeyByID, id.String()), nil, nil, opts...)
}

// Delete revokes the API key with the provided identifier.
func (c *APIKeysClient) Delete(ctx context.Context, id uuid.UUID, opts ...CallOption) (*Response[NoContent], error) {
	if err := c.ensureInitialized(); err != nil {
		return nil, err
	}
	if id == uuid.Nil {
		return nil, ConfigError{Reason: "api key id required"}
	}
	return do[NoContent](ctx, c.client, http.MethodDelete, expandPath(routes.APIKeyByID, id.String()), nil, nil, opts...)
}
