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

// Memory is a stored memory record, optionally scoped to one identity.
type Memory struct {
	ID         uuid.UUID           `json:"id"`
	TenantID   uuid.UUID           `json:"tenant_id"`
	IdentityID Optional[uuid.UUID] `json:"identity_id,omitzero"`
	Content    string              `json:"content"`
	Tags       []string            `json:"tags,omitempty"`
	Metadata   map[string]any      `json:"metadata,omitempty"`
	ExpiresAt  Optional[time.Time] `json:"expires_at,omitzero"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`

	Extra map[string]json.RawMessage `json:"-"`
}

func (m Memory) MarshalJSON() ([]byte, error) {
	type plain Memory
	return jsonx.MarshalExtra(plain(m), m.Extra)
}

func (m *Memory) UnmarshalJSON(data []byte) error {
	type plain Memory
	var p plain
	extra, err := jsonx.UnmarshalExtra(data, &p)
	if err != nil {
		return err
	}
	*m = Memory(p)
	m.Extra = extra
	return nil
}

// MemoryCreateRequest mirrors POST /v1/memory. Creation is subject to the
// tenant's active policies; a denied request surfaces as a non-2xx status
// on the Response envelope.
type MemoryCreateRequest struct {
	Content    string              `json:"content" validate:"required"`
	IdentityID Optional[uuid.UUID] `json:"identity_id,omitzero"`
	Tags       []string            `json:"tags,omitempty"`
	Metadata   map[string]any      `json:"metadata,omitempty"`
	ExpiresAt  Optional[time.Time] `json:"expires_at,omitzero"`
}

// MemoryUpdateRequest mirrors PATCH /v1/memory/{memory_id}.
type MemoryUpdateRequest struct {
	Content   Optional[string]         `json:"content,omitzero"`
	Tags      Optional[[]string]       `json:"tags,omitzero"`
	Metadata  Optional[map[string]any] `json:"metadata,omitzero"`
	ExpiresAt Optional[time.Time]      `json:"expires_at,omitzero"`
}

// MemoryList is a page of memory records.
type MemoryList struct {
	Memories []Memory `json:"memories"`
	Total    int64    `json:"total"`
	Limit    int      `json:"limit"`
	Offset   int      `json:"offset"`
}

// MemoryListOptions filters List.
type MemoryListOptions struct {
	IdentityID Optional[uuid.UUID]
	Tag        Optional[string]
	Limit      int
	Offset     int
}

func (o MemoryListOptions) query() url.Values {
	params := url.Values{}
	setOptional(params, "identity_id", o.IdentityID)
	setOptional(params, "tag", o.Tag)
	setPage(params, o.Limit, o.Offset)
	return params
}

// MemorySearchRequest mirrors POST /v1/memory/search.
type MemorySearchRequest struct {
	Query      string              `json:"query" validate:"required"`
	IdentityID Optional[uuid.UUID] `json:"identity_id,omitzero"`
	Tags       []string            `json:"tags,omitempty"`
	Limit      int                 `json:"limit,omitempty"`
}

// MemorySearchResult pairs a matching memory with its relevance score.
type MemorySearchResult struct {
	Memory Memory  `json:"memory"`
	Score  float64 `json:"score"`
}

// MemorySearchResponse is the ranked result list for a search.
type MemorySearchResponse struct {
	Results []MemorySearchResult `json:"results"`
	Total   int64                `json:"total"`
}

// MemoriesClient wraps the memory endpoints.
type MemoriesClient struct {
	client *Client
}

func (c *MemoriesClient) ensureInitialized() error {
	if c == nil || c.client == nil {
		return ConfigError{Reason: "memories client not initialized"}
	}
	return nil
}

// Create stores a memory record.
func (c *MemoriesClient) Create(ctx context.Context, req MemoryCreateRequest, opts ...CallOption) (*Response[Memory], error) {
	if err := c.ensureInitialized(); err != nil {
		return nil, err
	}
	return do[Memory](ctx, c.client, http.MethodPost, routes.Memory, nil, req, opts...)
}

// List returns a page of memory records matching the filters.
func (c *MemoriesClient) List(ctx context.Context, options MemoryListOptions, opts ...CallOption) (*Response[MemoryList], error) {
	if err := c.ensureInitialized(); err != nil {
		return nil, err
	}
	return do[MemoryList](ctx, c.client, http.MethodGet, routes.Memory, options.query(), nil, opts...)
}

// Get retrieves a memory record by ID.
func (c *MemoriesClient) Get(ctx context.Context, id uuid.UUID, opts ...CallOption) (*Response[Memory], error) {
	if err := c.ensureInitialized(); err != nil {
		return nil, err
	}
	if id == uuid.Nil {
		return nil, ConfigError{Reason: "memory id required"}
	}
	return do[Memory](ctx, c.client, http.MethodGet, expandPath(routes.MemoryByID, id.String()), nil, nil, opts...)
}

// Update applies a partial update to a memory record.
func (c *MemoriesClient) Update(ctx context.Context, id uuid.UUID, req MemoryUpdateRequest, opts ...CallOption) (*Response[Memory], error) {
	if err := c.ensureInitialized(); err != nil {
		return nil, err
	}
	if id == uuid.Nil {
		return nil, ConfigError{Reason: "memory id required"}
	}
	return do[Memory](ctx, c.client, http.MethodPatch, expandPath(routes.MemoryByID, id.String()), nil, req, opts...)
}

// Delete removes a memory record.
func (c *MemoriesClient) Delete(ctx context.Context, id uuid.UUID, opts ...CallOption) (*Response[NoContent], error) {
	if err := c.ensureInitialized(); err != nil {
		return nil, err
	}
	if id == uuid.Nil {
		return nil, ConfigError{Reason: "memory id required"}
	}
	return do[NoContent](ctx, c.client, http.MethodDelete, expandPath(routes.MemoryByID, id.String()), nil, nil, opts...)
}

// Search ranks memory records against a free-text query.
func (c *MemoriesClient) Search(ctx context.Context, req MemorySearchRequest, opts ...CallOption) (*Response[MemorySearchResponse], error) {
	if err := c.ensureInitialized(); err != nil {
		return nil, err
	}
	return do[MemorySearchResponse](ctx, c.client, http.MethodPost, routes.MemorySearch, nil, req, opts...)
}
