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

// AuditEntry is one immutable line in the tenant audit trail.
type AuditEntry struct {
	ID           uuid.UUID           `json:"id"`
	ActorID      Optional[uuid.UUID] `json:"actor_id,omitzero"`
	Action       AuditAction         `json:"action"`
	ResourceType string              `json:"resource_type"`
	ResourceID   Optional[uuid.UUID] `json:"resource_id,omitzero"`
	IPAddress    Optional[string]    `json:"ip_address,omitzero"`
	Detail       map[string]any      `json:"detail,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`

	Extra map[string]json.RawMessage `json:"-"`
}

func (e AuditEntry) MarshalJSON() ([]byte, error) {
	type plain AuditEntry
	return jsonx.MarshalExtra(plain(e), e.Extra)
}

func (e *AuditEntry) UnmarshalJSON(data []byte) error {
	type plain AuditEntry
	var p plain
	extra, err := jsonx.UnmarshalExtra(data, &p)
	if err != nil {
		return err
	}
	*e = AuditEntry(p)
	e.Extra = extra
	return nil
}

// AuditList is a page of audit entries.
type AuditList struct {
	Entries []AuditEntry `json:"entries"`
	Total   int64        `json:"total"`
	Limit   int          `json:"limit"`
	Offset  int          `json:"offset"`
}

// AuditListOptions filters List.
type AuditListOptions struct {
	ActorID      Optional[uuid.UUID]
	Action       Optional[AuditAction]
	ResourceType Optional[string]
	Since        Optional[time.Time]
	Until        Optional[time.Time]
	Limit        int
	Offset       int
}

func (o AuditListOptions) query() url.Values {
	params := url.Values{}
	setOptional(params, "actor_id", o.ActorID)
	setOptional(params, "action", o.Action)
	setOptional(params, "resource_type", o.ResourceType)
	setOptional(params, "since", o.Since)
	setOptional(params, "until", o.Until)
	setPage(params, o.Limit, o.Offset)
	return params
}

// AuditClient wraps the read-only audit trail endpoints.
type AuditClient struct {
	client *Client
}

func (c *AuditClient) ensureInitialized() error {
	if c == nil || c.client == nil {
		return ConfigError{Reason: "audit client not initialized"}
	}
	return nil
}

// List returns a page of audit entries matching the filters.
func (c *AuditClient) List(ctx context.Context, options AuditListOptions, opts ...CallOption) (*Response[AuditList], error) {
	if err := c.ensureInitialized(); err != nil {
		return nil, err
	}
	return do[AuditList](ctx, c.client, http.MethodGet, routes.Audit, options.query(), nil, opts...)
}

// Get retrieves a single audit entry by ID.
func (c *AuditClient) Get(ctx context.Context, id uuid.UUID, opts ...CallOption) (*Response[AuditEntry], error) {
	if err := c.ensureInitialized(); err != nil {
		return nil, err
	}
	if id == uuid.Nil {
		return nil, ConfigError{Reason: "audit entry id required"}
	}
	return do[AuditEntry](ctx, c.client, http.MethodGet, expandPath(routes.AuditByID, id.String()), nil, nil, opts...)
}
