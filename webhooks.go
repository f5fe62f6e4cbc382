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

// Webhook is a subscription delivering server events to a consumer URL.
// Secret is populated only in the Create response; deliveries are signed
// with it (X-Recall-Signature).
type Webhook struct {
	ID        uuid.UUID      `json:"id"`
	URL       string         `json:"url"`
	Events    []WebhookEvent `json:"events"`
	Secret    string         `json:"secret,omitempty"`
	IsActive  bool           `json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`

	Extra map[string]json.RawMessage `json:"-"`
}

func (w Webhook) MarshalJSON() ([]byte, error) {
	type plain Webhook
	return jsonx.MarshalExtra(plain(w), w.Extra)
}

func (w *Webhook) UnmarshalJSON(data []byte) error {
	type plain Webhook
	var p plain
	extra, err := jsonx.UnmarshalExtra(data, &p)
	if err != nil {
		return err
	}
	*w = Webhook(p)
	w.Extra = extra
	return nil
}

// WebhookCreateRequest mirrors POST /v1/webhooks.
type WebhookCreateRequest struct {
	URL    string         `json:"url" validate:"required,url"`
	Events []WebhookEvent `json:"events" validate:"required,min=1"`
}

// WebhookUpdateRequest mirrors PATCH /v1/webhooks/{webhook_id}.
type WebhookUpdateRequest struct {
	URL      Optional[string]         `json:"url,omitzero"`
	Events   Optional[[]WebhookEvent] `json:"events,omitzero"`
	IsActive Optional[bool]           `json:"is_active,omitzero"`
}

// WebhookList is a page of webhooks.
type WebhookList struct {
	Webhooks []Webhook `json:"webhooks"`
	Total    int64     `json:"total"`
	Limit    int       `json:"limit"`
	Offset   int       `json:"offset"`
}

// WebhookListOptions paginates List.
type WebhookListOptions struct {
	Limit  int
	Offset int
}

func (o WebhookListOptions) query() url.Values {
	params := url.Values{}
	setPage(params, o.Limit, o.Offset)
	return params
}

// WebhookDelivery records one delivery attempt chain for an event.
type WebhookDelivery struct {
	ID             uuid.UUID           `json:"id"`
	WebhookID      uuid.UUID           `json:"webhook_id"`
	Event          WebhookEvent        `json:"event"`
	Status         DeliveryStatus      `json:"status"`
	Attempts       int                 `json:"attempts"`
	ResponseStatus Optional[int]       `json:"response_status,omitzero"`
	Error          Optional[string]    `json:"error,omitzero"`
	DeliveredAt    Optional[time.Time] `json:"delivered_at,omitzero"`
	CreatedAt      time.Time           `json:"created_at"`

	Extra map[string]json.RawMessage `json:"-"`
}

func (d WebhookDelivery) MarshalJSON() ([]byte, error) {
	type plain WebhookDelivery
	return jsonx.MarshalExtra(plain(d), d.Extra)
}

func (d *WebhookDelivery) UnmarshalJSON(data []byte) error {
	type plain WebhookDelivery
	var p plain
	extra, err := jsonx.UnmarshalExtra(data, &p)
	if err != nil {
		return err
	}
	*d = WebhookDelivery(p)
	d.Extra = extra
	return nil
}

// WebhookDeliveryList is a page of deliveries.
type WebhookDeliveryList struct {
	Deliveries []WebhookDelivery `json:"deliveries"`
	Total      int64             `json:"total"`
	Limit      int               `json:"limit"`
	Offset     int               `json:"offset"`
}

// WebhookDeliveryListOptions filters ListDeliveries.
type WebhookDeliveryListOptions struct {
	Status Optional[DeliveryStatus]
	Limit  int
	Offset int
}

func (o WebhookDeliveryListOptions) query() url.Values {
	params := url.Values{}
	setOptional(params, "status", o.Status)
	setPage(params, o.Limit, o.Offset)
	return params
}

// WebhookStats aggregates delivery outcomes for one webhook.
type WebhookStats struct {
	WebhookID   uuid.UUID `json:"webhook_id"`
	Total       int64     `json:"total"`
	Delivered   int64     `json:"delivered"`
	Failed      int64     `json:"failed"`
	Pending     int64     `json:"pending"`
	SuccessRate float64   `json:"success_rate"`

	Extra map[string]json.RawMessage `json:"-"`
}

func (s WebhookStats) MarshalJSON() ([]byte, error) {
	type plain WebhookStats
	return jsonx.MarshalExtra(plain(s), s.Extra)
}

func (s *WebhookStats) UnmarshalJSON(data []byte) error {
	type plain WebhookStats
	var p plain
	extra, err := jsonx.UnmarshalExtra(data, &p)
	if err != nil {
		return err
	}
	*s = WebhookStats(p)
	s.Extra = extra
	return nil
}

// WebhooksClient wraps the webhook endpoints.
type WebhooksClient struct {
	client *Client
}

func (c *WebhooksClient) ensureInitialized() error {
	if c == nil || c.client == nil {
		return ConfigError{Reason: "webhooks client not initialized"}
	}
	return nil
}

// Create registers a webhook. The signing secret appears once in the
// response and is never retrievable again.
func (c *WebhooksClient) Create(ctx context.Context, req WebhookCreateRequest, opts ...CallOption) (*Response[Webhook], error) {
	if err := c.ensureInitialized(); err != nil {
		return nil, err
	}
	return do[Webhook](ctx, c.client, http.MethodPost, routes.Webhooks, nil, req, opts...)
}

// List returns a page of webhooks.
func (c *WebhooksClient) List(ctx context.Context, options WebhookListOptions, opts ...CallOption) (*Response[WebhookList], error) {
	if err := c.ensureInitialized(); err != nil {
		return nil, err
	}
	return do[WebhookList](ctx, c.client, http.MethodGet, routes.Webhooks, options.query(), nil, opts...)
}

// Get retrieves a webhook by ID.
func (c *WebhooksClient) Get(ctx context.Context, id uuid.UUID, opts ...CallOption) (*Response[Webhook], error) {
	if err := c.ensureInitialized(); err != nil {
		return nil, err
	}
	if id == uuid.Nil {
		return nil, ConfigError{Reason: "webhook id required"}
	}
	return do[Webhook](ctx, c.client, http.MethodGet, expandPath(routes.WebhookByID, id.String()), nil, nil, opts...)
}

// Update applies a partial update to a webhook.
func (c *WebhooksClient) Update(ctx context.Context, id uuid.UUID, req WebhookUpdateRequest, opts ...CallOption) (*Response[Webhook], error) {
	if err := c.ensureInitialized(); err != nil {
		return nil, err
	}
	if id == uuid.Nil {
		return nil, ConfigError{Reason: "webhook id required"}
	}
	return do[Webhook](ctx, c.client, http.MethodPatch, expandPath(routes.WebhookByID, id.String()), nil, req, opts...)
}

// Delete removes a webhook subscription.
func (c *WebhooksClient) Delete(ctx context.Context, id uuid.UUID, opts ...CallOption) (*Response[NoContent], error) {
	if err := c.ensureInitialized(); err != nil {
		return nil, err
	}
	if id == uuid.Nil {
		return nil, ConfigError{Reason: "webhook id required"}
	}
	return do[NoContent](ctx, c.client, http.MethodDelete, expandPath(routes.WebhookByID, id.String()), nil, nil, opts...)
}

// ListDeliveries returns delivery attempts for a webhook.
func (c *WebhooksClient) ListDeliveries(ctx context.Context, id uuid.UUID, options WebhookDeliveryListOptions, opts ...CallOption) (*Response[WebhookDeliveryList], error) {
	if err := c.ensureInitialized(); err != nil {
		return nil, err
	}
	if id == uuid.Nil {
		return nil, ConfigError{Reason: "webhook id required"}
	}
	return do[WebhookDeliveryList](ctx, c.client, http.MethodGet, expandPath(routes.WebhookDeliveries, id.String()), options.query(), nil, opts...)
}

// Stats returns aggregate delivery statistics for a webhook.
func (c *WebhooksClient) Stats(ctx context.Context, id uuid.UUID, opts ...CallOption) (*Response[WebhookStats], error) {
	if err := c.ensureInitialized(); err != nil {
		return nil, err
	}
	if id == uuid.Nil {
		return nil, ConfigError{Reason: "webhook id required"}
	}
	return do[WebhookStats](ctx, c.client, http.MethodGet, expandPath(routes.WebhookStats, id.String()), nil, nil, opts...)
}
