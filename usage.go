package recall

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/recallhq/recall-go/jsonx"
	"github.com/recallhq/recall-go/routes"
)

// UsageRecord is one metered unit of work attributed to the tenant and,
// optionally, to a single identity.
type UsageRecord struct {
	ID         uuid.UUID           `json:"id"`
	IdentityID Optional[uuid.UUID] `json:"identity_id,omitzero"`
	Operation  string              `json:"operation"`
	Quantity   int64               `json:"quantity"`
	RecordedAt time.Time           `json:"recorded_at"`

	Extra map[string]json.RawMessage `json:"-"`
}

func (r UsageRecord) MarshalJSON() ([]byte, error) {
	type plain UsageRecord
	return jsonx.MarshalExtra(plain(r), r.Extra)
}

func (r *UsageRecord) UnmarshalJSON(data []byte) error {
	type plain UsageRecord
	var p plain
	extra, err := jsonx.UnmarshalExtra(data, &p)
	if err != nil {
		return err
	}
	*r = UsageRecord(p)
	r.Extra = extra
	return nil
}

// UsageRecordList is a page of usage records.
type UsageRecordList struct {
	Records []UsageRecord `json:"records"`
	Total   int64         `json:"total"`
	Limit   int           `json:"limit"`
	Offset  int           `json:"offset"`
}

// UsageRecordListOptions filters ListRecords. Dates are calendar dates and
// serialize as YYYY-MM-DD query values.
type UsageRecordListOptions struct {
	StartDate Optional[Date]
	EndDate   Optional[Date]
	Operation Optional[string]
	Limit     int
	Offset    int
}

func (o UsageRecordListOptions) query() url.Values {
	params := url.Values{}
	setOptional(params, "start_date", o.StartDate)
	setOptional(params, "end_date", o.EndDate)
	setOptional(params, "operation", o.Operation)
	setPage(params, o.Limit, o.Offset)
	return params
}

// UsageEventRequest mirrors POST /v1/usage/events.
type UsageEventRequest struct {
	Operation  string              `json:"operation" validate:"required"`
	Quantity   int64               `json:"quantity" validate:"required,gte=1"`
	IdentityID Optional[uuid.UUID] `json:"identity_id,omitzero"`
	OccurredAt Optional[time.Time] `json:"occurred_at,omitzero"`
}

// UsageSummary aggregates usage over a period. TotalCost is an exact
// decimal amount in Currency units.
type UsageSummary struct {
	PeriodStart     Date             `json:"period_start"`
	PeriodEnd       Date             `json:"period_end"`
	TotalOperations int64            `json:"total_operations"`
	TotalCost       decimal.Decimal  `json:"total_cost"`
	Currency        string           `json:"currency"`
	ByOperation     map[string]int64 `json:"by_operation,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

func (s UsageSummary) MarshalJSON() ([]byte, error) {
	type plain UsageSummary
	return jsonx.MarshalExtra(plain(s), s.Extra)
}

func (s *UsageSummary) UnmarshalJSON(data []byte) error {
	type plain UsageSummary
	var p plain
	extra, err := jsonx.UnmarshalExtra(data, &p)
	if err != nil {
		return err
	}
	*s = UsageSummary(p)
	s.Extra = extra
	return nil
}

// UsageSummaryOptions bounds Summary. Absent bounds default to the current
// billing period server-side.
type UsageSummaryOptions struct {
	StartDate Optional[Date]
	EndDate   Optional[Date]
}

func (o UsageSummaryOptions) query() url.Values {
	params := url.Values{}
	setOptional(params, "start_date", o.StartDate)
	setOptional(params, "end_date", o.EndDate)
	return params
}

// UsageClient wraps the usage endpoints.
type UsageClient struct {
	client *Client
}

func (c *UsageClient) ensureInitialized() error {
	if c == nil || c.client == nil {
		return ConfigError{Reason: "usage client not initialized"}
	}
	return nil
}

// ListRecords returns a page of usage records matching the filters.
func (c *UsageClient) ListRecords(ctx context.Context, options UsageRecordListOptions, opts ...CallOption) (*Response[UsageRecordList], error) {
	if err := c.ensureInitialized(); err != nil {
		return nil, err
	}
	return do[UsageRecordList](ctx, c.client, http.MethodGet, routes.UsageRecords, options.query(), nil, opts...)
}

// RecordEvent reports a usage event.
func (c *UsageClient) RecordEvent(ctx context.Context, req UsageEventRequest, opts ...CallOption) (*Response[UsageRecord], error) {
	if err := c.ensureInitialized(); err != nil {
		return nil, err
	}
	return do[UsageRecord](ctx, c.client, http.MethodPost, routes.UsageEvents, nil, req, opts...)
}

// Summary aggregates usage over the given date range.
func (c *UsageClient) Summary(ctx context.Context, options UsageSummaryOptions, opts ...CallOption) (*Response[UsageSummary], error) {
	if err := c.ensureInitialized(); err != nil {
		return nil, err
	}
	return do[UsageSummary](ctx, c.client, http.MethodGet, routes.UsageSummary, options.query(), nil, opts...)
}
