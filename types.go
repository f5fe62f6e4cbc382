package recall

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/recallhq/recall-go/headers"
)

// CallOption customizes a single outgoing request (headers, extra query
// parameters) without touching client configuration.
type CallOption func(*callOptions)

type callOptions struct {
	headers http.Header
	query   url.Values
}

func applyCallOptions(opts []CallOption) callOptions {
	var options callOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}
	return options
}

// WithRequestID sets the X-Recall-Request-Id header for correlation and
// idempotency on retries.
func WithRequestID(requestID string) CallOption {
	return func(opts *callOptions) {
		clean := strings.TrimSpace(requestID)
		if clean == "" {
			return
		}
		if opts.headers == nil {
			opts.headers = make(http.Header)
		}
		opts.headers.Set(headers.RequestID, clean)
	}
}

// WithHeader attaches an arbitrary header to the underlying HTTP request.
func WithHeader(key, value string) CallOption {
	return func(opts *callOptions) {
		if strings.TrimSpace(key) == "" || strings.TrimSpace(value) == "" {
			return
		}
		if opts.headers == nil {
			opts.headers = make(http.Header)
		}
		opts.headers.Add(strings.TrimSpace(key), strings.TrimSpace(value))
	}
}

// WithQuery attaches an arbitrary query parameter to the request.
func WithQuery(key, value string) CallOption {
	return func(opts *callOptions) {
		if strings.TrimSpace(key) == "" {
			return
		}
		if opts.query == nil {
			opts.query = make(url.Values)
		}
		opts.query.Add(strings.TrimSpace(key), value)
	}
}

// Date is a calendar date without a time component. It serializes as
// YYYY-MM-DD in both JSON and query strings.
type Date struct {
	time.Time
}

const dateLayout = "2006-01-02"

// NewDate constructs a Date in UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates a time to its calendar date in UTC.
func DateOf(t time.Time) Date {
	y, m, d := t.UTC().Date()
	return NewDate(y, m, d)
}

func (d Date) String() string { return d.Format(dateLayout) }

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := time.Parse(dateLayout, raw)
	if err != nil {
		return fmt.Errorf("recall: invalid date %q: %w", raw, err)
	}
	d.Time = parsed
	return nil
}

// setOptional encodes a tri-state query parameter: absent drops the key
// entirely, null sends the literal "null" (only valid for parameters whose
// declared type is nullable), present serializes per type.
func setOptional[T any](params url.Values, key string, o Optional[T]) {
	switch {
	case o.IsAbsent():
	case o.IsNull():
		params.Set(key, "null")
	default:
		params.Set(key, queryValue(o.value))
	}
}

// queryValue serializes a single query parameter value. Dates render as
// calendar-date strings, timestamps as RFC 3339.
func queryValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case uuid.UUID:
		return x.String()
	case Date:
		return x.String()
	case time.Time:
		return x.Format(time.RFC3339)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprintf("%v", x)
	}
}

// setPage encodes shared limit/offset pagination parameters; zero values are
// dropped so server defaults apply.
func setPage(params url.Values, limit, offset int) {
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		params.Set("offset", strconv.Itoa(offset))
	}
}
