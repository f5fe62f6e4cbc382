package recall

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/recallhq/recall-go/jsonx"
)

// ConfigError indicates an invalid client configuration or request input
// detected before any network traffic.
type ConfigError struct {
	Reason string
}

func (e ConfigError) Error() string { return "recall: " + e.Reason }

// DecodeError indicates a response body that failed to parse as the shape
// declared for its status code. Missing required fields and malformed JSON
// both surface here; nothing is defaulted.
type DecodeError struct {
	Status int
	Body   []byte
	Cause  error
}

func (e DecodeError) Error() string {
	return fmt.Sprintf("recall: decode response (status %d): %v", e.Status, e.Cause)
}

func (e DecodeError) Unwrap() error { return e.Cause }

// UnexpectedStatusError is returned for status codes outside an operation's
// declared set when the client is configured with RaiseOnUnexpectedStatus.
// It carries the raw body so callers can still inspect the payload.
type UnexpectedStatusError struct {
	Status int
	Body   []byte
}

func (e *UnexpectedStatusError) Error() string {
	return fmt.Sprintf("recall: unexpected status %d: %s", e.Status, strings.TrimSpace(string(e.Body)))
}

// ValidationError is the declared 422 payload: a list of per-field
// validation failures. It is returned as data on the Response envelope, not
// as a Go error, so callers branch on it explicitly.
type ValidationError struct {
	Detail []FieldError `json:"detail"`

	Extra map[string]json.RawMessage `json:"-"`
}

// FieldError describes a single field-level validation failure.
type FieldError struct {
	// Loc is the path to the offending input; segments are strings for
	// object keys and numbers for array indices.
	Loc  []any  `json:"loc"`
	Msg  string `json:"msg"`
	Type string `json:"type"`

	Extra map[string]json.RawMessage `json:"-"`
}

// Field renders the location path as a dotted string, e.g. "body.email".
func (e FieldError) Field() string {
	parts := make([]string, 0, len(e.Loc))
	for _, seg := range e.Loc {
		parts = append(parts, fmt.Sprintf("%v", seg))
	}
	return strings.Join(parts, ".")
}

// String summarizes all failures on one line.
func (v ValidationError) String() string {
	parts := make([]string, 0, len(v.Detail))
	for _, d := range v.Detail {
		parts = append(parts, d.Field()+": "+d.Msg)
	}
	return strings.Join(parts, "; ")
}

func (v ValidationError) MarshalJSON() ([]byte, error) {
	type plain ValidationError
	return jsonx.MarshalExtra(plain(v), v.Extra)
}

func (v *ValidationError) UnmarshalJSON(data []byte) error {
	type plain ValidationError
	var p plain
	extra, err := jsonx.UnmarshalExtra(data, &p)
	if err != nil {
		return err
	}
	*v = ValidationError(p)
	v.Extra = extra
	return nil
}

func (e FieldError) MarshalJSON() ([]byte, error) {
	type plain FieldError
	return jsonx.MarshalExtra(plain(e), e.Extra)
}

func (e *FieldError) UnmarshalJSON(data []byte) error {
	type plain FieldError
	var p plain
	extra, err := jsonx.UnmarshalExtra(data, &p)
	if err != nil {
		return err
	}
	*e = FieldError(p)
	e.Extra = extra
	return nil
}
