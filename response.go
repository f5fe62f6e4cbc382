package recall

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
)

// NoContent is the declared result shape for operations whose success
// response carries no body (HTTP 204).
type NoContent struct{}

// Response is the typed envelope returned by every operation. It always
// carries the raw status, headers, and body; exactly one of Value and
// ValidationError is populated when the status code was in the operation's
// declared set, and neither when it was not (sentinel mode).
type Response[T any] struct {
	StatusCode int
	Header     http.Header
	Body       []byte

	// Value holds the declared success shape for 200-class responses.
	// Nil for 204, for 422, and for undeclared status codes.
	Value *T

	// ValidationError holds the declared 422 payload.
	ValidationError *ValidationError
}

// IsSuccess reports whether the status code is in the 2xx range.
func (r *Response[T]) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Result returns the parsed value, converting the 422 and undeclared-status
// cases into errors for callers that do not want to branch on the envelope.
func (r *Response[T]) Result() (*T, error) {
	switch {
	case r.Value != nil:
		return r.Value, nil
	case r.ValidationError != nil:
		return nil, ConfigError{Reason: "validation failed: " + r.ValidationError.String()}
	case r.StatusCode == http.StatusNoContent:
		return nil, nil
	default:
		return nil, &UnexpectedStatusError{Status: r.StatusCode, Body: r.Body}
	}
}

// do performs one operation: build the request, send it, and dispatch the
// response by status code against the declared set (200/201 success shape,
// 204 no content, 422 validation error). Any other status either raises
// *UnexpectedStatusError or is returned unparsed, per client configuration.
func do[T any](ctx context.Context, c *Client, method, path string, query url.Values, payload any, opts ...CallOption) (*Response[T], error) {
	options := applyCallOptions(opts)
	if payload != nil {
		if err := validateRequest(payload); err != nil {
			return nil, err
		}
	}
	if len(options.query) > 0 {
		merged := url.Values{}
		for key, values := range query {
			merged[key] = values
		}
		for key, values := range options.query {
			merged[key] = values
		}
		query = merged
	}
	req, err := c.newJSONRequest(ctx, method, path, query, payload)
	if err != nil {
		return nil, err
	}
	for key, values := range options.headers {
		req.Header[key] = values
	}
	resp, err := c.send(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	envelope := &Response[T]{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}
	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		var value T
		if len(body) > 0 {
			if err := json.Unmarshal(body, &value); err != nil {
				return nil, DecodeError{Status: resp.StatusCode, Body: body, Cause: err}
			}
		}
		envelope.Value = &value
	case http.StatusNoContent:
		// declared empty result
	case http.StatusUnprocessableEntity:
		var verr ValidationError
		if err := json.Unmarshal(body, &verr); err != nil {
			return nil, DecodeError{Status: resp.StatusCode, Body: body, Cause: err}
		}
		envelope.ValidationError = &verr
	default:
		if c.cfg.RaiseOnUnexpectedStatus {
			return nil, &UnexpectedStatusError{Status: resp.StatusCode, Body: body}
		}
	}
	return envelope, nil
}
