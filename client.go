package recall

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

const defaultBaseURL = "https://api.recall.dev"
const defaultUserAgent = "recall-go/" + Version

// Config wires authentication, base URL, transport knobs, and telemetry for
// the API client. The zero value of every field is usable; an empty Config
// yields an unauthenticated client against the production API.
type Config struct {
	BaseURL string

	// AccessToken is a bearer token obtained from identity creation or the
	// SSO callback. Takes precedence over APIKey when both are set.
	AccessToken string

	// APIKey is a long-lived secret key (rk_sk_*). Sent as a bearer
	// credential like access tokens.
	APIKey SecretKey

	// DefaultHeaders are attached to every request unless the request
	// already carries the header.
	DefaultHeaders map[string]string

	// DefaultQuery parameters are merged into every request's query string;
	// per-operation parameters win on collision.
	DefaultQuery map[string]string

	// Timeout bounds each HTTP round trip. Zero means no client timeout.
	Timeout time.Duration

	// InsecureSkipVerify disables TLS certificate validation on the lazily
	// built transport. Ignored when HTTPClient is supplied.
	InsecureSkipVerify bool

	// Retry enables transport-level retries for idempotent requests.
	// Nil disables retries entirely.
	Retry *RetryConfig

	// RaiseOnUnexpectedStatus makes every operation return an
	// *UnexpectedStatusError for status codes outside the operation's
	// declared set instead of an unparsed Response.
	RaiseOnUnexpectedStatus bool

	// HTTPClient overrides the lazily constructed transport entirely.
	HTTPClient *http.Client

	Telemetry TelemetryHooks
	UserAgent string
}

// Client provides typed access to the Recall management API.
//
// A Client is immutable after construction and safe for concurrent use; the
// underlying transport is built once on first use and shared by all calls.
type Client struct {
	cfg     Config
	baseURL string
	auth    authChain

	transportOnce sync.Once
	transport     *http.Client

	// Grouped resource clients.
	Identities  *IdentitiesClient
	APIKeys     *APIKeysClient
	Policies    *PoliciesClient
	Memories    *MemoriesClient
	Sessions    *SessionsClient
	Invitations *InvitationsClient
	Webhooks    *WebhooksClient
	Usage       *UsageClient
	Audit       *AuditClient
	Auth        *AuthClient
	Health      *HealthClient
}

// NewClient validates the configuration and returns a ready-to-use Client.
// Credentials are optional: the health and SSO endpoints accept
// unauthenticated calls, and WithBearer derives an authenticated client
// once a token is obtained.
func NewClient(cfg Config) (*Client, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	normalized, err := normalizeBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	client := &Client{
		cfg:     cfg,
		baseURL: normalized,
		auth:    buildAuthChain(cfg),
	}
	client.attachServices()
	return client, nil
}

// WithBearer returns a copy of the client that authenticates with the given
// bearer token. The original client is unchanged; the copy builds its own
// transport from the same configuration.
func (c *Client) WithBearer(token string) (*Client, error) {
	cfg := c.cfg
	cfg.AccessToken = token
	cfg.APIKey = ""
	cfg.BaseURL = c.baseURL
	return NewClient(cfg)
}

func (c *Client) attachServices() {
	c.Identities = &IdentitiesClient{client: c}
	c.APIKeys = &APIKeysClient{client: c}
	c.Policies = &PoliciesClient{client: c}
	c.Memories = &MemoriesClient{client: c}
	c.Sessions = &SessionsClient{client: c}
	c.Invitations = &InvitationsClient{client: c}
	c.Webhooks = &WebhooksClient{client: c}
	c.Usage = &UsageClient{client: c}
	c.Audit = &AuditClient{client: c}
	c.Auth = &AuthClient{client: c}
	c.Health = &HealthClient{client: c}
}

func normalizeBaseURL(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ConfigError{Reason: "base URL required"}
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return "", ConfigError{Reason: fmt.Sprintf("invalid base URL: %v", err)}
	}
	if u.Scheme == "" {
		return "", ConfigError{Reason: "base URL missing scheme (http/https)"}
	}
	if u.Host == "" {
		return "", ConfigError{Reason: "base URL missing host"}
	}
	u.Path = strings.TrimSuffix(u.Path, "/")
	return strings.TrimSuffix(u.String(), "/"), nil
}

func buildAuthChain(cfg Config) authChain {
	var chain authChain
	if cfg.AccessToken != "" {
		token := strings.TrimSpace(cfg.AccessToken)
		if strings.HasPrefix(strings.ToLower(token), "bearer ") {
			token = strings.TrimSpace(token[7:])
		}
		chain = append(chain, bearerAuth{token: token})
	}
	if cfg.APIKey != "" {
		chain = append(chain, bearerAuth{token: cfg.APIKey.String()})
	}
	return chain
}

// httpClient lazily builds the transport from Timeout, TLS, and retry
// configuration. Built once; read-only afterwards.
func (c *Client) httpClient() *http.Client {
	c.transportOnce.Do(func() {
		if c.cfg.HTTPClient != nil {
			c.transport = c.cfg.HTTPClient
			return
		}
		var rt http.RoundTripper = http.DefaultTransport
		if c.cfg.InsecureSkipVerify {
			rt = &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, // #nosec G402 -- explicit opt-in for self-hosted deployments
			}
		}
		if c.cfg.Retry != nil {
			rt = NewRetryTransport(rt, *c.cfg.Retry)
		}
		c.transport = &http.Client{
			Timeout:   c.cfg.Timeout,
			Transport: rt,
		}
	})
	return c.transport
}

func (c *Client) newJSONRequest(ctx context.Context, method, path string, query url.Values, payload any) (*http.Request, error) {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(encoded)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.buildURL(path, query), body)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}
	injectTraceparent(ctx, req)
	return req, nil
}

func (c *Client) prepare(req *http.Request) {
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}
	for key, value := range c.cfg.DefaultHeaders {
		if req.Header.Get(key) == "" {
			req.Header.Set(key, value)
		}
	}
	c.auth.Apply(req)
}

func (c *Client) send(req *http.Request) (*http.Response, error) {
	c.prepare(req)
	if c.cfg.Telemetry.OnHTTPRequest != nil {
		c.cfg.Telemetry.OnHTTPRequest(req.Context(), req)
	}
	c.cfg.Telemetry.log(req.Context(), LogLevelInfo, "http_request", map[string]any{
		"method": req.Method,
		"url":    req.URL.String(),
	})
	start := time.Now()
	resp, err := c.httpClient().Do(req)
	if c.cfg.Telemetry.OnHTTPResponse != nil {
		c.cfg.Telemetry.OnHTTPResponse(req.Context(), req, resp, err, time.Since(start))
	}
	c.cfg.Telemetry.metric(req.Context(), "sdk_http_request_latency_ms", float64(time.Since(start).Milliseconds()), map[string]string{
		"path": req.URL.Path,
	})
	return resp, err
}

func (c *Client) buildURL(path string, query url.Values) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	merged := url.Values{}
	for key, value := range c.cfg.DefaultQuery {
		merged.Set(key, value)
	}
	for key, values := range query {
		merged[key] = values
	}
	u := c.baseURL + path
	if encoded := merged.Encode(); encoded != "" {
		u += "?" + encoded
	}
	return u
}

// pathParam percent-escapes a path segment before interpolation so callers
// may pass arbitrary identifiers without corrupting the URL.
func pathParam(segment string) string {
	return url.PathEscape(segment)
}

// expandPath substitutes the route template's {param} placeholders, in
// order, with percent-escaped values.
func expandPath(template string, params ...string) string {
	var b strings.Builder
	rest := template
	for _, param := range params {
		open := strings.Index(rest, "{")
		closing := strings.Index(rest, "}")
		if open < 0 || closing < open {
			break
		}
		b.WriteString(rest[:open])
		b.WriteString(pathParam(param))
		rest = rest[closing+1:]
	}
	b.WriteString(rest)
	return b.String()
}
