package recall

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/recallhq/recall-go/jsonx"
	"github.com/recallhq/recall-go/routes"
)

// TokenResponse is the token payload returned by the SSO callback.
type TokenResponse struct {
	AccessToken  string           `json:"access_token"`
	TokenType    string           `json:"token_type"`
	ExpiresAt    time.Time        `json:"expires_at"`
	RefreshToken Optional[string] `json:"refresh_token,omitzero"`

	Extra map[string]json.RawMessage `json:"-"`
}

func (t TokenResponse) MarshalJSON() ([]byte, error) {
	type plain TokenResponse
	return jsonx.MarshalExtra(plain(t), t.Extra)
}

func (t *TokenResponse) UnmarshalJSON(data []byte) error {
	type plain TokenResponse
	var p plain
	extra, err := jsonx.UnmarshalExtra(data, &p)
	if err != nil {
		return err
	}
	*t = TokenResponse(p)
	t.Extra = extra
	return nil
}

// AuthClient wraps the authentication endpoints that do not require an
// existing credential.
type AuthClient struct {
	client *Client
}

func (c *AuthClient) ensureInitialized() error {
	if c == nil || c.client == nil {
		return ConfigError{Reason: "auth client not initialized"}
	}
	return nil
}

// SSOCallback exchanges the provider's authorization code and state for a
// bearer token. Code and state arrive on the redirect from the identity
// provider; the SDK performs no provider interaction itself.
func (c *AuthClient) SSOCallback(ctx context.Context, code, state string, opts ...CallOption) (*Response[TokenResponse], error) {
	if err := c.ensureInitialized(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(code) == "" {
		return nil, ConfigError{Reason: "sso code required"}
	}
	if strings.TrimSpace(state) == "" {
		return nil, ConfigError{Reason: "sso state required"}
	}
	params := url.Values{}
	params.Set("code", code)
	params.Set("state", state)
	return do[TokenResponse](ctx, c.client, http.MethodGet, routes.SSOCallback, params, nil, opts...)
}
