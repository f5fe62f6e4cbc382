// Package auth provides token inspection helpers for the Recall SDK.
package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims encodes the JWT claims embedded in Recall access tokens.
//
// This is a DTO matching the server's access token contract. The SDK keeps
// this struct local so consumers can inspect tokens without a dependency on
// server internals.
type Claims struct {
	IdentityID string `json:"sub"`
	TenantID   string `json:"tid"`
	SessionID  string `json:"sid,omitempty"`
	Email      string `json:"email,omitempty"`
	Role       string `json:"role,omitempty"`

	jwt.RegisteredClaims
}

// ErrNotJWT is returned by Parse for strings that are not JWT-shaped, such
// as rk_sk_* API keys.
var ErrNotJWT = errors.New("auth: token is not a JWT")

// IsJWT reports whether the string looks like a JWT. API keys and opaque
// tokens return false.
func IsJWT(token string) bool {
	t := strings.TrimSpace(token)
	if t == "" || strings.HasPrefix(t, "rk_sk_") {
		return false
	}
	// JWTs have 3 base64url segments separated by '.'.
	return strings.Count(t, ".") >= 2
}

// Parse decodes a token's claims WITHOUT verifying the signature. Use it to
// read expiry or identity metadata client-side; authorization decisions
// belong to the server.
func Parse(token string) (*Claims, error) {
	if !IsJWT(token) {
		return nil, ErrNotJWT
	}
	claims := &Claims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(strings.TrimSpace(token), claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// ExpiresWithin reports whether the token expires before now+window. Tokens
// without an exp claim never expire from the client's point of view.
func (c *Claims) ExpiresWithin(now time.Time, window time.Duration) bool {
	if c.ExpiresAt == nil {
		return false
	}
	return c.ExpiresAt.Time.Before(now.Add(window))
}

// Expired reports whether the token's exp claim is in the past.
func (c *Claims) Expired(now time.Time) bool {
	return c.ExpiresWithin(now, 0)
}
