package recall

import (
	"strings"
)

const secretKeyPrefix = "rk_sk_"

// SecretKey is a long-lived API key that can perform privileged operations
// (rk_sk_*). Use ParseSecretKey to construct from untrusted input.
type SecretKey string

// String returns the raw key value.
func (k SecretKey) String() string { return string(k) }

// Redacted returns the key with all but the prefix and last four characters
// masked, suitable for logs.
func (k SecretKey) Redacted() string {
	raw := string(k)
	if len(raw) <= len(secretKeyPrefix)+4 {
		return secretKeyPrefix + "****"
	}
	return secretKeyPrefix + "****" + raw[len(raw)-4:]
}

// ParseSecretKey parses and validates a secret key string (rk_sk_*).
func ParseSecretKey(raw string) (SecretKey, error) {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, secretKeyPrefix) || len(trimmed) <= len(secretKeyPrefix) {
		return "", ConfigError{Reason: "invalid api key format (expected rk_sk_*)"}
	}
	return SecretKey(trimmed), nil
}
