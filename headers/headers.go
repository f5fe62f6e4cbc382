// Package headers defines HTTP header constants used across the Recall
// platform. This is the single source of truth for header names used in API
// requests/responses.
package headers

const (
	// RequestID is the header for request correlation / idempotency.
	// Clients can supply this header for idempotency on retries.
	RequestID = "X-Recall-Request-Id"

	// TenantID pins a request to an explicit tenant for credentials that
	// span tenants (service roles).
	TenantID = "X-Recall-Tenant-Id"

	// WebhookSignature carries the HMAC signature on outbound webhook
	// deliveries; consumers verify payloads against the webhook secret.
	WebhookSignature = "X-Recall-Signature"
)
