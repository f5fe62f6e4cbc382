// Package routes provides shared API route constants used by the SDK's
// resource clients to prevent path mismatches with the server.
package routes

// API route paths. Templates use {param} placeholders; the SDK interpolates
// percent-escaped values.
const (
	// Identities is the collection endpoint for tenant identities.
	// Creating an identity returns the identity plus an access token.
	Identities = "/v1/identities"

	// IdentityByID addresses a single identity.
	IdentityByID = "/v1/identities/{identity_id}"

	// APIKeys is the collection endpoint for long-lived secret keys.
	APIKeys = "/v1/api-keys"

	// APIKeyByID addresses a single API key.
	APIKeyByID = "/v1/api-keys/{key_id}"

	// Policies is the collection endpoint for authorization policies.
	Policies = "/v1/policies"

	// PolicyByID addresses a single policy.
	PolicyByID = "/v1/policies/{policy_id}"

	// Memory is the collection endpoint for memory records. Singular by
	// server convention.
	Memory = "/v1/memory"

	// MemoryByID addresses a single memory record.
	MemoryByID = "/v1/memory/{memory_id}"

	// MemorySearch ranks memory records against a query.
	MemorySearch = "/v1/memory/search"

	// Sessions lists active sessions for the tenant.
	Sessions = "/v1/sessions"

	// SessionByID addresses a single session.
	SessionByID = "/v1/sessions/{session_id}"

	// Invitations is the collection endpoint for tenant invitations.
	Invitations = "/v1/invitations"

	// InvitationByID addresses a single invitation.
	InvitationByID = "/v1/invitations/{invitation_id}"

	// InvitationAccept accepts a pending invitation.
	InvitationAccept = "/v1/invitations/{invitation_id}/accept"

	// Webhooks is the collection endpoint for webhook subscriptions.
	Webhooks = "/v1/webhooks"

	// WebhookByID addresses a single webhook.
	WebhookByID = "/v1/webhooks/{webhook_id}"

	// WebhookDeliveries lists delivery attempts for a webhook.
	WebhookDeliveries = "/v1/webhooks/{webhook_id}/deliveries"

	// WebhookStats returns aggregate delivery statistics for a webhook.
	WebhookStats = "/v1/webhooks/{webhook_id}/stats"

	// UsageRecords lists metered usage records.
	UsageRecords = "/v1/usage/records"

	// UsageEvents records a usage event.
	UsageEvents = "/v1/usage/events"

	// UsageSummary aggregates usage over a date range.
	UsageSummary = "/v1/usage/summary"

	// Audit lists the tenant audit trail.
	Audit = "/v1/audit"

	// AuditByID addresses a single audit entry.
	AuditByID = "/v1/audit/{entry_id}"

	// SSOCallback exchanges an SSO authorization code for tokens.
	SSOCallback = "/v1/auth/sso/callback"

	// Health is the liveness endpoint; unauthenticated.
	Health = "/health"

	// HealthPerformance reports server latency/throughput figures.
	HealthPerformance = "/health/performance"
)
