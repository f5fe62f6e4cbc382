package recall

import "strings"

// Role encodes an identity's role within its tenant.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleMember  Role = "member"
	RoleViewer  Role = "viewer"
	RoleService Role = "service"
)

// ParseRole normalizes known roles while keeping unrecognized values intact
// so newer server roles still round-trip.
func ParseRole(val string) Role {
	normalized := strings.TrimSpace(strings.ToLower(val))
	switch normalized {
	case "admin":
		return RoleAdmin
	case "member":
		return RoleMember
	case "viewer":
		return RoleViewer
	case "service":
		return RoleService
	default:
		return Role(val)
	}
}

func (r Role) String() string { return string(r) }

// IsKnown reports whether the value is one of the declared constants.
func (r Role) IsKnown() bool {
	switch r {
	case RoleAdmin, RoleMember, RoleViewer, RoleService:
		return true
	default:
		return false
	}
}

// PolicyEffect is the outcome a matching policy produces.
type PolicyEffect string

const (
	PolicyEffectAllow PolicyEffect = "allow"
	PolicyEffectDeny  PolicyEffect = "deny"
)

func (e PolicyEffect) String() string { return string(e) }

// InvitationStatus tracks an invitation's lifecycle.
type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationRevoked  InvitationStatus = "revoked"
	InvitationExpired  InvitationStatus = "expired"
)

func (s InvitationStatus) String() string { return string(s) }

// WebhookEvent identifies a server event a webhook can subscribe to.
type WebhookEvent string

const (
	WebhookEventIdentityCreated     WebhookEvent = "identity.created"
	WebhookEventIdentityUpdated     WebhookEvent = "identity.updated"
	WebhookEventIdentityDeactivated WebhookEvent = "identity.deactivated"
	WebhookEventPolicyChanged       WebhookEvent = "policy.changed"
	WebhookEventMemoryCreated       WebhookEvent = "memory.created"
	WebhookEventMemoryDeleted       WebhookEvent = "memory.deleted"
	WebhookEventUsageThreshold      WebhookEvent = "usage.threshold"
)

func (e WebhookEvent) String() string { return string(e) }

// DeliveryStatus is the state of one webhook delivery attempt chain.
type DeliveryStatus string

const (
	DeliveryPending   DeliveryStatus = "pending"
	DeliveryDelivered DeliveryStatus = "delivered"
	DeliveryFailed    DeliveryStatus = "failed"
)

func (s DeliveryStatus) String() string { return string(s) }

// AuditAction categorizes an audit-trail entry.
type AuditAction string

const (
	AuditActionCreate AuditAction = "create"
	AuditActionUpdate AuditAction = "update"
	AuditActionDelete AuditAction = "delete"
	AuditActionAccess AuditAction = "access"
	AuditActionDenied AuditAction = "denied"
	AuditActionLogin  AuditAction = "login"
)

func (a AuditAction) String() string { return string(a) }
