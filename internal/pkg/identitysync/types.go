package identitysync

import "strings"

// Lifecycle event types the sync service understands. Everything else is
// acknowledged at the boundary without reaching the service.
const (
	EventUserCreated = "user.created"
	EventUserUpdated = "user.updated"
	EventUserDeleted = "user.deleted"
)

// IsSupportedEventType reports whether the service handles the given type.
func IsSupportedEventType(eventType string) bool {
	switch eventType {
	case EventUserCreated, EventUserUpdated, EventUserDeleted:
		return true
	default:
		return false
	}
}

// EmailAddress is one address entry from the provider payload.
type EmailAddress struct {
	ID           string `json:"id"`
	EmailAddress string `json:"email_address"`
}

// PrivateMetadata carries the tenant role assignments the provider stores for
// a user. The map is untrusted third-party input until partitioned.
type PrivateMetadata struct {
	TenantRoles map[string]string `json:"tenantRoles"`
}

// UserData is the provider's user object embedded in lifecycle events. Delete
// events carry only the id.
type UserData struct {
	ID                    string          `json:"id" validate:"required,max=64"`
	FirstName             string          `json:"first_name" validate:"max=150"`
	LastName              string          `json:"last_name" validate:"max=150"`
	ImageURL              string          `json:"image_url" validate:"max=255"`
	PrimaryEmailAddressID string          `json:"primary_email_address_id"`
	EmailAddresses        []EmailAddress  `json:"email_addresses"`
	PrivateMetadata       PrivateMetadata `json:"private_metadata"`
}

// PrimaryEmail resolves the primary contact address from the address list and
// the primary pointer, case-normalized. Falls back to the first listed
// address when the pointer does not match.
func (d *UserData) PrimaryEmail() string {
	for _, addr := range d.EmailAddresses {
		if addr.ID != "" && addr.ID == d.PrimaryEmailAddressID {
			return strings.ToLower(strings.TrimSpace(addr.EmailAddress))
		}
	}
	if len(d.EmailAddresses) > 0 {
		return strings.ToLower(strings.TrimSpace(d.EmailAddresses[0].EmailAddress))
	}
	return ""
}

// UserWebhookEvent is one verified lifecycle delivery. EventID comes from the
// delivery headers, Payload is the raw verified body kept for checksumming.
type UserWebhookEvent struct {
	EventID   string   `json:"-" validate:"required,max=191"`
	EventType string   `json:"type" validate:"required"`
	Data      UserData `json:"data"`
	Payload   []byte   `json:"-"`
}

// SyncResult is the orchestrator output handed to logging and telemetry.
type SyncResult struct {
	ClerkEventID               string   `json:"clerk_event_id"`
	EventType                  string   `json:"event_type"`
	ClerkUserID                string   `json:"clerk_user_id"`
	Idempotent                 bool     `json:"idempotent"`
	IgnoredTenantIDs           []string `json:"ignored_tenant_ids"`
	IgnoredRoleTenantIDs       []string `json:"ignored_role_tenant_ids"`
	UpsertedMembershipCount    int      `json:"upserted_membership_count"`
	DeactivatedMembershipCount int      `json:"deactivated_membership_count"`
}
