package identitysync

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/slotrix/slotrix/app/models"
	"github.com/slotrix/slotrix/app/repository"
	"gorm.io/gorm"
)

// Service synchronizes identity provider lifecycle events into local users
// and tenant memberships. Each Sync call runs as one retry-wrapped
// transaction; there is no in-process shared state, so concurrent deliveries
// for the same user are resolved entirely by the store's isolation plus the
// conflict-retry loop. Cross-event ordering for a user is last-commit-wins;
// the ledger suppresses duplicates, it does not order.
type Service struct {
	db    *gorm.DB
	retry RetryOptions
}

// NewService creates a sync service on the given database handle.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db, retry: DefaultRetryOptions()}
}

// NewServiceWithRetry creates a sync service with a custom retry budget.
func NewServiceWithRetry(db *gorm.DB, retry RetryOptions) *Service {
	return &Service{db: db, retry: retry}
}

// Sync validates and applies one verified lifecycle event. Redelivery of an
// already processed event id returns Idempotent=true with zero counts.
// Malformed events fail with a *ValidationError and are never retried.
func (s *Service) Sync(ctx context.Context, event *UserWebhookEvent) (*SyncResult, error) {
	if err := validateEvent(event); err != nil {
		return nil, err
	}

	var result *SyncResult
	err := TxWithRetry(ctx, s.db, s.retry, func(tx *gorm.DB) error {
		// A conflict retry restarts here with a fresh transaction; the
		// previous attempt rolled back completely.
		result = &SyncResult{
			ClerkEventID: event.EventID,
			EventType:    event.EventType,
			ClerkUserID:  event.Data.ID,
		}

		entry := &models.WebhookEvent{
			Provider:        models.WebhookProviderClerk,
			EventID:         event.EventID,
			EventType:       event.EventType,
			SubjectUserID:   event.Data.ID,
			TenantIDHint:    tenantHint(event),
			PayloadChecksum: models.ChecksumPayload(event.Payload),
		}
		alreadyProcessed, err := BeginLedgerEntry(tx, entry)
		if err != nil {
			return err
		}
		if alreadyProcessed {
			result.Idempotent = true
			return nil
		}

		var desired []TenantRole
		var preserve []string
		if event.EventType == EventUserDeleted {
			if err := repository.NewUserRepository(tx).MarkDeleted(event.Data.ID, time.Now()); err != nil {
				return fmt.Errorf("mark user deleted: %w", err)
			}
		} else {
			if err := upsertUser(tx, event); err != nil {
				return fmt.Errorf("upsert user: %w", err)
			}
			knownIDs, err := repository.NewTenantRepository(tx).ListActivePublicIDs()
			if err != nil {
				return fmt.Errorf("load known tenants: %w", err)
			}
			part := ParseTenantRoles(event.Data.PrivateMetadata.TenantRoles, TenantIDSet(knownIDs))
			result.IgnoredTenantIDs = part.UnknownTenantIDs
			result.IgnoredRoleTenantIDs = part.UnknownRoleTenantIDs
			desired = part.Valid
			// Entries that failed validation, whether the tenant is unknown
			// or the role is, keep whatever membership state they had before
			// this event.
			preserve = append(preserve, part.UnknownTenantIDs...)
			preserve = append(preserve, part.UnknownRoleTenantIDs...)
		}

		upserted, deactivated, err := ReconcileMemberships(tx, event.Data.ID, desired, preserve)
		if err != nil {
			return fmt.Errorf("reconcile memberships: %w", err)
		}
		result.UpsertedMembershipCount = upserted
		result.DeactivatedMembershipCount = deactivated

		return CompleteLedgerEntry(tx, models.WebhookProviderClerk, event.EventID)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func upsertUser(tx *gorm.DB, event *UserWebhookEvent) error {
	now := time.Now()
	user := &models.User{
		ClerkUserID:  event.Data.ID,
		FirstName:    event.Data.FirstName,
		LastName:     event.Data.LastName,
		Email:        event.Data.PrimaryEmail(),
		AvatarURL:    event.Data.ImageURL,
		Deleted:      false,
		LastSyncedAt: &now,
	}
	return repository.NewUserRepository(tx).Upsert(user)
}

// tenantHint picks the single tenant referenced by the payload, if there is
// exactly one. Purely observability metadata on the ledger row.
func tenantHint(event *UserWebhookEvent) string {
	roles := event.Data.PrivateMetadata.TenantRoles
	if len(roles) != 1 {
		return ""
	}
	for tenantID := range roles {
		return tenantID
	}
	return ""
}

func validateEvent(event *UserWebhookEvent) error {
	eventType := "unknown"
	if event != nil && event.EventType != "" {
		eventType = event.EventType
	}
	if event == nil {
		return newValidationError(eventType, []string{"event: required"})
	}
	if !IsSupportedEventType(event.EventType) {
		return newValidationError(eventType, []string{"type: unsupported event type"})
	}

	v := validator.New()
	var reasons []string
	if err := v.Struct(event); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		for _, fe := range verrs {
			reasons = append(reasons, fmt.Sprintf("%s: %s", fe.Namespace(), fe.Tag()))
		}
	}
	if len(reasons) > 0 {
		return newValidationError(eventType, reasons)
	}
	return nil
}
