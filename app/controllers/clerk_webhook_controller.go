package controllers

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/slotrix/slotrix/app/models"
	"github.com/slotrix/slotrix/internal/pkg/database"
	"github.com/slotrix/slotrix/internal/pkg/env"
	"github.com/slotrix/slotrix/internal/pkg/identitysync"
	"github.com/slotrix/slotrix/internal/pkg/metrics/counter"
)

// HandleClerkWebhook receives identity provider lifecycle events. Signature
// verification runs first; the sync service trusts everything behind it.
func HandleClerkWebhook(c *fiber.Ctx) error {
	rawBody := append([]byte(nil), c.BodyRaw()...)
	id := strings.TrimSpace(c.Get(identitysync.HeaderWebhookID))
	timestamp := strings.TrimSpace(c.Get(identitysync.HeaderWebhookTimestamp))
	signature := strings.TrimSpace(c.Get(identitysync.HeaderWebhookSignature))
	secret := env.GetEnv("CLERK_WEBHOOK_SECRET", "")

	event, err := identitysync.VerifyAndParse(rawBody, id, timestamp, signature, secret)
	if err != nil {
		// Payload and signature stay out of the log on purpose.
		log.Printf("clerk webhook rejected: %v", err)
		_ = counter.AddWebhookOutcome(models.WebhookProviderClerk, counter.OutcomeInvalid)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid_signature"})
	}

	if !identitysync.IsSupportedEventType(event.EventType) {
		// Unsupported lifecycle types are acknowledged without touching the
		// sync service at all.
		_ = counter.AddWebhookOutcome(models.WebhookProviderClerk, counter.OutcomeIgnored)
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true, "ignored": true})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	svc := identitysync.NewService(database.GetDB())
	result, err := svc.Sync(ctx, event)
	if err != nil {
		if verr, ok := identitysync.AsValidationError(err); ok {
			log.Printf("clerk webhook invalid payload: event=%s type=%s reasons=%v", id, event.EventType, verr.Reasons)
			_ = counter.AddWebhookOutcome(models.WebhookProviderClerk, counter.OutcomeInvalid)
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_payload", "reasons": verr.Reasons})
		}
		log.Printf("clerk webhook sync failed: event=%s type=%s err=%v", id, event.EventType, err)
		_ = counter.AddWebhookOutcome(models.WebhookProviderClerk, counter.OutcomeFailed)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "sync_failed"})
	}

	if len(result.IgnoredTenantIDs) > 0 || len(result.IgnoredRoleTenantIDs) > 0 {
		log.Printf("clerk webhook partial trust: event=%s user=%s unknown_tenants=%v unknown_roles=%v",
			result.ClerkEventID, result.ClerkUserID, result.IgnoredTenantIDs, result.IgnoredRoleTenantIDs)
	}

	outcome := counter.OutcomeProcessed
	if result.Idempotent {
		outcome = counter.OutcomeDuplicate
	}
	_ = counter.AddWebhookOutcome(models.WebhookProviderClerk, outcome)

	log.Printf("clerk webhook done: event=%s type=%s user=%s idempotent=%t upserted=%d deactivated=%d",
		result.ClerkEventID, result.EventType, result.ClerkUserID, result.Idempotent,
		result.UpsertedMembershipCount, result.DeactivatedMembershipCount)

	return c.Status(fiber.StatusOK).JSON(result)
}
