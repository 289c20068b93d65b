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
	"github.com/slotrix/slotrix/internal/pkg/metrics/counter"
	"github.com/slotrix/slotrix/internal/pkg/payments"
)

// HandleCheckoutWebhook receives payment provider events and marks the
// referenced booking paid on checkout completion.
func HandleCheckoutWebhook(c *fiber.Ctx) error {
	rawBody := append([]byte(nil), c.BodyRaw()...)
	signature := strings.TrimSpace(c.Get("X-Checkout-Signature"))
	secret := env.GetEnv("PAYMENT_WEBHOOK_SECRET", "")

	if !payments.VerifyCheckoutWebhookSignature(rawBody, signature, secret) {
		log.Print("checkout webhook rejected: invalid signature")
		_ = counter.AddWebhookOutcome(models.WebhookProviderCheckout, counter.OutcomeInvalid)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid_signature"})
	}

	event, err := payments.ParseCheckoutEvent(rawBody)
	if err != nil {
		_ = counter.AddWebhookOutcome(models.WebhookProviderCheckout, counter.OutcomeInvalid)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_payload"})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	svc := payments.NewService(database.GetDB())
	result, err := svc.HandleCheckoutEvent(ctx, event)
	if err != nil {
		log.Printf("checkout webhook failed: event=%s type=%s err=%v", event.EventID, event.EventType, err)
		_ = counter.AddWebhookOutcome(models.WebhookProviderCheckout, counter.OutcomeFailed)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "webhook_processing_failed"})
	}

	outcome := counter.OutcomeProcessed
	if result.Idempotent {
		outcome = counter.OutcomeDuplicate
	}
	_ = counter.AddWebhookOutcome(models.WebhookProviderCheckout, outcome)

	log.Printf("checkout webhook done: event=%s type=%s idempotent=%t paid=%t ref=%s",
		result.EventID, result.EventType, result.Idempotent, result.Paid, result.BookingReference)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true, "duplicate": result.Idempotent})
}
