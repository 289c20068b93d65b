package payments

import (
	"context"
	"errors"

	"github.com/slotrix/slotrix/app/models"
	"github.com/slotrix/slotrix/app/repository"
	"github.com/slotrix/slotrix/internal/pkg/identitysync"
	"gorm.io/gorm"
)

// ErrMissingBookingReference marks a completed checkout whose metadata does
// not point at any booking. The delivery is still ledgered so redeliveries
// stay no-ops.
var ErrMissingBookingReference = errors.New("checkout event has no booking reference")

// Service applies payment provider webhooks. It is the simple half of the
// idempotency pattern: same durable event ledger and retry-wrapped
// transaction as the identity sync, but without a desired-state diff. A
// completed checkout just flips the referenced booking to paid.
type Service struct {
	db    *gorm.DB
	retry identitysync.RetryOptions
}

// NewService creates a payment webhook service on the given database handle.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db, retry: identitysync.DefaultRetryOptions()}
}

// HandleCheckoutEvent processes one verified checkout delivery. Redelivery of
// a processed event id returns Idempotent=true without touching the booking.
func (s *Service) HandleCheckoutEvent(ctx context.Context, event *CheckoutEvent) (*Result, error) {
	var result *Result
	err := identitysync.TxWithRetry(ctx, s.db, s.retry, func(tx *gorm.DB) error {
		result = &Result{
			EventID:          event.EventID,
			EventType:        event.EventType,
			BookingReference: event.Metadata.BookingReference,
		}

		entry := &models.WebhookEvent{
			Provider:        models.WebhookProviderCheckout,
			EventID:         event.EventID,
			EventType:       event.EventType,
			TenantIDHint:    event.Metadata.TenantID,
			PayloadChecksum: models.ChecksumPayload(event.Payload),
		}
		alreadyProcessed, err := identitysync.BeginLedgerEntry(tx, entry)
		if err != nil {
			return err
		}
		if alreadyProcessed {
			result.Idempotent = true
			return nil
		}

		if event.EventType == EventCheckoutCompleted {
			if event.Metadata.BookingReference == "" {
				return ErrMissingBookingReference
			}
			rows, err := repository.NewBookingRepository(tx).MarkPaidByReference(event.Metadata.BookingReference)
			if err != nil {
				return err
			}
			// Zero rows means the booking was already paid or the reference
			// is stale; both are acknowledged, not failed.
			result.Paid = rows > 0
		}

		return identitysync.CompleteLedgerEntry(tx, models.WebhookProviderCheckout, event.EventID)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
