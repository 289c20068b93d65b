package payments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/slotrix/slotrix/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Booking{}, &models.WebhookEvent{}))
	return db
}

func seedBooking(t *testing.T, db *gorm.DB, reference string) {
	t.Helper()
	now := time.Now()
	booking := &models.Booking{
		Reference:     reference,
		TenantID:      "tnt_alpha",
		ResourceID:    1,
		StartsAt:      now.Add(time.Hour),
		EndsAt:        now.Add(2 * time.Hour),
		Status:        models.BookingStatusPending,
		PaymentStatus: models.PaymentStatusUnpaid,
	}
	require.NoError(t, db.Create(booking).Error)
}

func checkoutEvent(eventID, eventType, reference string) *CheckoutEvent {
	return &CheckoutEvent{
		EventID:   eventID,
		EventType: eventType,
		Metadata:  CheckoutMetadata{BookingReference: reference, TenantID: "tnt_alpha"},
		Payload:   []byte(`{"id":"` + eventID + `"}`),
	}
}

func TestHandleCheckoutCompletedMarksBookingPaid(t *testing.T) {
	db := newTestDB(t)
	seedBooking(t, db, "bk_abc123")
	svc := NewService(db)

	result, err := svc.HandleCheckoutEvent(context.Background(), checkoutEvent("pay_1", EventCheckoutCompleted, "bk_abc123"))
	require.NoError(t, err)
	assert.True(t, result.Paid)
	assert.False(t, result.Idempotent)

	var booking models.Booking
	require.NoError(t, db.Where("reference = ?", "bk_abc123").First(&booking).Error)
	assert.Equal(t, models.PaymentStatusPaid, booking.PaymentStatus)
}

func TestHandleCheckoutDuplicateDeliveryIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	seedBooking(t, db, "bk_abc123")
	svc := NewService(db)

	event := checkoutEvent("pay_1", EventCheckoutCompleted, "bk_abc123")
	_, err := svc.HandleCheckoutEvent(context.Background(), event)
	require.NoError(t, err)

	second, err := svc.HandleCheckoutEvent(context.Background(), event)
	require.NoError(t, err)
	assert.True(t, second.Idempotent)
	assert.False(t, second.Paid, "a suppressed redelivery reports no domain effect")
}

func TestHandleCheckoutStaleReferenceIsAcknowledged(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	result, err := svc.HandleCheckoutEvent(context.Background(), checkoutEvent("pay_1", EventCheckoutCompleted, "bk_missing"))
	require.NoError(t, err, "an unknown booking reference must not fail the delivery")
	assert.False(t, result.Paid)

	entry := &models.WebhookEvent{}
	require.NoError(t, db.Where("provider = ? AND event_id = ?", models.WebhookProviderCheckout, "pay_1").First(entry).Error)
	assert.True(t, entry.Processed())
}

func TestHandleCheckoutCompletedRequiresReference(t *testing.T) {
	svc := NewService(newTestDB(t))

	_, err := svc.HandleCheckoutEvent(context.Background(), checkoutEvent("pay_1", EventCheckoutCompleted, ""))
	if !errors.Is(err, ErrMissingBookingReference) {
		t.Fatalf("expected ErrMissingBookingReference, got %v", err)
	}
}

func TestHandleCheckoutUnknownTypeIsLedgeredNoOp(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	result, err := svc.HandleCheckoutEvent(context.Background(), checkoutEvent("pay_1", "checkout.expired", "bk_abc123"))
	require.NoError(t, err)
	assert.False(t, result.Paid)

	entry := &models.WebhookEvent{}
	require.NoError(t, db.Where("provider = ? AND event_id = ?", models.WebhookProviderCheckout, "pay_1").First(entry).Error)
	assert.True(t, entry.Processed(), "unknown checkout types are still recorded for dedup")
}
