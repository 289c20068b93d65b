package payments

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
)

// EventCheckoutCompleted is the only checkout event type with domain effects;
// everything else is acknowledged and ledgered as a no-op.
const EventCheckoutCompleted = "checkout.completed"

// CheckoutMetadata is the metadata block merchants attach at checkout time.
// The booking reference links the payment back to a local booking.
type CheckoutMetadata struct {
	BookingReference string `json:"booking_reference"`
	TenantID         string `json:"tenant_id"`
}

// CheckoutEvent is one parsed payment provider webhook delivery.
type CheckoutEvent struct {
	EventID   string           `json:"id"`
	EventType string           `json:"type"`
	Metadata  CheckoutMetadata `json:"metadata"`
	Payload   []byte           `json:"-"`
}

// ParseCheckoutEvent decodes a raw checkout webhook body. Deliveries without
// an event id fall back to a payload-hash id so they still deduplicate.
func ParseCheckoutEvent(raw []byte) (*CheckoutEvent, error) {
	var event CheckoutEvent
	if err := json.Unmarshal(raw, &event); err != nil {
		return nil, err
	}
	event.EventID = strings.TrimSpace(event.EventID)
	if event.EventID == "" {
		sum := sha256.Sum256(raw)
		event.EventID = "hash:" + hex.EncodeToString(sum[:])
	}
	event.Payload = append([]byte(nil), raw...)
	return &event, nil
}

// Result is the outcome handed to logging after a checkout delivery.
type Result struct {
	EventID          string `json:"event_id"`
	EventType        string `json:"event_type"`
	Idempotent       bool   `json:"idempotent"`
	BookingReference string `json:"booking_reference"`
	Paid             bool   `json:"paid"`
}
