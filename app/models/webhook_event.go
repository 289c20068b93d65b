package models

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Webhook providers recorded in the event ledger.
const (
	WebhookProviderClerk    = "clerk"
	WebhookProviderCheckout = "checkout"
)

// Ledger statuses. A row is created as "received" before any domain work and
// flipped to "processed" at the very end of the same transaction; the
// transition never runs backwards.
const (
	WebhookStatusReceived  = "received"
	WebhookStatusProcessed = "processed"
)

// WebhookEvent is the durable idempotency ledger for externally delivered
// events. The (provider, event_id) pair is unique; the first delivery wins
// the row and redeliveries of a processed event become no-ops.
type WebhookEvent struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	Provider        string     `gorm:"type:varchar(20);not null;index:ux_webhook_events_provider_event,unique,priority:1;index" json:"provider"`
	EventID         string     `gorm:"type:varchar(191);not null;index:ux_webhook_events_provider_event,unique,priority:2" json:"event_id"`
	EventType       string     `gorm:"type:varchar(100);not null;index" json:"event_type"`
	SubjectUserID   string     `gorm:"type:varchar(64);index;default:null" json:"subject_user_id"`
	TenantIDHint    string     `gorm:"type:varchar(64);default:null" json:"tenant_id_hint"`
	PayloadChecksum string     `gorm:"type:varchar(64);not null;default:''" json:"payload_checksum"`
	Status          string     `gorm:"type:varchar(20);not null;default:'received';index" json:"status"`
	ReceivedAt      time.Time  `gorm:"autoCreateTime;index" json:"received_at"`
	ProcessedAt     *time.Time `gorm:"type:timestamp;default:null" json:"processed_at,omitempty"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// Processed reports whether this delivery already completed.
func (e *WebhookEvent) Processed() bool {
	return e.Status == WebhookStatusProcessed
}

// ChecksumPayload returns the hex SHA-256 digest stored next to each ledger row.
func ChecksumPayload(payload []byte) string {
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}
