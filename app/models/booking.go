package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCanceled  = "canceled"

	PaymentStatusUnpaid = "unpaid"
	PaymentStatusPaid   = "paid"
)

// Booking reserves one resource for a time range within a tenant. Reference is
// the external handle used in links and payment metadata.
type Booking struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Reference     string    `gorm:"uniqueIndex;type:varchar(64);not null" json:"reference"`
	TenantID      string    `gorm:"type:varchar(64);not null;index" json:"tenant_id" validate:"required,max=64"`
	ResourceID    uint      `gorm:"not null;index" json:"resource_id" validate:"required"`
	ClerkUserID   string    `gorm:"type:varchar(64);index;default:null" json:"clerk_user_id"`
	StartsAt      time.Time `gorm:"not null;index" json:"starts_at" validate:"required"`
	EndsAt        time.Time `gorm:"not null" json:"ends_at" validate:"required"`
	Status        string    `gorm:"type:varchar(20);not null;default:'pending';index" json:"status" validate:"oneof=pending confirmed canceled"`
	PaymentStatus string    `gorm:"type:varchar(20);not null;default:'unpaid'" json:"payment_status" validate:"oneof=unpaid paid"`
	Notes         string    `gorm:"type:text" json:"notes" validate:"max=2000"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (b *Booking) Validate() error {
	v := validator.New()

	return v.Struct(b)
}

// IsCancelable reports whether the booking may still transition to canceled.
func (b *Booking) IsCancelable() bool {
	return b.Status == BookingStatusPending || b.Status == BookingStatusConfirmed
}
