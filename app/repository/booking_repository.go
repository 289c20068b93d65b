package repository

import (
	"time"

	"github.com/slotrix/slotrix/app/models"
	"gorm.io/gorm"
)

// bookingRepository implements the BookingRepository interface
type bookingRepository struct {
	db *gorm.DB
}

// NewBookingRepository creates a new booking repository instance
func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

// Create creates a new booking in the database
func (r *bookingRepository) Create(booking *models.Booking) error {
	return r.db.Create(booking).Error
}

// GetByReference retrieves a booking by its tenant-scoped reference code
func (r *bookingRepository) GetByReference(tenantID, reference string) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.Where("tenant_id = ? AND reference = ?", tenantID, reference).First(&booking).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// ListByTenant returns bookings for a tenant with pagination
func (r *bookingRepository) ListByTenant(tenantID string, offset, limit int) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.Where("tenant_id = ?", tenantID).
		Offset(offset).Limit(limit).
		Order("starts_at DESC").
		Find(&bookings).Error
	return bookings, err
}

// CountOverlapping counts non-canceled bookings on the resource whose time
// range intersects [start, end).
func (r *bookingRepository) CountOverlapping(tenantID string, resourceID uint, start, end time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.Booking{}).
		Where("tenant_id = ? AND resource_id = ? AND status <> ?", tenantID, resourceID, models.BookingStatusCanceled).
		Where("starts_at < ? AND ends_at > ?", end, start).
		Count(&count).Error
	return count, err
}

// Update updates an existing booking
func (r *bookingRepository) Update(booking *models.Booking) error {
	return r.db.Save(booking).Error
}

// MarkPaidByReference flips the payment status for the referenced booking.
// Returns the number of affected rows so callers can tell a stale reference
// from a successful update.
func (r *bookingRepository) MarkPaidByReference(reference string) (int64, error) {
	result := r.db.Model(&models.Booking{}).
		Where("reference = ? AND payment_status = ?", reference, models.PaymentStatusUnpaid).
		Update("payment_status", models.PaymentStatusPaid)
	return result.RowsAffected, result.Error
}
