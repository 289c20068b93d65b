package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/slotrix/slotrix/app/models"
	"github.com/slotrix/slotrix/app/repository"
	"github.com/slotrix/slotrix/internal/pkg/identitysync"
	"github.com/slotrix/slotrix/internal/pkg/refcode"
	"gorm.io/gorm"
)

var (
	ErrInvalidTimeRange    = errors.New("booking end must be after start")
	ErrResourceUnavailable = errors.New("resource not found or inactive for tenant")
	ErrSlotConflict        = errors.New("resource already booked in that time range")
	ErrNotCancelable       = errors.New("booking can no longer be canceled")
)

// CreateBookingInput is the normalized input for booking creation.
type CreateBookingInput struct {
	TenantID    string
	ResourceID  uint
	ClerkUserID string
	StartsAt    time.Time
	EndsAt      time.Time
	Notes       string
}

// Service covers the booking lifecycle. Creation runs the conflict check and
// the insert in one retry-wrapped transaction so two racing requests for the
// same slot cannot both commit.
type Service struct {
	db    *gorm.DB
	retry identitysync.RetryOptions
}

// NewService creates a booking service on the given database handle.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db, retry: identitysync.DefaultRetryOptions()}
}

// Create reserves a resource slot and returns the pending booking.
func (s *Service) Create(ctx context.Context, in CreateBookingInput) (*models.Booking, error) {
	if !in.EndsAt.After(in.StartsAt) {
		return nil, ErrInvalidTimeRange
	}

	reference, err := refcode.Generate("bk")
	if err != nil {
		return nil, fmt.Errorf("generate booking reference: %w", err)
	}

	var created *models.Booking
	err = identitysync.TxWithRetry(ctx, s.db, s.retry, func(tx *gorm.DB) error {
		resources := repository.NewResourceRepository(tx)
		resource, err := resources.GetByID(in.ResourceID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrResourceUnavailable
			}
			return err
		}
		if resource.TenantID != in.TenantID || !resource.Active {
			return ErrResourceUnavailable
		}

		bookings := repository.NewBookingRepository(tx)
		overlapping, err := bookings.CountOverlapping(in.TenantID, in.ResourceID, in.StartsAt, in.EndsAt)
		if err != nil {
			return err
		}
		if overlapping > 0 {
			return ErrSlotConflict
		}

		booking := &models.Booking{
			Reference:     reference,
			TenantID:      in.TenantID,
			ResourceID:    in.ResourceID,
			ClerkUserID:   in.ClerkUserID,
			StartsAt:      in.StartsAt,
			EndsAt:        in.EndsAt,
			Status:        models.BookingStatusPending,
			PaymentStatus: models.PaymentStatusUnpaid,
			Notes:         in.Notes,
		}
		if err := booking.Validate(); err != nil {
			return err
		}
		if err := bookings.Create(booking); err != nil {
			return err
		}
		created = booking
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Confirm moves a pending booking to confirmed.
func (s *Service) Confirm(ctx context.Context, tenantID, reference string) (*models.Booking, error) {
	return s.transition(ctx, tenantID, reference, func(b *models.Booking) error {
		if b.Status == models.BookingStatusCanceled {
			return ErrNotCancelable
		}
		b.Status = models.BookingStatusConfirmed
		return nil
	})
}

// Cancel cancels a pending or confirmed booking. The row is retained.
func (s *Service) Cancel(ctx context.Context, tenantID, reference string) (*models.Booking, error) {
	return s.transition(ctx, tenantID, reference, func(b *models.Booking) error {
		if !b.IsCancelable() {
			return ErrNotCancelable
		}
		b.Status = models.BookingStatusCanceled
		return nil
	})
}

func (s *Service) transition(ctx context.Context, tenantID, reference string, apply func(*models.Booking) error) (*models.Booking, error) {
	var updated *models.Booking
	err := identitysync.TxWithRetry(ctx, s.db, s.retry, func(tx *gorm.DB) error {
		bookings := repository.NewBookingRepository(tx)
		booking, err := bookings.GetByReference(tenantID, reference)
		if err != nil {
			return err
		}
		if err := apply(booking); err != nil {
			return err
		}
		if err := bookings.Update(booking); err != nil {
			return err
		}
		updated = booking
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
