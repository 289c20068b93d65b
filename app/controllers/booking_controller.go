package controllers

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/slotrix/slotrix/app/repository"
	"github.com/slotrix/slotrix/internal/pkg/booking"
	"github.com/slotrix/slotrix/internal/pkg/database"
	"github.com/slotrix/slotrix/internal/pkg/metrics/counter"
	"github.com/slotrix/slotrix/internal/pkg/tenantcontext"
)

type createBookingRequest struct {
	ResourceID  uint      `json:"resource_id" validate:"required"`
	ClerkUserID string    `json:"clerk_user_id" validate:"max=64"`
	StartsAt    time.Time `json:"starts_at" validate:"required"`
	EndsAt      time.Time `json:"ends_at" validate:"required"`
	Notes       string    `json:"notes" validate:"max=2000"`
}

// HandleCreateBooking creates a pending booking for the authenticated tenant.
func HandleCreateBooking(c *fiber.Ctx) error {
	tenant := tenantcontext.Get(c)

	var req createBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_body"})
	}
	if err := validator.New().Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_body", "message": err.Error()})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	svc := booking.NewService(database.GetDB())
	created, err := svc.Create(ctx, booking.CreateBookingInput{
		TenantID:    tenant.TenantID,
		ResourceID:  req.ResourceID,
		ClerkUserID: req.ClerkUserID,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		Notes:       req.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrInvalidTimeRange):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_time_range"})
		case errors.Is(err, booking.ErrResourceUnavailable):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "resource_unavailable"})
		case errors.Is(err, booking.ErrSlotConflict):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "slot_conflict"})
		default:
			log.Printf("create booking failed: tenant=%s err=%v", tenant.TenantID, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "booking_create_failed"})
		}
	}

	_ = counter.AddBookingCreated(tenant.TenantID)

	return c.Status(fiber.StatusCreated).JSON(created)
}

// HandleListBookings lists the tenant's bookings newest first.
func HandleListBookings(c *fiber.Ctx) error {
	tenant := tenantcontext.Get(c)
	offset := c.QueryInt("offset", 0)
	limit := c.QueryInt("limit", 50)
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	repo := repository.GetGlobalFactory().GetBookingRepository()
	bookings, err := repo.ListByTenant(tenant.TenantID, offset, limit)
	if err != nil {
		log.Printf("list bookings failed: tenant=%s err=%v", tenant.TenantID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "booking_list_failed"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"bookings": bookings, "offset": offset, "limit": limit})
}

// HandleGetBooking fetches one booking by reference.
func HandleGetBooking(c *fiber.Ctx) error {
	tenant := tenantcontext.Get(c)
	reference := c.Params("reference")

	repo := repository.GetGlobalFactory().GetBookingRepository()
	found, err := repo.GetByReference(tenant.TenantID, reference)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "booking_not_found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "booking_lookup_failed"})
	}

	return c.Status(fiber.StatusOK).JSON(found)
}

// HandleConfirmBooking confirms a pending booking.
func HandleConfirmBooking(c *fiber.Ctx) error {
	return handleBookingTransition(c, func(svc *booking.Service, ctx context.Context, tenantID, ref string) error {
		_, err := svc.Confirm(ctx, tenantID, ref)
		return err
	})
}

// HandleCancelBooking cancels a pending or confirmed booking.
func HandleCancelBooking(c *fiber.Ctx) error {
	return handleBookingTransition(c, func(svc *booking.Service, ctx context.Context, tenantID, ref string) error {
		_, err := svc.Cancel(ctx, tenantID, ref)
		return err
	})
}

func handleBookingTransition(c *fiber.Ctx, apply func(svc *booking.Service, ctx context.Context, tenantID, ref string) error) error {
	tenant := tenantcontext.Get(c)
	reference := c.Params("reference")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	svc := booking.NewService(database.GetDB())
	if err := apply(svc, ctx, tenant.TenantID, reference); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "booking_not_found"})
		case errors.Is(err, booking.ErrNotCancelable):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "invalid_transition"})
		default:
			log.Printf("booking transition failed: tenant=%s ref=%s err=%v", tenant.TenantID, reference, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "booking_update_failed"})
		}
	}

	repo := repository.GetGlobalFactory().GetBookingRepository()
	updated, err := repo.GetByReference(tenant.TenantID, reference)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "booking_lookup_failed"})
	}
	return c.Status(fiber.StatusOK).JSON(updated)
}
