package repository

import (
	"time"

	"github.com/slotrix/slotrix/app/models"
)

// UserRepository defines database operations on provider-synced users.
type UserRepository interface {
	GetByClerkID(clerkUserID string) (*models.User, error)
	Upsert(user *models.User) error
	MarkDeleted(clerkUserID string, at time.Time) error
	Count() (int64, error)
}

// TenantRepository defines database operations on tenants.
type TenantRepository interface {
	Create(tenant *models.Tenant) error
	GetByPublicID(publicID string) (*models.Tenant, error)
	GetByAPIKeyHash(hash string) (*models.Tenant, error)
	List(offset, limit int) ([]models.Tenant, error)
	ListActivePublicIDs() ([]string, error)
	Update(tenant *models.Tenant) error
	Count() (int64, error)
}

// MembershipRepository defines database operations on tenant memberships.
type MembershipRepository interface {
	Upsert(m *models.TenantMembership) error
	DeactivateAllExcept(clerkUserID string, keepTenantIDs []string) (int64, error)
	ListActiveByUser(clerkUserID string) ([]models.TenantMembership, error)
	ListByTenant(tenantID string, offset, limit int) ([]models.TenantMembership, error)
	GetByTenantAndUser(tenantID, clerkUserID string) (*models.TenantMembership, error)
}

// WebhookEventRepository defines database operations on the event ledger.
type WebhookEventRepository interface {
	GetByEventID(provider, eventID string) (*models.WebhookEvent, error)
	GetOrCreateReceived(event *models.WebhookEvent) (created bool, stored *models.WebhookEvent, err error)
	MarkProcessed(provider, eventID string, at time.Time) error
}

// BookingRepository defines database operations on bookings.
type BookingRepository interface {
	Create(booking *models.Booking) error
	GetByReference(tenantID, reference string) (*models.Booking, error)
	ListByTenant(tenantID string, offset, limit int) ([]models.Booking, error)
	CountOverlapping(tenantID string, resourceID uint, start, end time.Time) (int64, error)
	Update(booking *models.Booking) error
	MarkPaidByReference(reference string) (int64, error)
}

// ResourceRepository defines database operations on bookable resources.
type ResourceRepository interface {
	Create(resource *models.Resource) error
	GetByID(id uint) (*models.Resource, error)
	ListByTenant(tenantID string) ([]models.Resource, error)
	Update(resource *models.Resource) error
}
