package repository

import (
	"github.com/slotrix/slotrix/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// membershipRepository implements the MembershipRepository interface
type membershipRepository struct {
	db *gorm.DB
}

// NewMembershipRepository creates a new membership repository instance
func NewMembershipRepository(db *gorm.DB) MembershipRepository {
	return &membershipRepository{db: db}
}

// Upsert writes the membership row for (tenant_id, clerk_user_id), creating it
// or overwriting role and active flag in place. Role changes are a plain
// overwrite here, never a second row.
func (r *membershipRepository) Upsert(m *models.TenantMembership) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "tenant_id"},
			{Name: "clerk_user_id"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"role",
			"active",
			"updated_at",
		}),
	}).Create(m).Error
}

// DeactivateAllExcept flips active to false on every currently active
// membership of the user whose tenant is not in keepTenantIDs. Rows are
// retained for audit history. Returns the number of deactivated rows.
func (r *membershipRepository) DeactivateAllExcept(clerkUserID string, keepTenantIDs []string) (int64, error) {
	query := r.db.Model(&models.TenantMembership{}).
		Where("clerk_user_id = ? AND active = ?", clerkUserID, true)
	if len(keepTenantIDs) > 0 {
		query = query.Where("tenant_id NOT IN ?", keepTenantIDs)
	}
	result := query.Update("active", false)
	return result.RowsAffected, result.Error
}

// ListActiveByUser returns the user's active memberships ordered by tenant id
func (r *membershipRepository) ListActiveByUser(clerkUserID string) ([]models.TenantMembership, error) {
	var memberships []models.TenantMembership
	err := r.db.Where("clerk_user_id = ? AND active = ?", clerkUserID, true).
		Order("tenant_id ASC").
		Find(&memberships).Error
	return memberships, err
}

// ListByTenant returns memberships for a tenant with pagination
func (r *membershipRepository) ListByTenant(tenantID string, offset, limit int) ([]models.TenantMembership, error) {
	var memberships []models.TenantMembership
	err := r.db.Where("tenant_id = ?", tenantID).
		Offset(offset).Limit(limit).
		Order("clerk_user_id ASC").
		Find(&memberships).Error
	return memberships, err
}

// GetByTenantAndUser retrieves the single membership row for a pair
func (r *membershipRepository) GetByTenantAndUser(tenantID, clerkUserID string) (*models.TenantMembership, error) {
	var m models.TenantMembership
	err := r.db.Where("tenant_id = ? AND clerk_user_id = ?", tenantID, clerkUserID).First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}
