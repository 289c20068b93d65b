package repository

import (
	"strings"

	"github.com/slotrix/slotrix/app/models"
	"gorm.io/gorm"
)

// tenantRepository implements the TenantRepository interface
type tenantRepository struct {
	db *gorm.DB
}

// NewTenantRepository creates a new tenant repository instance
func NewTenantRepository(db *gorm.DB) TenantRepository {
	return &tenantRepository{db: db}
}

// Create creates a new tenant in the database
func (r *tenantRepository) Create(tenant *models.Tenant) error {
	return r.db.Create(tenant).Error
}

// GetByPublicID retrieves a tenant by its public id
func (r *tenantRepository) GetByPublicID(publicID string) (*models.Tenant, error) {
	var tenant models.Tenant
	err := r.db.Where("public_id = ?", publicID).First(&tenant).Error
	if err != nil {
		return nil, err
	}
	return &tenant, nil
}

// GetByAPIKeyHash resolves an active API key hash to its tenant.
func (r *tenantRepository) GetByAPIKeyHash(hash string) (*models.Tenant, error) {
	trimmed := strings.TrimSpace(hash)
	if trimmed == "" {
		return nil, gorm.ErrRecordNotFound
	}
	var tenant models.Tenant
	err := r.db.Where("api_key_hash = ? AND api_key_hash <> '' AND active = ?", trimmed, true).
		First(&tenant).Error
	if err != nil {
		return nil, err
	}
	return &tenant, nil
}

// List returns tenants with pagination
func (r *tenantRepository) List(offset, limit int) ([]models.Tenant, error) {
	var tenants []models.Tenant
	err := r.db.Offset(offset).Limit(limit).Order("created_at DESC").Find(&tenants).Error
	return tenants, err
}

// ListActivePublicIDs returns the public ids of every active tenant. The sync
// payload parser uses this as its known-tenant set, so it must be read inside
// the same transaction as the membership writes.
func (r *tenantRepository) ListActivePublicIDs() ([]string, error) {
	var ids []string
	err := r.db.Model(&models.Tenant{}).
		Where("active = ?", true).
		Order("public_id ASC").
		Pluck("public_id", &ids).Error
	return ids, err
}

// Update updates an existing tenant
func (r *tenantRepository) Update(tenant *models.Tenant) error {
	return r.db.Save(tenant).Error
}

// Count returns the total number of tenants
func (r *tenantRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Tenant{}).Count(&count).Error
	return count, err
}
