package repository

import (
	"github.com/slotrix/slotrix/app/models"
	"gorm.io/gorm"
)

// resourceRepository implements the ResourceRepository interface
type resourceRepository struct {
	db *gorm.DB
}

// NewResourceRepository creates a new resource repository instance
func NewResourceRepository(db *gorm.DB) ResourceRepository {
	return &resourceRepository{db: db}
}

// Create creates a new resource in the database
func (r *resourceRepository) Create(resource *models.Resource) error {
	return r.db.Create(resource).Error
}

// GetByID retrieves a resource by its ID
func (r *resourceRepository) GetByID(id uint) (*models.Resource, error) {
	var resource models.Resource
	err := r.db.First(&resource, id).Error
	if err != nil {
		return nil, err
	}
	return &resource, nil
}

// ListByTenant returns all resources for a tenant
func (r *resourceRepository) ListByTenant(tenantID string) ([]models.Resource, error) {
	var resources []models.Resource
	err := r.db.Where("tenant_id = ?", tenantID).Order("name ASC").Find(&resources).Error
	return resources, err
}

// Update updates an existing resource
func (r *resourceRepository) Update(resource *models.Resource) error {
	return r.db.Save(resource).Error
}
