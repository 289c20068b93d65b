package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// Resource is a bookable unit (room, court, chair) owned by one tenant.
type Resource struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TenantID  string    `gorm:"type:varchar(64);not null;index" json:"tenant_id" validate:"required,max=64"`
	Name      string    `gorm:"type:varchar(150);not null" json:"name" validate:"required,min=2,max=150"`
	Capacity  int       `gorm:"default:1" json:"capacity" validate:"min=1"`
	Active    bool      `gorm:"default:true;index" json:"active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (r *Resource) Validate() error {
	v := validator.New()

	return v.Struct(r)
}
