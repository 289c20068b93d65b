package models

import "time"

// Closed role set for tenant memberships. Roles outside this set are never
// written; the sync payload parser filters them out.
const (
	RoleOwner   = "owner"
	RoleManager = "manager"
	RoleStaff   = "staff"
	RoleViewer  = "viewer"
)

// ValidRole reports whether role is a member of the closed role set.
func ValidRole(role string) bool {
	switch role {
	case RoleOwner, RoleManager, RoleStaff, RoleViewer:
		return true
	default:
		return false
	}
}

// TenantMembership links one provider user to one tenant. There is at most one
// row per (tenant, user) pair; role changes mutate the row in place and
// removal only flips Active so the audit history survives.
type TenantMembership struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	TenantID    string    `gorm:"type:varchar(64);not null;index:ux_tenant_memberships_tenant_user,unique,priority:1" json:"tenant_id"`
	ClerkUserID string    `gorm:"type:varchar(64);not null;index;index:ux_tenant_memberships_tenant_user,unique,priority:2" json:"clerk_user_id"`
	Role        string    `gorm:"type:varchar(20);not null" json:"role"`
	Active      bool      `gorm:"default:true;index" json:"active"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
