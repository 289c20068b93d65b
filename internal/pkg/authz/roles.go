package authz

import (
	"errors"

	"gorm.io/gorm"

	"github.com/slotrix/slotrix/app/models"
	"github.com/slotrix/slotrix/app/repository"
)

// roleRank orders the closed role set from weakest to strongest. Unknown or
// empty roles rank below viewer.
func roleRank(role string) int {
	switch role {
	case models.RoleOwner:
		return 4
	case models.RoleManager:
		return 3
	case models.RoleStaff:
		return 2
	case models.RoleViewer:
		return 1
	default:
		return 0
	}
}

// AtLeast reports whether role grants at minimum the capabilities of required.
func AtLeast(role, required string) bool {
	return roleRank(role) >= roleRank(required) && roleRank(role) > 0
}

// RoleLookup resolves the active role of a user within a tenant. It is
// injected so permission checks never read process-wide state; the usual
// implementation queries the membership table.
type RoleLookup func(tenantID, clerkUserID string) (string, error)

// Checker answers permission questions against an injected role lookup.
type Checker struct {
	lookup RoleLookup
}

// NewChecker creates a permission checker from a role lookup.
func NewChecker(lookup RoleLookup) *Checker {
	return &Checker{lookup: lookup}
}

// Can reports whether the user holds at least the required role in the tenant.
func (c *Checker) Can(tenantID, clerkUserID, requiredRole string) (bool, error) {
	role, err := c.lookup(tenantID, clerkUserID)
	if err != nil {
		return false, err
	}
	return AtLeast(role, requiredRole), nil
}

// NewMembershipChecker builds a Checker backed by the membership table. Only
// active memberships grant a role; a missing or deactivated row ranks as no
// role at all.
func NewMembershipChecker(memberships repository.MembershipRepository) *Checker {
	return NewChecker(func(tenantID, clerkUserID string) (string, error) {
		m, err := memberships.GetByTenantAndUser(tenantID, clerkUserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return "", nil
			}
			return "", err
		}
		if !m.Active {
			return "", nil
		}
		return m.Role, nil
	})
}
