package identitysync

import (
	"github.com/slotrix/slotrix/app/models"
	"github.com/slotrix/slotrix/app/repository"
	"gorm.io/gorm"
)

// ReconcileMemberships diffs the desired active (tenant, role) set against the
// user's stored memberships and applies the difference inside the given
// transaction: every desired pair is upserted active, then every remaining
// active membership outside the desired tenant set is deactivated. All
// upserts complete before the exclusion set is computed, so a tenant present
// in both the old and new set is never transiently deactivated.
//
// preserveTenantIDs are tenants the event referenced with an entry that
// failed validation; their existing membership state is left exactly as it
// was, neither upserted nor deactivated.
//
// A delete lifecycle event passes an empty desired set, which deactivates
// every membership of the user.
func ReconcileMemberships(tx *gorm.DB, clerkUserID string, desired []TenantRole, preserveTenantIDs []string) (upserted int, deactivated int, err error) {
	memberships := repository.NewMembershipRepository(tx)

	keepTenantIDs := make([]string, 0, len(desired)+len(preserveTenantIDs))
	for _, tr := range desired {
		m := &models.TenantMembership{
			TenantID:    tr.TenantID,
			ClerkUserID: clerkUserID,
			Role:        tr.Role,
			Active:      true,
		}
		if err := memberships.Upsert(m); err != nil {
			return 0, 0, err
		}
		keepTenantIDs = append(keepTenantIDs, tr.TenantID)
		upserted++
	}
	keepTenantIDs = append(keepTenantIDs, preserveTenantIDs...)

	rows, err := memberships.DeactivateAllExcept(clerkUserID, keepTenantIDs)
	if err != nil {
		return 0, 0, err
	}
	deactivated = int(rows)

	return upserted, deactivated, nil
}
