package repository

import (
	"testing"

	"github.com/slotrix/slotrix/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMembershipUpsertMutatesExistingRow(t *testing.T) {
	db := newTestDB(t)
	repo := NewMembershipRepository(db)

	require.NoError(t, repo.Upsert(&models.TenantMembership{
		TenantID: "tnt_alpha", ClerkUserID: "user_1", Role: models.RoleStaff, Active: true,
	}))
	require.NoError(t, repo.Upsert(&models.TenantMembership{
		TenantID: "tnt_alpha", ClerkUserID: "user_1", Role: models.RoleOwner, Active: true,
	}))

	var rows []models.TenantMembership
	require.NoError(t, db.Where("clerk_user_id = ?", "user_1").Find(&rows).Error)
	require.Len(t, rows, 1, "one row per (tenant, user) pair")
	assert.Equal(t, models.RoleOwner, rows[0].Role)
}

func TestDeactivateAllExcept(t *testing.T) {
	db := newTestDB(t)
	repo := NewMembershipRepository(db)

	for _, tenantID := range []string{"tnt_a", "tnt_b", "tnt_c"} {
		require.NoError(t, repo.Upsert(&models.TenantMembership{
			TenantID: tenantID, ClerkUserID: "user_1", Role: models.RoleViewer, Active: true,
		}))
	}
	require.NoError(t, repo.Upsert(&models.TenantMembership{
		TenantID: "tnt_a", ClerkUserID: "user_2", Role: models.RoleOwner, Active: true,
	}))

	rows, err := repo.DeactivateAllExcept("user_1", []string{"tnt_b"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), rows)

	active, err := repo.ListActiveByUser("user_1")
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "tnt_b", active[0].TenantID)

	other, err := repo.ListActiveByUser("user_2")
	require.NoError(t, err)
	assert.Len(t, other, 1, "other users are untouched")
}

func TestDeactivateAllExceptEmptyKeepSet(t *testing.T) {
	db := newTestDB(t)
	repo := NewMembershipRepository(db)

	require.NoError(t, repo.Upsert(&models.TenantMembership{
		TenantID: "tnt_a", ClerkUserID: "user_1", Role: models.RoleViewer, Active: true,
	}))

	rows, err := repo.DeactivateAllExcept("user_1", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)
}
