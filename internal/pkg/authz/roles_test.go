package authz

import (
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/slotrix/slotrix/app/models"
)

func TestAtLeast(t *testing.T) {
	tests := []struct {
		role     string
		required string
		want     bool
	}{
		{models.RoleOwner, models.RoleOwner, true},
		{models.RoleOwner, models.RoleViewer, true},
		{models.RoleManager, models.RoleStaff, true},
		{models.RoleStaff, models.RoleManager, false},
		{models.RoleViewer, models.RoleOwner, false},
		{"", models.RoleViewer, false},
		{"superuser", models.RoleViewer, false},
		{models.RoleViewer, "", false},
	}
	for _, tt := range tests {
		if got := AtLeast(tt.role, tt.required); got != tt.want {
			t.Errorf("AtLeast(%q, %q) = %v, want %v", tt.role, tt.required, got, tt.want)
		}
	}
}

func TestCheckerCan(t *testing.T) {
	roles := map[string]string{
		"tnt_alpha/user_1": models.RoleManager,
	}
	checker := NewChecker(func(tenantID, clerkUserID string) (string, error) {
		return roles[tenantID+"/"+clerkUserID], nil
	})

	ok, err := checker.Can("tnt_alpha", "user_1", models.RoleStaff)
	if err != nil || !ok {
		t.Errorf("manager should pass a staff check, got ok=%v err=%v", ok, err)
	}

	ok, err = checker.Can("tnt_alpha", "user_1", models.RoleOwner)
	if err != nil || ok {
		t.Errorf("manager should fail an owner check, got ok=%v err=%v", ok, err)
	}

	ok, err = checker.Can("tnt_beta", "user_1", models.RoleViewer)
	if err != nil || ok {
		t.Errorf("no membership should fail every check, got ok=%v err=%v", ok, err)
	}
}

func TestCheckerPropagatesLookupErrors(t *testing.T) {
	lookupErr := errors.New("membership query failed")
	checker := NewChecker(func(tenantID, clerkUserID string) (string, error) {
		return "", lookupErr
	})

	ok, err := checker.Can("tnt_alpha", "user_1", models.RoleViewer)
	if ok || !errors.Is(err, lookupErr) {
		t.Errorf("expected lookup error to propagate, got ok=%v err=%v", ok, err)
	}
}

type fakeMembershipRepo struct {
	rows map[string]models.TenantMembership
}

func (f *fakeMembershipRepo) Upsert(m *models.TenantMembership) error { return nil }
func (f *fakeMembershipRepo) DeactivateAllExcept(clerkUserID string, keepTenantIDs []string) (int64, error) {
	return 0, nil
}
func (f *fakeMembershipRepo) ListActiveByUser(clerkUserID string) ([]models.TenantMembership, error) {
	return nil, nil
}
func (f *fakeMembershipRepo) ListByTenant(tenantID string, offset, limit int) ([]models.TenantMembership, error) {
	return nil, nil
}
func (f *fakeMembershipRepo) GetByTenantAndUser(tenantID, clerkUserID string) (*models.TenantMembership, error) {
	if m, ok := f.rows[tenantID+"/"+clerkUserID]; ok {
		return &m, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func TestMembershipChecker(t *testing.T) {
	repo := &fakeMembershipRepo{rows: map[string]models.TenantMembership{
		"tnt_alpha/user_1": {TenantID: "tnt_alpha", ClerkUserID: "user_1", Role: models.RoleManager, Active: true},
		"tnt_alpha/user_2": {TenantID: "tnt_alpha", ClerkUserID: "user_2", Role: models.RoleOwner, Active: false},
	}}
	checker := NewMembershipChecker(repo)

	ok, err := checker.Can("tnt_alpha", "user_1", models.RoleStaff)
	if err != nil || !ok {
		t.Errorf("active manager should pass a staff check, got ok=%v err=%v", ok, err)
	}

	ok, err = checker.Can("tnt_alpha", "user_2", models.RoleViewer)
	if err != nil || ok {
		t.Errorf("deactivated membership grants nothing, got ok=%v err=%v", ok, err)
	}

	ok, err = checker.Can("tnt_alpha", "user_3", models.RoleViewer)
	if err != nil || ok {
		t.Errorf("missing membership grants nothing, got ok=%v err=%v", ok, err)
	}
}
