package identitysync

import (
	"reflect"
	"testing"
)

func TestParseTenantRolesPartitionsInput(t *testing.T) {
	known := TenantIDSet([]string{"tnt_alpha", "tnt_beta", "tnt_gamma"})
	raw := map[string]string{
		"tnt_alpha": "owner",
		"tnt_beta":  "sudo",
		"tnt_ghost": "owner",
		"tnt_gamma": " staff ",
	}

	part := ParseTenantRoles(raw, known)

	wantValid := []TenantRole{
		{TenantID: "tnt_alpha", Role: "owner"},
		{TenantID: "tnt_gamma", Role: "staff"},
	}
	if !reflect.DeepEqual(part.Valid, wantValid) {
		t.Errorf("valid partition = %+v, want %+v", part.Valid, wantValid)
	}
	if !reflect.DeepEqual(part.UnknownTenantIDs, []string{"tnt_ghost"}) {
		t.Errorf("unknown tenants = %v, want [tnt_ghost]", part.UnknownTenantIDs)
	}
	if !reflect.DeepEqual(part.UnknownRoleTenantIDs, []string{"tnt_beta"}) {
		t.Errorf("unknown roles = %v, want [tnt_beta]", part.UnknownRoleTenantIDs)
	}
}

func TestParseTenantRolesIsDeterministic(t *testing.T) {
	known := TenantIDSet([]string{"tnt_a", "tnt_b", "tnt_c", "tnt_d"})
	raw := map[string]string{
		"tnt_d": "viewer",
		"tnt_a": "owner",
		"tnt_c": "staff",
		"tnt_b": "manager",
	}

	first := ParseTenantRoles(raw, known)
	for i := 0; i < 50; i++ {
		if got := ParseTenantRoles(raw, known); !reflect.DeepEqual(got, first) {
			t.Fatalf("partition changed between runs: %+v vs %+v", got, first)
		}
	}

	want := []TenantRole{
		{TenantID: "tnt_a", Role: "owner"},
		{TenantID: "tnt_b", Role: "manager"},
		{TenantID: "tnt_c", Role: "staff"},
		{TenantID: "tnt_d", Role: "viewer"},
	}
	if !reflect.DeepEqual(first.Valid, want) {
		t.Errorf("valid partition not lexicographically ordered: %+v", first.Valid)
	}
}

func TestParseTenantRolesEmptyInput(t *testing.T) {
	known := TenantIDSet([]string{"tnt_alpha"})

	for name, raw := range map[string]map[string]string{"nil": nil, "empty": {}} {
		part := ParseTenantRoles(raw, known)
		if len(part.Valid) != 0 || len(part.UnknownTenantIDs) != 0 || len(part.UnknownRoleTenantIDs) != 0 {
			t.Errorf("%s map: expected all-empty partition, got %+v", name, part)
		}
	}
}

func TestParseTenantRolesEveryEntryLandsInOneBucket(t *testing.T) {
	known := TenantIDSet([]string{"tnt_a", "tnt_b"})
	raw := map[string]string{
		"tnt_a": "owner",
		"tnt_b": "root",
		"tnt_x": "owner",
		"tnt_y": "",
	}

	part := ParseTenantRoles(raw, known)
	total := len(part.Valid) + len(part.UnknownTenantIDs) + len(part.UnknownRoleTenantIDs)
	if total != len(raw) {
		t.Errorf("partition lost or duplicated entries: %d buckets from %d inputs", total, len(raw))
	}
}
