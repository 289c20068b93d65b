package identitysync

import (
	"sort"
	"strings"

	"github.com/slotrix/slotrix/app/models"
)

// TenantRole is one validated (tenant, role) assignment.
type TenantRole struct {
	TenantID string
	Role     string
}

// RolePartition splits an untrusted tenant-role map into the subset that can
// be applied and the entries that referenced unknown tenants or roles. Every
// input entry lands in exactly one of the three buckets.
type RolePartition struct {
	Valid                []TenantRole
	UnknownTenantIDs     []string
	UnknownRoleTenantIDs []string
}

// ParseTenantRoles partitions the raw tenant-role map from a provider payload
// against the known-tenant set. Keys are walked in lexicographic order so the
// output never depends on map iteration order. A nil or empty map yields an
// all-empty partition.
func ParseTenantRoles(raw map[string]string, knownTenants map[string]struct{}) RolePartition {
	part := RolePartition{}
	if len(raw) == 0 {
		return part
	}

	keys := make([]string, 0, len(raw))
	for tenantID := range raw {
		keys = append(keys, tenantID)
	}
	sort.Strings(keys)

	for _, tenantID := range keys {
		if _, ok := knownTenants[tenantID]; !ok {
			part.UnknownTenantIDs = append(part.UnknownTenantIDs, tenantID)
			continue
		}
		role := strings.TrimSpace(raw[tenantID])
		if !models.ValidRole(role) {
			part.UnknownRoleTenantIDs = append(part.UnknownRoleTenantIDs, tenantID)
			continue
		}
		part.Valid = append(part.Valid, TenantRole{TenantID: tenantID, Role: role})
	}
	return part
}

// TenantIDSet turns a tenant id slice into the set shape ParseTenantRoles expects.
func TenantIDSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
