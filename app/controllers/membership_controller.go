package controllers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/slotrix/slotrix/app/models"
	"github.com/slotrix/slotrix/app/repository"
	"github.com/slotrix/slotrix/internal/pkg/authz"
	"github.com/slotrix/slotrix/internal/pkg/tenantcontext"
)

// HandleListMemberships lists membership rows for the authenticated tenant,
// including deactivated ones so the audit history is visible.
func HandleListMemberships(c *fiber.Ctx) error {
	tenant := tenantcontext.Get(c)
	offset := c.QueryInt("offset", 0)
	limit := c.QueryInt("limit", 100)
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	repo := repository.GetGlobalFactory().GetMembershipRepository()
	memberships, err := repo.ListByTenant(tenant.TenantID, offset, limit)
	if err != nil {
		log.Printf("list memberships failed: tenant=%s err=%v", tenant.TenantID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "membership_list_failed"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"memberships": memberships, "offset": offset, "limit": limit})
}

// HandleCheckPermission answers whether a provider user holds at least the
// given role in the authenticated tenant.
func HandleCheckPermission(c *fiber.Ctx) error {
	tenant := tenantcontext.Get(c)
	clerkUserID := c.Params("clerkUserID")
	requiredRole := c.Query("role", models.RoleViewer)
	if !models.ValidRole(requiredRole) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_role"})
	}

	checker := authz.NewMembershipChecker(repository.GetGlobalFactory().GetMembershipRepository())
	allowed, err := checker.Can(tenant.TenantID, clerkUserID, requiredRole)
	if err != nil {
		log.Printf("permission check failed: tenant=%s user=%s err=%v", tenant.TenantID, clerkUserID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "permission_check_failed"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"clerk_user_id": clerkUserID,
		"role":          requiredRole,
		"allowed":       allowed,
	})
}
