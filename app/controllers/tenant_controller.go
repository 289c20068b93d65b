package controllers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/slotrix/slotrix/app/models"
	"github.com/slotrix/slotrix/app/repository"
)

type createTenantRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// HandleCreateTenant provisions a new tenant (operator endpoint).
func HandleCreateTenant(c *fiber.Ctx) error {
	var req createTenantRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_body"})
	}

	tenant, err := models.NewTenant(req.Name, req.Slug)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_tenant", "message": err.Error()})
	}

	repo := repository.GetGlobalFactory().GetTenantRepository()
	if err := repo.Create(tenant); err != nil {
		log.Printf("create tenant failed: slug=%s err=%v", req.Slug, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "tenant_create_failed"})
	}

	return c.Status(fiber.StatusCreated).JSON(tenant)
}

// HandleListTenants lists tenants (operator endpoint).
func HandleListTenants(c *fiber.Ctx) error {
	offset := c.QueryInt("offset", 0)
	limit := c.QueryInt("limit", 50)
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	repo := repository.GetGlobalFactory().GetTenantRepository()
	tenants, err := repo.List(offset, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "tenant_list_failed"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"tenants": tenants, "offset": offset, "limit": limit})
}

// HandleIssueTenantAPIKey rotates the tenant's API key and returns the
// plaintext once.
func HandleIssueTenantAPIKey(c *fiber.Ctx) error {
	publicID := c.Params("publicID")

	repo := repository.GetGlobalFactory().GetTenantRepository()
	tenant, err := repo.GetByPublicID(publicID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "tenant_not_found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "tenant_lookup_failed"})
	}

	key, err := tenant.IssueAPIKey()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "api_key_generation_failed"})
	}
	if err := repo.Update(tenant); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "api_key_save_failed"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"api_key": key, "api_key_prefix": tenant.APIKeyPrefix})
}
