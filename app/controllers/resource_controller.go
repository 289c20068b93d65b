package controllers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/slotrix/slotrix/app/models"
	"github.com/slotrix/slotrix/app/repository"
	"github.com/slotrix/slotrix/internal/pkg/tenantcontext"
)

type createResourceRequest struct {
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
}

// HandleCreateResource adds a bookable resource for the authenticated tenant.
func HandleCreateResource(c *fiber.Ctx) error {
	tenant := tenantcontext.Get(c)

	var req createResourceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_body"})
	}
	if req.Capacity <= 0 {
		req.Capacity = 1
	}

	resource := &models.Resource{
		TenantID: tenant.TenantID,
		Name:     req.Name,
		Capacity: req.Capacity,
		Active:   true,
	}
	if err := resource.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_resource", "message": err.Error()})
	}

	repo := repository.GetGlobalFactory().GetResourceRepository()
	if err := repo.Create(resource); err != nil {
		log.Printf("create resource failed: tenant=%s err=%v", tenant.TenantID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "resource_create_failed"})
	}

	return c.Status(fiber.StatusCreated).JSON(resource)
}

// HandleListResources lists the tenant's resources.
func HandleListResources(c *fiber.Ctx) error {
	tenant := tenantcontext.Get(c)

	repo := repository.GetGlobalFactory().GetResourceRepository()
	resources, err := repo.ListByTenant(tenant.TenantID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "resource_list_failed"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"resources": resources})
}
