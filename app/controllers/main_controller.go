package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/slotrix/slotrix/internal/pkg/database"
)

// HandleHealth reports process and database liveness.
func HandleHealth(c *fiber.Ctx) error {
	db := database.GetDB()
	if db == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "database": "unavailable"})
	}
	sqlDB, err := db.DB()
	if err != nil || sqlDB.Ping() != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "database": "unreachable"})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
}
