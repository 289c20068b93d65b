package router

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/storage/redis"

	"github.com/slotrix/slotrix/app/controllers"
	"github.com/slotrix/slotrix/internal/pkg/env"
	"github.com/slotrix/slotrix/internal/pkg/middleware"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", limiter.New(limiter.Config{
		Max:        120,
		Expiration: 1 * time.Minute,
		Storage: redis.New(redis.Config{
			Host: env.GetEnv("CACHE_HOST", "localhost"),
		}),
	}))

	// Tenant-facing API, authenticated by tenant API key.
	v1 := api.Group("/v1", middleware.APIKeyAuthMiddleware())
	v1.Get("/resources", controllers.HandleListResources)
	v1.Post("/resources", controllers.HandleCreateResource)
	v1.Get("/bookings", controllers.HandleListBookings)
	v1.Post("/bookings", controllers.HandleCreateBooking)
	v1.Get("/bookings/:reference", controllers.HandleGetBooking)
	v1.Post("/bookings/:reference/confirm", controllers.HandleConfirmBooking)
	v1.Post("/bookings/:reference/cancel", controllers.HandleCancelBooking)
	v1.Get("/memberships", controllers.HandleListMemberships)
	v1.Get("/memberships/:clerkUserID/permissions", controllers.HandleCheckPermission)

	// Operator API, authenticated by the static admin token.
	admin := api.Group("/admin", middleware.AdminTokenMiddleware())
	admin.Get("/tenants", controllers.HandleListTenants)
	admin.Post("/tenants", controllers.HandleCreateTenant)
	admin.Post("/tenants/:publicID/api-key", controllers.HandleIssueTenantAPIKey)
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
