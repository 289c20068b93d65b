package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/slotrix/slotrix/app/controllers"
	"github.com/slotrix/slotrix/internal/pkg/constants"
)

type HttpRouter struct {
}

// InstallRouter registers the unauthenticated surface: health and the two
// webhook endpoints. Webhooks authenticate via provider signatures, not API
// keys, so they live outside the /api group.
func (h HttpRouter) InstallRouter(app *fiber.App) {
	app.Get(constants.HealthRoute, controllers.HandleHealth)

	webhooks := app.Group(constants.WebhooksRoute)
	webhooks.Post("/clerk", controllers.HandleClerkWebhook)
	webhooks.Post("/checkout", controllers.HandleCheckoutWebhook)
}

func NewHttpRouter() *HttpRouter {
	return &HttpRouter{}
}
