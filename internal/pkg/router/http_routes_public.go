package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/stripehooks/stripehooks/app/controllers"
)

func (h HttpRouter) registerPublicRoutes(app *fiber.App) {
	// Stripe webhook (no CSRF, signature-verified in controller)
	app.Post("/webhook/stripe", controllers.HandleStripeWebhook)
}
