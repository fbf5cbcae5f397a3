package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/stripehooks/stripehooks/app/controllers"
	"github.com/stripehooks/stripehooks/internal/pkg/middleware"
)

func (h HttpRouter) registerAdminRoutes(root fiber.Router) {
	adminGroup := root.Group("/admin", middleware.RequireAdmin)
	adminGroup.Get("/", controllers.HandleAdminDashboard)

	// Stripe connection
	adminGroup.Get("/stripe", controllers.HandleStripeConfig)
	adminGroup.Post("/stripe/api-key", controllers.HandleStripeSaveAPIKey)
	adminGroup.Post("/stripe/webhook", controllers.HandleStripeSetupWebhook)

	// Notification channels
	adminGroup.Get("/smtp", controllers.HandleSMTPConfig)
	adminGroup.Post("/smtp", controllers.HandleSMTPSave)
	adminGroup.Post("/smtp/test", controllers.HandleSMTPTest)
	adminGroup.Get("/telegram", controllers.HandleTelegramConfig)
	adminGroup.Post("/telegram", controllers.HandleTelegramSave)

	// Product rules
	adminGroup.Get("/rules", controllers.HandleRules)
	adminGroup.Post("/rules", controllers.HandleRuleCreate)
	adminGroup.Post("/rules/delete/:id", controllers.HandleRuleDelete)
	adminGroup.Post("/rules/toggle/:id", controllers.HandleRuleToggle)

	// Sales history
	adminGroup.Get("/history", controllers.HandleHistory)

	// Account
	adminGroup.Get("/account", controllers.HandleAccount)
	adminGroup.Post("/account/password", controllers.HandleAccountPassword)
}
