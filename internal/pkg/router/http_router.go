package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/stripehooks/stripehooks/app/controllers"
	"github.com/stripehooks/stripehooks/internal/pkg/session"
)

type HttpRouter struct {
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	// init session
	session.NewSessionStore()

	// Seed the admin credential on first boot
	controllers.EnsureAdminPassword()

	// Wire the webhook pipeline against the repositories
	controllers.InitializeWebhookController()

	h.registerPublicRoutes(app)
	h.registerCSRFProtectedRoutes(app)
}

func NewHttpRouter() *HttpRouter {
	return &HttpRouter{}
}
