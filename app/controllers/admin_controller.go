package controllers

import (
	"github.com/gofiber/fiber/v2"
)

// HandleIndex routes the bare domain to the dashboard or the login page.
func HandleIndex(c *fiber.Ctx) error {
	return c.Redirect("/admin", fiber.StatusFound)
}

// HandleAdminDashboard shows the configuration state of each integration.
func HandleAdminDashboard(c *fiber.Ctx) error {
	return render(c, "dashboard", fiber.Map{
		"Title": "Dashboard",
	})
}
