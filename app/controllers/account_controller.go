package controllers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/stripehooks/stripehooks/app/models"
)

// HandleAccount renders the password change form.
func HandleAccount(c *fiber.Ctx) error {
	return render(c, "account", fiber.Map{
		"Title": "Account",
	})
}

// HandleAccountPassword changes the admin password after verifying the
// current one and the policy.
func HandleAccountPassword(c *fiber.Ctx) error {
	current := c.FormValue("current_password")
	newPassword := c.FormValue("new_password")
	confirm := c.FormValue("confirm_password")

	if !checkAdminPassword(current) {
		return flashError(c, "Current password is incorrect", "/admin/account")
	}
	if newPassword != confirm {
		return flashError(c, "New passwords do not match", "/admin/account")
	}
	if msg := validatePassword(newPassword); msg != "" {
		return flashError(c, msg, "/admin/account")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("password hash failed: %v", err)
		return flashError(c, "Could not update password", "/admin/account")
	}
	if err := repos().Setting.SetValue(models.SettingAdminPasswordHash, string(hash)); err != nil {
		return flashError(c, "Could not update password", "/admin/account")
	}
	return flashSuccess(c, "Password updated", "/admin/account")
}
