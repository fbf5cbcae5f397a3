package controllers

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"
	"golang.org/x/crypto/bcrypt"

	"github.com/stripehooks/stripehooks/app/models"
	"github.com/stripehooks/stripehooks/internal/pkg/env"
	"github.com/stripehooks/stripehooks/internal/pkg/middleware"
	"github.com/stripehooks/stripehooks/internal/pkg/session"
)

// EnsureAdminPassword seeds the admin credential on first boot from the
// ADMIN_PASSWORD env variable. Existing hashes are never overwritten.
func EnsureAdminPassword() {
	settings := repos().Setting
	exists, err := settings.HasValue(models.SettingAdminPasswordHash)
	if err != nil {
		log.Printf("admin password check failed: %v", err)
		return
	}
	if exists {
		return
	}

	seed := env.GetEnv("ADMIN_PASSWORD", "admin")
	hash, err := bcrypt.GenerateFromPassword([]byte(seed), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("admin password seed failed: %v", err)
		return
	}
	if err := settings.SetValue(models.SettingAdminPasswordHash, string(hash)); err != nil {
		log.Printf("admin password seed failed: %v", err)
		return
	}
	log.Printf("admin password initialized from environment")
}

// checkAdminPassword compares a candidate against the stored hash.
func checkAdminPassword(password string) bool {
	hash, err := repos().Setting.GetValue(models.SettingAdminPasswordHash)
	if err != nil || hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func HandleLogin(c *fiber.Ctx) error {
	if c.Method() == fiber.MethodPost {
		// Single-user login: one generic failure message, nothing to
		// enumerate.
		if !checkAdminPassword(c.FormValue("password")) {
			return flashError(c, "Invalid password", "/login")
		}

		sess, err := session.GetSessionStore().Get(c)
		if err != nil {
			return flashError(c, fmt.Sprintf("something went wrong: %s", err), "/login")
		}
		sess.Set(middleware.AdminSessionKey, true)
		if err := sess.Save(); err != nil {
			return flashError(c, fmt.Sprintf("something went wrong: %s", err), "/login")
		}

		return c.Redirect("/admin", fiber.StatusSeeOther)
	}

	if middleware.IsAdmin(c) {
		return c.Redirect("/admin", fiber.StatusSeeOther)
	}

	data := fiber.Map{"Title": "Login"}
	if token, ok := c.Locals("csrf").(string); ok {
		data["CSRFToken"] = token
	}
	if fm := flash.Get(c); len(fm) > 0 {
		data["Flash"] = fm
	}
	return c.Render("login", data)
}

func HandleLogout(c *fiber.Ctx) error {
	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		return c.Redirect("/login", fiber.StatusSeeOther)
	}
	if err := sess.Destroy(); err != nil {
		return flashError(c, fmt.Sprintf("something went wrong: %s", err), "/login")
	}
	return c.Redirect("/login", fiber.StatusSeeOther)
}
