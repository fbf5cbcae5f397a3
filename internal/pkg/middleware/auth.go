package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/stripehooks/stripehooks/internal/pkg/session"
)

// Session key marking the single admin user as logged in.
const AdminSessionKey = "admin"

// IsAdmin reports whether the current session belongs to the admin.
func IsAdmin(c *fiber.Ctx) bool {
	store := session.GetSessionStore()
	if store == nil {
		return false
	}
	sess, err := store.Get(c)
	if err != nil {
		return false
	}
	v, ok := sess.Get(AdminSessionKey).(bool)
	return ok && v
}

// RequireAdmin ensures a logged-in admin session; redirects to /login otherwise.
func RequireAdmin(c *fiber.Ctx) error {
	if !IsAdmin(c) {
		return c.Redirect("/login", fiber.StatusSeeOther)
	}
	return c.Next()
}
