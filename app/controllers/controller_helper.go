package controllers

import (
	"strings"
	"unicode"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/stripehooks/stripehooks/app/models"
	"github.com/stripehooks/stripehooks/app/repository"
	"github.com/stripehooks/stripehooks/internal/pkg/database"
	"github.com/stripehooks/stripehooks/internal/pkg/env"
	"github.com/stripehooks/stripehooks/internal/pkg/stripeapi"
)

func repos() *repository.Repositories {
	return repository.GetGlobalRepositories()
}

// reloadConfig re-reads the settings table into the global config. Call after
// every settings mutation.
func reloadConfig() error {
	return models.LoadConfig(database.GetDB())
}

// BaseURL returns the publicly reachable base URL of this deployment.
func BaseURL() string {
	return strings.TrimRight(env.GetEnv("BASE_URL", "http://localhost:8000"), "/")
}

// WebhookURL is the endpoint registered with Stripe.
func WebhookURL() string {
	return BaseURL() + "/webhook/stripe"
}

// stripeClient returns an API client for the stored key, nil when unset.
func stripeClient() *stripeapi.Client {
	cfg := models.GetConfig()
	if !cfg.StripeConfigured() {
		return nil
	}
	return stripeapi.New(stripeapi.NormalizeKey(cfg.StripeAPIKey))
}

// render wraps c.Render with the shared layout, nav state and flash data.
func render(c *fiber.Ctx, view string, data fiber.Map) error {
	cfg := models.GetConfig()

	merged := fiber.Map{
		"StripeConfigured":   cfg.StripeConfigured(),
		"WebhookConfigured":  cfg.WebhookConfigured(),
		"StripeReady":        cfg.StripeReady(),
		"SMTPConfigured":     cfg.SMTPConfigured(),
		"TelegramConfigured": cfg.TelegramConfigured(),
		"BaseURL":            BaseURL(),
		"WebhookURL":         WebhookURL(),
	}
	if token, ok := c.Locals("csrf").(string); ok {
		merged["CSRFToken"] = token
	}
	if fm := flash.Get(c); len(fm) > 0 {
		merged["Flash"] = fm
	}
	for k, v := range data {
		merged[k] = v
	}

	return c.Render(view, merged, "layouts/main")
}

func flashError(c *fiber.Ctx, message, redirectTo string) error {
	fm := fiber.Map{"type": "error", "message": message}
	return flash.WithError(c, fm).Redirect(redirectTo)
}

func flashSuccess(c *fiber.Ctx, message, redirectTo string) error {
	fm := fiber.Map{"type": "success", "message": message}
	return flash.WithSuccess(c, fm).Redirect(redirectTo)
}

// validatePassword enforces the admin password policy: at least 16 characters
// with upper, lower, digit and special character.
func validatePassword(password string) string {
	if len(password) < 16 {
		return "Password must be at least 16 characters"
	}
	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSpecial = true
		}
	}
	switch {
	case !hasUpper:
		return "Password must contain at least one uppercase letter"
	case !hasLower:
		return "Password must contain at least one lowercase letter"
	case !hasDigit:
		return "Password must contain at least one digit"
	case !hasSpecial:
		return "Password must contain at least one special character"
	}
	return ""
}
