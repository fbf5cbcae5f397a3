package controllers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	stripe "github.com/stripe/stripe-go/v73"

	"github.com/stripehooks/stripehooks/app/models"
	"github.com/stripehooks/stripehooks/internal/pkg/stripeapi"
)

// HandleStripeConfig renders the Stripe credentials page.
func HandleStripeConfig(c *fiber.Ctx) error {
	cfg := models.GetConfig()
	return render(c, "stripe", fiber.Map{
		"Title":         "Stripe",
		"HasAPIKey":     cfg.StripeConfigured(),
		"HasWebhook":    cfg.WebhookConfigured(),
		"EndpointID":    cfg.StripeEndpointID,
		"WebhookTarget": WebhookURL(),
	})
}

// HandleStripeSaveAPIKey stores the secret API key.
func HandleStripeSaveAPIKey(c *fiber.Ctx) error {
	key := stripeapi.NormalizeKey(c.FormValue("api_key"))
	if key == "" {
		return flashError(c, "Invalid API key", "/admin/stripe")
	}

	if err := repos().Setting.SetValue(models.SettingStripeAPIKey, key); err != nil {
		return flashError(c, "Could not save API key", "/admin/stripe")
	}
	if err := reloadConfig(); err != nil {
		return flashError(c, "Could not reload configuration", "/admin/stripe")
	}
	return flashSuccess(c, "API key saved", "/admin/stripe")
}

// HandleStripeSetupWebhook registers (or refreshes) the webhook endpoint for
// payment_intent.succeeded events and stores the signing secret.
func HandleStripeSetupWebhook(c *fiber.Ctx) error {
	client := stripeClient()
	if client == nil {
		return flashError(c, "Configure the Stripe API key first", "/admin/stripe")
	}

	result, err := client.EnsureWebhookEndpoint(WebhookURL())
	if err != nil {
		log.Printf("stripe webhook setup failed: %v", err)
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.HTTPStatusCode == fiber.StatusUnauthorized {
			return flashError(c, "Authentication error - check the API key", "/admin/stripe")
		}
		return flashError(c, "Webhook setup failed: "+err.Error(), "/admin/stripe")
	}

	settings := repos().Setting
	if result.Created {
		if err := settings.SetValue(models.SettingStripeWebhookSecret, result.Secret); err != nil {
			return flashError(c, "Could not store webhook secret", "/admin/stripe")
		}
	} else {
		// Stripe only returns the signing secret on create; an updated
		// endpoint keeps the stored one.
		existing, err := settings.GetValue(models.SettingStripeWebhookSecret)
		if err != nil || existing == "" {
			return flashError(c,
				"Webhook exists but no signing secret is stored - delete the endpoint in the Stripe dashboard and retry",
				"/admin/stripe")
		}
	}
	if err := settings.SetValue(models.SettingStripeEndpointID, result.EndpointID); err != nil {
		return flashError(c, "Could not store endpoint id", "/admin/stripe")
	}
	if err := reloadConfig(); err != nil {
		return flashError(c, "Could not reload configuration", "/admin/stripe")
	}

	return flashSuccess(c, "Webhook configured", "/admin/stripe")
}
