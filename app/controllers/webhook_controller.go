package controllers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/stripe/stripe-go/v73/webhook"

	"github.com/stripehooks/stripehooks/app/models"
	"github.com/stripehooks/stripehooks/internal/pkg/notify"
	"github.com/stripehooks/stripehooks/internal/pkg/payments"
)

var paymentService *payments.Service

// InitializeWebhookController wires the webhook pipeline. Must run after the
// repository factory is up.
func InitializeWebhookController() {
	r := repos()
	paymentService = payments.NewService(
		r.Rule,
		r.Payment,
		notify.New(),
		func() payments.Directory {
			client := stripeClient()
			if client == nil {
				return nil
			}
			return client
		},
		true,
	)
}

// HandleStripeWebhook receives Stripe events. Signature verification failures
// and a missing secret are rejected; everything after the event is recorded
// returns 200 so Stripe does not retry.
func HandleStripeWebhook(c *fiber.Ctx) error {
	secret := models.GetConfig().StripeWebhookSecret
	if secret == "" {
		log.Printf("webhook received but no signing secret configured")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "webhook not configured"})
	}

	event, err := webhook.ConstructEventWithOptions(
		c.BodyRaw(),
		c.Get("Stripe-Signature"),
		secret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true},
	)
	if err != nil {
		log.Printf("webhook signature verification failed: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid signature"})
	}

	result, err := paymentService.HandleEvent(c.Context(), &event)
	if err != nil {
		log.Printf("webhook processing failed for event %s: %v", event.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "processing failed"})
	}

	resp := fiber.Map{"received": true}
	switch {
	case result.Ignored:
		resp["ignored"] = true
	case result.Duplicate:
		resp["duplicate"] = true
	case result.Unmatched:
		resp["unmatched"] = true
	default:
		resp["actions"] = result.Actions
	}
	return c.JSON(resp)
}
