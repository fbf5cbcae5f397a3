package controllers

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/stripehooks/stripehooks/app/models"
	"github.com/stripehooks/stripehooks/internal/pkg/notify"
)

// HandleSMTPConfig renders the SMTP settings page.
func HandleSMTPConfig(c *fiber.Ctx) error {
	cfg := models.GetConfig()
	return render(c, "smtp", fiber.Map{
		"Title":       "SMTP",
		"Host":        cfg.SMTPHost,
		"Port":        cfg.SMTPPort,
		"Security":    cfg.SMTPSecurity,
		"User":        cfg.SMTPUser,
		"FromEmail":   cfg.SMTPFromEmail,
		"HasPassword": cfg.SMTPPassword != "",
	})
}

// HandleSMTPSave stores the SMTP settings. The password is only replaced when
// a new one is submitted.
func HandleSMTPSave(c *fiber.Ctx) error {
	security := c.FormValue("security")
	switch security {
	case models.SMTPSecurityNone, models.SMTPSecurityStartTLS, models.SMTPSecuritySSL:
	default:
		security = models.SMTPSecurityStartTLS
	}

	port := strings.TrimSpace(c.FormValue("port"))
	if port == "" {
		switch security {
		case models.SMTPSecuritySSL:
			port = "465"
		case models.SMTPSecurityNone:
			port = "25"
		default:
			port = "587"
		}
	}

	settings := repos().Setting
	values := map[string]string{
		models.SettingSMTPHost:      strings.TrimSpace(c.FormValue("host")),
		models.SettingSMTPPort:      port,
		models.SettingSMTPSecurity:  security,
		models.SettingSMTPUser:      strings.TrimSpace(c.FormValue("user")),
		models.SettingSMTPFromEmail: strings.TrimSpace(c.FormValue("from_email")),
	}
	if password := c.FormValue("password"); password != "" {
		values[models.SettingSMTPPassword] = password
	}

	for key, value := range values {
		if err := settings.SetValue(key, value); err != nil {
			return flashError(c, "Could not save SMTP settings", "/admin/smtp")
		}
	}
	if err := reloadConfig(); err != nil {
		return flashError(c, "Could not reload configuration", "/admin/smtp")
	}

	return flashSuccess(c, "SMTP settings saved", "/admin/smtp")
}

// HandleSMTPTest sends a test email to the submitted address.
func HandleSMTPTest(c *fiber.Ctx) error {
	target := strings.TrimSpace(c.FormValue("test_email"))
	if target == "" {
		return flashError(c, "Email required", "/admin/smtp")
	}

	ctx, cancel := context.WithTimeout(context.Background(), notify.DefaultTimeout)
	defer cancel()

	err := notify.SendMail(ctx, models.GetConfig(), target,
		"StripeHooks SMTP Test",
		"This is a test email from StripeHooks. Your SMTP settings are working correctly.")
	if err != nil {
		return flashError(c, "Test email failed: "+err.Error(), "/admin/smtp")
	}
	return flashSuccess(c, "Test email sent to "+target, "/admin/smtp")
}
