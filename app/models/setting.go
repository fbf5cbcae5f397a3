package models

import (
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"
)

// Setting represents a single configuration row
type Setting struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"column:setting_key;size:255;not null;uniqueIndex" json:"key" validate:"required,min=1,max=255"`
	Value     string    `gorm:"type:text" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Well-known setting keys. Everything the admin UI can configure lives in the
// settings table so the whole deployment is a single database file.
const (
	SettingStripeAPIKey        = "stripe_api_key"
	SettingStripeWebhookSecret = "stripe_webhook_secret"
	SettingStripeEndpointID    = "stripe_webhook_endpoint_id"
	SettingSMTPHost            = "smtp_host"
	SettingSMTPPort            = "smtp_port"
	SettingSMTPSecurity        = "smtp_security"
	SettingSMTPUser            = "smtp_user"
	SettingSMTPPassword        = "smtp_password"
	SettingSMTPFromEmail       = "smtp_from_email"
	SettingTelegramBotToken    = "telegram_bot_token"
	SettingTelegramBotInfo     = "telegram_bot_info"
	SettingAdminPasswordHash   = "admin_password_hash"
)

// SMTP security modes
const (
	SMTPSecurityNone     = "none"
	SMTPSecurityStartTLS = "starttls"
	SMTPSecuritySSL      = "ssl"
)

// AppConfig is the typed view over the settings table. It is loaded as a whole
// and replaced on change, never mutated in place.
type AppConfig struct {
	StripeAPIKey        string
	StripeWebhookSecret string
	StripeEndpointID    string

	SMTPHost      string
	SMTPPort      string
	SMTPSecurity  string
	SMTPUser      string
	SMTPPassword  string
	SMTPFromEmail string

	TelegramBotToken string
}

// Global config instance
var (
	appConfig = &AppConfig{SMTPSecurity: SMTPSecurityStartTLS}
	configMu  sync.RWMutex
)

// GetConfig returns the currently loaded application config.
func GetConfig() *AppConfig {
	configMu.RLock()
	defer configMu.RUnlock()
	return appConfig
}

// LoadConfig loads all settings from the database and swaps the global config.
// Call after every settings mutation.
func LoadConfig(db *gorm.DB) error {
	cfg := &AppConfig{
		SMTPSecurity: SMTPSecurityStartTLS,
	}

	var settings []Setting
	if err := db.Find(&settings).Error; err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	for _, setting := range settings {
		switch setting.Key {
		case SettingStripeAPIKey:
			cfg.StripeAPIKey = setting.Value
		case SettingStripeWebhookSecret:
			cfg.StripeWebhookSecret = setting.Value
		case SettingStripeEndpointID:
			cfg.StripeEndpointID = setting.Value
		case SettingSMTPHost:
			cfg.SMTPHost = setting.Value
		case SettingSMTPPort:
			cfg.SMTPPort = setting.Value
		case SettingSMTPSecurity:
			if setting.Value != "" {
				cfg.SMTPSecurity = setting.Value
			}
		case SettingSMTPUser:
			cfg.SMTPUser = setting.Value
		case SettingSMTPPassword:
			cfg.SMTPPassword = setting.Value
		case SettingSMTPFromEmail:
			cfg.SMTPFromEmail = setting.Value
		case SettingTelegramBotToken:
			cfg.TelegramBotToken = setting.Value
		}
	}

	configMu.Lock()
	appConfig = cfg
	configMu.Unlock()

	return nil
}

// StripeConfigured reports whether an API key is stored.
func (c *AppConfig) StripeConfigured() bool {
	return c.StripeAPIKey != ""
}

// WebhookConfigured reports whether a signing secret is stored.
func (c *AppConfig) WebhookConfigured() bool {
	return c.StripeWebhookSecret != ""
}

// StripeReady reports whether the webhook pipeline can verify and process events.
func (c *AppConfig) StripeReady() bool {
	return c.StripeConfigured() && c.WebhookConfigured()
}

// SMTPConfigured reports whether email notifications can be sent.
func (c *AppConfig) SMTPConfigured() bool {
	return c.SMTPHost != ""
}

// TelegramConfigured reports whether telegram notifications can be sent.
func (c *AppConfig) TelegramConfigured() bool {
	return c.TelegramBotToken != ""
}

// SMTPAddr returns host:port, filling the default port for the security mode.
func (c *AppConfig) SMTPAddr() string {
	port := c.SMTPPort
	if port == "" {
		switch c.SMTPSecurity {
		case SMTPSecuritySSL:
			port = "465"
		case SMTPSecurityNone:
			port = "25"
		default:
			port = "587"
		}
	}
	return fmt.Sprintf("%s:%s", c.SMTPHost, port)
}

// SMTPFrom returns the sender address with fallbacks.
func (c *AppConfig) SMTPFrom() string {
	if c.SMTPFromEmail != "" {
		return c.SMTPFromEmail
	}
	if c.SMTPUser != "" {
		return c.SMTPUser
	}
	return "noreply@localhost"
}
