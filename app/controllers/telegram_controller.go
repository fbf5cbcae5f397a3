package controllers

import (
	"encoding/json"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/stripehooks/stripehooks/app/models"
	"github.com/stripehooks/stripehooks/internal/pkg/notify"
)

// HandleTelegramConfig renders the Telegram bot page with the cached bot
// identity, re-verifying the token when no cache exists.
func HandleTelegramConfig(c *fiber.Ctx) error {
	cfg := models.GetConfig()

	var botInfo *notify.BotInfo
	var botError string
	if cfg.TelegramConfigured() {
		settings := repos().Setting
		if cached, err := settings.GetValue(models.SettingTelegramBotInfo); err == nil && cached != "" {
			var info notify.BotInfo
			if json.Unmarshal([]byte(cached), &info) == nil {
				botInfo = &info
			}
		}
		if botInfo == nil {
			info, err := notify.VerifyBot(cfg.TelegramBotToken)
			if err != nil {
				botError = err.Error()
			} else {
				botInfo = info
				if data, err := json.Marshal(info); err == nil {
					settings.SetValue(models.SettingTelegramBotInfo, string(data))
				}
			}
		}
	}

	return render(c, "telegram", fiber.Map{
		"Title":    "Telegram",
		"HasToken": cfg.TelegramConfigured(),
		"BotInfo":  botInfo,
		"BotError": botError,
	})
}

// HandleTelegramSave verifies the submitted bot token via getMe and stores it
// together with the bot identity.
func HandleTelegramSave(c *fiber.Ctx) error {
	token := strings.TrimSpace(c.FormValue("bot_token"))
	if token == "" {
		return c.Redirect("/admin/telegram", fiber.StatusFound)
	}

	info, err := notify.VerifyBot(token)
	if err != nil {
		return flashError(c, "Token verification failed: "+err.Error(), "/admin/telegram")
	}

	settings := repos().Setting
	if err := settings.SetValue(models.SettingTelegramBotToken, token); err != nil {
		return flashError(c, "Could not save bot token", "/admin/telegram")
	}
	if data, err := json.Marshal(info); err == nil {
		settings.SetValue(models.SettingTelegramBotInfo, string(data))
	}
	if err := reloadConfig(); err != nil {
		return flashError(c, "Could not reload configuration", "/admin/telegram")
	}

	return flashSuccess(c, "Bot @"+info.Username+" connected", "/admin/telegram")
}
