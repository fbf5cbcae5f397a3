package notify

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/stripehooks/stripehooks/app/models"
)

// BotInfo describes the connected Telegram bot, shown on the admin page.
type BotInfo struct {
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	Link      string `json:"link"`
}

func newBot(token string, timeout time.Duration) (*tgbotapi.BotAPI, error) {
	// NewBotAPIWithClient performs a getMe call, so a bad token fails here.
	return tgbotapi.NewBotAPIWithClient(strings.TrimSpace(token), tgbotapi.APIEndpoint, &http.Client{Timeout: timeout})
}

// SendTelegram delivers text to a chat id or @channel via the Bot API.
func SendTelegram(ctx context.Context, cfg *models.AppConfig, chatID, text string) error {
	if !cfg.TelegramConfigured() {
		return fmt.Errorf("%w: telegram bot token not set", ErrNotConfigured)
	}

	timeout := DefaultTimeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}
	if timeout <= 0 {
		return context.DeadlineExceeded
	}

	var msg tgbotapi.MessageConfig
	chatID = strings.TrimSpace(chatID)
	if id, parseErr := strconv.ParseInt(chatID, 10, 64); parseErr == nil {
		msg = tgbotapi.NewMessage(id, text)
	} else if strings.HasPrefix(chatID, "@") {
		msg = tgbotapi.NewMessageToChannel(chatID, text)
	} else {
		return fmt.Errorf("%w: %q is not a chat id or @channel", ErrInvalidTarget, chatID)
	}
	msg.ParseMode = tgbotapi.ModeHTML

	bot, err := newBot(cfg.TelegramBotToken, timeout)
	if err != nil {
		return fmt.Errorf("telegram connect: %w", err)
	}

	if _, err := bot.Send(msg); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}

// VerifyBot checks a bot token via getMe and returns the bot identity.
func VerifyBot(token string) (*BotInfo, error) {
	bot, err := newBot(token, DefaultTimeout)
	if err != nil {
		return nil, err
	}

	me, err := bot.GetMe()
	if err != nil {
		return nil, err
	}

	info := &BotInfo{
		Username:  me.UserName,
		FirstName: me.FirstName,
	}
	if me.UserName != "" {
		info.Link = "https://t.me/" + me.UserName
	}
	return info, nil
}
