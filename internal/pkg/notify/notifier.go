package notify

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/textproto"
	"os"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/stripehooks/stripehooks/app/models"
)

// DefaultTimeout bounds a single notification send. A slow SMTP or Telegram
// call must never hold up the webhook pipeline longer than this.
const DefaultTimeout = 10 * time.Second

var (
	ErrNotConfigured = errors.New("notification channel not configured")
	ErrInvalidTarget = errors.New("invalid notification target")
)

// Action is one notification to perform, derived from a product rule.
type Action struct {
	RuleID uint
	Kind   string
	Target string
}

// Message is the templated content; Subject is only used by the email channel.
type Message struct {
	Subject string
	Body    string
}

// Notifier dispatches a single action and reports its outcome. Implementations
// never panic across rule boundaries; every failure becomes an outcome.
type Notifier interface {
	Send(ctx context.Context, action Action, msg Message) models.DispatchOutcome
}

type notifier struct {
	timeout time.Duration
}

// New creates the production notifier with the default per-call timeout.
func New() Notifier {
	return &notifier{timeout: DefaultTimeout}
}

func (n *notifier) Send(ctx context.Context, action Action, msg Message) models.DispatchOutcome {
	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	cfg := models.GetConfig()

	var err error
	switch action.Kind {
	case models.ActionKindEmail:
		err = SendMail(ctx, cfg, action.Target, msg.Subject, msg.Body)
	case models.ActionKindTelegram:
		err = SendTelegram(ctx, cfg, action.Target, msg.Body)
	default:
		err = fmt.Errorf("%w: unknown action kind %q", ErrInvalidTarget, action.Kind)
	}

	outcome := models.DispatchOutcome{
		RuleID: action.RuleID,
		Kind:   action.Kind,
		Target: action.Target,
		Status: models.DispatchStatusSent,
	}
	if err != nil {
		outcome.Status = models.DispatchStatusFailed
		outcome.Reason = Classify(err)
		log.Printf("notification %s to %s failed (%s): %v", action.Kind, action.Target, outcome.Reason, err)
	}
	return outcome
}

// Classify maps a send error to the short failure reason shown in the history
// view. Raw errors stay in the logs.
func Classify(err error) string {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, ErrNotConfigured):
		return models.FailureConfig
	case errors.Is(err, ErrInvalidTarget):
		return models.FailureInvalidTarget
	}

	// Telegram Bot API errors carry HTTP-style codes.
	var tgErr *tgbotapi.Error
	if errors.As(err, &tgErr) {
		switch {
		case tgErr.Code == 401 || tgErr.Code == 403:
			return models.FailureAuth
		case tgErr.Code == 400:
			return models.FailureInvalidTarget
		}
		return models.FailureUnknown
	}

	// SMTP replies surface as textproto errors.
	var protoErr *textproto.Error
	if errors.As(err, &protoErr) {
		switch {
		case protoErr.Code == 530 || protoErr.Code == 534 || protoErr.Code == 535:
			return models.FailureAuth
		case protoErr.Code == 550 || protoErr.Code == 551 || protoErr.Code == 553:
			return models.FailureInvalidTarget
		}
		return models.FailureUnknown
	}

	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, context.DeadlineExceeded) || os.IsTimeout(err) {
		return models.FailureNetwork
	}

	return models.FailureUnknown
}
