package notify

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/textproto"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/stripehooks/stripehooks/app/models"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"not configured", ErrNotConfigured, models.FailureConfig},
		{"wrapped not configured", fmt.Errorf("smtp: %w", ErrNotConfigured), models.FailureConfig},
		{"invalid target", ErrInvalidTarget, models.FailureInvalidTarget},
		{"telegram unauthorized", &tgbotapi.Error{Code: 401, Message: "Unauthorized"}, models.FailureAuth},
		{"telegram forbidden", &tgbotapi.Error{Code: 403, Message: "Forbidden"}, models.FailureAuth},
		{"telegram chat not found", &tgbotapi.Error{Code: 400, Message: "Bad Request: chat not found"}, models.FailureInvalidTarget},
		{"telegram flood", &tgbotapi.Error{Code: 429, Message: "Too Many Requests"}, models.FailureUnknown},
		{"smtp auth failed", &textproto.Error{Code: 535, Msg: "authentication failed"}, models.FailureAuth},
		{"smtp auth required", &textproto.Error{Code: 530, Msg: "authentication required"}, models.FailureAuth},
		{"smtp mailbox unavailable", &textproto.Error{Code: 550, Msg: "mailbox unavailable"}, models.FailureInvalidTarget},
		{"smtp other reply", &textproto.Error{Code: 451, Msg: "try again later"}, models.FailureUnknown},
		{"dial error", &net.OpError{Op: "dial", Err: errors.New("connection refused")}, models.FailureNetwork},
		{"timeout", timeoutErr{}, models.FailureNetwork},
		{"deadline exceeded", context.DeadlineExceeded, models.FailureNetwork},
		{"anything else", errors.New("boom"), models.FailureUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.err); got != tt.want {
				t.Fatalf("Classify(%v) = %q, want %q", tt.err, got, tt.want)
			}
		})
	}
}

func TestSend_UnknownKindFails(t *testing.T) {
	t.Parallel()

	n := New()
	outcome := n.Send(context.Background(), Action{RuleID: 7, Kind: "carrier-pigeon", Target: "roof"}, Message{Body: "hi"})
	if outcome.Status != models.DispatchStatusFailed {
		t.Fatalf("status = %q, want failed", outcome.Status)
	}
	if outcome.Reason != models.FailureInvalidTarget {
		t.Fatalf("reason = %q, want %q", outcome.Reason, models.FailureInvalidTarget)
	}
	if outcome.RuleID != 7 {
		t.Fatalf("outcome must carry the rule id, got %d", outcome.RuleID)
	}
}
