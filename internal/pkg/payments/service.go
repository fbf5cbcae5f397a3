package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	stripe "github.com/stripe/stripe-go/v73"

	"github.com/stripehooks/stripehooks/app/models"
	"github.com/stripehooks/stripehooks/app/repository"
	"github.com/stripehooks/stripehooks/internal/pkg/notify"
	"github.com/stripehooks/stripehooks/internal/pkg/stripeapi"
)

// Directory resolves product and customer details for message enrichment.
// Backed by the Stripe API in production; lookups are best-effort.
type Directory interface {
	GetProductName(productID string) string
	GetCustomer(customerID string) (string, string)
}

// DirectoryFunc supplies the current directory, or nil when no Stripe API key
// is configured yet.
type DirectoryFunc func() Directory

// Service runs the webhook pipeline: idempotent event record, product id
// resolution, rule lookup and notification dispatch.
type Service struct {
	rules     repository.RuleRepository
	events    repository.PaymentRepository
	notifier  notify.Notifier
	directory DirectoryFunc
	// async moves notification dispatch off the webhook request; outcomes
	// are written back once known.
	async bool
}

// NewService wires the pipeline. directory may be nil.
func NewService(rules repository.RuleRepository, events repository.PaymentRepository, notifier notify.Notifier, directory DirectoryFunc, async bool) *Service {
	if directory == nil {
		directory = func() Directory { return nil }
	}
	return &Service{
		rules:     rules,
		events:    events,
		notifier:  notifier,
		directory: directory,
		async:     async,
	}
}

// Result reports what HandleEvent did, for the webhook response body.
type Result struct {
	Ignored   bool
	Duplicate bool
	Unmatched bool
	Actions   int
}

// HandleEvent processes one verified Stripe event. The event row is durable
// before any notification is attempted; notification failures never surface
// as webhook errors.
func (s *Service) HandleEvent(ctx context.Context, event *stripe.Event) (*Result, error) {
	if event.Type != stripeapi.EventPaymentSucceeded {
		return &Result{Ignored: true}, nil
	}

	var pi stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
		return nil, fmt.Errorf("decode payment intent: %w", err)
	}

	productID := ExtractProductID(event.Data.Object)
	row := s.buildEventRow(event.ID, &pi, productID)

	created, stored, err := s.events.CreateIfNotExists(row)
	if err != nil {
		return nil, fmt.Errorf("record payment event: %w", err)
	}
	if !created {
		return &Result{Duplicate: true}, nil
	}

	if productID == "" {
		log.Printf("no product id in event %s, recorded as unmatched", event.ID)
		if err := s.events.MarkProcessed(stored.ID, nil); err != nil {
			return nil, err
		}
		return &Result{Unmatched: true}, nil
	}

	rules, err := s.rules.ListEnabledByProduct(productID)
	if err != nil {
		return nil, fmt.Errorf("lookup rules for %s: %w", productID, err)
	}
	if len(rules) == 0 {
		log.Printf("no rules configured for product %s, skipping dispatch", productID)
		if err := s.events.MarkProcessed(stored.ID, nil); err != nil {
			return nil, err
		}
		return &Result{Actions: 0}, nil
	}

	msg := buildMessage(stored)
	if s.async {
		go s.dispatch(stored.ID, rules, msg)
	} else {
		s.dispatch(stored.ID, rules, msg)
	}

	return &Result{Actions: len(rules)}, nil
}

// dispatch runs every action and records per-action outcomes. One failing
// action never blocks its siblings. Uses a fresh context: the webhook request
// the event arrived on may already be gone.
func (s *Service) dispatch(eventRowID uint, rules []models.ProductRule, msg notify.Message) {
	ctx := context.Background()

	outcomes := make([]models.DispatchOutcome, 0, len(rules))
	for _, rule := range rules {
		outcome := s.notifier.Send(ctx, notify.Action{
			RuleID: rule.ID,
			Kind:   rule.ActionKind,
			Target: rule.Target,
		}, msg)
		outcomes = append(outcomes, outcome)
	}

	if err := s.events.MarkProcessed(eventRowID, outcomes); err != nil {
		log.Printf("failed to record dispatch outcomes for event row %d: %v", eventRowID, err)
	}
}

func (s *Service) buildEventRow(eventID string, pi *stripe.PaymentIntent, productID string) *models.PaymentEvent {
	row := &models.PaymentEvent{
		EventID:         eventID,
		PaymentIntentID: pi.ID,
		ProductID:       productID,
		Amount:          pi.Amount,
		Currency:        strings.ToLower(string(pi.Currency)),
		PaidAt:          pi.Created,
	}

	name, email := customerFromIntent(pi)
	dir := s.directory()
	if dir != nil {
		if productID != "" {
			row.ProductName = dir.GetProductName(productID)
		}
		if (name == "" || email == "") && pi.Customer != nil && pi.Customer.ID != "" {
			dirName, dirEmail := dir.GetCustomer(pi.Customer.ID)
			if name == "" {
				name = dirName
			}
			if email == "" {
				email = dirEmail
			}
		}
	}
	if row.ProductName == "" {
		row.ProductName = productID
	}
	row.CustomerName = name
	row.CustomerEmail = email

	return row
}

// customerFromIntent pulls client name/email out of the intent itself:
// first charge billing details (Payment Links put them there), then
// shipping/metadata/receipt_email.
func customerFromIntent(pi *stripe.PaymentIntent) (string, string) {
	var name, email string

	if pi.Charges != nil && len(pi.Charges.Data) > 0 {
		if billing := pi.Charges.Data[0].BillingDetails; billing != nil {
			name = billing.Name
			email = billing.Email
		}
	}
	if name == "" && pi.Shipping != nil {
		name = pi.Shipping.Name
	}
	if name == "" {
		if v := pi.Metadata["customer_name"]; v != "" {
			name = v
		} else {
			name = pi.Metadata["name"]
		}
	}
	if email == "" {
		email = pi.ReceiptEmail
	}
	if email == "" {
		if v := pi.Metadata["customer_email"]; v != "" {
			email = v
		} else {
			email = pi.Metadata["email"]
		}
	}

	return name, email
}

// buildMessage composes the notification content shared by both channels.
func buildMessage(e *models.PaymentEvent) notify.Message {
	var lines []string
	if e.CustomerName != "" {
		lines = append(lines, "Client name: "+e.CustomerName)
	}
	if e.CustomerEmail != "" {
		lines = append(lines, "Client email: "+e.CustomerEmail)
	}

	productLine := "Product: " + e.ProductName
	if e.ProductName != e.ProductID {
		productLine += fmt.Sprintf(" (%s)", e.ProductID)
	}
	lines = append(lines, productLine)
	lines = append(lines, fmt.Sprintf("Amount: %.2f %s", e.AmountDisplay(), strings.ToUpper(e.Currency)))

	paidAt := "N/A"
	if e.PaidAt > 0 {
		paidAt = time.Unix(e.PaidAt, 0).UTC().Format("2006-01-02 15:04:05 UTC")
	}
	lines = append(lines, "Payment date: "+paidAt)
	lines = append(lines, "Payment Intent: "+e.PaymentIntentID)

	return notify.Message{
		Subject: "Payment received for " + e.ProductName,
		Body:    "Payment received!\n\n" + strings.Join(lines, "\n"),
	}
}
