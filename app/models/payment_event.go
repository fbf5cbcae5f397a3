package models

import (
	"encoding/json"
	"time"
)

// Dispatch outcome statuses
const (
	DispatchStatusSent   = "sent"
	DispatchStatusFailed = "failed"
)

// Failure classifications shown in the history view instead of raw errors.
const (
	FailureAuth          = "auth"
	FailureNetwork       = "network"
	FailureInvalidTarget = "invalid_target"
	FailureConfig        = "config"
	FailureUnknown       = "unknown"
)

// PaymentEvent stores one processed Stripe event. EventID carries the unique
// index that makes duplicate webhook deliveries no-ops.
type PaymentEvent struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	EventID         string     `gorm:"type:varchar(191);not null;uniqueIndex" json:"event_id"`
	PaymentIntentID string     `gorm:"type:varchar(191);not null;default:''" json:"payment_intent_id"`
	ProductID       string     `gorm:"type:varchar(191);not null;default:'';index" json:"product_id"`
	ProductName     string     `gorm:"type:varchar(255);not null;default:''" json:"product_name"`
	Amount          int64      `gorm:"not null;default:0" json:"amount"`
	Currency        string     `gorm:"type:varchar(10);not null;default:''" json:"currency"`
	CustomerName    string     `gorm:"type:varchar(255);not null;default:''" json:"customer_name"`
	CustomerEmail   string     `gorm:"type:varchar(255);not null;default:''" json:"customer_email"`
	PaidAt          int64      `gorm:"not null;default:0;index" json:"paid_at"`
	OutcomesJSON    string     `gorm:"type:text" json:"outcomes_json"`
	ProcessedAt     *time.Time `gorm:"type:timestamp;default:null" json:"processed_at,omitempty"`
	CreatedAt       time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
}

// DispatchOutcome records the result of one notification action for an event.
type DispatchOutcome struct {
	RuleID uint   `json:"rule_id"`
	Kind   string `json:"kind"`
	Target string `json:"target"`
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

// Matched reports whether a product id could be resolved for this event.
func (e *PaymentEvent) Matched() bool {
	return e.ProductID != ""
}

// SetOutcomes serializes per-action dispatch results into the row.
func (e *PaymentEvent) SetOutcomes(outcomes []DispatchOutcome) error {
	if len(outcomes) == 0 {
		e.OutcomesJSON = ""
		return nil
	}
	data, err := json.Marshal(outcomes)
	if err != nil {
		return err
	}
	e.OutcomesJSON = string(data)
	return nil
}

// Outcomes deserializes the stored dispatch results. A missing or broken blob
// yields an empty slice; history rendering must not fail on old rows.
func (e *PaymentEvent) Outcomes() []DispatchOutcome {
	if e.OutcomesJSON == "" {
		return nil
	}
	var outcomes []DispatchOutcome
	if err := json.Unmarshal([]byte(e.OutcomesJSON), &outcomes); err != nil {
		return nil
	}
	return outcomes
}

// AmountDisplay converts the smallest currency unit to display units.
func (e *PaymentEvent) AmountDisplay() float64 {
	return float64(e.Amount) / 100
}
