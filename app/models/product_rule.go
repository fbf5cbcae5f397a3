package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// Notification action kinds
const (
	ActionKindEmail    = "email"
	ActionKindTelegram = "telegram"
)

// ProductRule maps a Stripe product identifier to one notification action.
// Multiple rules may target the same product; all enabled ones fire per payment.
type ProductRule struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ProductID  string    `gorm:"type:varchar(191);not null;index" json:"product_id" validate:"required,min=1,max=191"`
	ActionKind string    `gorm:"type:varchar(20);not null" json:"action_kind" validate:"required,oneof=email telegram"`
	Target     string    `gorm:"type:varchar(255);not null" json:"target" validate:"required,min=1,max=255"`
	Enabled    bool      `gorm:"not null;default:true" json:"enabled"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (r *ProductRule) Validate() error {
	v := validator.New()

	if err := v.Struct(r); err != nil {
		return err
	}
	// Email targets must be addresses; telegram targets are chat ids or @channels.
	if r.ActionKind == ActionKindEmail {
		return v.Var(r.Target, "email")
	}
	return nil
}
