package repository

import (
	"github.com/stripehooks/stripehooks/app/models"
)

// SettingRepository defines the interface for settings persistence
type SettingRepository interface {
	GetValue(key string) (string, error)
	SetValue(key, value string) error
	HasValue(key string) (bool, error)
}

// RuleRepository defines the interface for product rule operations
type RuleRepository interface {
	Create(rule *models.ProductRule) error
	GetByID(id uint) (*models.ProductRule, error)
	Delete(id uint) error
	SetEnabled(id uint, enabled bool) error
	ListEnabledByProduct(productID string) ([]models.ProductRule, error)
	ListAll() ([]models.ProductRule, error)
}

// ProductSummary is one aggregated history row (per product id and currency).
type ProductSummary struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Count       int64  `json:"count"`
	TotalAmount int64  `json:"total_amount"`
	Currency    string `json:"currency"`
}

// PaymentRepository defines the interface for payment event operations
type PaymentRepository interface {
	// CreateIfNotExists inserts the event unless its event id is already
	// stored. Returns whether a new row was created plus the stored row.
	CreateIfNotExists(event *models.PaymentEvent) (bool, *models.PaymentEvent, error)
	MarkProcessed(id uint, outcomes []models.DispatchOutcome) error
	GetByEventID(eventID string) (*models.PaymentEvent, error)
	// Aggregate groups events by product id and currency within the given
	// unix-second range. Nil bounds mean unbounded; both bounds inclusive.
	Aggregate(startTS, endTS *int64) ([]ProductSummary, error)
	// ListByRange returns individual events, newest first.
	ListByRange(startTS, endTS *int64, limit int) ([]models.PaymentEvent, error)
}
