package repository

import (
	"time"

	"github.com/stripehooks/stripehooks/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// paymentRepository implements the PaymentRepository interface
type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment event repository instance
func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

// CreateIfNotExists performs the idempotent insert keyed on event_id.
func (r *paymentRepository) CreateIfNotExists(event *models.PaymentEvent) (bool, *models.PaymentEvent, error) {
	tx := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "event_id"}},
		DoNothing: true,
	}).Create(event)
	if tx.Error != nil {
		return false, nil, tx.Error
	}

	created := tx.RowsAffected > 0
	var stored models.PaymentEvent
	if err := r.db.Where("event_id = ?", event.EventID).First(&stored).Error; err != nil {
		return false, nil, err
	}
	return created, &stored, nil
}

func (r *paymentRepository) MarkProcessed(id uint, outcomes []models.DispatchOutcome) error {
	var event models.PaymentEvent
	event.SetOutcomes(outcomes)

	now := time.Now()
	updates := map[string]interface{}{
		"processed_at":  &now,
		"outcomes_json": event.OutcomesJSON,
	}
	return r.db.Model(&models.PaymentEvent{}).Where("id = ?", id).Updates(updates).Error
}

func (r *paymentRepository) GetByEventID(eventID string) (*models.PaymentEvent, error) {
	var event models.PaymentEvent
	if err := r.db.Where("event_id = ?", eventID).First(&event).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *paymentRepository) rangeQuery(startTS, endTS *int64) *gorm.DB {
	q := r.db.Model(&models.PaymentEvent{})
	if startTS != nil {
		q = q.Where("paid_at >= ?", *startTS)
	}
	if endTS != nil {
		q = q.Where("paid_at <= ?", *endTS)
	}
	return q
}

func (r *paymentRepository) Aggregate(startTS, endTS *int64) ([]ProductSummary, error) {
	var summaries []ProductSummary
	err := r.rangeQuery(startTS, endTS).
		Select("product_id, MAX(product_name) AS product_name, COUNT(*) AS count, SUM(amount) AS total_amount, currency").
		Group("product_id, currency").
		Order("total_amount DESC").
		Scan(&summaries).Error
	if err != nil {
		return nil, err
	}
	return summaries, nil
}

func (r *paymentRepository) ListByRange(startTS, endTS *int64, limit int) ([]models.PaymentEvent, error) {
	var events []models.PaymentEvent
	q := r.rangeQuery(startTS, endTS).Order("paid_at DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}
