package repository

import (
	"github.com/stripehooks/stripehooks/app/models"
	"gorm.io/gorm"
)

// ruleRepository implements the RuleRepository interface
type ruleRepository struct {
	db *gorm.DB
}

// NewRuleRepository creates a new rule repository instance
func NewRuleRepository(db *gorm.DB) RuleRepository {
	return &ruleRepository{db: db}
}

func (r *ruleRepository) Create(rule *models.ProductRule) error {
	return r.db.Create(rule).Error
}

func (r *ruleRepository) GetByID(id uint) (*models.ProductRule, error) {
	var rule models.ProductRule
	if err := r.db.First(&rule, id).Error; err != nil {
		return nil, err
	}
	return &rule, nil
}

func (r *ruleRepository) Delete(id uint) error {
	return r.db.Delete(&models.ProductRule{}, id).Error
}

func (r *ruleRepository) SetEnabled(id uint, enabled bool) error {
	return r.db.Model(&models.ProductRule{}).Where("id = ?", id).
		Update("enabled", enabled).Error
}

// ListEnabledByProduct returns the rules the webhook dispatcher must fire.
func (r *ruleRepository) ListEnabledByProduct(productID string) ([]models.ProductRule, error) {
	var rules []models.ProductRule
	err := r.db.Where("product_id = ? AND enabled = ?", productID, true).
		Order("id ASC").
		Find(&rules).Error
	if err != nil {
		return nil, err
	}
	return rules, nil
}

// ListAll returns every rule for the admin UI, grouped-friendly ordering.
func (r *ruleRepository) ListAll() ([]models.ProductRule, error) {
	var rules []models.ProductRule
	err := r.db.Order("product_id ASC, id ASC").Find(&rules).Error
	if err != nil {
		return nil, err
	}
	return rules, nil
}
