package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jinzhu/gorm"

	"maitred/internal/models"
)

// OrderRecord is one finalized order.
type OrderRecord struct {
	ID         uint   `gorm:"primary_key"`
	SessionID  string `gorm:"index"`
	CustomerID string `gorm:"index"`
	ItemsJSON  string `gorm:"column:items;type:text"`
	Total      float64
	CreatedAt  time.Time
}

// TableName keeps the collection name from the original order store.
func (OrderRecord) TableName() string { return "orders" }

// OrderRepository persists finalized orders and serves the most recent
// order per customer for the repeat-order offer.
type OrderRepository interface {
	Save(doc models.OrderDocument) error
	LatestForCustomer(customerID string) (models.OrderDocument, bool, error)
}

// GormOrderRepository stores orders through gorm.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository wraps an open database handle.
func NewOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Save writes one order document. The line snapshot is JSON-encoded so
// later session mutations never touch the persisted record.
func (r *GormOrderRepository) Save(doc models.OrderDocument) error {
	items, err := json.Marshal(doc.Items)
	if err != nil {
		return fmt.Errorf("encode order items: %w", err)
	}
	rec := OrderRecord{
		SessionID:  doc.SessionID,
		CustomerID: doc.CustomerID,
		ItemsJSON:  string(items),
		Total:      doc.Total,
		CreatedAt:  doc.Timestamp,
	}
	if err := r.db.Create(&rec).Error; err != nil {
		return fmt.Errorf("save order: %w", err)
	}
	return nil
}

// LatestForCustomer returns the most recent finalized order for a
// stable customer identity, or found=false when there is none.
func (r *GormOrderRepository) LatestForCustomer(customerID string) (models.OrderDocument, bool, error) {
	var rec OrderRecord
	err := r.db.Where("customer_id = ?", customerID).Order("created_at desc").First(&rec).Error
	if gorm.IsRecordNotFoundError(err) {
		return models.OrderDocument{}, false, nil
	}
	if err != nil {
		return models.OrderDocument{}, false, fmt.Errorf("load latest order: %w", err)
	}

	doc := models.OrderDocument{
		SessionID:  rec.SessionID,
		CustomerID: rec.CustomerID,
		Total:      rec.Total,
		Timestamp:  rec.CreatedAt,
	}
	if err := json.Unmarshal([]byte(rec.ItemsJSON), &doc.Items); err != nil {
		return models.OrderDocument{}, false, fmt.Errorf("decode order items: %w", err)
	}
	return doc, true, nil
}
