package storage

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jinzhu/gorm"
	"gopkg.in/yaml.v3"

	"maitred/internal/models"
)

// MenuRecord is the persisted form of a catalog item. Nested fields are
// stored JSON-encoded, mirroring the document-store source the catalog
// is loaded from.
type MenuRecord struct {
	ID             uint   `gorm:"primary_key"`
	Name           string `gorm:"unique_index"`
	Category       string
	Price          *float64
	Calories       *int
	SizesJSON      string `gorm:"column:sizes;type:text"`
	ComponentsJSON string `gorm:"column:combo_components;type:text"`
	IceJSON        string `gorm:"column:ice_options;type:text"`
	AddonsJSON     string `gorm:"column:addon_choices;type:text"`
}

// TableName keeps the collection name from the original catalog store.
func (MenuRecord) TableName() string { return "menu_items" }

// MenuRepository loads the read-only menu snapshot.
type MenuRepository interface {
	ListItems() ([]models.MenuItem, error)
	ReplaceAll(items []models.MenuItem) error
	Count() (int, error)
}

// GormMenuRepository is the database-backed catalog source.
type GormMenuRepository struct {
	db *gorm.DB
}

// NewMenuRepository wraps an open database handle.
func NewMenuRepository(db *gorm.DB) *GormMenuRepository {
	return &GormMenuRepository{db: db}
}

// ListItems reads every menu item, decoding the JSON-encoded fields.
func (r *GormMenuRepository) ListItems() ([]models.MenuItem, error) {
	var records []MenuRecord
	if err := r.db.Order("id").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list menu items: %w", err)
	}
	items := make([]models.MenuItem, 0, len(records))
	for _, rec := range records {
		item, err := rec.toItem()
		if err != nil {
			return nil, fmt.Errorf("decode menu item %q: %w", rec.Name, err)
		}
		items = append(items, item)
	}
	return items, nil
}

// ReplaceAll swaps the stored menu for the given items.
func (r *GormMenuRepository) ReplaceAll(items []models.MenuItem) error {
	tx := r.db.Begin()
	if tx.Error != nil {
		return fmt.Errorf("begin menu replace: %w", tx.Error)
	}
	if err := tx.Delete(&MenuRecord{}).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("clear menu items: %w", err)
	}
	for _, item := range items {
		rec, err := recordFromItem(item)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("encode menu item %q: %w", item.Name, err)
		}
		if err := tx.Create(&rec).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("insert menu item %q: %w", item.Name, err)
		}
	}
	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("commit menu replace: %w", err)
	}
	return nil
}

// Count returns the number of stored menu items.
func (r *GormMenuRepository) Count() (int, error) {
	var n int
	if err := r.db.Model(&MenuRecord{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count menu items: %w", err)
	}
	return n, nil
}

func (rec MenuRecord) toItem() (models.MenuItem, error) {
	item := models.MenuItem{
		Name:     rec.Name,
		Category: rec.Category,
		Price:    rec.Price,
		Calories: rec.Calories,
	}
	for _, field := range []struct {
		raw  string
		dest interface{}
	}{
		{rec.SizesJSON, &item.Sizes},
		{rec.ComponentsJSON, &item.ComboComponents},
		{rec.IceJSON, &item.IceOptions},
		{rec.AddonsJSON, &item.AddonChoices},
	} {
		if field.raw == "" {
			continue
		}
		if err := json.Unmarshal([]byte(field.raw), field.dest); err != nil {
			return models.MenuItem{}, err
		}
	}
	return item, nil
}

func recordFromItem(item models.MenuItem) (MenuRecord, error) {
	rec := MenuRecord{
		Name:     item.Name,
		Category: item.Category,
		Price:    item.Price,
		Calories: item.Calories,
	}
	encode := func(v interface{}) (string, error) {
		b, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	var err error
	if len(item.Sizes) > 0 {
		if rec.SizesJSON, err = encode(item.Sizes); err != nil {
			return rec, err
		}
	}
	if len(item.ComboComponents) > 0 {
		if rec.ComponentsJSON, err = encode(item.ComboComponents); err != nil {
			return rec, err
		}
	}
	if len(item.IceOptions) > 0 {
		if rec.IceJSON, err = encode(item.IceOptions); err != nil {
			return rec, err
		}
	}
	if len(item.AddonChoices) > 0 {
		if rec.AddonsJSON, err = encode(item.AddonChoices); err != nil {
			return rec, err
		}
	}
	return rec, nil
}

// LoadMenuFile reads a YAML menu seed used for first boot and tests.
func LoadMenuFile(path string) ([]models.MenuItem, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read menu file: %w", err)
	}
	var items []models.MenuItem
	if err := yaml.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("parse menu file %s: %w", path, err)
	}
	return items, nil
}
