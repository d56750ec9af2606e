package storage

import (
	"fmt"
	"time"

	"github.com/jinzhu/gorm"
)

// UserRecord is one registered customer account.
type UserRecord struct {
	ID           uint   `gorm:"primary_key"`
	Email        string `gorm:"unique_index"`
	PasswordHash string
	CustomerID   string `gorm:"unique_index"`
	CreatedAt    time.Time
}

// TableName names the account table.
func (UserRecord) TableName() string { return "users" }

// UserRepository stores customer credentials and their stable ids.
type UserRepository interface {
	Create(email, passwordHash, customerID string) error
	ByEmail(email string) (UserRecord, bool, error)
}

// GormUserRepository stores users through gorm.
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository wraps an open database handle.
func NewUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// Create inserts a new account.
func (r *GormUserRepository) Create(email, passwordHash, customerID string) error {
	rec := UserRecord{Email: email, PasswordHash: passwordHash, CustomerID: customerID}
	if err := r.db.Create(&rec).Error; err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// ByEmail looks an account up by email.
func (r *GormUserRepository) ByEmail(email string) (UserRecord, bool, error) {
	var rec UserRecord
	err := r.db.Where("email = ?", email).First(&rec).Error
	if gorm.IsRecordNotFoundError(err) {
		return UserRecord{}, false, nil
	}
	if err != nil {
		return UserRecord{}, false, fmt.Errorf("load user: %w", err)
	}
	return rec, true, nil
}
