package postgres

import (
	"gorm.io/gorm"

	"github.com/phenrril/resinwood/internal/domain"
)

// Migrate creates or updates the tables the repos use.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&domain.Customer{}, &domain.Order{}, &domain.OrderItem{})
}
