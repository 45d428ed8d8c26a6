package postgres

import (
	"marketplace/internal/adapters/out/postgres/orderrepo"
	"marketplace/internal/adapters/out/postgres/outboxrepo"
	"marketplace/internal/adapters/out/postgres/productrepo"
	"marketplace/internal/adapters/out/postgres/userrepo"

	"gorm.io/gorm"
)

// Migrate creates or updates every table the service owns.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userrepo.UserDTO{},
		&userrepo.CartItemDTO{},
		&productrepo.ProductDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.LineDTO{},
		&outboxrepo.OrderEventDTO{},
	)
}
