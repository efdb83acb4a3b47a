package postgres

import (
	"fulfillment/internal/adapters/out/postgres/invoicerepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/pickingrepo"
	"fulfillment/internal/adapters/out/postgres/productrepo"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates the database schema for every persisted
// aggregate.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.LineDTO{},
		&pickingrepo.PickingDTO{},
		&pickingrepo.MoveDTO{},
		&pickingrepo.MoveLineDTO{},
		&pickingrepo.ReturnPickingDTO{},
		&pickingrepo.ReturnMoveDTO{},
		&invoicerepo.InvoiceDTO{},
		&productrepo.ProductDTO{},
	)
}
