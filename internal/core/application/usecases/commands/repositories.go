// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"fulfillment/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// PickingRepoFactory provides access to picking repository within a transaction.
	PickingRepoFactory interface {
		PickingRepository() ports.PickingRepository
	}

	// InvoiceRepoFactory provides access to invoice repository within a transaction.
	InvoiceRepoFactory interface {
		InvoiceRepository() ports.InvoiceRepository
	}

	// ProductRepoFactory provides access to product repository within a transaction.
	ProductRepoFactory interface {
		ProductRepository() ports.ProductRepository
	}

	// OrderUoW manages transactions for order-only operations.
	// Used when commands only modify order aggregates.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// SalesUoW manages transactions across order and picking aggregates.
	// Used by order creation, which confirms the order and materializes
	// its pickings in the same transaction.
	SalesUoW interface {
		TxManager
		OrderRepoFactory
		PickingRepoFactory
	}

	// SalesUoWFactory creates new sales unit of work instances.
	SalesUoWFactory interface {
		Create() SalesUoW
	}

	// StockUoW manages transactions across picking and product aggregates.
	// Used by the background reservation job.
	StockUoW interface {
		TxManager
		PickingRepoFactory
		ProductRepoFactory
	}

	// StockUoWFactory creates new stock unit of work instances.
	StockUoWFactory interface {
		Create() StockUoW
	}

	// UoW manages transactions across every aggregate the fulfillment
	// workflow touches. A single instance runs the workflow's consecutive
	// transactions; after Commit the next Begin opens a fresh one.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   orderRepo := uow.OrderRepository()
	//   pickingRepo := uow.PickingRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		PickingRepoFactory
		InvoiceRepoFactory
		ProductRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)
