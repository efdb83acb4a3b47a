// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ListOrdersQuery retrieves a page of sales orders.
//
// Example:
//
//	query := NewListOrdersQuery(1, 20)
//	handler := NewListOrdersQueryHandler(db)
//
//	page, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to retrieve orders: %w", err)
//	}
//	fmt.Printf("Found %d orders total\n", page.TotalResult)
type ListOrdersQuery struct {
	page     int
	pageSize int

	guard guard.ConstructorGuard
}

// NewListOrdersQuery creates a query for a page of orders. Non-positive
// values fall back to the first page and the default page size; the page
// size is capped at maxPageSize.
func NewListOrdersQuery(page, pageSize int) ListOrdersQuery {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	return ListOrdersQuery{
		page:     page,
		pageSize: pageSize,
		guard:    guard.NewConstructorGuard(),
	}
}

// Validate ensures the query was created through the constructor.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// Page returns the requested 1-based page number.
func (q ListOrdersQuery) Page() int {
	return q.page
}

// PageSize returns the requested page size.
func (q ListOrdersQuery) PageSize() int {
	return q.pageSize
}

// Offset returns the row offset for the requested page.
func (q ListOrdersQuery) Offset() int {
	return (q.page - 1) * q.pageSize
}

// OrderSummary represents one order in the list read model.
type OrderSummary struct {
	ID            kernel.UUID
	Name          string
	PartnerID     kernel.UUID
	Status        string
	InvoiceStatus string
	AmountTotal   float64
}

// ListOrdersQueryResponse is a page of order summaries with result totals.
type ListOrdersQueryResponse struct {
	Orders      []OrderSummary
	Page        int
	PageSize    int
	TotalResult int64
	TotalPages  int64
}
