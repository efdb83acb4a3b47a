package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListOrdersQueryHandler retrieves order summaries from the database.
// Uses direct SQL queries for optimal read performance in the CQRS pattern.
//
// Example:
//
//	handler := NewListOrdersQueryHandler(db)
//	query := NewListOrdersQuery(1, 20)
//
//	page, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to list orders: %v", err)
//	    return err
//	}
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

// NewListOrdersQueryHandler creates a handler for order list queries.
// Requires a GORM database connection for query execution.
func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

// Handle executes the query and returns one page of order summaries sorted
// by name, together with the total result count.
func (h ListOrdersQueryHandler) Handle(
	ctx context.Context,
	query ListOrdersQuery,
) (ListOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ListOrdersQueryResponse{}, err
	}

	var total int64
	if err := h.db.WithContext(ctx).Raw(`SELECT COUNT(*) FROM orders`).Scan(&total).Error; err != nil {
		return ListOrdersQueryResponse{}, err
	}

	orders := make([]OrderSummary, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.name,
			o.partner_id,
			o.status,
			o.invoice_status,
			COALESCE(SUM(l.qty * l.unit_price), 0) AS amount_total
		FROM orders o
		LEFT JOIN order_lines l ON l.order_id = o.id
		GROUP BY o.id, o.name, o.partner_id, o.status, o.invoice_status
		ORDER BY o.name
		LIMIT ? OFFSET ?
	`, query.PageSize(), query.Offset()).Rows()
	if err != nil {
		return ListOrdersQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var summary OrderSummary
		var id, partnerID uuid.UUID
		var status, invoiceStatus int

		err = rows.Scan(
			&id,
			&summary.Name,
			&partnerID,
			&status,
			&invoiceStatus,
			&summary.AmountTotal,
		)
		if err != nil {
			return ListOrdersQueryResponse{}, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return ListOrdersQueryResponse{}, idErr
		}
		summary.ID = orderID

		pID, idErr := kernel.UUIDFromBytes(partnerID[:])
		if idErr != nil {
			return ListOrdersQueryResponse{}, idErr
		}
		summary.PartnerID = pID

		summary.Status = order.Status(status).String()
		summary.InvoiceStatus = order.InvoiceStatus(invoiceStatus).String()
		orders = append(orders, summary)
	}

	if err = rows.Err(); err != nil {
		return ListOrdersQueryResponse{}, err
	}

	pageSize := int64(query.PageSize())
	totalPages := (total + pageSize - 1) / pageSize

	return ListOrdersQueryResponse{
		Orders:      orders,
		Page:        query.Page(),
		PageSize:    query.PageSize(),
		TotalResult: total,
		TotalPages:  totalPages,
	}, nil
}
