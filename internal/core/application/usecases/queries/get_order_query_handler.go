package queries

import (
	"context"
	"database/sql"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler retrieves a single order with its lines from the
// database. Uses direct SQL queries for the read side of the CQRS pattern.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for order detail queries.
// Requires a GORM database connection for query execution.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query and returns the order detail read model.
// Returns an object-not-found error when the order does not exist.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	var response GetOrderQueryResponse
	var id, partnerID uuid.UUID
	var status, invoiceStatus int

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			partner_id,
			status,
			invoice_status
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Row()

	err := row.Scan(&id, &response.Name, &partnerID, &status, &invoiceStatus)
	if errors.Is(err, sql.ErrNoRows) || errors.Is(err, gorm.ErrRecordNotFound) {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("orderID", query.OrderID().String())
	}
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	response.ID = orderID

	pID, err := kernel.UUIDFromBytes(partnerID[:])
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	response.PartnerID = pID

	response.Status = order.Status(status).String()
	response.InvoiceStatus = order.InvoiceStatus(invoiceStatus).String()

	lines, total, err := h.loadLines(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	response.Lines = lines
	response.AmountTotal = total

	return response, nil
}

func (h GetOrderQueryHandler) loadLines(
	ctx context.Context,
	orderID kernel.UUID,
) ([]OrderLineDetail, float64, error) {
	lines := make([]OrderLineDetail, 0)
	var total float64

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			product_id,
			qty,
			unit_price
		FROM order_lines
		WHERE order_id = ?
		ORDER BY id
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	for rows.Next() {
		var line OrderLineDetail
		var id, productID uuid.UUID

		if err = rows.Scan(&id, &productID, &line.Qty, &line.UnitPrice); err != nil {
			return nil, 0, err
		}

		lineID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, 0, idErr
		}
		line.ID = lineID

		pID, idErr := kernel.UUIDFromBytes(productID[:])
		if idErr != nil {
			return nil, 0, idErr
		}
		line.ProductID = pID

		line.Subtotal = line.Qty * line.UnitPrice
		total += line.Subtotal
		lines = append(lines, line)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, err
	}

	return lines, total, nil
}
