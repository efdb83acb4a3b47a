package http

import (
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

// OrderLineRequest is a single order line in a create or fulfill payload.
// QtyDone carries the optional signed delivery instruction: a negative value
// flags the line's product for a return of the absolute quantity.
type OrderLineRequest struct {
	ProductID *string  `json:"product_id"`
	Quantity  *float64 `json:"quantity"`
	PriceUnit *float64 `json:"price_unit"`
	QtyDone   *float64 `json:"qty_done,omitempty"`
}

// AddOrderRequest is the payload for POST /api/add_order and
// POST /api/add_order_invoice.
type AddOrderRequest struct {
	PartnerID     *string            `json:"partner_id"`
	InvoicePolicy string             `json:"invoice_policy,omitempty"`
	OrderLine     []OrderLineRequest `json:"order_line"`
}

// UpdateOrderRequest is the payload for PUT /api/update_order/:order_id.
// Absent fields leave the order unchanged; lines are appended, never replaced.
type UpdateOrderRequest struct {
	PartnerID  *string            `json:"partner_id,omitempty"`
	OrderLines []OrderLineRequest `json:"order_lines,omitempty"`
}

// errorResponse is the uniform failure body.
type errorResponse struct {
	Status  string              `json:"status"`
	Message string              `json:"message,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// fulfillResponse mirrors the consolidated fulfillment result.
type fulfillResponse struct {
	Status           string   `json:"status"`
	OrderID          string   `json:"order_id"`
	InvoiceID        *string  `json:"invoice_id"`
	PickingIDs       []string `json:"picking_ids"`
	ReturnPickingIDs []string `json:"return_picking_ids"`
}

// orderSummaryResponse is one element of the paginated listing.
type orderSummaryResponse struct {
	ID          string  `json:"_id"`
	OrderName   string  `json:"order_name"`
	AmountTotal float64 `json:"amount_total"`
	State       string  `json:"state"`
	PartnerID   string  `json:"partner_id"`
}

// listOrdersResponse is the paginated listing envelope.
type listOrdersResponse struct {
	TotalResult  int64                  `json:"total_result"`
	CurrentCount int                    `json:"current_count"`
	TotalPages   int64                  `json:"total_pages"`
	CurrentPage  int                    `json:"current_page"`
	PerPage      int                    `json:"per_page"`
	Data         []orderSummaryResponse `json:"data"`
}

// orderLineResponse is one line of a single-order fetch.
type orderLineResponse struct {
	ID        string  `json:"_id"`
	ProductID string  `json:"product_id"`
	Quantity  float64 `json:"quantity"`
	PriceUnit float64 `json:"price_unit"`
	Subtotal  float64 `json:"subtotal"`
}

// orderDetailResponse is the data body of a single-order fetch.
type orderDetailResponse struct {
	ID            string              `json:"_id"`
	OrderName     string              `json:"order_name"`
	AmountTotal   float64             `json:"amount_total"`
	State         string              `json:"state"`
	InvoiceStatus string              `json:"invoice_status"`
	PartnerID     string              `json:"partner_id"`
	OrderLines    []orderLineResponse `json:"order_lines"`
}

// toFulfillLines validates the request lines field-by-field, collecting
// failures into validationErr in end-user form. Returns the typed line
// parameters when every field passed.
func toFulfillLines(lines []OrderLineRequest, validationErr *errs.ValidationError) []commands.FulfillLineParams {
	if len(lines) == 0 {
		validationErr.Add("order_line", "Order lines are required.")
		return nil
	}

	params := make([]commands.FulfillLineParams, 0, len(lines))
	for _, line := range lines {
		var p commands.FulfillLineParams

		switch {
		case line.ProductID == nil:
			validationErr.Add("product_id", "Product ID is required.")
		default:
			productID, err := kernel.UUIDFromString(*line.ProductID)
			if err != nil {
				validationErr.Add("product_id", "Product ID must be a valid UUID.")
			} else {
				p.ProductID = productID
			}
		}

		switch {
		case line.Quantity == nil:
			validationErr.Add("quantity", "Quantity is required.")
		case *line.Quantity == 0:
			validationErr.Add("quantity", "Quantity must not be zero.")
		default:
			p.Qty = *line.Quantity
		}

		switch {
		case line.PriceUnit == nil:
			validationErr.Add("price_unit", "Price unit is required.")
		case *line.PriceUnit < 0:
			validationErr.Add("price_unit", "Price unit must not be negative.")
		default:
			p.UnitPrice = *line.PriceUnit
		}

		p.QtyDone = line.QtyDone
		params = append(params, p)
	}

	return params
}

// parsePartnerID validates the required partner reference.
func parsePartnerID(raw *string, validationErr *errs.ValidationError) kernel.UUID {
	if raw == nil {
		validationErr.Add("partner_id", "Partner ID is required.")
		return kernel.UUID{}
	}

	partnerID, err := kernel.UUIDFromString(*raw)
	if err != nil {
		validationErr.Add("partner_id", "Partner ID must be a valid UUID.")
		return kernel.UUID{}
	}

	return partnerID
}

// parseInvoicePolicy resolves the optional policy field, defaulting to
// invoicing on order.
func parseInvoicePolicy(raw string, validationErr *errs.ValidationError) order.InvoicePolicy {
	if raw == "" {
		return order.InvoiceOnOrder
	}

	policy, err := order.InvoicePolicyFromString(raw)
	if err != nil {
		validationErr.Add("invoice_policy", "Invoice policy must be one of: order, delivery.")
		return order.InvoiceOnOrder
	}

	return policy
}

func toSummaryResponse(summary queries.OrderSummary) orderSummaryResponse {
	return orderSummaryResponse{
		ID:          summary.ID.String(),
		OrderName:   summary.Name,
		AmountTotal: summary.AmountTotal,
		State:       summary.Status,
		PartnerID:   summary.PartnerID.String(),
	}
}

func toDetailResponse(detail queries.GetOrderQueryResponse) orderDetailResponse {
	lines := make([]orderLineResponse, 0, len(detail.Lines))
	for _, line := range detail.Lines {
		lines = append(lines, orderLineResponse{
			ID:        line.ID.String(),
			ProductID: line.ProductID.String(),
			Quantity:  line.Qty,
			PriceUnit: line.UnitPrice,
			Subtotal:  line.Subtotal,
		})
	}

	return orderDetailResponse{
		ID:            detail.ID.String(),
		OrderName:     detail.Name,
		AmountTotal:   detail.AmountTotal,
		State:         detail.Status,
		InvoiceStatus: detail.InvoiceStatus,
		PartnerID:     detail.PartnerID.String(),
		OrderLines:    lines,
	}
}
