// Package http exposes the order fulfillment API over echo. Handlers
// translate JSON payloads into commands and queries and map domain errors
// onto transport responses.
package http

import (
	"errors"
	"net/http"
	"strconv"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const defaultPerPage = 10

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler  commands.CreateOrderCommandHandler
	fulfillOrderHandler commands.FulfillOrderCommandHandler
	updateOrderHandler  commands.UpdateOrderCommandHandler
	deleteOrderHandler  commands.DeleteOrderCommandHandler

	// Query handlers
	listOrdersHandler queries.ListOrdersQueryHandler
	getOrderHandler   queries.GetOrderQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	fulfillOrderHandler commands.FulfillOrderCommandHandler,
	updateOrderHandler commands.UpdateOrderCommandHandler,
	deleteOrderHandler commands.DeleteOrderCommandHandler,
	listOrdersHandler queries.ListOrdersQueryHandler,
	getOrderHandler queries.GetOrderQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:  createOrderHandler,
		fulfillOrderHandler: fulfillOrderHandler,
		updateOrderHandler:  updateOrderHandler,
		deleteOrderHandler:  deleteOrderHandler,
		listOrdersHandler:   listOrdersHandler,
		getOrderHandler:     getOrderHandler,
	}
}

// RegisterRoutes attaches every API route to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/get_all_orders", s.GetAllOrders)
	e.GET("/api/get_order_by_id/:order_id", s.GetOrderByID)
	e.POST("/api/add_order", s.AddOrder)
	e.POST("/api/add_order_invoice", s.AddOrderInvoice)
	e.PUT("/api/update_order/:order_id", s.UpdateOrder)
	e.DELETE("/api/delete_order/:order_id", s.DeleteOrder)
}

// GetAllOrders handles GET /api/get_all_orders - paginated order listing.
func (s *Server) GetAllOrders(ctx echo.Context) error {
	page := queryInt(ctx, "page", 1)
	perPage := queryInt(ctx, "per_page", defaultPerPage)

	query := queries.NewListOrdersQuery(page, perPage)

	result, err := s.listOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	data := make([]orderSummaryResponse, 0, len(result.Orders))
	for _, summary := range result.Orders {
		data = append(data, toSummaryResponse(summary))
	}

	return ctx.JSON(http.StatusOK, listOrdersResponse{
		TotalResult:  result.TotalResult,
		CurrentCount: len(data),
		TotalPages:   result.TotalPages,
		CurrentPage:  result.Page,
		PerPage:      result.PageSize,
		Data:         data,
	})
}

// GetOrderByID handles GET /api/get_order_by_id/:order_id.
func (s *Server) GetOrderByID(ctx echo.Context) error {
	orderID, err := pathOrderID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	detail, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, map[string]any{
		"status": "success",
		"data":   toDetailResponse(detail),
	})
}

// AddOrder handles POST /api/add_order - creates and confirms a new order,
// materializing its delivery pickings.
func (s *Server) AddOrder(ctx echo.Context) error {
	var req AddOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return writeBindError(ctx)
	}

	validationErr := errs.NewValidationError()
	partnerID := parsePartnerID(req.PartnerID, validationErr)
	policy := parseInvoicePolicy(req.InvoicePolicy, validationErr)
	lines := toFulfillLines(req.OrderLine, validationErr)
	if err := validationErr.ErrOrNil(); err != nil {
		return writeError(ctx, err)
	}

	lineParams := make([]commands.LineParams, 0, len(lines))
	for _, line := range lines {
		lineParams = append(lineParams, line.LineParams)
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, partnerID, policy, lineParams)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, map[string]any{"order_id": orderID.String()})
}

// AddOrderInvoice handles POST /api/add_order_invoice - runs the full
// fulfillment workflow: create, confirm, deliver, return handling and
// conditional invoicing.
func (s *Server) AddOrderInvoice(ctx echo.Context) error {
	var req AddOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return writeBindError(ctx)
	}

	validationErr := errs.NewValidationError()
	partnerID := parsePartnerID(req.PartnerID, validationErr)
	policy := parseInvoicePolicy(req.InvoicePolicy, validationErr)
	lines := toFulfillLines(req.OrderLine, validationErr)
	if err := validationErr.ErrOrNil(); err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewFulfillOrderCommand(kernel.NewUUID(), partnerID, policy, lines)
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.fulfillOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	var invoiceID *string
	if result.InvoiceID.Validate() == nil {
		id := result.InvoiceID.String()
		invoiceID = &id
	}

	return ctx.JSON(http.StatusOK, fulfillResponse{
		Status:           "success",
		OrderID:          result.OrderID.String(),
		InvoiceID:        invoiceID,
		PickingIDs:       uuidStrings(result.PickingIDs),
		ReturnPickingIDs: uuidStrings(result.ReturnPickingIDs),
	})
}

// UpdateOrder handles PUT /api/update_order/:order_id - replaces the partner
// and appends new lines.
func (s *Server) UpdateOrder(ctx echo.Context) error {
	orderID, err := pathOrderID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var req UpdateOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return writeBindError(ctx)
	}

	validationErr := errs.NewValidationError()

	var partnerID kernel.UUID
	if req.PartnerID != nil {
		partnerID = parsePartnerID(req.PartnerID, validationErr)
	}

	var newLines []commands.LineParams
	if len(req.OrderLines) > 0 {
		for _, line := range toFulfillLines(req.OrderLines, validationErr) {
			newLines = append(newLines, line.LineParams)
		}
	}

	if err = validationErr.ErrOrNil(); err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewUpdateOrderCommand(orderID, partnerID, newLines)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.updateOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, map[string]any{
		"status":   "success",
		"order_id": orderID.String(),
	})
}

// DeleteOrder handles DELETE /api/delete_order/:order_id.
func (s *Server) DeleteOrder(ctx echo.Context) error {
	orderID, err := pathOrderID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewDeleteOrderCommand(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.deleteOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, map[string]any{
		"status":  "success",
		"message": "Order deleted successfully.",
	})
}

// pathOrderID extracts and validates the :order_id path parameter.
func pathOrderID(ctx echo.Context) (kernel.UUID, error) {
	orderID, err := kernel.UUIDFromString(ctx.Param("order_id"))
	if err != nil {
		validationErr := errs.NewValidationError()
		validationErr.Add("order_id", "Order ID must be a valid UUID.")
		return kernel.UUID{}, validationErr
	}
	return orderID, nil
}

// queryInt reads an integer query parameter, falling back to a default on
// absent or malformed values.
func queryInt(ctx echo.Context, name string, fallback int) int {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func uuidStrings(ids []kernel.UUID) []string {
	strs := make([]string, 0, len(ids))
	for _, id := range ids {
		strs = append(strs, id.String())
	}
	return strs
}

// writeBindError reports an unparseable request body.
func writeBindError(ctx echo.Context) error {
	return ctx.JSON(http.StatusBadRequest, errorResponse{
		Status:  "error",
		Message: "Invalid request body",
	})
}

// writeError maps a domain error onto the transport response. Validation
// failures carry the field map; every other kind collapses into a single
// message under the matching status code.
func writeError(ctx echo.Context, err error) error {
	var validationErr *errs.ValidationError
	if errors.As(err, &validationErr) {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Status: "error",
			Errors: validationErr.Fields,
		})
	}

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		status = http.StatusBadRequest
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrStateConflict):
		status = http.StatusConflict
	case errors.Is(err, errs.ErrInvoiceGate):
		status = http.StatusUnprocessableEntity
	}

	return ctx.JSON(status, errorResponse{
		Status:  "error",
		Message: err.Error(),
	})
}
