// Package http is the inbound HTTP adapter. It translates requests from the
// admin console and customer self-service into commands and queries, and
// maps core error kinds onto status codes: client errors (not found, invalid
// status value, invalid or no-op transition) surface verbatim with a 4xx
// code and are never retried; persistence failures surface as 5xx.
package http

import (
	"errors"
	"net/http"
	"time"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server wires HTTP handlers to application use cases.
type Server struct {
	createOrderHandler         commands.CreateOrderCommandHandler
	updateItemStatusHandler    commands.UpdateItemStatusCommandHandler
	listOrdersHandler          queries.ListOrdersQueryHandler
	pendingReturnsCountHandler queries.PendingReturnsCountQueryHandler
}

// NewServer creates the HTTP server with its command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	updateItemStatusHandler commands.UpdateItemStatusCommandHandler,
	listOrdersHandler queries.ListOrdersQueryHandler,
	pendingReturnsCountHandler queries.PendingReturnsCountQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:         createOrderHandler,
		updateItemStatusHandler:    updateItemStatusHandler,
		listOrdersHandler:          listOrdersHandler,
		pendingReturnsCountHandler: pendingReturnsCountHandler,
	}
}

// RegisterRoutes mounts the API routes on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/v1/orders", s.CreateOrder)
	e.POST("/api/v1/orders/:orderId/items/:itemId/status", s.UpdateItemStatus)
	e.GET("/api/v1/orders", s.ListOrders)
}

type newOrderItem struct {
	ProductID      string `json:"productId"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unitPriceCents"`
}

type newOrderRequest struct {
	CustomerID    string         `json:"customerId"`
	CustomerName  string         `json:"customerName"`
	CustomerEmail string         `json:"customerEmail"`
	Items         []newOrderItem `json:"items"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
	Actor  string `json:"actor"`
	Reason string `json:"reason,omitempty"`
}

type transitionResponse struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	NewStatus string    `json:"newStatus,omitempty"`
	Timestamp time.Time `json:"timestamp,omitzero"`
}

type orderSummaryResponse struct {
	ID            string    `json:"id"`
	CustomerName  string    `json:"customerName"`
	CustomerEmail string    `json:"customerEmail"`
	Status        string    `json:"status"`
	TotalCents    int64     `json:"totalCents"`
	ItemCount     int       `json:"itemCount"`
	CreatedAt     time.Time `json:"createdAt"`
}

type listOrdersResponse struct {
	Orders              []orderSummaryResponse `json:"orders"`
	Page                int                    `json:"page"`
	TotalPages          int                    `json:"totalPages"`
	Total               int                    `json:"total"`
	PendingReturnsCount int                    `json:"pendingReturnsCount"`
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req newOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return failure(ctx, http.StatusBadRequest, "invalid request body")
	}

	customerID, err := kernel.UUIDFromString(req.CustomerID)
	if err != nil {
		return failure(ctx, http.StatusBadRequest, err.Error())
	}

	items := make([]commands.ItemSpec, 0, len(req.Items))
	for _, item := range req.Items {
		productID, prodErr := kernel.UUIDFromString(item.ProductID)
		if prodErr != nil {
			return failure(ctx, http.StatusBadRequest, prodErr.Error())
		}
		items = append(items, commands.ItemSpec{
			ProductID:      productID,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
		})
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		orderID, customerID, req.CustomerName, req.CustomerEmail, items,
	)
	if err != nil {
		return failure(ctx, http.StatusBadRequest, err.Error())
	}

	if err = s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return failure(ctx, statusFor(err), err.Error())
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"orderId": orderID.String()})
}

// UpdateItemStatus handles POST /api/v1/orders/:orderId/items/:itemId/status.
func (s *Server) UpdateItemStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return failure(ctx, http.StatusBadRequest, err.Error())
	}
	itemID, err := kernel.UUIDFromString(ctx.Param("itemId"))
	if err != nil {
		return failure(ctx, http.StatusBadRequest, err.Error())
	}

	var req updateStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return failure(ctx, http.StatusBadRequest, "invalid request body")
	}

	requested, err := order.ParseStatus(req.Status)
	if err != nil {
		return failure(ctx, http.StatusBadRequest, err.Error())
	}

	cmd, err := commands.NewUpdateItemStatusCommand(orderID, itemID, requested, req.Actor, req.Reason)
	if err != nil {
		return failure(ctx, http.StatusBadRequest, err.Error())
	}

	event, err := s.updateItemStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return failure(ctx, statusFor(err), err.Error())
	}

	return ctx.JSON(http.StatusOK, transitionResponse{
		Success:   true,
		Message:   "status updated",
		NewStatus: event.To.String(),
		Timestamp: event.OccurredAt,
	})
}

// ListOrders handles GET /api/v1/orders.
func (s *Server) ListOrders(ctx echo.Context) error {
	page := 1
	if err := echo.QueryParamsBinder(ctx).Int("page", &page).BindError(); err != nil {
		return failure(ctx, http.StatusBadRequest, "invalid page")
	}

	var statusFilter *order.Status
	if name := ctx.QueryParam("status"); name != "" {
		status, err := order.ParseStatus(name)
		if err != nil {
			return failure(ctx, http.StatusBadRequest, err.Error())
		}
		statusFilter = &status
	}

	sort := queries.SortAscending
	if ctx.QueryParam("sort") == "desc" {
		sort = queries.SortDescending
	}

	query, err := queries.NewListOrdersQuery(page, ctx.QueryParam("search"), statusFilter, sort)
	if err != nil {
		return failure(ctx, http.StatusBadRequest, err.Error())
	}

	result, err := s.listOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return failure(ctx, statusFor(err), err.Error())
	}

	pendingReturns, err := s.pendingReturnsCountHandler.Handle(
		ctx.Request().Context(), queries.NewPendingReturnsCountQuery(),
	)
	if err != nil {
		return failure(ctx, statusFor(err), err.Error())
	}

	orders := make([]orderSummaryResponse, 0, len(result.Items))
	for _, summary := range result.Items {
		orders = append(orders, orderSummaryResponse{
			ID:            summary.ID.String(),
			CustomerName:  summary.CustomerName,
			CustomerEmail: summary.CustomerEmail,
			Status:        summary.Status.String(),
			TotalCents:    summary.TotalCents,
			ItemCount:     summary.ItemCount,
			CreatedAt:     summary.CreatedAt,
		})
	}

	return ctx.JSON(http.StatusOK, listOrdersResponse{
		Orders:              orders,
		Page:                result.Page,
		TotalPages:          result.TotalPages,
		Total:               result.TotalCount,
		PendingReturnsCount: pendingReturns,
	})
}

// statusFor maps core error kinds to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, order.ErrNoOpTransition),
		errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, errs.ErrVersionIsInvalid):
		return http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func failure(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, transitionResponse{
		Success: false,
		Message: message,
	})
}
