// Package http exposes the lifecycle engine over REST with echo.
package http

import (
	"net/http"

	"kitchenpos/internal/core/application/usecases/commands"
	"kitchenpos/internal/core/application/usecases/queries"
	"kitchenpos/internal/core/domain/model/kernel"
	"kitchenpos/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
// Handlers return errors; the router's error handler turns them into responses.
type Server struct {
	// Command handlers
	createOrderHandler      commands.CreateOrderCommandHandler
	transitionOrderHandler  commands.TransitionOrderCommandHandler
	setPromoOverrideHandler commands.SetPromoOverrideCommandHandler

	// Query handlers
	listOrdersHandler     queries.ListOrdersQueryHandler
	getPromoStatusHandler queries.GetPromoStatusQueryHandler
	getMenuHandler        queries.GetMenuQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	transitionOrderHandler commands.TransitionOrderCommandHandler,
	setPromoOverrideHandler commands.SetPromoOverrideCommandHandler,
	listOrdersHandler queries.ListOrdersQueryHandler,
	getPromoStatusHandler queries.GetPromoStatusQueryHandler,
	getMenuHandler queries.GetMenuQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:      createOrderHandler,
		transitionOrderHandler:  transitionOrderHandler,
		setPromoOverrideHandler: setPromoOverrideHandler,
		listOrdersHandler:       listOrdersHandler,
		getPromoStatusHandler:   getPromoStatusHandler,
		getMenuHandler:          getMenuHandler,
	}
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// GetMenu handles GET /api/menu - serves the catalog.
func (s *Server) GetMenu(ctx echo.Context) error {
	menu, err := s.getMenuHandler.Handle(ctx.Request().Context(), queries.NewGetMenuQuery())
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, menu)
}

// GetPromo handles GET /api/promo - evaluates the promotion at request time.
func (s *Server) GetPromo(ctx echo.Context) error {
	ev, err := s.getPromoStatusHandler.Handle(ctx.Request().Context(), queries.NewGetPromoStatusQuery())
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, newPromoStatus(ev))
}

// SetPromoOverride handles POST /api/promo/override.
func (s *Server) SetPromoOverride(ctx echo.Context) error {
	var req PromoOverrideRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}

	cmd := commands.NewSetPromoOverrideCommand(req.Enabled, req.ConfirmText)
	ev, err := s.setPromoOverrideHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, newPromoStatus(ev))
}

// ListOrders handles GET /api/orders - all orders, oldest first, optionally by status.
func (s *Server) ListOrders(ctx echo.Context, params ListOrdersParams) error {
	status := ""
	if params.Status != nil {
		status = *params.Status
	}

	query, err := queries.NewListOrdersQuery(status)
	if err != nil {
		return err
	}

	orders, err := s.listOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, orders)
}

// CreateOrder handles POST /api/orders - creates a pending order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req NewOrder
	if err := ctx.Bind(&req); err != nil {
		return err
	}

	var subtotal, total *float64
	if req.Totals != nil {
		subtotal, total = req.Totals.Subtotal, req.Totals.Total
	}

	cmd, err := commands.NewCreateOrderCommand(req.Table, req.Items, subtotal, total, req.notes())
	if err != nil {
		return err
	}

	created, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, created.Snapshot())
}

// UpdateOrder handles PATCH /api/orders/{id} - moves an order to another status.
func (s *Server) UpdateOrder(ctx echo.Context, id openapi_types.UUID) error {
	var req StatusChange
	if err := ctx.Bind(&req); err != nil {
		return err
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return errs.NewObjectNotFoundErrorWithCause("orderID", id.String(), err)
	}

	cmd, err := commands.NewTransitionOrderCommand(orderID, req.Status, req.CancelReason)
	if err != nil {
		return err
	}

	updated, err := s.transitionOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, updated.Snapshot())
}
