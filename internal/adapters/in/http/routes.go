package http

import (
	"fmt"
	"net/http"

	"kitchenpos/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ListOrdersParams defines parameters for ListOrders.
type ListOrdersParams struct {
	Status *string `form:"status,omitempty" json:"status,omitempty"`
}

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// (GET /health)
	GetHealth(ctx echo.Context) error
	// (GET /api/menu)
	GetMenu(ctx echo.Context) error
	// (GET /api/promo)
	GetPromo(ctx echo.Context) error
	// (POST /api/promo/override)
	SetPromoOverride(ctx echo.Context) error
	// (GET /api/orders)
	ListOrders(ctx echo.Context, params ListOrdersParams) error
	// (POST /api/orders)
	CreateOrder(ctx echo.Context) error
	// (PATCH /api/orders/{id})
	UpdateOrder(ctx echo.Context, id openapi_types.UUID) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) GetHealth(ctx echo.Context) error {
	return w.Handler.GetHealth(ctx)
}

func (w *ServerInterfaceWrapper) GetMenu(ctx echo.Context) error {
	return w.Handler.GetMenu(ctx)
}

func (w *ServerInterfaceWrapper) GetPromo(ctx echo.Context) error {
	return w.Handler.GetPromo(ctx)
}

func (w *ServerInterfaceWrapper) SetPromoOverride(ctx echo.Context) error {
	return w.Handler.SetPromoOverride(ctx)
}

func (w *ServerInterfaceWrapper) ListOrders(ctx echo.Context) error {
	var params ListOrdersParams

	err := runtime.BindQueryParameter("form", true, false, "status", ctx.QueryParams(), &params.Status)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter status: %s", err))
	}

	return w.Handler.ListOrders(ctx, params)
}

// UpdateOrder reports a malformed id as an unknown order.
func (w *ServerInterfaceWrapper) UpdateOrder(ctx echo.Context) error {
	var id openapi_types.UUID

	err := runtime.BindStyledParameterWithOptions("simple", "id", ctx.Param("id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return errs.NewObjectNotFoundErrorWithCause("orderID", ctx.Param("id"), err)
	}

	return w.Handler.UpdateOrder(ctx, id)
}

// EchoRouter is the subset of echo.Echo and echo.Group used for registration.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.GET("/health", wrapper.GetHealth)
	router.GET("/api/menu", wrapper.GetMenu)
	router.GET("/api/promo", wrapper.GetPromo)
	router.POST("/api/promo/override", wrapper.SetPromoOverride)
	router.GET("/api/orders", wrapper.ListOrders)
	router.POST("/api/orders", wrapper.CreateOrder)
	router.PATCH("/api/orders/:id", wrapper.UpdateOrder)
}
