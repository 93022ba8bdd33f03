package http

import (
	"log/slog"
	"net/http"

	"kitchenpos/internal/adapters/in/http/openapi"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// RouterOptions carries the endpoints that are not use cases.
type RouterOptions struct {
	Logger *slog.Logger
	// Observers serves GET /ws.
	Observers http.Handler
	// Metrics serves GET /metrics.
	Metrics http.Handler
}

// NewRouter builds the echo instance with every route, validation and the error mapping.
func NewRouter(server *Server, opts RouterOptions) (*echo.Echo, error) {
	logger := opts.Logger.With("component", "http")

	doc, err := openapi.Load()
	if err != nil {
		return nil, err
	}
	docJSON, err := openapi.JSON(doc)
	if err != nil {
		return nil, err
	}
	if err = openapi.Register(doc); err != nil {
		return nil, err
	}
	validator, err := requestValidator(doc)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = newErrorHandler(logger)

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(ctx echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			logger.LogAttrs(ctx.Request().Context(), level, "Request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			)
			return nil
		},
	}))
	e.Use(validator)

	RegisterHandlers(e, server)

	e.GET("/api/openapi.json", func(ctx echo.Context) error {
		return ctx.JSONBlob(http.StatusOK, docJSON)
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	if opts.Observers != nil {
		e.GET("/ws", echo.WrapHandler(opts.Observers))
	}
	if opts.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(opts.Metrics))
	}

	return e, nil
}
