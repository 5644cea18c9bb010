package http

import (
	"fmt"
	"net/http"
	"sync"

	"warehouse/api"
	"warehouse/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/swaggo/swag"
	"go.uber.org/zap"
)

var registerDocOnce sync.Once

// RouterOptions tune NewRouter.
type RouterOptions struct {
	Metrics *metrics.Metrics
	Logger  *zap.Logger
	// ValidateRequests enables OpenAPI request validation on /api.
	ValidateRequests bool
	// Swagger serves the UI and document under /swagger.
	Swagger bool
}

// NewRouter builds the echo instance serving the API, /health and /metrics.
func NewRouter(server ServerInterface, opts RouterOptions) (*echo.Echo, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	// Requests are logged through zap.
	e.Logger.SetLevel(log.OFF)
	e.HTTPErrorHandler = HTTPErrorHandler(logger)

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	if opts.Metrics != nil {
		e.Use(Metrics(opts.Metrics))
	}
	e.Use(RequestLogger(logger))

	if opts.ValidateRequests {
		doc, err := api.Load()
		if err != nil {
			return nil, err
		}
		validator, err := RequestValidator(doc)
		if err != nil {
			return nil, err
		}
		e.Use(validator)
	}

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	if opts.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(opts.Metrics.Handler()))
	}
	if opts.Swagger {
		if _, err := api.Load(); err != nil {
			return nil, fmt.Errorf("swagger: %w", err)
		}
		registerDocOnce.Do(func() {
			swag.Register(swag.Name, api.SwaggerDoc{})
		})
		e.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	RegisterHandlers(e, server)
	return e, nil
}
