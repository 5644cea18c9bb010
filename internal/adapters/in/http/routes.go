package http

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ServerInterface lists the operations of api/openapi.yaml.
type ServerInterface interface {
	CreateRackRange(ctx echo.Context) error
	ListRacks(ctx echo.Context, params ListRacksParams) error
	GetRackStatistics(ctx echo.Context, params GetRackStatisticsParams) error
	UpdateRackCapacity(ctx echo.Context, rackID string) error
	ChangeRackStatus(ctx echo.Context, rackID string) error
	DeleteRack(ctx echo.Context, rackID string) error
	ListSections(ctx echo.Context) error

	IntakeShipment(ctx echo.Context) error
	ListShipments(ctx echo.Context, params ListShipmentsParams) error
	GetShipment(ctx echo.Context, shipmentID openapi_types.UUID) error
	GetShipmentByBarcode(ctx echo.Context, barcode string) error
	ReleaseShipment(ctx echo.Context, shipmentID openapi_types.UUID) error

	IssueInvoice(ctx echo.Context, shipmentID openapi_types.UUID) error
	GetShipmentInvoice(ctx echo.Context, shipmentID openapi_types.UUID) error
	GetInvoice(ctx echo.Context, number string) error
	GetPricing(ctx echo.Context) error
	UpdatePricing(ctx echo.Context) error
}

// ServerInterfaceWrapper binds path and query parameters before calling the
// handler.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) CreateRackRange(ctx echo.Context) error {
	return w.Handler.CreateRackRange(ctx)
}

func (w *ServerInterfaceWrapper) ListRacks(ctx echo.Context) error {
	var params ListRacksParams
	if err := bindQuery(ctx, "section", &params.Section); err != nil {
		return err
	}
	if err := bindQuery(ctx, "status", &params.Status); err != nil {
		return err
	}
	return w.Handler.ListRacks(ctx, params)
}

func (w *ServerInterfaceWrapper) GetRackStatistics(ctx echo.Context) error {
	var params GetRackStatisticsParams
	if err := bindQuery(ctx, "section", &params.Section); err != nil {
		return err
	}
	return w.Handler.GetRackStatistics(ctx, params)
}

func (w *ServerInterfaceWrapper) UpdateRackCapacity(ctx echo.Context) error {
	var rackID string
	if err := bindPath(ctx, "rackId", &rackID); err != nil {
		return err
	}
	return w.Handler.UpdateRackCapacity(ctx, rackID)
}

func (w *ServerInterfaceWrapper) ChangeRackStatus(ctx echo.Context) error {
	var rackID string
	if err := bindPath(ctx, "rackId", &rackID); err != nil {
		return err
	}
	return w.Handler.ChangeRackStatus(ctx, rackID)
}

func (w *ServerInterfaceWrapper) DeleteRack(ctx echo.Context) error {
	var rackID string
	if err := bindPath(ctx, "rackId", &rackID); err != nil {
		return err
	}
	return w.Handler.DeleteRack(ctx, rackID)
}

func (w *ServerInterfaceWrapper) ListSections(ctx echo.Context) error {
	return w.Handler.ListSections(ctx)
}

func (w *ServerInterfaceWrapper) IntakeShipment(ctx echo.Context) error {
	return w.Handler.IntakeShipment(ctx)
}

func (w *ServerInterfaceWrapper) ListShipments(ctx echo.Context) error {
	var params ListShipmentsParams
	if err := bindQuery(ctx, "status", &params.Status); err != nil {
		return err
	}
	if err := bindQuery(ctx, "rackId", &params.RackID); err != nil {
		return err
	}
	if err := bindQuery(ctx, "limit", &params.Limit); err != nil {
		return err
	}
	if err := bindQuery(ctx, "offset", &params.Offset); err != nil {
		return err
	}
	return w.Handler.ListShipments(ctx, params)
}

func (w *ServerInterfaceWrapper) GetShipment(ctx echo.Context) error {
	var shipmentID openapi_types.UUID
	if err := bindPath(ctx, "shipmentId", &shipmentID); err != nil {
		return err
	}
	return w.Handler.GetShipment(ctx, shipmentID)
}

func (w *ServerInterfaceWrapper) GetShipmentByBarcode(ctx echo.Context) error {
	var barcode string
	if err := bindPath(ctx, "barcode", &barcode); err != nil {
		return err
	}
	return w.Handler.GetShipmentByBarcode(ctx, barcode)
}

func (w *ServerInterfaceWrapper) ReleaseShipment(ctx echo.Context) error {
	var shipmentID openapi_types.UUID
	if err := bindPath(ctx, "shipmentId", &shipmentID); err != nil {
		return err
	}
	return w.Handler.ReleaseShipment(ctx, shipmentID)
}

func (w *ServerInterfaceWrapper) IssueInvoice(ctx echo.Context) error {
	var shipmentID openapi_types.UUID
	if err := bindPath(ctx, "shipmentId", &shipmentID); err != nil {
		return err
	}
	return w.Handler.IssueInvoice(ctx, shipmentID)
}

func (w *ServerInterfaceWrapper) GetShipmentInvoice(ctx echo.Context) error {
	var shipmentID openapi_types.UUID
	if err := bindPath(ctx, "shipmentId", &shipmentID); err != nil {
		return err
	}
	return w.Handler.GetShipmentInvoice(ctx, shipmentID)
}

func (w *ServerInterfaceWrapper) GetInvoice(ctx echo.Context) error {
	var number string
	if err := bindPath(ctx, "number", &number); err != nil {
		return err
	}
	return w.Handler.GetInvoice(ctx, number)
}

func (w *ServerInterfaceWrapper) GetPricing(ctx echo.Context) error {
	return w.Handler.GetPricing(ctx)
}

func (w *ServerInterfaceWrapper) UpdatePricing(ctx echo.Context) error {
	return w.Handler.UpdatePricing(ctx)
}

// EchoRouter is satisfied by *echo.Echo and *echo.Group.
type EchoRouter interface {
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds every operation of si to router.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL adds every operation of si under baseURL.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	w := &ServerInterfaceWrapper{Handler: si}

	router.POST(baseURL+"/api/v1/racks/ranges", w.CreateRackRange)
	router.GET(baseURL+"/api/v1/racks", w.ListRacks)
	router.GET(baseURL+"/api/v1/racks/statistics", w.GetRackStatistics)
	router.PUT(baseURL+"/api/v1/racks/:rackId/capacity", w.UpdateRackCapacity)
	router.PUT(baseURL+"/api/v1/racks/:rackId/status", w.ChangeRackStatus)
	router.DELETE(baseURL+"/api/v1/racks/:rackId", w.DeleteRack)
	router.GET(baseURL+"/api/v1/sections", w.ListSections)

	router.POST(baseURL+"/api/v1/shipments", w.IntakeShipment)
	router.GET(baseURL+"/api/v1/shipments", w.ListShipments)
	router.GET(baseURL+"/api/v1/shipments/barcode/:barcode", w.GetShipmentByBarcode)
	router.GET(baseURL+"/api/v1/shipments/:shipmentId", w.GetShipment)
	router.POST(baseURL+"/api/v1/shipments/:shipmentId/release", w.ReleaseShipment)
	router.POST(baseURL+"/api/v1/shipments/:shipmentId/invoice", w.IssueInvoice)
	router.GET(baseURL+"/api/v1/shipments/:shipmentId/invoice", w.GetShipmentInvoice)

	router.GET(baseURL+"/api/v1/invoices/:number", w.GetInvoice)
	router.GET(baseURL+"/api/v1/pricing", w.GetPricing)
	router.PUT(baseURL+"/api/v1/pricing", w.UpdatePricing)
}

func bindPath(ctx echo.Context, name string, dest any) error {
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), dest,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return nil
}

func bindQuery(ctx echo.Context, name string, dest any) error {
	if err := runtime.BindQueryParameter("form", true, false, name, ctx.QueryParams(), dest); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return nil
}
