package http

import (
	"context"
	"errors"
	"net/http"

	"warehouse/internal/core/application/usecases/commands"
	"warehouse/internal/core/application/usecases/queries"
	"warehouse/internal/core/domain/model/billing"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/ports"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"go.uber.org/zap"
)

// Commands are the write-side handlers behind the API.
type Commands struct {
	CreateRackRange    commands.CreateRackRangeCommandHandler
	UpdateRackCapacity commands.UpdateRackCapacityCommandHandler
	ChangeRackStatus   commands.ChangeRackStatusCommandHandler
	DeleteRack         commands.DeleteRackCommandHandler
	IntakeShipment     commands.IntakeShipmentCommandHandler
	ReleaseShipment    commands.ReleaseShipmentCommandHandler
	IssueInvoice       commands.IssueInvoiceCommandHandler
	UpdatePricing      commands.UpdatePricingCommandHandler
}

type (
	RackStatisticsReader interface {
		Handle(ctx context.Context, query queries.GetRackStatisticsQuery) (queries.GetRackStatisticsQueryResponse, error)
	}
	RackLister interface {
		Handle(ctx context.Context, query queries.ListRacksQuery) ([]queries.RackView, error)
	}
	SectionLister interface {
		Handle(ctx context.Context, query queries.ListSectionsQuery) ([]queries.SectionView, error)
	}
	ShipmentReader interface {
		Handle(ctx context.Context, query queries.GetShipmentQuery) (queries.ShipmentView, error)
	}
	ShipmentLister interface {
		Handle(ctx context.Context, query queries.ListShipmentsQuery) ([]queries.ShipmentView, error)
	}
	InvoiceReader interface {
		Handle(ctx context.Context, query queries.GetInvoiceQuery) (queries.InvoiceView, error)
	}
)

// Queries are the read-side handlers behind the API.
type Queries struct {
	RackStatistics RackStatisticsReader
	ListRacks      RackLister
	ListSections   SectionLister
	GetShipment    ShipmentReader
	ListShipments  ShipmentLister
	GetInvoice     InvoiceReader
}

// Server implements ServerInterface on top of the application use cases.
type Server struct {
	commands Commands
	queries  Queries
	pricing  ports.PricingProvider
	clock    ports.Clock
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

var _ ServerInterface = (*Server)(nil)

// NewServer creates the API server. A nil m records into a throwaway registry.
func NewServer(
	cmds Commands,
	qs Queries,
	pricing ports.PricingProvider,
	clock ports.Clock,
	m *metrics.Metrics,
	logger *zap.Logger,
) *Server {
	if m == nil {
		m = metrics.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		commands: cmds,
		queries:  qs,
		pricing:  pricing,
		clock:    clock,
		metrics:  m,
		logger:   logger,
	}
}

// CreateRackRange handles POST /api/v1/racks/ranges.
func (s *Server) CreateRackRange(ctx echo.Context) error {
	var body NewRackRange
	if err := ctx.Bind(&body); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCreateRackRangeCommand(
		body.Section,
		deref(body.Prefix),
		body.Start,
		body.End,
		deref(body.Capacity),
		deref(body.Description),
		deref(body.ReplaceExisting),
	)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.commands.CreateRackRange.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, RackRangeResult{
		Created: rackIDs(result.Created),
		Skipped: rackIDs(result.Skipped),
		Updated: rackIDs(result.Updated),
	})
}

// ListRacks handles GET /api/v1/racks.
func (s *Server) ListRacks(ctx echo.Context, params ListRacksParams) error {
	query, err := queries.NewListRacksQuery(deref(params.Section), deref(params.Status))
	if err != nil {
		return s.fail(ctx, err)
	}

	racks, err := s.queries.ListRacks.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	if racks == nil {
		racks = []queries.RackView{}
	}

	return ctx.JSON(http.StatusOK, racks)
}

// GetRackStatistics handles GET /api/v1/racks/statistics.
func (s *Server) GetRackStatistics(ctx echo.Context, params GetRackStatisticsParams) error {
	stats, err := s.queries.RackStatistics.Handle(
		ctx.Request().Context(),
		queries.NewGetRackStatisticsQuery(deref(params.Section)),
	)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, stats)
}

// UpdateRackCapacity handles PUT /api/v1/racks/{rackId}/capacity.
func (s *Server) UpdateRackCapacity(ctx echo.Context, rackID string) error {
	var body CapacityUpdate
	if err := ctx.Bind(&body); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewUpdateRackCapacityCommand(rackID, body.Capacity)
	if err != nil {
		return s.fail(ctx, err)
	}

	updated, err := s.commands.UpdateRackCapacity.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, queries.NewRackView(updated))
}

// ChangeRackStatus handles PUT /api/v1/racks/{rackId}/status.
func (s *Server) ChangeRackStatus(ctx echo.Context, rackID string) error {
	var body StatusUpdate
	if err := ctx.Bind(&body); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewChangeRackStatusCommand(rackID, body.Enabled)
	if err != nil {
		return s.fail(ctx, err)
	}

	updated, err := s.commands.ChangeRackStatus.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, queries.NewRackView(updated))
}

// DeleteRack handles DELETE /api/v1/racks/{rackId}.
func (s *Server) DeleteRack(ctx echo.Context, rackID string) error {
	cmd, err := commands.NewDeleteRackCommand(rackID)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.commands.DeleteRack.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ListSections handles GET /api/v1/sections.
func (s *Server) ListSections(ctx echo.Context) error {
	sections, err := s.queries.ListSections.Handle(ctx.Request().Context(), queries.NewListSectionsQuery())
	if err != nil {
		return s.fail(ctx, err)
	}
	if sections == nil {
		sections = []queries.SectionView{}
	}

	return ctx.JSON(http.StatusOK, sections)
}

// IntakeShipment handles POST /api/v1/shipments.
func (s *Server) IntakeShipment(ctx echo.Context) error {
	var body NewShipment
	if err := ctx.Bind(&body); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewIntakeShipmentCommand(
		body.Shipper,
		body.Consignee,
		body.Weight,
		body.PieceCount,
		deref(body.PreferredRack),
		deref(body.Notes),
	)
	if err != nil {
		return s.fail(ctx, err)
	}

	stored, err := s.commands.IntakeShipment.Handle(ctx.Request().Context(), cmd)
	s.metrics.ObserveIntake(intakeResult(err))
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, queries.NewShipmentView(stored, s.clock.Now(), nil))
}

// ListShipments handles GET /api/v1/shipments.
func (s *Server) ListShipments(ctx echo.Context, params ListShipmentsParams) error {
	query, err := queries.NewListShipmentsQuery(
		deref(params.Status),
		deref(params.RackID),
		deref(params.Limit),
		deref(params.Offset),
	)
	if err != nil {
		return s.fail(ctx, err)
	}

	shipments, err := s.queries.ListShipments.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	if shipments == nil {
		shipments = []queries.ShipmentView{}
	}

	return ctx.JSON(http.StatusOK, shipments)
}

// GetShipment handles GET /api/v1/shipments/{shipmentId}.
func (s *Server) GetShipment(ctx echo.Context, shipmentID openapi_types.UUID) error {
	id, err := kernel.UUIDFromString(shipmentID.String())
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetShipmentByIDQuery(id)
	if err != nil {
		return s.fail(ctx, err)
	}

	return s.getShipment(ctx, query)
}

// GetShipmentByBarcode handles GET /api/v1/shipments/barcode/{barcode}.
func (s *Server) GetShipmentByBarcode(ctx echo.Context, barcode string) error {
	query, err := queries.NewGetShipmentByBarcodeQuery(barcode)
	if err != nil {
		return s.fail(ctx, err)
	}

	return s.getShipment(ctx, query)
}

func (s *Server) getShipment(ctx echo.Context, query queries.GetShipmentQuery) error {
	view, err := s.queries.GetShipment.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, view)
}

// ReleaseShipment handles POST /api/v1/shipments/{shipmentId}/release.
// A billing failure after the release still answers 200 with invoiceError set.
func (s *Server) ReleaseShipment(ctx echo.Context, shipmentID openapi_types.UUID) error {
	id, err := kernel.UUIDFromString(shipmentID.String())
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewReleaseShipmentCommand(id)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.commands.ReleaseShipment.Handle(ctx.Request().Context(), cmd)
	s.metrics.ObserveRelease(releaseResult(err))
	if err != nil {
		return s.fail(ctx, err)
	}

	response := ReleaseResult{
		InvoiceError: errorString(result.InvoiceErr),
		ArchiveError: errorString(result.ArchiveErr),
	}

	var invoiceNumber *string
	if result.Invoice != nil {
		number := result.Invoice.Number().String()
		invoiceNumber = &number
		response.Invoice = &Invoice{InvoiceView: queries.NewInvoiceView(result.Invoice)}
		s.metrics.InvoiceIssued(metrics.SourceRelease)
	}
	if result.InvoiceErr != nil {
		s.metrics.InvoiceFailed(metrics.SourceRelease)
		s.logger.Warn("shipment released without invoice",
			zap.String("shipment_id", id.String()),
			zap.Error(result.InvoiceErr))
	}
	if result.ArchiveErr != nil {
		s.metrics.ArchiveFailed()
		s.logger.Warn("invoice archive failed",
			zap.String("shipment_id", id.String()),
			zap.Error(result.ArchiveErr))
	}

	response.Shipment = queries.NewShipmentView(result.Shipment, s.clock.Now(), invoiceNumber)
	return ctx.JSON(http.StatusOK, response)
}

// IssueInvoice handles POST /api/v1/shipments/{shipmentId}/invoice.
func (s *Server) IssueInvoice(ctx echo.Context, shipmentID openapi_types.UUID) error {
	id, err := kernel.UUIDFromString(shipmentID.String())
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewIssueInvoiceCommand(id)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.commands.IssueInvoice.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		s.metrics.InvoiceFailed(metrics.SourceManual)
		return s.fail(ctx, err)
	}
	s.metrics.InvoiceIssued(metrics.SourceManual)

	if result.ArchiveErr != nil {
		s.metrics.ArchiveFailed()
		s.logger.Warn("invoice archive failed",
			zap.String("invoice", result.Invoice.Number().String()),
			zap.Error(result.ArchiveErr))
	}

	return ctx.JSON(http.StatusCreated, Invoice{
		InvoiceView:  queries.NewInvoiceView(result.Invoice),
		ArchiveError: errorString(result.ArchiveErr),
	})
}

// GetShipmentInvoice handles GET /api/v1/shipments/{shipmentId}/invoice.
func (s *Server) GetShipmentInvoice(ctx echo.Context, shipmentID openapi_types.UUID) error {
	id, err := kernel.UUIDFromString(shipmentID.String())
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetInvoiceByShipmentQuery(id)
	if err != nil {
		return s.fail(ctx, err)
	}

	return s.getInvoice(ctx, query)
}

// GetInvoice handles GET /api/v1/invoices/{number}.
func (s *Server) GetInvoice(ctx echo.Context, number string) error {
	query, err := queries.NewGetInvoiceByNumberQuery(number)
	if err != nil {
		return s.fail(ctx, err)
	}

	return s.getInvoice(ctx, query)
}

func (s *Server) getInvoice(ctx echo.Context, query queries.GetInvoiceQuery) error {
	view, err := s.queries.GetInvoice.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, Invoice{InvoiceView: view})
}

// GetPricing handles GET /api/v1/pricing.
func (s *Server) GetPricing(ctx echo.Context) error {
	pricing, err := s.pricing.Get(ctx.Request().Context())
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, newPricing(pricing))
}

// UpdatePricing handles PUT /api/v1/pricing.
func (s *Server) UpdatePricing(ctx echo.Context) error {
	var body Pricing
	if err := ctx.Bind(&body); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewUpdatePricingCommand(billing.PricingSettings{
		PerKgDayRate:    body.PerKgDayRate,
		HandlingFee:     body.HandlingFee,
		FlatRate:        body.FlatRate,
		FreeDays:        body.FreeDays,
		PerKgDayEnabled: body.PerKgDayEnabled,
		HandlingEnabled: body.HandlingEnabled,
		FlatRateEnabled: body.FlatRateEnabled,
	})
	if err != nil {
		return s.fail(ctx, err)
	}

	updated, err := s.commands.UpdatePricing.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, newPricing(updated))
}

func newPricing(p billing.Pricing) Pricing {
	settings := p.Settings()
	response := Pricing{
		PerKgDayRate:    settings.PerKgDayRate,
		HandlingFee:     settings.HandlingFee,
		FlatRate:        settings.FlatRate,
		FreeDays:        settings.FreeDays,
		PerKgDayEnabled: settings.PerKgDayEnabled,
		HandlingEnabled: settings.HandlingEnabled,
		FlatRateEnabled: settings.FlatRateEnabled,
	}
	if updatedAt := p.UpdatedAt(); !updatedAt.IsZero() {
		response.UpdatedAt = &updatedAt
	}
	return response
}

func intakeResult(err error) string {
	switch {
	case err == nil:
		return metrics.ResultOK
	case errors.Is(err, errs.ErrNoCapacity):
		return metrics.ResultNoCapacity
	case isClientError(err):
		return metrics.ResultRejected
	default:
		return metrics.ResultError
	}
}

func releaseResult(err error) string {
	switch {
	case err == nil:
		return metrics.ResultOK
	case errors.Is(err, errs.ErrAlreadyReleased):
		return metrics.ResultAlreadyReleased
	case isClientError(err):
		return metrics.ResultRejected
	default:
		return metrics.ResultError
	}
}
