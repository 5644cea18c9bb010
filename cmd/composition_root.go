package cmd

import (
	"context"
	"fmt"
	"time"

	httpapi "warehouse/internal/adapters/in/http"
	"warehouse/internal/adapters/out/blob"
	"warehouse/internal/adapters/out/postgres"
	"warehouse/internal/adapters/out/pricingcache"
	"warehouse/internal/core/application/usecases/commands"
	"warehouse/internal/core/application/usecases/queries"
	"warehouse/internal/core/ports"
	"warehouse/internal/jobs"
	"warehouse/internal/pkg/clock"
	"warehouse/internal/pkg/metrics"
	"warehouse/internal/pkg/retry"

	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CompositionRoot owns the process-wide dependencies and builds every handler.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	readDB     *sqlx.DB
	factories  commands.Factories
	uowFactory ports.UnitOfWorkFactory
	clock      ports.Clock
	policy     retry.Policy
	pricing    *pricingcache.Provider
	archive    ports.InvoiceArchive
	metrics    *metrics.Metrics
	logger     *zap.Logger
}

// NewCompositionRoot wires the adapters. The blob store is created here, so
// an unreachable S3 configuration fails start-up rather than the first invoice.
func NewCompositionRoot(
	ctx context.Context,
	config Config,
	gormDB *gorm.DB,
	readDB *sqlx.DB,
	logger *zap.Logger,
) (*CompositionRoot, error) {
	uowFactory := postgres.NewGormUnitOfWorkFactory(gormDB)

	store, err := newBlobStore(ctx, config)
	if err != nil {
		return nil, err
	}
	logger.Info("invoice archive ready", zap.String("driver", string(store.Driver())))

	return &CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		readDB:     readDB,
		factories:  commands.NewFactories(uowFactory),
		uowFactory: uowFactory,
		clock:      clock.NewSystem(config.Location()),
		policy:     config.RetryPolicy(),
		pricing:    pricingcache.NewProvider(pricingcache.RepositoryLoader(uowFactory), config.PricingCacheTTL),
		archive:    blob.NewInvoiceArchive(store),
		metrics:    metrics.New(),
		logger:     logger,
	}, nil
}

func newBlobStore(ctx context.Context, config Config) (blob.Store, error) {
	driver, err := blob.ParseDriver(config.BlobDriver)
	if err != nil {
		return nil, err
	}

	switch driver {
	case blob.DriverS3:
		store, err := blob.NewS3Store(ctx, config.S3())
		if err != nil {
			return nil, fmt.Errorf("failed to create s3 store: %w", err)
		}
		return store, nil
	default:
		return blob.NewMemoryStore(), nil
	}
}

func (c *CompositionRoot) Metrics() *metrics.Metrics {
	return c.metrics
}

func (c *CompositionRoot) CreateCreateRackRangeCommandHandler() commands.CreateRackRangeCommandHandler {
	return commands.NewCreateRackRangeCommandHandler(c.factories.Rack, c.clock, c.policy)
}

func (c *CompositionRoot) CreateUpdateRackCapacityCommandHandler() commands.UpdateRackCapacityCommandHandler {
	return commands.NewUpdateRackCapacityCommandHandler(c.factories.Rack, c.clock, c.policy)
}

func (c *CompositionRoot) CreateChangeRackStatusCommandHandler() commands.ChangeRackStatusCommandHandler {
	return commands.NewChangeRackStatusCommandHandler(c.factories.Rack, c.clock, c.policy)
}

func (c *CompositionRoot) CreateDeleteRackCommandHandler() commands.DeleteRackCommandHandler {
	return commands.NewDeleteRackCommandHandler(c.factories.Rack, c.policy)
}

func (c *CompositionRoot) CreateIntakeShipmentCommandHandler() commands.IntakeShipmentCommandHandler {
	return commands.NewIntakeShipmentCommandHandler(c.factories.Shipment, c.clock, c.policy)
}

func (c *CompositionRoot) CreateIssueInvoiceCommandHandler() commands.IssueInvoiceCommandHandler {
	return commands.NewIssueInvoiceCommandHandler(c.factories.Invoice, c.pricing, c.archive, c.clock, c.policy)
}

func (c *CompositionRoot) CreateReleaseShipmentCommandHandler() commands.ReleaseShipmentCommandHandler {
	return commands.NewReleaseShipmentCommandHandler(
		c.factories.Shipment,
		c.CreateIssueInvoiceCommandHandler(),
		c.clock,
		c.policy,
	)
}

func (c *CompositionRoot) CreateBillPendingShipmentsCommandHandler() commands.BillPendingShipmentsCommandHandler {
	return commands.NewBillPendingShipmentsCommandHandler(
		c.factories.Invoice,
		c.CreateIssueInvoiceCommandHandler(),
		c.policy,
	)
}

func (c *CompositionRoot) CreateUpdatePricingCommandHandler() commands.UpdatePricingCommandHandler {
	return commands.NewUpdatePricingCommandHandler(c.factories.Pricing, c.pricing, c.clock, c.policy)
}

func (c *CompositionRoot) CreateGetRackStatisticsQueryHandler() queries.GetRackStatisticsQueryHandler {
	return queries.NewGetRackStatisticsQueryHandler(c.readDB, c.policy)
}

func (c *CompositionRoot) CreateListRacksQueryHandler() queries.ListRacksQueryHandler {
	return queries.NewListRacksQueryHandler(c.readDB, c.policy)
}

func (c *CompositionRoot) CreateListSectionsQueryHandler() queries.ListSectionsQueryHandler {
	return queries.NewListSectionsQueryHandler(c.readDB, c.policy)
}

func (c *CompositionRoot) CreateGetShipmentQueryHandler() queries.GetShipmentQueryHandler {
	return queries.NewGetShipmentQueryHandler(c.readDB, c.clock, c.policy)
}

func (c *CompositionRoot) CreateListShipmentsQueryHandler() queries.ListShipmentsQueryHandler {
	return queries.NewListShipmentsQueryHandler(c.readDB, c.clock, c.policy)
}

func (c *CompositionRoot) CreateGetInvoiceQueryHandler() queries.GetInvoiceQueryHandler {
	return queries.NewGetInvoiceQueryHandler(c.readDB, c.policy)
}

// CreateHTTPServer builds the API handlers on top of the use cases.
func (c *CompositionRoot) CreateHTTPServer() *httpapi.Server {
	return httpapi.NewServer(
		httpapi.Commands{
			CreateRackRange:    c.CreateCreateRackRangeCommandHandler(),
			UpdateRackCapacity: c.CreateUpdateRackCapacityCommandHandler(),
			ChangeRackStatus:   c.CreateChangeRackStatusCommandHandler(),
			DeleteRack:         c.CreateDeleteRackCommandHandler(),
			IntakeShipment:     c.CreateIntakeShipmentCommandHandler(),
			ReleaseShipment:    c.CreateReleaseShipmentCommandHandler(),
			IssueInvoice:       c.CreateIssueInvoiceCommandHandler(),
			UpdatePricing:      c.CreateUpdatePricingCommandHandler(),
		},
		httpapi.Queries{
			RackStatistics: c.CreateGetRackStatisticsQueryHandler(),
			ListRacks:      c.CreateListRacksQueryHandler(),
			ListSections:   c.CreateListSectionsQueryHandler(),
			GetShipment:    c.CreateGetShipmentQueryHandler(),
			ListShipments:  c.CreateListShipmentsQueryHandler(),
			GetInvoice:     c.CreateGetInvoiceQueryHandler(),
		},
		c.pricing,
		c.clock,
		c.metrics,
		c.logger.With(zap.String("component", "http")),
	)
}

// CreateRouter builds the echo instance for CreateHTTPServer.
func (c *CompositionRoot) CreateRouter() (*echo.Echo, error) {
	return httpapi.NewRouter(c.CreateHTTPServer(), httpapi.RouterOptions{
		Metrics:          c.metrics,
		Logger:           c.logger.With(zap.String("component", "http")),
		ValidateRequests: c.config.ValidateRequests,
		Swagger:          c.config.SwaggerEnabled,
	})
}

// CreateJobManager schedules invoice reconciliation and the occupancy export.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		jobs.NewInvoiceReconciliationJob(
			c.CreateBillPendingShipmentsCommandHandler(),
			c.config.ReconcileSchedule,
			c.config.ReconcileBatch,
			c.config.OpTimeout*time.Duration(c.config.ReconcileBatch),
			c.metrics,
			c.logger,
		),
		jobs.NewOccupancyMetricsJob(
			c.CreateListSectionsQueryHandler(),
			c.config.MetricsSchedule,
			c.config.OpTimeout,
			c.metrics,
			c.logger,
		),
	)
}
