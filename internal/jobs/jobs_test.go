package jobs_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"warehouse/internal/core/application/usecases/commands"
	"warehouse/internal/core/application/usecases/queries"
	"warehouse/internal/core/domain/model/billing"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/rack"
	"warehouse/internal/core/domain/model/shipment"
	"warehouse/internal/jobs"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type MockBiller struct{ mock.Mock }

func (m *MockBiller) Handle(ctx context.Context, cmd commands.BillPendingShipmentsCommand) (commands.BillPendingShipmentsResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.BillPendingShipmentsResult), args.Error(1)
}

type MockSectionLister struct{ mock.Mock }

func (m *MockSectionLister) Handle(ctx context.Context, q queries.ListSectionsQuery) ([]queries.SectionView, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]queries.SectionView), args.Error(1)
}

func issuedInvoice(t *testing.T) *billing.Invoice {
	t.Helper()
	now := time.Date(2025, 9, 28, 10, 0, 0, 0, time.UTC)
	rackID, err := rack.NewID("A", "", 1)
	require.NoError(t, err)
	barcode, err := shipment.NewBarcode(now, 1)
	require.NoError(t, err)
	s, err := shipment.NewShipment(kernel.NewUUID(), barcode, shipment.Details{
		Shipper:    "Acme",
		Consignee:  "Globex",
		Weight:     decimal.NewFromInt(1),
		PieceCount: 1,
	}, rackID, now)
	require.NoError(t, err)
	require.NoError(t, s.Release(now))

	pricing, err := billing.NewPricing(billing.DefaultPricingSettings(), now)
	require.NoError(t, err)
	number, err := billing.NewInvoiceNumber(now, 1)
	require.NoError(t, err)
	inv, err := billing.NewInvoice(kernel.NewUUID(), number, s, billing.NewCharges(0, s.Weight(), pricing), now)
	require.NoError(t, err)
	return inv
}

func TestInvoiceReconciliationJob_RunOnce_LogsEveryFailure(t *testing.T) {
	ctx := t.Context()
	core, logs := observer.New(zapcore.InfoLevel)
	m := metrics.New()

	failed := kernel.NewUUID()
	biller := new(MockBiller)
	biller.On("Handle", ctx, mock.AnythingOfType("commands.BillPendingShipmentsCommand")).Return(commands.BillPendingShipmentsResult{
		Issued:          []*billing.Invoice{issuedInvoice(t)},
		Failures:        []commands.BillingFailure{{ShipmentID: failed, Err: errs.NewBackendUnavailableError("get pricing", nil)}},
		ArchiveFailures: []commands.BillingFailure{{ShipmentID: kernel.NewUUID(), Err: errors.New("s3 down")}},
	}, nil).Once()

	job := jobs.NewInvoiceReconciliationJob(biller, "", 0, time.Second, m, zap.New(core))
	require.NoError(t, job.RunOnce(ctx))

	assert.Equal(t, 1, logs.FilterMessage("Invoice issued for released shipment").Len())
	notBilled := logs.FilterMessage("Shipment could not be billed").All()
	require.Len(t, notBilled, 1)
	assert.Equal(t, failed.String(), notBilled[0].ContextMap()["shipment"])
	assert.Equal(t, 1, logs.FilterMessage("Invoice document was not archived").Len())

	expected := `
# HELP warehouse_invoices_issued_total Issued invoices by the operation that issued them.
# TYPE warehouse_invoices_issued_total counter
warehouse_invoices_issued_total{source="reconcile"} 1
`
	require.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "warehouse_invoices_issued_total"))
	biller.AssertExpectations(t)
}

func TestInvoiceReconciliationJob_RunOnce_ListFailure(t *testing.T) {
	ctx := t.Context()
	core, logs := observer.New(zapcore.InfoLevel)

	biller := new(MockBiller)
	listErr := errs.NewBackendUnavailableError("list pending shipments", nil)
	biller.On("Handle", ctx, mock.Anything).Return(commands.BillPendingShipmentsResult{}, listErr).Once()

	job := jobs.NewInvoiceReconciliationJob(biller, "", 10, 0, metrics.New(), zap.New(core))
	err := job.RunOnce(ctx)

	require.ErrorIs(t, err, errs.ErrBackendUnavailable)
	assert.Equal(t, 1, logs.FilterMessage("Invoice reconciliation failed").Len())
}

func TestOccupancyMetricsJob_RunOnce(t *testing.T) {
	ctx := t.Context()
	m := metrics.New()

	lister := new(MockSectionLister)
	lister.On("Handle", ctx, queries.NewListSectionsQuery()).Return([]queries.SectionView{
		{Name: "A", RackCount: 2, TotalCapacity: 8, TotalOccupancy: 2, UtilizationRate: 0.25},
	}, nil).Once()

	job := jobs.NewOccupancyMetricsJob(lister, "", time.Second, m, zap.NewNop())
	require.NoError(t, job.RunOnce(ctx))

	expected := `
# HELP warehouse_section_occupancy Stored shipments per section.
# TYPE warehouse_section_occupancy gauge
warehouse_section_occupancy{section="A"} 2
`
	require.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "warehouse_section_occupancy"))
}

func TestOccupancyMetricsJob_RunOnce_Failure(t *testing.T) {
	ctx := t.Context()
	lister := new(MockSectionLister)
	lister.On("Handle", ctx, mock.Anything).Return(nil, errors.New("connection refused")).Once()

	job := jobs.NewOccupancyMetricsJob(lister, "", 0, metrics.New(), zap.NewNop())

	assert.Error(t, job.RunOnce(ctx))
}

type recordingJob struct {
	name    string
	failing bool
	events  *[]string
}

func (j recordingJob) Start() error {
	if j.failing {
		return errors.New("bad schedule")
	}
	*j.events = append(*j.events, "start "+j.name)
	return nil
}

func (j recordingJob) Stop() {
	*j.events = append(*j.events, "stop "+j.name)
}

func TestJobManager_StartAllStopsStartedJobsOnFailure(t *testing.T) {
	var events []string
	manager := jobs.NewJobManager(
		recordingJob{name: "a", events: &events},
		recordingJob{name: "b", events: &events},
		recordingJob{name: "c", failing: true, events: &events},
	)

	require.Error(t, manager.StartAll())
	assert.Equal(t, []string{"start a", "start b", "stop a", "stop b"}, events)
}

func TestJobManager_StopAllReverseOrder(t *testing.T) {
	var events []string
	manager := jobs.NewJobManager(
		recordingJob{name: "a", events: &events},
		recordingJob{name: "b", events: &events},
	)

	require.NoError(t, manager.StartAll())
	manager.StopAll()
	assert.Equal(t, []string{"start a", "start b", "stop b", "stop a"}, events)
}

func TestInvoiceReconciliationJob_StartRejectsBadSchedule(t *testing.T) {
	job := jobs.NewInvoiceReconciliationJob(new(MockBiller), "not a schedule", 0, 0, metrics.New(), zap.NewNop())

	assert.Error(t, job.Start())
}
