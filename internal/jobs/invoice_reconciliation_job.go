package jobs

import (
	"context"
	"time"

	"warehouse/internal/core/application/usecases/commands"
	"warehouse/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const (
	reconciliationJobName = "invoice_reconciliation"
	// DefaultReconcileSchedule runs the reconciliation every minute.
	DefaultReconcileSchedule = "0 * * * * *"
	// DefaultReconcileBatch bounds the shipments billed per run.
	DefaultReconcileBatch = 100
)

// PendingBiller bills released shipments that have no invoice yet.
// Implemented by commands.BillPendingShipmentsCommandHandler.
type PendingBiller interface {
	Handle(ctx context.Context, cmd commands.BillPendingShipmentsCommand) (commands.BillPendingShipmentsResult, error)
}

// InvoiceReconciliationJob bills shipments whose invoice could not be issued
// at release time.
type InvoiceReconciliationJob struct {
	biller   PendingBiller
	batch    int
	schedule string
	timeout  time.Duration
	metrics  *metrics.Metrics
	cron     *cron.Cron
	logger   *zap.Logger
}

// NewInvoiceReconciliationJob creates the job. An empty schedule uses
// DefaultReconcileSchedule, a non-positive batch DefaultReconcileBatch.
func NewInvoiceReconciliationJob(
	biller PendingBiller,
	schedule string,
	batch int,
	timeout time.Duration,
	m *metrics.Metrics,
	logger *zap.Logger,
) *InvoiceReconciliationJob {
	if schedule == "" {
		schedule = DefaultReconcileSchedule
	}
	if batch <= 0 {
		batch = DefaultReconcileBatch
	}

	return &InvoiceReconciliationJob{
		biller:   biller,
		batch:    batch,
		schedule: schedule,
		timeout:  timeout,
		metrics:  m,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With(zap.String("component", reconciliationJobName)),
	}
}

// Start schedules the job.
func (j *InvoiceReconciliationJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx, cancel := runContext(j.timeout)
		defer cancel()

		_ = j.RunOnce(ctx)
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Invoice reconciliation job started", zap.String("schedule", j.schedule))
	return nil
}

// Stop stops scheduling and waits for a running pass to finish.
func (j *InvoiceReconciliationJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Invoice reconciliation job stopped")
}

// RunOnce performs one reconciliation pass. Every shipment that still could
// not be billed is logged; the pass itself fails only when the pending list
// could not be read.
func (j *InvoiceReconciliationJob) RunOnce(ctx context.Context) error {
	cmd, err := commands.NewBillPendingShipmentsCommand(j.batch)
	if err != nil {
		return err
	}

	result, err := j.biller.Handle(ctx, cmd)
	j.metrics.ObserveJob(reconciliationJobName, err, time.Now())
	if err != nil {
		j.logger.Error("Invoice reconciliation failed", zap.Error(err))
		return err
	}

	for _, issued := range result.Issued {
		j.metrics.InvoiceIssued(metrics.SourceReconcile)
		j.logger.Info("Invoice issued for released shipment",
			zap.String("invoice", issued.Number().String()),
			zap.Stringer("shipment", issued.ShipmentID()),
		)
	}
	for _, failure := range result.Failures {
		j.metrics.InvoiceFailed(metrics.SourceReconcile)
		j.logger.Error("Shipment could not be billed",
			zap.Stringer("shipment", failure.ShipmentID),
			zap.Error(failure.Err),
		)
	}
	for _, failure := range result.ArchiveFailures {
		j.metrics.ArchiveFailed()
		j.logger.Warn("Invoice document was not archived",
			zap.Stringer("shipment", failure.ShipmentID),
			zap.Error(failure.Err),
		)
	}

	return nil
}

func runContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), timeout)
}
