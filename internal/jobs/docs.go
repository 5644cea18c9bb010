// Package jobs provides scheduled background tasks for the warehouse.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
// Schedules use the six-field form with seconds.
//
// # Available Jobs
//
// 1. InvoiceReconciliationJob - bills released shipments whose invoice failed at release time
// 2. OccupancyMetricsJob - exports per-section rack occupancy to Prometheus gauges
//
// # Usage
//
//	jobManager := jobs.NewJobManager(
//		jobs.NewInvoiceReconciliationJob(biller, cfg.ReconcileSchedule, 0, cfg.OpTimeout, m, logger),
//		jobs.NewOccupancyMetricsJob(sections, cfg.MetricsSchedule, cfg.OpTimeout, m, logger),
//	)
//
//	if err := jobManager.StartAll(); err != nil {
//		logger.Fatal("Failed to start jobs", zap.Error(err))
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Every failed run is logged and counted in warehouse_job_runs_total.
// A shipment that cannot be billed does not stop the others; it is picked up
// again by the next run.
package jobs
