package jobs

import (
	"context"
	"time"

	"warehouse/internal/core/application/usecases/queries"
	"warehouse/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const (
	occupancyJobName = "occupancy_metrics"
	// DefaultMetricsSchedule refreshes the gauges every 15 seconds.
	DefaultMetricsSchedule = "*/15 * * * * *"
)

// SectionLister returns per-section usage.
// Implemented by queries.ListSectionsQueryHandler.
type SectionLister interface {
	Handle(ctx context.Context, q queries.ListSectionsQuery) ([]queries.SectionView, error)
}

// OccupancyMetricsJob exports section occupancy to the Prometheus gauges.
type OccupancyMetricsJob struct {
	sections SectionLister
	schedule string
	timeout  time.Duration
	metrics  *metrics.Metrics
	cron     *cron.Cron
	logger   *zap.Logger
}

func NewOccupancyMetricsJob(
	sections SectionLister,
	schedule string,
	timeout time.Duration,
	m *metrics.Metrics,
	logger *zap.Logger,
) *OccupancyMetricsJob {
	if schedule == "" {
		schedule = DefaultMetricsSchedule
	}

	return &OccupancyMetricsJob{
		sections: sections,
		schedule: schedule,
		timeout:  timeout,
		metrics:  m,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With(zap.String("component", occupancyJobName)),
	}
}

func (j *OccupancyMetricsJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx, cancel := runContext(j.timeout)
		defer cancel()

		_ = j.RunOnce(ctx)
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Occupancy metrics job started", zap.String("schedule", j.schedule))
	return nil
}

func (j *OccupancyMetricsJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Occupancy metrics job stopped")
}

// RunOnce reads the section usage and replaces the gauges.
func (j *OccupancyMetricsJob) RunOnce(ctx context.Context) error {
	views, err := j.sections.Handle(ctx, queries.NewListSectionsQuery())
	j.metrics.ObserveJob(occupancyJobName, err, time.Now())
	if err != nil {
		j.logger.Error("Reading section occupancy failed", zap.Error(err))
		return err
	}

	usage := make([]metrics.SectionUsage, 0, len(views))
	for _, v := range views {
		usage = append(usage, metrics.SectionUsage{
			Name:        v.Name,
			Racks:       v.RackCount,
			Capacity:    v.TotalCapacity,
			Occupancy:   v.TotalOccupancy,
			Utilization: v.UtilizationRate,
		})
	}
	j.metrics.SetSections(usage)
	return nil
}
