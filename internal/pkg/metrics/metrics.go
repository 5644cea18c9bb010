// Package metrics exposes the warehouse Prometheus metrics.
//
// All collectors live on a private registry so that tests can create as many
// Metrics as they like without duplicate registration panics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "warehouse"

// Invoice sources.
const (
	SourceRelease   = "release"
	SourceManual    = "manual"
	SourceReconcile = "reconcile"
)

// Operation results.
const (
	ResultOK              = "ok"
	ResultNoCapacity      = "no_capacity"
	ResultAlreadyReleased = "already_released"
	ResultRejected        = "rejected"
	ResultError           = "error"
)

// Metrics holds every collector of the service.
type Metrics struct {
	registry *prometheus.Registry

	intakes        *prometheus.CounterVec
	releases       *prometheus.CounterVec
	invoices       *prometheus.CounterVec
	invoiceErrors  *prometheus.CounterVec
	archiveErrors  prometheus.Counter
	sectionRacks   *prometheus.GaugeVec
	sectionCap     *prometheus.GaugeVec
	sectionOcc     *prometheus.GaugeVec
	sectionUtil    *prometheus.GaugeVec
	httpRequests   *prometheus.CounterVec
	httpDurations  *prometheus.HistogramVec
	jobRuns        *prometheus.CounterVec
	jobLastSuccess *prometheus.GaugeVec
}

// New registers the collectors, plus the Go runtime and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		intakes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "shipment_intakes_total",
			Help:      "Shipment intakes by result.",
		}, []string{"result"}),
		releases: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "shipment_releases_total",
			Help:      "Shipment releases by result.",
		}, []string{"result"}),
		invoices: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invoices_issued_total",
			Help:      "Issued invoices by the operation that issued them.",
		}, []string{"source"}),
		invoiceErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invoice_failures_total",
			Help:      "Billing attempts that did not produce an invoice.",
		}, []string{"source"}),
		archiveErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invoice_archive_failures_total",
			Help:      "Issued invoices whose document could not be archived.",
		}),
		sectionRacks: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "section_racks",
			Help:      "Racks per section.",
		}, []string{"section"}),
		sectionCap: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "section_capacity",
			Help:      "Total rack capacity per section.",
		}, []string{"section"}),
		sectionOcc: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "section_occupancy",
			Help:      "Stored shipments per section.",
		}, []string{"section"}),
		sectionUtil: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "section_utilization_ratio",
			Help:      "Occupancy divided by capacity per section.",
		}, []string{"section"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "code"}),
		httpDurations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		jobRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "job",
			Name:      "runs_total",
			Help:      "Background job runs by job and result.",
		}, []string{"job", "result"}),
		jobLastSuccess: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "job",
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful run.",
		}, []string{"job"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.intakes,
		m.releases,
		m.invoices,
		m.invoiceErrors,
		m.archiveErrors,
		m.sectionRacks,
		m.sectionCap,
		m.sectionOcc,
		m.sectionUtil,
		m.httpRequests,
		m.httpDurations,
		m.jobRuns,
		m.jobLastSuccess,
	)

	return m
}

// Registry exposes the registry for tests and custom exporters.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ObserveIntake(result string) {
	m.intakes.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveRelease(result string) {
	m.releases.WithLabelValues(result).Inc()
}

func (m *Metrics) InvoiceIssued(source string) {
	m.invoices.WithLabelValues(source).Inc()
}

func (m *Metrics) InvoiceFailed(source string) {
	m.invoiceErrors.WithLabelValues(source).Inc()
}

func (m *Metrics) ArchiveFailed() {
	m.archiveErrors.Inc()
}

// SectionUsage is one row of the occupancy export.
type SectionUsage struct {
	Name        string
	Racks       int
	Capacity    int
	Occupancy   int
	Utilization float64
}

// SetSections replaces the per-section gauges. Sections missing from usage
// are dropped, so deleted sections stop being reported.
func (m *Metrics) SetSections(usage []SectionUsage) {
	m.sectionRacks.Reset()
	m.sectionCap.Reset()
	m.sectionOcc.Reset()
	m.sectionUtil.Reset()

	for _, u := range usage {
		m.sectionRacks.WithLabelValues(u.Name).Set(float64(u.Racks))
		m.sectionCap.WithLabelValues(u.Name).Set(float64(u.Capacity))
		m.sectionOcc.WithLabelValues(u.Name).Set(float64(u.Occupancy))
		m.sectionUtil.WithLabelValues(u.Name).Set(u.Utilization)
	}
}

func (m *Metrics) ObserveHTTP(method, route string, code int, elapsed time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	m.httpDurations.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveJob counts a job run; a nil err also records the success time.
func (m *Metrics) ObserveJob(job string, err error, at time.Time) {
	if err != nil {
		m.jobRuns.WithLabelValues(job, "error").Inc()
		return
	}
	m.jobRuns.WithLabelValues(job, "ok").Inc()
	m.jobLastSuccess.WithLabelValues(job).Set(float64(at.Unix()))
}
