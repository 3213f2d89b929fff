// Package metrics exposes prometheus counters for record writes and timing
// for the aggregation views.
package metrics

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "bodysignal"

// Metrics owns its registry so tests and several servers in one process do
// not collide on the default one.
type Metrics struct {
	registry *prometheus.Registry

	logsCreated         prometheus.Counter
	conditionsCreated   prometheus.Counter
	conditionsArchived  *prometheus.CounterVec
	imports             *prometheus.CounterVec
	resets              prometheus.Counter
	configReloads       prometheus.Counter
	aggregationDuration *prometheus.HistogramVec
}

func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		logsCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "symptom_logs_created_total",
			Help:      "Total number of symptom logs recorded",
		}),
		conditionsCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "conditions_created_total",
			Help:      "Total number of conditions created",
		}),
		conditionsArchived: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "condition_archive_changes_total",
			Help:      "Archive and unarchive operations on conditions",
		}, []string{"action"}),
		imports: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "imports_total",
			Help:      "Backup imports by result",
		}, []string{"result"}),
		resets: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resets_total",
			Help:      "Number of full data resets",
		}),
		configReloads: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "config_reloads_total",
			Help:      "Number of applied config reloads",
		}),
		aggregationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "aggregation_duration_seconds",
			Help:      "Time spent building aggregated views",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		}, []string{"view"}),
	}
}

// LogCreated and the other recorders accept a nil *Metrics and do nothing.
func (m *Metrics) LogCreated() {
	if m == nil {
		return
	}
	m.logsCreated.Inc()
}

func (m *Metrics) ConditionCreated() {
	if m == nil {
		return
	}
	m.conditionsCreated.Inc()
}

func (m *Metrics) ConditionArchived(archived bool) {
	if m == nil {
		return
	}
	action := "unarchive"
	if archived {
		action = "archive"
	}
	m.conditionsArchived.WithLabelValues(action).Inc()
}

func (m *Metrics) ImportFinished(err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.imports.WithLabelValues(result).Inc()
}

func (m *Metrics) Reset() {
	if m == nil {
		return
	}
	m.resets.Inc()
}

func (m *Metrics) ConfigReloaded() {
	if m == nil {
		return
	}
	m.configReloads.Inc()
}

// ObserveAggregation starts a timer for view; call the returned func when
// the view is built.
func (m *Metrics) ObserveAggregation(view string) func() {
	if m == nil {
		return func() {}
	}
	started := time.Now()
	return func() {
		m.aggregationDuration.WithLabelValues(view).Observe(time.Since(started).Seconds())
	}
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the prometheus text format.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}
