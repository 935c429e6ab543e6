// Package prommetrics exports worker pool activity as Prometheus metrics.
package prommetrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	workerpool "github.com/azargarov/threadpool"
)

var _ workerpool.MetricsPolicy = (*Metrics)(nil)

// Metrics implements workerpool.MetricsPolicy with Prometheus collectors.
type Metrics struct {
	submitted prometheus.Counter
	executed  prometheus.Counter
	failed    prometheus.Counter
	abandoned prometheus.Counter
	queued    prometheus.Gauge
}

// New creates the pool collectors and registers them with reg, or with
// prometheus.DefaultRegisterer when reg is nil. Registering two pools with
// the same namespace on one registry panics; wrap reg with
// prometheus.WrapRegistererWith to tell pools apart.
func New(reg prometheus.Registerer, namespace string) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)

	return &Metrics{
		submitted: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "workerpool",
			Name:      "tasks_submitted_total",
			Help:      "Total number of tasks accepted by the pool",
		}),
		executed: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "workerpool",
			Name:      "tasks_executed_total",
			Help:      "Total number of tasks that finished without error",
		}),
		failed: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "workerpool",
			Name:      "tasks_failed_total",
			Help:      "Total number of tasks that returned an error or panicked",
		}),
		abandoned: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "workerpool",
			Name:      "tasks_abandoned_total",
			Help:      "Total number of queued tasks dropped by a non-draining shutdown",
		}),
		queued: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "workerpool",
			Name:      "tasks_queued",
			Help:      "Current number of pending tasks",
		}),
	}
}

func (m *Metrics) IncQueued() {
	m.submitted.Inc()
	m.queued.Inc()
}

func (m *Metrics) BatchDecQueued(n int64) {
	m.queued.Sub(float64(n))
}

func (m *Metrics) IncExecuted() { m.executed.Inc() }

func (m *Metrics) IncFailed() { m.failed.Inc() }

func (m *Metrics) AddAbandoned(n int64) { m.abandoned.Add(float64(n)) }
