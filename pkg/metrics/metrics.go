// Package metrics provides Prometheus instrumentation for matflow components.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DefaultNamespace is the metric namespace used when none is configured.
const DefaultNamespace = "matflow"

// Registry holds all metric instances for matflow components.
type Registry struct {
	// Multiplication Metrics
	Multiplications    *prometheus.CounterVec
	CellTasks          *prometheus.CounterVec
	CellTaskDuration   *prometheus.HistogramVec
	WallClockDuration  *prometheus.HistogramVec
	SumOfTasksDuration *prometheus.HistogramVec

	// Worker Pool Metrics
	WorkerPoolSize      *prometheus.GaugeVec
	WorkerPoolActive    *prometheus.GaugeVec
	WorkerPoolQueued    *prometheus.GaugeVec
	WorkerPoolCompleted *prometheus.CounterVec
}

// NewRegistry creates a new metrics registry with the given Prometheus registerer.
func NewRegistry(reg prometheus.Registerer) *Registry {
	return NewRegistryWithNamespace(reg, DefaultNamespace)
}

// NewRegistryWithNamespace creates a registry whose metrics live under namespace.
// Registering two registries with the same namespace on one registerer panics.
func NewRegistryWithNamespace(reg prometheus.Registerer, namespace string) *Registry {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	factory := promauto.With(reg)

	return &Registry{
		// Multiplication Metrics
		Multiplications: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "matmul",
				Name:      "multiplications_total",
				Help:      "Total number of multiplication runs by outcome",
			},
			[]string{"name", "outcome"},
		),

		CellTasks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "matmul",
				Name:      "cell_tasks_total",
				Help:      "Total number of output cells computed",
			},
			[]string{"name"},
		),

		CellTaskDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "matmul",
				Name:      "cell_task_duration_seconds",
				Help:      "Time spent computing a single output cell",
				Buckets:   prometheus.ExponentialBuckets(1e-7, 4, 12),
			},
			[]string{"name"},
		),

		WallClockDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "matmul",
				Name:      "wall_clock_seconds",
				Help:      "Elapsed real time of the parallel phase of a run",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"name"},
		),

		SumOfTasksDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "matmul",
				Name:      "sum_of_task_durations_seconds",
				Help:      "Sum of per-cell durations of a run; exceeds wall time when cells overlap",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"name"},
		),

		WorkerPoolSize: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "workerpool",
				Name:      "size",
				Help:      "Current worker pool size",
			},
			[]string{"pool_name"},
		),

		WorkerPoolActive: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "workerpool",
				Name:      "active_workers",
				Help:      "Number of active workers",
			},
			[]string{"pool_name"},
		),

		WorkerPoolQueued: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "workerpool",
				Name:      "queued_tasks",
				Help:      "Number of queued tasks",
			},
			[]string{"pool_name"},
		),

		WorkerPoolCompleted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "workerpool",
				Name:      "tasks_completed_total",
				Help:      "Total number of tasks completed by the pool, including failures",
			},
			[]string{"pool_name"},
		),
	}
}
