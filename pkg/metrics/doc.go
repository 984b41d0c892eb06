// Package metrics provides Prometheus instrumentation for matflow components.
//
// # Overview
//
// The metrics package instruments:
//   - Multiplication runs (outcome, wall-clock time, sum of cell durations)
//   - Cell tasks (count and per-cell duration)
//   - Worker pools (pool size, active workers, queued tasks, completions)
//
// # Quick Start
//
// Build a registry from a Config and hand it to the multiplier:
//
//	reg := prometheus.NewRegistry()
//	cfg := matmul.DefaultConfig()
//	cfg.Metrics = metrics.Config{Enabled: true, Registry: reg}
//
//	m, err := matmul.NewWithConfig(left, right, cfg)
//
// Then expose metrics via HTTP:
//
//	http.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
//	log.Fatal(http.ListenAndServe(":9090", nil))
//
// # Available Metrics
//
// ## Multiplication Metrics
//
//   - matflow_matmul_multiplications_total: Runs by outcome ("done", "canceled", "failed")
//   - matflow_matmul_cell_tasks_total: Output cells computed
//   - matflow_matmul_cell_task_duration_seconds: Time spent on one output cell
//   - matflow_matmul_wall_clock_seconds: Elapsed time of the parallel phase
//   - matflow_matmul_sum_of_task_durations_seconds: Sum of cell durations per run.
//     Cells run concurrently, so this is not elapsed time.
//
// ## Worker Pool Metrics
//
//   - matflow_workerpool_size: Current worker pool size
//   - matflow_workerpool_active_workers: Number of active workers
//   - matflow_workerpool_queued_tasks: Number of queued tasks
//   - matflow_workerpool_tasks_completed_total: Tasks completed by the pool
//
// # Labels
//
//   - name: User-provided name of the multiplier
//   - outcome: Result of a multiplication run
//   - pool_name: User-provided name of the worker pool
package metrics
