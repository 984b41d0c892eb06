package workerpool

// updateMetricsLocked publishes the current pool gauges.
// The caller must hold p.mu so concurrent updates cannot publish stale values.
func (p *Pool) updateMetricsLocked() {
	reg := p.config.Metrics
	if reg == nil {
		return
	}

	reg.WorkerPoolSize.WithLabelValues(p.config.Name).Set(float64(p.config.WorkerCount))
	reg.WorkerPoolActive.WithLabelValues(p.config.Name).Set(float64(p.activeWorkers))
	reg.WorkerPoolQueued.WithLabelValues(p.config.Name).Set(float64(len(p.queue)))
}
