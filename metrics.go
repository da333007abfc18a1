package kmcluster

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting clustering metrics.
// Implement this interface to integrate with monitoring systems like Prometheus
// (see the metrics/prometheus package).
type MetricsCollector interface {
	// RecordAdd is called after each Add. err is nil if the point was accepted.
	RecordAdd(err error)

	// RecordPass is called after each assignment pass with the number of
	// points that changed cluster during that pass.
	RecordPass(reassigned int)

	// RecordCluster is called after each Cluster run.
	// passes is the number of assignment passes, duration the total time
	// taken, err nil on convergence.
	RecordCluster(passes int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordAdd(error)                         {}
func (NoopMetricsCollector) RecordPass(int)                          {}
func (NoopMetricsCollector) RecordCluster(int, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	AddCount          atomic.Int64
	AddErrors         atomic.Int64
	PassCount         atomic.Int64
	Reassignments     atomic.Int64
	ClusterCount      atomic.Int64
	ClusterErrors     atomic.Int64
	NonConvergent     atomic.Int64
	ClusterTotalNanos atomic.Int64
}

// RecordAdd implements MetricsCollector.
func (b *BasicMetricsCollector) RecordAdd(err error) {
	b.AddCount.Add(1)
	if err != nil {
		b.AddErrors.Add(1)
	}
}

// RecordPass implements MetricsCollector.
func (b *BasicMetricsCollector) RecordPass(reassigned int) {
	b.PassCount.Add(1)
	b.Reassignments.Add(int64(reassigned))
}

// RecordCluster implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCluster(passes int, duration time.Duration, err error) {
	b.ClusterCount.Add(1)
	b.ClusterTotalNanos.Add(duration.Nanoseconds())
	switch {
	case err == nil:
	case isNonConvergent(err):
		b.NonConvergent.Add(1)
	default:
		b.ClusterErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	stats := BasicMetricsStats{
		AddCount:      b.AddCount.Load(),
		AddErrors:     b.AddErrors.Load(),
		PassCount:     b.PassCount.Load(),
		Reassignments: b.Reassignments.Load(),
		ClusterCount:  b.ClusterCount.Load(),
		ClusterErrors: b.ClusterErrors.Load(),
		NonConvergent: b.NonConvergent.Load(),
	}
	if stats.ClusterCount > 0 {
		stats.ClusterAvgNanos = b.ClusterTotalNanos.Load() / stats.ClusterCount
	}
	return stats
}

// BasicMetricsStats is a snapshot of metrics from BasicMetricsCollector.
type BasicMetricsStats struct {
	AddCount        int64
	AddErrors       int64
	PassCount       int64
	Reassignments   int64
	ClusterCount    int64
	ClusterErrors   int64
	NonConvergent   int64
	ClusterAvgNanos int64
}
