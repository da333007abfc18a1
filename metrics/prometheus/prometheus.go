// Package prometheus exports clustering metrics through the Prometheus
// client library.
//
//	reg := prometheus.NewRegistry()
//	collector := kmprom.New("")
//	collector.MustRegister(reg)
//
//	e, _ := kmcluster.New(k, kmcluster.WithMetricsCollector(collector))
package prometheus

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hupe1980/kmcluster"
)

// DefaultNamespace prefixes every metric name.
const DefaultNamespace = "kmcluster"

// Run outcomes used as the "outcome" label of the runs counter.
const (
	OutcomeConverged     = "converged"
	OutcomeNonConvergent = "non_convergent"
	OutcomeError         = "error"
)

var _ kmcluster.MetricsCollector = (*Collector)(nil)

// Collector implements kmcluster.MetricsCollector with Prometheus metrics.
type Collector struct {
	Adds          *prometheus.CounterVec
	Passes        prometheus.Counter
	Reassignments prometheus.Counter
	Runs          *prometheus.CounterVec
	RunPasses     prometheus.Histogram
	RunDuration   prometheus.Histogram
}

// New creates a Collector whose metric names are prefixed with namespace,
// or DefaultNamespace when empty.
func New(namespace string) *Collector {
	if namespace == "" {
		namespace = DefaultNamespace
	}

	return &Collector{
		Adds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "points_added_total",
			Help:      "Points offered to the engine, by result.",
		}, []string{"result"}),
		Passes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "assignment_passes_total",
			Help:      "Assignment passes performed.",
		}),
		Reassignments: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reassignments_total",
			Help:      "Points that changed cluster during assignment passes.",
		}),
		Runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Clustering runs, by outcome.",
		}, []string{"outcome"}),
		RunPasses: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_passes",
			Help:      "Assignment passes per clustering run.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 9),
		}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of clustering runs.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

func (c *Collector) collectors() []prometheus.Collector {
	return []prometheus.Collector{c.Adds, c.Passes, c.Reassignments, c.Runs, c.RunPasses, c.RunDuration}
}

// Register registers all metrics with reg.
func (c *Collector) Register(reg prometheus.Registerer) error {
	for _, col := range c.collectors() {
		if err := reg.Register(col); err != nil {
			return err
		}
	}
	return nil
}

// MustRegister registers all metrics with reg and panics on failure.
func (c *Collector) MustRegister(reg prometheus.Registerer) {
	reg.MustRegister(c.collectors()...)
}

// RecordAdd implements kmcluster.MetricsCollector.
func (c *Collector) RecordAdd(err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	c.Adds.WithLabelValues(result).Inc()
}

// RecordPass implements kmcluster.MetricsCollector.
func (c *Collector) RecordPass(reassigned int) {
	c.Passes.Inc()
	c.Reassignments.Add(float64(reassigned))
}

// RecordCluster implements kmcluster.MetricsCollector.
func (c *Collector) RecordCluster(passes int, duration time.Duration, err error) {
	c.Runs.WithLabelValues(Outcome(err)).Inc()
	c.RunPasses.Observe(float64(passes))
	c.RunDuration.Observe(duration.Seconds())
}

// Outcome classifies the error returned by Engine.Cluster.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeConverged
	case errors.Is(err, kmcluster.ErrNonConvergent):
		return OutcomeNonConvergent
	default:
		return OutcomeError
	}
}

// WriteTextfile gathers reg and writes it to path in the text exposition
// format, for pickup by the node exporter textfile collector.
func WriteTextfile(path string, reg prometheus.Gatherer) error {
	return prometheus.WriteToTextfile(path, reg)
}
