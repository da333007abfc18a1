package kmcluster

import (
	"log/slog"
	"math/rand"
	"time"

	"github.com/hupe1980/kmcluster/distance"
)

// DefaultMaxPasses is the number of assignment passes after which a run that
// is still reassigning points is halted as non-convergent.
const DefaultMaxPasses = 200

// RandSource supplies the uniform draws used by seeding.
// *rand.Rand satisfies it.
type RandSource interface {
	// Float64 returns a pseudo-random number in [0.0,1.0).
	Float64() float64
}

// EmptyClusterPolicy decides where the centroid of a cluster that lost all
// of its members is placed.
type EmptyClusterPolicy int

const (
	// EmptyReseedFarthest moves the centroid onto the point that is farthest
	// from the centroid of the cluster it currently belongs to.
	EmptyReseedFarthest EmptyClusterPolicy = iota

	// EmptyFallbackConstant pins every centroid coordinate to
	// FallbackCoordinate. Only sensible for inputs normalized to [0,1].
	EmptyFallbackConstant
)

// FallbackCoordinate is the coordinate value used by EmptyFallbackConstant.
const FallbackCoordinate = 0.5

func (p EmptyClusterPolicy) String() string {
	switch p {
	case EmptyReseedFarthest:
		return "reseed-farthest"
	case EmptyFallbackConstant:
		return "fallback-constant"
	default:
		return "unknown"
	}
}

type options struct {
	rand             RandSource
	maxPasses        int
	seedMetric       distance.Metric
	emptyPolicy      EmptyClusterPolicy
	metricsCollector MetricsCollector
	logger           *Logger
	logEvery         time.Duration
}

// Option configures Engine construction.
type Option func(*options)

// WithRand configures the random source used for seeding.
// If nil is passed, a time-seeded source is used.
func WithRand(src RandSource) Option {
	return func(o *options) {
		o.rand = src
	}
}

// WithSeed seeds the default random source, making runs reproducible.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.rand = rand.New(rand.NewSource(seed))
	}
}

// WithMaxPasses configures the non-convergence guard. A run that has
// completed more than n passes and still reassigned points during the last
// one is halted and reported with ErrNonConvergent.
//
// Negative values are ignored.
func WithMaxPasses(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.maxPasses = n
		}
	}
}

// WithSeedMetric selects the distance used to weight candidate seeds.
// MetricEuclidean (the default) weights points by their distance to the
// nearest chosen centroid; MetricSquaredEuclidean gives the classic D²
// weighting and pulls seeds harder towards outliers.
func WithSeedMetric(m distance.Metric) Option {
	return func(o *options) {
		o.seedMetric = m
	}
}

// WithEmptyClusterPolicy configures how empty clusters are re-centered.
func WithEmptyClusterPolicy(p EmptyClusterPolicy) Option {
	return func(o *options) {
		o.emptyPolicy = p
	}
}

// WithMetricsCollector configures a metrics collector for monitoring runs.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &kmcluster.BasicMetricsCollector{}
//	e, _ := kmcluster.New(3, kmcluster.WithMetricsCollector(metrics))
//	// ... add points, cluster ...
//	stats := metrics.GetStats()
//	fmt.Printf("Passes: %d, Non-convergent: %d\n", stats.PassCount, stats.NonConvergent)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for runs.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := kmcluster.NewJSONLogger(slog.LevelInfo)
//	e, _ := kmcluster.New(3, kmcluster.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithProgressInterval sets the minimum interval between debug log lines
// emitted for assignment passes. Zero logs every pass.
func WithProgressInterval(d time.Duration) Option {
	return func(o *options) {
		o.logEvery = d
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		maxPasses:        DefaultMaxPasses,
		seedMetric:       distance.MetricEuclidean,
		emptyPolicy:      EmptyReseedFarthest,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
		logEvery:         time.Second,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.rand == nil {
		o.rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	return o
}
