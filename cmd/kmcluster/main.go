// Package main is the kmcluster CLI entry point.
//
// Usage:
//
//	kmcluster [flags] <input>... <k>
//
// Inputs are local files or directories, file://, s3:// or minio:// URIs
// naming .txt or .csv point files, optionally compressed (.zst, .gz, .lz4).
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hupe1980/kmcluster"
	"github.com/hupe1980/kmcluster/codec"
	"github.com/hupe1980/kmcluster/internal/config"
	"github.com/hupe1980/kmcluster/loader"
	kmprom "github.com/hupe1980/kmcluster/metrics/prometheus"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

type flags struct {
	configPath  string
	seed        int64
	maxPasses   int
	emptyPolicy string
	timeout     time.Duration
	format      string
	centroids   bool
	metricsFile string
	logLevel    string
	logFormat   string
}

func newFlagSet(stderr io.Writer) (*flag.FlagSet, *flags) {
	f := &flags{}
	fs := flag.NewFlagSet("kmcluster", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&f.configPath, "config", "", "path to a YAML config file")
	fs.Int64Var(&f.seed, "seed", 0, "random seed for reproducible seeding")
	fs.IntVar(&f.maxPasses, "max-passes", kmcluster.DefaultMaxPasses, "assignment passes before a run is declared non-convergent")
	fs.StringVar(&f.emptyPolicy, "empty-policy", "", "empty cluster handling: reseed-farthest or fallback-constant")
	fs.DurationVar(&f.timeout, "timeout", 0, "overall time limit (default 5m)")
	fs.StringVar(&f.format, "format", "", "output format: text, json or json-indent")
	fs.BoolVar(&f.centroids, "centroids", false, "print only centroids (text format)")
	fs.StringVar(&f.metricsFile, "metrics-file", "", "write Prometheus metrics to this textfile")
	fs.StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn or error")
	fs.StringVar(&f.logFormat, "log-format", "", "log format: text or json")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: kmcluster [flags] <input>... <k>")
		fs.PrintDefaults()
	}
	return fs, f
}

// applyFlags overrides cfg with every flag given explicitly on the
// command line.
func applyFlags(fs *flag.FlagSet, f *flags, cfg *config.Config) {
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "seed":
			cfg.Seed = &f.seed
		case "max-passes":
			cfg.MaxPasses = &f.maxPasses
		case "empty-policy":
			cfg.EmptyPolicy = f.emptyPolicy
		case "timeout":
			cfg.Timeout = f.timeout
		case "format":
			cfg.Output.Format = f.format
		case "centroids":
			cfg.Output.Centroids = f.centroids
		case "metrics-file":
			cfg.Output.MetricsFile = f.metricsFile
		case "log-level":
			cfg.Log.Level = f.logLevel
		case "log-format":
			cfg.Log.Format = f.logFormat
		}
	})
}

// splitArgs separates the input list from the cluster count. With two or
// more arguments the last one is k; a single argument is an input and k
// must come from the config.
func splitArgs(args []string, cfg *config.Config) ([]string, int, error) {
	switch {
	case len(args) >= 2:
		k, err := strconv.Atoi(args[len(args)-1])
		if err != nil {
			return nil, 0, fmt.Errorf("invalid cluster count %q", args[len(args)-1])
		}
		return args[:len(args)-1], k, nil
	case len(args) == 1 && cfg.K > 0:
		return args, cfg.K, nil
	default:
		return nil, 0, errors.New("expected at least one input and a cluster count")
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs, f := newFlagSet(stderr)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	cfg, err := loadConfig(f.configPath)
	if err != nil {
		fmt.Fprintf(stderr, "kmcluster: %v\n", err)
		return exitError
	}
	applyFlags(fs, f, cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "kmcluster: %v\n", err)
		return exitUsage
	}

	inputs, k, err := splitArgs(fs.Args(), cfg)
	if err != nil {
		fmt.Fprintf(stderr, "kmcluster: %v\n", err)
		fs.Usage()
		return exitUsage
	}

	logger, err := cfg.NewLogger(stderr)
	if err != nil {
		fmt.Fprintf(stderr, "kmcluster: %v\n", err)
		return exitUsage
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	if err := cluster(ctx, cfg, inputs, k, logger, stdout, stderr); err != nil {
		logger.ErrorContext(ctx, "kmcluster failed", "error", err)
		return exitError
	}
	return exitOK
}

func cluster(ctx context.Context, cfg *config.Config, inputs []string, k int, logger *kmcluster.Logger, stdout, stderr io.Writer) error {
	points, err := loadInputs(ctx, cfg, inputs)
	if err != nil {
		return err
	}
	logger.InfoContext(ctx, "points loaded", "inputs", len(inputs), "points", len(points))

	opts, err := cfg.EngineOptions()
	if err != nil {
		return err
	}
	opts = append(opts, kmcluster.WithLogger(logger))

	var reg *prometheus.Registry
	if cfg.Output.MetricsFile != "" {
		reg = prometheus.NewRegistry()
		collector := kmprom.New("")
		collector.MustRegister(reg)
		opts = append(opts, kmcluster.WithMetricsCollector(collector))
	}

	e, err := kmcluster.New(k, opts...)
	if err != nil {
		return err
	}
	if err := e.AddAll(points); err != nil {
		return err
	}

	_, err = e.Cluster(ctx)
	switch {
	case err == nil:
	case errors.Is(err, kmcluster.ErrNonConvergent):
		// provisional clusters are still reported
		fmt.Fprintf(stderr, "warning: %v\n", err)
	default:
		writeMetrics(ctx, cfg, reg, logger)
		return err
	}

	if err := writeReport(stdout, e, cfg.Output); err != nil {
		return err
	}
	writeMetrics(ctx, cfg, reg, logger)
	return nil
}

func loadInputs(ctx context.Context, cfg *config.Config, inputs []string) ([]kmcluster.Point, error) {
	var points []kmcluster.Point
	for _, in := range inputs {
		store, name, err := loader.Source(ctx, in, cfg.SourceConfig())
		if err != nil {
			return nil, err
		}
		names, err := loader.Resolve(ctx, store, name)
		if err != nil {
			return nil, err
		}
		loaded, err := loader.LoadAll(ctx, store, names)
		if err != nil {
			return nil, err
		}
		points = append(points, loaded...)
	}
	return points, nil
}

func writeReport(w io.Writer, e *kmcluster.Engine, out config.OutputConfig) error {
	if out.Format == "text" {
		if out.Centroids {
			return kmcluster.WriteCentroids(w, e)
		}
		return kmcluster.WriteClusterSets(w, e)
	}

	c, ok := codec.ByName(out.Format)
	if !ok {
		return fmt.Errorf("unknown output format %q", out.Format)
	}
	return kmcluster.WriteResult(w, e, c)
}

func writeMetrics(ctx context.Context, cfg *config.Config, reg *prometheus.Registry, logger *kmcluster.Logger) {
	if reg == nil {
		return
	}
	if err := kmprom.WriteTextfile(cfg.Output.MetricsFile, reg); err != nil {
		logger.WarnContext(ctx, "failed to write metrics", "path", cfg.Output.MetricsFile, "error", err)
	}
}
