package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dd0wney/corridor-planarity/pkg/config"
	"github.com/dd0wney/corridor-planarity/pkg/dataset"
	"github.com/dd0wney/corridor-planarity/pkg/logging"
	"github.com/dd0wney/corridor-planarity/pkg/metrics"
	"github.com/dd0wney/corridor-planarity/pkg/planarity"
	"github.com/dd0wney/corridor-planarity/pkg/report"
)

// Exit codes
const (
	exitPlanar    = 0
	exitViolation = 1
	exitError     = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes one analysis and returns the process exit code
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("planarity", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		configFile  = fs.String("config", "", "YAML configuration file")
		input       = fs.String("input", "", "Dataset file (.jsonl, .yaml, .json, optionally .sz)")
		format      = fs.String("format", "", "Dataset format: jsonl, yaml or json (default: from file name)")
		sourceKind  = fs.String("source", "", "Dataset source: file, s3 or postgres")
		workers     = fs.Int("workers", 0, "Components analyzed concurrently")
		jsonOut     = fs.Bool("json", false, "Write the report as JSON")
		metricsFile = fs.String("metrics-file", "", "Write Prometheus metrics to this textfile")
		logLevel    = fs.String("log-level", "", "Log level: debug, info, warn or error")
		noColor     = fs.Bool("no-color", false, "Disable colored text output")
	)

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: planarity [flags] [dataset]\n\n")
		fmt.Fprintf(stderr, "Checks settlement corridor networks for planarity violations.\n")
		fmt.Fprintf(stderr, "Exit status: 0 possibly planar, 1 violation found, 2 error.\n\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitPlanar
		}
		return exitError
	}

	cfg := config.Default()
	if *configFile != "" {
		loaded, err := config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(stderr, "❌ %v\n", err)
			return exitError
		}
		cfg = loaded
	}

	// Flags override the file
	if fs.NArg() > 0 && *input == "" {
		*input = fs.Arg(0)
	}
	if *input != "" {
		cfg.Source.Kind = config.SourceFile
		cfg.Source.Path = *input
	}
	if *sourceKind != "" {
		cfg.Source.Kind = *sourceKind
	}
	if *format != "" {
		cfg.Source.Format = *format
	}
	if *workers != 0 {
		cfg.Workers = *workers
	}
	if *jsonOut {
		cfg.Report.Format = config.FormatJSON
	}
	if *metricsFile != "" {
		cfg.Report.MetricsFile = *metricsFile
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *noColor {
		cfg.Report.Color = false
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "❌ %v\n", err)
		return exitError
	}

	logger := logging.NewJSONLogger(stderr, logging.ParseLevel(cfg.LogLevel))
	reg := metrics.NewRegistry()
	sourceName := cfg.Source.SourceName()

	ds, err := load(ctx, cfg.Source, reg, logger)
	if err != nil {
		logger.Error("dataset load failed", logging.Source(sourceName), logging.Error(err))
		return exitError
	}

	analyzer := planarity.NewAnalyzer(
		planarity.WithWorkers(cfg.Workers),
		planarity.WithLogger(logger.With(logging.Source(sourceName))),
		planarity.WithRecorder(reg),
		planarity.WithLargeComponentThreshold(cfg.LargeComponentThreshold),
	)

	result, err := analyzer.AnalyzeContext(ctx, ds.Settlements, ds.Corridors)
	if err != nil {
		logger.Error("analysis aborted", logging.Source(sourceName), logging.Error(err))
		return exitError
	}

	if cfg.Report.Format == config.FormatJSON {
		err = report.WriteJSON(stdout, result, sourceName)
	} else {
		err = report.WriteText(stdout, result, report.TextOptions{
			Color:  cfg.Report.Color,
			Source: sourceName,
		})
	}
	if err != nil {
		logger.Error("failed to write report", logging.Error(err))
		return exitError
	}

	if cfg.Report.MetricsFile != "" {
		if err := reg.WriteTextfile(cfg.Report.MetricsFile); err != nil {
			logger.Error("failed to write metrics", logging.Error(err))
			return exitError
		}
	}

	if result.ExitCode() != 0 {
		return exitViolation
	}
	return exitPlanar
}

func load(ctx context.Context, cfg config.SourceConfig, reg *metrics.Registry, logger logging.Logger) (*dataset.Dataset, error) {
	timer := logging.StartTimer(logger, "dataset loaded", logging.Source(cfg.SourceName()))

	src, err := dataset.NewSource(ctx, cfg)
	if err != nil {
		reg.RecordDatasetLoad(cfg.Kind, err, timer.Elapsed())
		return nil, err
	}
	defer src.Close()

	ds, err := src.Load(ctx)
	reg.RecordDatasetLoad(cfg.Kind, err, timer.Elapsed())
	if err != nil {
		return nil, err
	}

	timer.End(
		logging.NodeCount(ds.NodeCount()),
		logging.EdgeCount(ds.EdgeCount()),
		logging.Int("duplicate_settlements", ds.DuplicateSettlements),
	)
	return ds, nil
}
