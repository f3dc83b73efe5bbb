package analysis

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"volchart/internal/config"
	apperrors "volchart/internal/errors"
	"volchart/internal/exporter"
	"volchart/internal/files"
	"volchart/internal/infrastructure"
	"volchart/pkg/contracts/domain"
)

// Options configures a Calculator
type Options struct {
	Config  config.AnalysisConfig
	Logger  *slog.Logger
	Console io.Writer
	Metrics *infrastructure.Metrics
	// Now defaults to time.Now
	Now func() time.Time
}

// Calculator turns raw volume histories into rolling average files
type Calculator struct {
	cfg      config.AnalysisConfig
	logger   *slog.Logger
	console  io.Writer
	metrics  *infrastructure.Metrics
	now      func() time.Time
	exporter *exporter.AnalysisExporter
}

// Summary is the outcome of one processed history
type Summary struct {
	InputPath  string
	OutputPath string
	Source     domain.DataSource
	Days       int
}

// NewCalculator creates a new calculator
func NewCalculator(opts Options) *Calculator {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	console := opts.Console
	if console == nil {
		console = os.Stdout
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	logger = infrastructure.WithComponent(logger, "analysis")
	return &Calculator{
		cfg:      opts.Config,
		logger:   logger,
		console:  console,
		metrics:  opts.Metrics,
		now:      now,
		exporter: exporter.NewAnalysisExporter("", logger),
	}
}

// Today returns the current UTC day
func (c *Calculator) Today() time.Time {
	return truncateDay(c.now())
}

// Process reads the history at inputPath and writes its rolling averages to
// outputPath, newest day first.
func (c *Calculator) Process(ctx context.Context, inputPath, outputPath string) (summary *Summary, err error) {
	var source domain.DataSource
	defer func() {
		c.metrics.RecordAnalysis(ctx, string(source), err)
	}()

	file, err := os.Open(inputPath)
	if err != nil {
		return nil, apperrors.NewStorageError("error opening input file", err).
			WithContext("path", inputPath)
	}
	defer file.Close()

	raw, source, err := ReadVolumes(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", inputPath, err)
	}
	if len(raw) == 0 {
		return nil, apperrors.NewParsingError("no valid records found in input file", nil).
			WithContext("path", inputPath)
	}

	today := c.Today()
	days := prepare(raw, today, c.cfg.LookbackDays)
	results := Compute(days, c.cfg.LowVolumeCutoff)

	c.logger.DebugContext(ctx, "volume history prepared",
		slog.String("file", inputPath),
		slog.String("source", string(source)),
		slog.Int("raw_records", len(raw)),
		slog.Int("days", len(days)),
		slog.Time("today", today))

	if err := c.exporter.ExportAnalysis(results, outputPath); err != nil {
		return nil, apperrors.NewStorageError("error writing analysis", err).
			WithContext("path", outputPath)
	}

	c.logger.InfoContext(ctx, "analysis written",
		slog.String("file", inputPath),
		slog.String("output", outputPath),
		slog.String("source", string(source)),
		slog.Int("days", len(results)))

	return &Summary{
		InputPath:  inputPath,
		OutputPath: outputPath,
		Source:     source,
		Days:       len(results),
	}, nil
}

// OutputPath returns the analysis file written for an input history
func OutputPath(outDir, inputPath string) string {
	return filepath.Join(outDir, config.GetAnalysisFileName(files.TokenName(inputPath)))
}

// ProcessAll processes every CSV file in inDir into outDir. A file that
// fails is reported and skipped.
func (c *Calculator) ProcessAll(ctx context.Context, inDir, outDir string) ([]*Summary, error) {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, apperrors.NewStorageError("error creating output directory", err).
			WithContext("dir", outDir)
	}

	inputs, err := files.NewDiscovery("").FindCSVFiles(inDir)
	if err != nil {
		return nil, apperrors.NewStorageError("error reading input directory", err).
			WithContext("dir", inDir)
	}

	var summaries []*Summary
	for _, input := range inputs {
		if err := ctx.Err(); err != nil {
			return summaries, err
		}

		fmt.Fprintf(c.console, "Processing %s...\n", input.Name)
		summary, err := c.Process(ctx, input.Path, OutputPath(outDir, input.Path))
		if err != nil {
			fmt.Fprintf(c.console, "Error processing %s: %v\n", input.Name, err)
			c.logger.ErrorContext(ctx, "analysis failed",
				slog.String("file", input.Path),
				slog.String("error", err.Error()))
			continue
		}
		fmt.Fprintf(c.console, "Successfully processed %s\n", input.Name)
		summaries = append(summaries, summary)
	}

	return summaries, nil
}
