package workbook

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"volchart/internal/config"
	apperrors "volchart/internal/errors"
	"volchart/internal/files"
	"volchart/internal/infrastructure"
)

// Options configures a Converter
type Options struct {
	Columns config.ColumnsConfig
	Chart   config.ChartConfig

	Logger  *slog.Logger
	Console io.Writer
	Metrics *infrastructure.Metrics
	Tracer  trace.Tracer
}

// Result describes one finished conversion
type Result struct {
	CSVPath      string
	WorkbookPath string
	Token        string
	Rows         int
	Columns      Columns
	TextCells    int
	Duration     time.Duration
}

// Converter turns trading CSV files into charted workbooks
type Converter struct {
	columns config.ColumnsConfig
	chart   config.ChartConfig
	logger  *slog.Logger
	console io.Writer
	metrics *infrastructure.Metrics
	tracer  trace.Tracer
}

// NewConverter creates a converter. Nil Logger, Console and Tracer default
// to the global logger, stdout and the global tracer provider.
func NewConverter(opts Options) *Converter {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	console := opts.Console
	if console == nil {
		console = os.Stdout
	}
	tracer := opts.Tracer
	if tracer == nil {
		tracer = otel.Tracer("volchart/workbook")
	}

	return &Converter{
		columns: opts.Columns,
		chart:   opts.Chart,
		logger:  infrastructure.WithComponent(logger, "workbook"),
		console: console,
		metrics: opts.Metrics,
		tracer:  tracer,
	}
}

// Convert writes the workbook for one CSV file next to it
func (c *Converter) Convert(ctx context.Context, csvPath string) (result *Result, err error) {
	ctx, span := c.tracer.Start(ctx, "workbook.Convert",
		trace.WithAttributes(attribute.String("csv.path", csvPath)))
	defer span.End()

	start := time.Now()
	var stats infrastructure.ConversionStats
	defer func() {
		c.metrics.RecordConversion(ctx, stats, time.Since(start), err)
		if err != nil {
			infrastructure.RecordError(ctx, err)
		}
	}()

	fmt.Fprintf(c.console, "Processing %s...\n", csvPath)

	table, err := ReadCSV(csvPath)
	if err != nil {
		return nil, err
	}

	result = &Result{
		CSVPath:      csvPath,
		WorkbookPath: files.WorkbookPath(csvPath),
		Token:        files.TokenName(csvPath),
		Columns:      ResolveColumns(table.Header, c.columns),
	}

	for _, warning := range result.Columns.Warnings {
		fmt.Fprintf(c.console, "Warning: %s in %s\n", warning, csvPath)
		c.logger.WarnContext(ctx, "column fallback",
			slog.String("file", csvPath),
			slog.String("warning", warning))
	}

	written, err := c.writeWorkbook(table, result)
	if err != nil {
		return nil, err
	}

	result.Rows = written.Rows
	result.TextCells = written.TextCells
	result.Duration = time.Since(start)
	stats = infrastructure.ConversionStats{
		Rows:      written.Rows,
		Fallbacks: result.Columns.Fallbacks,
		TextCells: written.TextCells,
	}

	span.SetAttributes(
		attribute.String("workbook.path", result.WorkbookPath),
		attribute.Int("workbook.rows", result.Rows),
	)
	c.logger.InfoContext(ctx, "workbook created",
		slog.String("file", csvPath),
		slog.String("output", result.WorkbookPath),
		slog.String("token", result.Token),
		slog.Int("rows", result.Rows),
		slog.Int("text_cells", result.TextCells),
		slog.Duration("duration", result.Duration))
	fmt.Fprintf(c.console, "Created: %s\n", result.WorkbookPath)

	return result, nil
}

// writeWorkbook assembles Chart, Data, Token Info and Exchange Info in that
// order and saves the workbook to result.WorkbookPath.
func (c *Converter) writeWorkbook(table *Table, result *Result) (dataStats, error) {
	var stats dataStats

	fx := excelize.NewFile()
	defer fx.Close()
	defaultSheet := fx.GetSheetName(0)

	styles, err := createStyles(fx, c.chart.DateNumFmt)
	if err != nil {
		return stats, apperrors.NewStorageError("failed to create workbook styles", err)
	}

	chart, err := BuildChart(result.Token, result.Columns, len(table.Rows), c.chart)
	if err != nil {
		return stats, apperrors.NewStorageError("failed to build chart", err).
			WithContext("path", result.CSVPath)
	}
	if err := fx.AddChartSheet(config.ChartSheetName, chart); err != nil {
		return stats, apperrors.NewStorageError("failed to add chart sheet", err).
			WithContext("path", result.CSVPath)
	}

	if _, err := fx.NewSheet(config.DataSheetName); err != nil {
		return stats, apperrors.NewStorageError("failed to add data sheet", err)
	}
	if stats, err = writeDataSheet(fx, config.DataSheetName, table, result.Columns.Date, styles); err != nil {
		return stats, apperrors.NewStorageError("failed to write data sheet", err).
			WithContext("path", result.CSVPath)
	}

	if c.chart.MetadataSheets {
		if err := addMetadataSheets(fx, styles); err != nil {
			return stats, apperrors.NewStorageError("failed to write metadata sheets", err)
		}
	}

	// the default sheet sits in front of the chart sheet until removed
	if err := fx.DeleteSheet(defaultSheet); err != nil {
		return stats, apperrors.NewStorageError("failed to remove default sheet", err)
	}
	fx.SetActiveSheet(0)

	if dir := filepath.Dir(result.WorkbookPath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return stats, apperrors.NewStorageError("failed to create output directory", err).
				WithContext("dir", dir)
		}
	}
	if err := fx.SaveAs(result.WorkbookPath); err != nil {
		return stats, apperrors.NewStorageError(fmt.Sprintf("failed to save %s", result.WorkbookPath), err).
			WithContext("path", result.WorkbookPath)
	}

	return stats, nil
}
