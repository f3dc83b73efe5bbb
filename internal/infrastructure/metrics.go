package infrastructure

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds the application's instruments
type Metrics struct {
	ConversionsTotal     metric.Int64Counter
	ConversionDuration   metric.Float64Histogram
	RowsWrittenTotal     metric.Int64Counter
	ColumnFallbacksTotal metric.Int64Counter
	TextCellsTotal       metric.Int64Counter
	AnalysesTotal        metric.Int64Counter
	FetchRequestsTotal   metric.Int64Counter
	FetchDuration        metric.Float64Histogram
}

// CreateMetrics creates the application metrics on meter
func CreateMetrics(meter metric.Meter) (*Metrics, error) {
	conversionsTotal, err := meter.Int64Counter(
		"conversions_total",
		metric.WithDescription("Total number of CSV to workbook conversions"),
	)
	if err != nil {
		return nil, err
	}

	conversionDuration, err := meter.Float64Histogram(
		"conversion_duration_seconds",
		metric.WithDescription("Workbook conversion duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	rowsWrittenTotal, err := meter.Int64Counter(
		"rows_written_total",
		metric.WithDescription("Total number of data rows written to workbooks"),
	)
	if err != nil {
		return nil, err
	}

	columnFallbacksTotal, err := meter.Int64Counter(
		"column_fallbacks_total",
		metric.WithDescription("Total number of expected columns resolved by position"),
	)
	if err != nil {
		return nil, err
	}

	textCellsTotal, err := meter.Int64Counter(
		"text_cells_total",
		metric.WithDescription("Total number of cells stored as text"),
	)
	if err != nil {
		return nil, err
	}

	analysesTotal, err := meter.Int64Counter(
		"analyses_total",
		metric.WithDescription("Total number of rolling average analyses"),
	)
	if err != nil {
		return nil, err
	}

	fetchRequestsTotal, err := meter.Int64Counter(
		"fetch_requests_total",
		metric.WithDescription("Total number of market data requests"),
	)
	if err != nil {
		return nil, err
	}

	fetchDuration, err := meter.Float64Histogram(
		"fetch_request_duration_seconds",
		metric.WithDescription("Market data request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		ConversionsTotal:     conversionsTotal,
		ConversionDuration:   conversionDuration,
		RowsWrittenTotal:     rowsWrittenTotal,
		ColumnFallbacksTotal: columnFallbacksTotal,
		TextCellsTotal:       textCellsTotal,
		AnalysesTotal:        analysesTotal,
		FetchRequestsTotal:   fetchRequestsTotal,
		FetchDuration:        fetchDuration,
	}, nil
}

// ConversionStats is what a single conversion reports to metrics
type ConversionStats struct {
	Rows      int
	Fallbacks []string
	TextCells int
}

// RecordConversion records the outcome of one CSV conversion
func (m *Metrics) RecordConversion(ctx context.Context, stats ConversionStats, duration time.Duration, err error) {
	if m == nil {
		return
	}

	status := statusAttr(err)
	m.ConversionsTotal.Add(ctx, 1, metric.WithAttributes(status))
	m.ConversionDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(status))

	if err != nil {
		return
	}

	m.RowsWrittenTotal.Add(ctx, int64(stats.Rows))
	m.TextCellsTotal.Add(ctx, int64(stats.TextCells))
	for _, column := range stats.Fallbacks {
		m.ColumnFallbacksTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("column", column)))
	}
}

// RecordAnalysis records the outcome of one rolling average analysis
func (m *Metrics) RecordAnalysis(ctx context.Context, source string, err error) {
	if m == nil {
		return
	}
	m.AnalysesTotal.Add(ctx, 1, metric.WithAttributes(statusAttr(err), attribute.String("source", source)))
}

// RecordFetch records the outcome of one market data request
func (m *Metrics) RecordFetch(ctx context.Context, duration time.Duration, err error) {
	if m == nil {
		return
	}
	status := statusAttr(err)
	m.FetchRequestsTotal.Add(ctx, 1, metric.WithAttributes(status))
	m.FetchDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(status))
}

func statusAttr(err error) attribute.KeyValue {
	if err != nil {
		return attribute.String("status", "failure")
	}
	return attribute.String("status", "success")
}
