// Package exporter provides CSV export functionality for volchart.
//
// This package contains three components:
//
// CSVWriter: Core CSV writing with header, append and optional UTF-8 BOM
// support. Relative paths resolve against the writer's base directory.
//
// AnalysisExporter: Writes rolling average results newest first, with
// every number formatted to two decimals. Its output is what the workbook
// converter charts.
//
// VolumeExporter: Writes fetched daily volume histories as Date,Volume.
//
// Example usage:
//
//	exp := exporter.NewAnalysisExporter(paths.FinalDir, logger)
//	err := exp.ExportAnalysis(records, "BTC_Trading_Average.csv")
package exporter
