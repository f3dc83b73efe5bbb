package exporter

import (
	"fmt"
	"log/slog"
	"sort"

	"volchart/pkg/contracts/domain"
)

// AnalysisExporter writes rolling average results
type AnalysisExporter struct {
	csvWriter *CSVWriter
}

// NewAnalysisExporter creates a new analysis exporter
func NewAnalysisExporter(baseDir string, logger *slog.Logger) *AnalysisExporter {
	return &AnalysisExporter{csvWriter: NewCSVWriter(baseDir, logger)}
}

// ExportAnalysis writes records newest first under domain.AnalysisHeader
func (a *AnalysisExporter) ExportAnalysis(records []domain.AnalysisRecord, outputPath string) error {
	sorted := make([]domain.AnalysisRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})

	rows := make([][]string, 0, len(sorted))
	for _, r := range sorted {
		rows = append(rows, analysisToCSVRow(r))
	}

	if err := a.csvWriter.WriteSimpleCSV(outputPath, domain.AnalysisHeader, rows); err != nil {
		return fmt.Errorf("failed to write analysis %s: %w", outputPath, err)
	}
	return nil
}

func analysisToCSVRow(r domain.AnalysisRecord) []string {
	return []string{
		formatDate(r.Date),
		formatFloat(r.Volume),
		formatFloat(r.Avg30),
		formatFloat(r.Avg90),
		formatFloat(r.Avg180),
		formatInt(r.LowVolumeDays30),
		formatInt(r.LowVolumeDays90),
		formatInt(r.LowVolumeDays180),
		formatFloat(r.High30),
		formatFloat(r.High90),
		formatFloat(r.High180),
		formatFloat(r.ChangeFromHigh30),
		formatFloat(r.ChangeFromHigh90),
		formatFloat(r.ChangeFromHigh180),
	}
}

// VolumeHeader is the layout of a fetched volume history file
var VolumeHeader = []string{"Date", "Volume"}

// VolumeExporter writes raw daily volume histories
type VolumeExporter struct {
	csvWriter *CSVWriter
}

// NewVolumeExporter creates a new volume history exporter
func NewVolumeExporter(baseDir string, logger *slog.Logger) *VolumeExporter {
	return &VolumeExporter{csvWriter: NewCSVWriter(baseDir, logger)}
}

// ExportVolumeHistory writes records oldest first
func (v *VolumeExporter) ExportVolumeHistory(records []domain.VolumeRecord, outputPath string) error {
	sorted := make([]domain.VolumeRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	rows := make([][]string, 0, len(sorted))
	for _, r := range sorted {
		rows = append(rows, []string{formatDate(r.Date), formatFloat(r.Volume)})
	}

	if err := v.csvWriter.WriteSimpleCSV(outputPath, VolumeHeader, rows); err != nil {
		return fmt.Errorf("failed to write volume history %s: %w", outputPath, err)
	}
	return nil
}
