package workbook

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"volchart/internal/config"
)

const titleFontSize = 14

// ChartTitle returns the chart title for a token
func ChartTitle(token, suffix string) string {
	return token + " " + suffix
}

// BuildChart builds the line chart plotting the volume and average columns
// of the data sheet against the date column. dataRows is the number of rows
// under the header; the series ranges never span fewer than one row.
func BuildChart(token string, cols Columns, dataRows int, style config.ChartConfig) (*excelize.Chart, error) {
	lastRow := dataRows + 1
	if lastRow < 2 {
		lastRow = 2
	}

	categories, err := columnRange(config.DataSheetName, cols.Date, 2, lastRow)
	if err != nil {
		return nil, err
	}

	volume, err := newSeries(cols.Volume, categories, lastRow, style.VolumeColor, style.LineWidth)
	if err != nil {
		return nil, fmt.Errorf("volume series: %w", err)
	}
	average, err := newSeries(cols.Average, categories, lastRow, style.AverageColor, style.LineWidth)
	if err != nil {
		return nil, fmt.Errorf("average series: %w", err)
	}

	chart := &excelize.Chart{
		Type:   excelize.Line,
		Series: []excelize.ChartSeries{volume, average},
		Title: []excelize.RichTextRun{{
			Text: ChartTitle(token, style.TitleSuffix),
			Font: &excelize.Font{Bold: true, Size: titleFontSize},
		}},
		Legend: excelize.ChartLegend{Position: "bottom"},
		XAxis: excelize.ChartAxis{
			NumFmt: excelize.ChartNumFmt{CustomNumFmt: style.DateNumFmt},
		},
		YAxis: excelize.ChartAxis{
			MajorGridLines: true,
		},
		Dimension: excelize.ChartDimension{
			Width:  style.Width,
			Height: style.Height,
		},
		ShowBlanksAs: "gap",
	}
	if style.YAxisTitle != "" {
		chart.YAxis.Title = []excelize.RichTextRun{{Text: style.YAxisTitle}}
	}

	return chart, nil
}

func newSeries(col int, categories string, lastRow int, color string, width float64) (excelize.ChartSeries, error) {
	name, err := cellRef(config.DataSheetName, col, 1)
	if err != nil {
		return excelize.ChartSeries{}, err
	}
	values, err := columnRange(config.DataSheetName, col, 2, lastRow)
	if err != nil {
		return excelize.ChartSeries{}, err
	}

	return excelize.ChartSeries{
		Name:       name,
		Categories: categories,
		Values:     values,
		Line: excelize.ChartLine{
			Type:  excelize.ChartLineSolid,
			Width: width,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Pattern: 1,
			Color:   []string{strings.TrimPrefix(color, "#")},
		},
		Marker: excelize.ChartMarker{Symbol: "none"},
	}, nil
}

// cellRef returns an absolute reference like Data!$B$1 for a zero-based
// column.
func cellRef(sheet string, col, row int) (string, error) {
	cell, err := excelize.CoordinatesToCellName(col+1, row, true)
	if err != nil {
		return "", err
	}
	return quoteSheet(sheet) + "!" + cell, nil
}

// columnRange returns an absolute range like Data!$B$2:$B$10 for a
// zero-based column.
func columnRange(sheet string, col, firstRow, lastRow int) (string, error) {
	first, err := excelize.CoordinatesToCellName(col+1, firstRow, true)
	if err != nil {
		return "", err
	}
	last, err := excelize.CoordinatesToCellName(col+1, lastRow, true)
	if err != nil {
		return "", err
	}
	return quoteSheet(sheet) + "!" + first + ":" + last, nil
}

func quoteSheet(sheet string) string {
	if strings.ContainsAny(sheet, " -'") {
		return "'" + strings.ReplaceAll(sheet, "'", "''") + "'"
	}
	return sheet
}
