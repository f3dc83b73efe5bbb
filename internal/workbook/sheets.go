package workbook

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"volchart/internal/config"
)

// TokenInfoLabels are the row labels of the Token Info sheet, column A
var TokenInfoLabels = []string{
	"Token Name",
	"Symbol",
	"Contract Address",
	"Blockchain",
	"Launch Date",
	"Website",
	"Total Supply",
	"Circulating Supply",
}

// ExchangeInfoHeaders are the column headers of the Exchange Info sheet
var ExchangeInfoHeaders = []string{"Exchange", "Trading Pair"}

// sheetStyles are the style ids registered on one workbook
type sheetStyles struct {
	Date       int
	Label      int
	HeaderCell int
}

func createStyles(fx *excelize.File, dateNumFmt string) (sheetStyles, error) {
	var styles sheetStyles
	var err error

	if styles.Date, err = fx.NewStyle(&excelize.Style{
		CustomNumFmt: &dateNumFmt,
	}); err != nil {
		return styles, err
	}

	if styles.Label, err = fx.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	}); err != nil {
		return styles, err
	}

	if styles.HeaderCell, err = fx.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	}); err != nil {
		return styles, err
	}

	return styles, nil
}

// dataStats counts what writeDataSheet stored
type dataStats struct {
	Rows      int
	TextCells int
}

// writeDataSheet writes the header row as text and every data row as typed
// cells. Empty values leave the cell blank.
func writeDataSheet(fx *excelize.File, sheet string, table *Table, dateCol int, styles sheetStyles) (dataStats, error) {
	var stats dataStats

	for col, value := range table.Header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return stats, err
		}
		if err := fx.SetCellStr(sheet, cell, value); err != nil {
			return stats, err
		}
	}

	for i, row := range table.Rows {
		rowNum := i + 2
		for col, value := range row {
			if value == "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(col+1, rowNum)
			if err != nil {
				return stats, err
			}

			classified := Classify(value, col == dateCol)
			if err := writeCell(fx, sheet, cell, classified, styles); err != nil {
				return stats, fmt.Errorf("cell %s: %w", cell, err)
			}
			if classified.Kind == KindText {
				stats.TextCells++
			}
		}
		stats.Rows++
	}

	return stats, nil
}

func writeCell(fx *excelize.File, sheet, cell string, c Cell, styles sheetStyles) error {
	switch c.Kind {
	case KindDate:
		if err := fx.SetCellValue(sheet, cell, c.Date); err != nil {
			return err
		}
		return fx.SetCellStyle(sheet, cell, cell, styles.Date)
	case KindNumber:
		return fx.SetCellFloat(sheet, cell, c.Number, -1, 64)
	default:
		return fx.SetCellStr(sheet, cell, c.Text)
	}
}

// writeTokenInfoSheet writes the bold labels in column A. Column B is left
// for the user to fill in.
func writeTokenInfoSheet(fx *excelize.File, sheet string, styles sheetStyles) error {
	for i, label := range TokenInfoLabels {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := fx.SetCellStr(sheet, cell, label); err != nil {
			return err
		}
		if err := fx.SetCellStyle(sheet, cell, cell, styles.Label); err != nil {
			return err
		}
	}
	return fx.SetColWidth(sheet, "A", "A", 20)
}

// writeExchangeInfoSheet writes one bordered, bold header row
func writeExchangeInfoSheet(fx *excelize.File, sheet string, styles sheetStyles) error {
	for i, header := range ExchangeInfoHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := fx.SetCellStr(sheet, cell, header); err != nil {
			return err
		}
		if err := fx.SetCellStyle(sheet, cell, cell, styles.HeaderCell); err != nil {
			return err
		}
	}
	return fx.SetColWidth(sheet, "A", "B", 20)
}

// addMetadataSheets appends the Token Info and Exchange Info skeletons
func addMetadataSheets(fx *excelize.File, styles sheetStyles) error {
	if _, err := fx.NewSheet(config.TokenInfoSheetName); err != nil {
		return err
	}
	if err := writeTokenInfoSheet(fx, config.TokenInfoSheetName, styles); err != nil {
		return fmt.Errorf("failed to write %s sheet: %w", config.TokenInfoSheetName, err)
	}

	if _, err := fx.NewSheet(config.ExchangeInfoSheetName); err != nil {
		return err
	}
	if err := writeExchangeInfoSheet(fx, config.ExchangeInfoSheetName, styles); err != nil {
		return fmt.Errorf("failed to write %s sheet: %w", config.ExchangeInfoSheetName, err)
	}
	return nil
}
