package workbook

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.opentelemetry.io/otel/metric/noop"

	"volchart/internal/config"
	apperrors "volchart/internal/errors"
	"volchart/internal/infrastructure"
	"volchart/internal/shared/testutil"
)

// newTestConverter returns a converter writing console lines to a buffer
// and logs to a capture handler
func newTestConverter(t *testing.T) (*Converter, *bytes.Buffer, *testutil.BufferedSlogHandler) {
	t.Helper()

	logger, handler := testutil.NewTestLogger(t)
	metrics, err := infrastructure.CreateMetrics(noop.NewMeterProvider().Meter("test"))
	require.NoError(t, err)

	cfg := config.Default()
	console := &bytes.Buffer{}
	return NewConverter(Options{
		Columns: cfg.Columns,
		Chart:   cfg.Chart,
		Logger:  logger,
		Console: console,
		Metrics: metrics,
	}), console, handler
}

func openWorkbook(t *testing.T, path string) *excelize.File {
	t.Helper()

	fx, err := excelize.OpenFile(path)
	require.NoError(t, err)
	t.Cleanup(func() { fx.Close() })
	return fx
}

func rawValue(t *testing.T, fx *excelize.File, cell string) string {
	t.Helper()

	value, err := fx.GetCellValue(config.DataSheetName, cell, excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	return value
}

func TestConvert_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	csvPath := testutil.WriteFile(t, dir, "BTC_Trading_Average.csv", testutil.SampleTradingCSV...)
	converter, console, handler := newTestConverter(t)

	result, err := converter.Convert(context.Background(), csvPath)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "BTC_Trading_Average.xlsx"), result.WorkbookPath)
	assert.Equal(t, "BTC", result.Token)
	assert.Equal(t, 2, result.Rows)
	assert.Equal(t, 0, result.TextCells)
	assert.Empty(t, result.Columns.Fallbacks)

	fx := openWorkbook(t, result.WorkbookPath)
	assert.Equal(t,
		[]string{"Chart", "Data", "Token Info", "Exchange Info"},
		fx.GetSheetList())
	assert.Equal(t, 0, fx.GetActiveSheetIndex())

	rows, err := fx.GetRows(config.DataSheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Date", "Volume", "30DayAvg"}, rows[0])

	// 2024-01-01 is serial 45292
	serial, err := strconv.ParseFloat(rawValue(t, fx, "A2"), 64)
	require.NoError(t, err)
	day, err := excelize.ExcelDateToTime(serial, false)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), day)
	assert.Equal(t, "45292", rawValue(t, fx, "A2"))

	formatted, err := fx.GetCellValue(config.DataSheetName, "A3")
	require.NoError(t, err)
	assert.Equal(t, "01/02/24", formatted)

	assert.Equal(t, "100", rawValue(t, fx, "B2"))
	assert.Equal(t, "95", rawValue(t, fx, "C3"))

	cellType, err := fx.GetCellType(config.DataSheetName, "B2")
	require.NoError(t, err)
	assert.NotEqual(t, excelize.CellTypeSharedString, cellType)
	assert.NotEqual(t, excelize.CellTypeInlineString, cellType)

	assert.Equal(t,
		"Processing "+csvPath+"...\nCreated: "+result.WorkbookPath+"\n",
		console.String())
	testutil.AssertLogContains(t, handler, slog.LevelInfo, "workbook created")
	testutil.AssertLogAttr(t, handler, "rows", int64(2))
	testutil.AssertNoErrors(t, handler)
}

func TestConvert_MetadataSheets(t *testing.T) {
	dir := t.TempDir()
	csvPath := testutil.WriteFile(t, dir, "ETH.csv", testutil.SampleTradingCSV...)
	converter, _, _ := newTestConverter(t)

	result, err := converter.Convert(context.Background(), csvPath)
	require.NoError(t, err)
	fx := openWorkbook(t, result.WorkbookPath)

	for i, label := range TokenInfoLabels {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		value, err := fx.GetCellValue(config.TokenInfoSheetName, cell)
		require.NoError(t, err)
		assert.Equal(t, label, value)

		blank, err := fx.GetCellValue(config.TokenInfoSheetName, "B"+strconv.Itoa(i+1))
		require.NoError(t, err)
		assert.Empty(t, blank)
	}

	rows, err := fx.GetRows(config.ExchangeInfoSheetName)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Exchange", "Trading Pair"}}, rows)

	styleID, err := fx.GetCellStyle(config.ExchangeInfoSheetName, "A1")
	require.NoError(t, err)
	style, err := fx.GetStyle(styleID)
	require.NoError(t, err)
	require.NotNil(t, style.Font)
	assert.True(t, style.Font.Bold)
	assert.Len(t, style.Border, 4)

	labelStyleID, err := fx.GetCellStyle(config.TokenInfoSheetName, "A1")
	require.NoError(t, err)
	labelStyle, err := fx.GetStyle(labelStyleID)
	require.NoError(t, err)
	require.NotNil(t, labelStyle.Font)
	assert.True(t, labelStyle.Font.Bold)
}

func TestConvert_MetadataSheetsDisabled(t *testing.T) {
	dir := t.TempDir()
	csvPath := testutil.WriteFile(t, dir, "ETH.csv", testutil.SampleTradingCSV...)

	cfg := config.Default()
	cfg.Chart.MetadataSheets = false
	converter := NewConverter(Options{Columns: cfg.Columns, Chart: cfg.Chart, Console: &bytes.Buffer{}})

	result, err := converter.Convert(context.Background(), csvPath)
	require.NoError(t, err)

	fx := openWorkbook(t, result.WorkbookPath)
	assert.Equal(t, []string{"Chart", "Data"}, fx.GetSheetList())
}

func TestConvert_ColumnFallbacks(t *testing.T) {
	dir := t.TempDir()
	csvPath := testutil.WriteFile(t, dir, "SOL_prices.csv",
		"Idx,Day,Vol,Avg",
		"1,2024-01-01,100,90",
		"2,2024-01-02,110,95",
	)
	converter, console, handler := newTestConverter(t)

	result, err := converter.Convert(context.Background(), csvPath)
	require.NoError(t, err)

	assert.Equal(t, []string{"Date", "Volume", "30DayAvg"}, result.Columns.Fallbacks)
	assert.Equal(t, 1, result.Columns.Date)
	assert.Contains(t, console.String(), "Warning: No 'Date' column found, using column 2 in "+csvPath)
	assert.Contains(t, console.String(), "Warning: No '30DayAvg' column found, using column 4")
	assert.Len(t, handler.GetRecordsByLevel(slog.LevelWarn), 3)

	// the fallback date column is typed as dates
	fx := openWorkbook(t, result.WorkbookPath)
	assert.Equal(t, "45292", rawValue(t, fx, "B2"))
	assert.Equal(t, "1", rawValue(t, fx, "A2"))
	assert.Equal(t, "Idx", rawValue(t, fx, "A1"))
}

func TestConvert_TextCells(t *testing.T) {
	dir := t.TempDir()
	csvPath := testutil.WriteFile(t, dir, "DOGE.csv",
		"Date,Volume,30DayAvg,Note",
		"2024-01-01,n/a,90,first",
		"not a date,110,,",
		"2024-01-03,120",
	)
	converter, _, _ := newTestConverter(t)

	result, err := converter.Convert(context.Background(), csvPath)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Rows)
	assert.Equal(t, 3, result.TextCells)

	fx := openWorkbook(t, result.WorkbookPath)
	assert.Equal(t, "n/a", rawValue(t, fx, "B2"))
	assert.Equal(t, "first", rawValue(t, fx, "D2"))
	assert.Equal(t, "not a date", rawValue(t, fx, "A3"))
	assert.Equal(t, "", rawValue(t, fx, "C3"))
	assert.Equal(t, "120", rawValue(t, fx, "B4"))
}

func TestConvert_HeaderOnly(t *testing.T) {
	dir := t.TempDir()
	csvPath := testutil.WriteFile(t, dir, "EMPTY_x.csv", "Date,Volume,30DayAvg")
	converter, _, _ := newTestConverter(t)

	result, err := converter.Convert(context.Background(), csvPath)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Rows)

	fx := openWorkbook(t, result.WorkbookPath)
	rows, err := fx.GetRows(config.DataSheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestConvert_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	csvPath := testutil.WriteFile(t, dir, "BAD.csv")
	converter, console, _ := newTestConverter(t)

	_, err := converter.Convert(context.Background(), csvPath)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeParsing))

	_, statErr := os.Stat(filepath.Join(dir, "BAD.xlsx"))
	assert.True(t, os.IsNotExist(statErr))
	assert.NotContains(t, console.String(), "Created:")
}

func TestConvert_OverwritesExistingWorkbook(t *testing.T) {
	dir := t.TempDir()
	csvPath := testutil.WriteFile(t, dir, "BTC.csv", testutil.SampleTradingCSV...)
	converter, _, _ := newTestConverter(t)

	_, err := converter.Convert(context.Background(), csvPath)
	require.NoError(t, err)

	testutil.WriteFile(t, dir, "BTC.csv", "Date,Volume,30DayAvg", "2024-02-01,1,1")
	result, err := converter.Convert(context.Background(), csvPath)
	require.NoError(t, err)

	fx := openWorkbook(t, result.WorkbookPath)
	rows, err := fx.GetRows(config.DataSheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}
