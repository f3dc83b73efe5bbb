package analysis

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"volchart/internal/config"
	apperrors "volchart/internal/errors"
	"volchart/internal/shared/testutil"
	"volchart/pkg/contracts/domain"
)

var fixedNow = time.Date(2024, 3, 31, 18, 45, 0, 0, time.UTC)

func newTestCalculator(t *testing.T) (*Calculator, *bytes.Buffer) {
	t.Helper()

	logger, _ := testutil.NewTestLogger(t)
	console := &bytes.Buffer{}
	return NewCalculator(Options{
		Config:  config.Default().Analysis,
		Logger:  logger,
		Console: console,
		Now:     func() time.Time { return fixedNow },
	}), console
}

func readRows(t *testing.T, path string) [][]string {
	t.Helper()

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestCalculator_Today(t *testing.T) {
	calc, _ := newTestCalculator(t)
	assert.Equal(t, day(2024, 3, 31), calc.Today())
}

func TestCalculator_Process(t *testing.T) {
	dir := t.TempDir()
	input := testutil.WriteFile(t, dir, "BTC_volume_2024-03-31_10-00-00.csv",
		"Date,Volume",
		"2024-03-28,100.00",
		"2024-03-30,200.00",
		"2024-04-02,999.00",
	)
	output := filepath.Join(dir, "Final", "BTC_Trading_Average.csv")
	calc, _ := newTestCalculator(t)

	summary, err := calc.Process(context.Background(), input, output)
	require.NoError(t, err)
	assert.Equal(t, domain.SourceSimple, summary.Source)
	assert.Equal(t, 4, summary.Days)

	rows := readRows(t, output)
	require.Len(t, rows, 5)
	assert.Equal(t, domain.AnalysisHeader, rows[0])

	// newest first, gaps and today zero filled, future dropped
	assert.Equal(t, []string{"2024-03-31", "2024-03-30", "2024-03-29", "2024-03-28"},
		[]string{rows[1][0], rows[2][0], rows[3][0], rows[4][0]})
	assert.Equal(t, "0.00", rows[3][1])
	assert.Equal(t, "200.00", rows[2][1])

	// 30 day average over 100, 0, 200, 0
	assert.Equal(t, "75.00", rows[1][2])
	assert.Equal(t, "100.00", rows[1][8])
	assert.Equal(t, "-25.00", rows[1][11])
	assert.Equal(t, "2", rows[1][5])
	assert.Equal(t, "0.00", rows[1][3])
}

func TestCalculator_Process_Errors(t *testing.T) {
	dir := t.TempDir()
	calc, _ := newTestCalculator(t)

	_, err := calc.Process(context.Background(), filepath.Join(dir, "missing.csv"), filepath.Join(dir, "out.csv"))
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeStorage))

	headerOnly := testutil.WriteFile(t, dir, "EMPTY_volume.csv", "Date,Volume")
	_, err = calc.Process(context.Background(), headerOnly, filepath.Join(dir, "out.csv"))
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeParsing))
	assert.Contains(t, err.Error(), "no valid records")

	_, statErr := os.Stat(filepath.Join(dir, "out.csv"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestCalculator_Process_LongHistory(t *testing.T) {
	dir := t.TempDir()
	lines := []string{"snapped_at,price,market_cap,total_volume"}
	start := day(2023, 1, 1)
	for d := start; !d.After(day(2024, 3, 31)); d = d.AddDate(0, 0, 1) {
		lines = append(lines, fmt.Sprintf("%s,1,1,10", d.Format("2006-01-02 15:04:05 UTC")))
	}
	input := testutil.WriteFile(t, dir, "ETH_usd-max.csv", lines...)
	calc, _ := newTestCalculator(t)

	summary, err := calc.Process(context.Background(), input, filepath.Join(dir, "ETH_Trading_Average.csv"))
	require.NoError(t, err)
	assert.Equal(t, domain.SourceCoinGecko, summary.Source)
	assert.Equal(t, 366, summary.Days)

	rows := readRows(t, summary.OutputPath)
	newest := rows[1]
	assert.Equal(t, "2024-03-31", newest[0])
	for _, col := range []int{2, 3, 4, 8, 9, 10} {
		assert.Equal(t, "10.00", newest[col], domain.AnalysisHeader[col])
	}
	oldest := rows[len(rows)-1]
	assert.Equal(t, "2023-04-01", oldest[0])
	assert.Equal(t, "0.00", oldest[3])
}

func TestCalculator_ProcessAll(t *testing.T) {
	inDir := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "Final")
	testutil.WriteFile(t, inDir, "BTC_volume_2024-03-31.csv", "Date,Volume", "2024-03-31,1.00")
	testutil.WriteFile(t, inDir, "BAD_volume.csv", "Date,Volume", "yesterday,1")
	testutil.WriteFile(t, inDir, "notes.txt", "skip")
	calc, console := newTestCalculator(t)

	summaries, err := calc.ProcessAll(context.Background(), inDir, outDir)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, filepath.Join(outDir, "BTC_Trading_Average.csv"), summaries[0].OutputPath)

	assert.Contains(t, console.String(), "Processing BAD_volume.csv...")
	assert.Contains(t, console.String(), "Error processing BAD_volume.csv")
	assert.Contains(t, console.String(), "Successfully processed BTC_volume_2024-03-31.csv")

	_, err = os.Stat(filepath.Join(outDir, "BAD_Trading_Average.csv"))
	assert.True(t, os.IsNotExist(err))
}

func TestCalculator_ProcessAll_MissingInput(t *testing.T) {
	calc, _ := newTestCalculator(t)

	_, err := calc.ProcessAll(context.Background(), filepath.Join(t.TempDir(), "nope"), t.TempDir())
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeStorage))
}

func TestOutputPath(t *testing.T) {
	assert.Equal(t,
		filepath.Join("Final", "CELO_Trading_Average.csv"),
		OutputPath("Final", filepath.Join("Download", "CELO_volume_2024-03-31_10-00-00.csv")))
}
