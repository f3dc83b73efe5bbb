package report

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"volchart/internal/analysis"
	"volchart/internal/workbook"
	"volchart/pkg/contracts/domain"
)

func TestConversions(t *testing.T) {
	batch := &workbook.BatchResult{
		Dir: "data",
		Converted: []*workbook.Result{
			{CSVPath: "data/BTC_Trading_Average.csv", Token: "BTC", Rows: 366},
			{CSVPath: "data/SOL.csv", Token: "SOL", Rows: 2, TextCells: 1,
				Columns: workbook.Columns{Fallbacks: []string{"Date", "30DayAvg"}}},
		},
		Failed: []workbook.Failure{{CSVPath: "data/bad.csv", Err: errors.New("empty")}},
	}

	var buf bytes.Buffer
	Conversions(&buf, batch)
	out := buf.String()

	assert.Contains(t, out, "WORKBOOKS")
	assert.Contains(t, out, "BTC_Trading_Average.csv")
	assert.Contains(t, out, "366")
	assert.Contains(t, out, "Date, 30DayAvg")
	assert.Contains(t, out, "bad.csv")
	assert.Contains(t, out, "failed")
}

func TestConversions_Empty(t *testing.T) {
	var buf bytes.Buffer
	Conversions(&buf, &workbook.BatchResult{Dir: "x"})
	Conversions(&buf, nil)
	assert.Empty(t, buf.String())
}

func TestAnalyses(t *testing.T) {
	var buf bytes.Buffer
	Analyses(&buf, []*analysis.Summary{{
		InputPath:  "Download/ETH_usd-max.csv",
		OutputPath: "Final/ETH_Trading_Average.csv",
		Source:     domain.SourceCoinGecko,
		Days:       366,
	}})

	out := buf.String()
	assert.Contains(t, out, "ANALYSIS")
	assert.Contains(t, out, "ETH_usd-max.csv")
	assert.Contains(t, out, "coingecko")
	assert.Contains(t, out, "ETH_Trading_Average.csv")

	buf.Reset()
	Analyses(&buf, nil)
	assert.Empty(t, buf.String())
}
