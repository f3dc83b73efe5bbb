package domain

import (
	"time"
)

// DataSource identifies the layout of a raw volume history file
type DataSource string

const (
	SourceCoinMarketCap DataSource = "coinmarketcap"
	SourceCoinGecko     DataSource = "coingecko"
	// SourceSimple is the Date,Volume layout written by the fetch command
	SourceSimple DataSource = "simple"
)

// VolumeRecord is one day of traded volume for a token
type VolumeRecord struct {
	Date   time.Time `json:"date"`
	Volume float64   `json:"volume" validate:"min=0"`
}

// AnalysisRecord holds the rolling metrics computed for one day.
// Metrics for windows that are not yet full are zero.
type AnalysisRecord struct {
	Date              time.Time `json:"date"`
	Volume            float64   `json:"volume"`
	Avg30             float64   `json:"avg_30"`
	Avg90             float64   `json:"avg_90"`
	Avg180            float64   `json:"avg_180"`
	LowVolumeDays30   int       `json:"low_volume_days_30"`
	LowVolumeDays90   int       `json:"low_volume_days_90"`
	LowVolumeDays180  int       `json:"low_volume_days_180"`
	High30            float64   `json:"high_30"`
	High90            float64   `json:"high_90"`
	High180           float64   `json:"high_180"`
	ChangeFromHigh30  float64   `json:"change_from_high_30"`
	ChangeFromHigh90  float64   `json:"change_from_high_90"`
	ChangeFromHigh180 float64   `json:"change_from_high_180"`
}

// AnalysisHeader is the column layout of an analysis CSV. The first three
// columns are the ones the workbook chart is built from.
var AnalysisHeader = []string{
	"Date", "Volume", "30DayAvg", "90DayAvg", "180DayAvg",
	"LowVolumeDays30", "LowVolumeDays90", "LowVolumeDays180",
	"High30", "High90", "High180",
	"ChangeFromHighAvg30", "ChangeFromHighAvg90", "ChangeFromHighAvg180",
}
