package config

import "time"

// Application constants - hardcoded values for the volchart tool
const (
	// Application Info
	AppName    = "volchart"
	EnvPrefix  = "VOLCHART"
	ConfigFile = "volchart.yaml"

	// Sheet names
	ChartSheetName        = "Chart"
	DataSheetName         = "Data"
	TokenInfoSheetName    = "Token Info"
	ExchangeInfoSheetName = "Exchange Info"

	// Expected CSV header names
	DateColumnName    = "Date"
	VolumeColumnName  = "Volume"
	AverageColumnName = "30DayAvg"

	// Zero-based positional fallbacks for missing header names
	DateColumnFallback    = 1
	VolumeColumnFallback  = 2
	AverageColumnFallback = 3

	// Chart defaults
	DefaultChartWidth   = 900
	DefaultChartHeight  = 500
	DefaultVolumeColor  = "#0F3D5E"
	DefaultAverageColor = "#ED7D31"
	DefaultLineWidth    = 2.0
	DefaultDateNumFmt   = "mm/dd/yy"
	DefaultTitleSuffix  = "Global Trading Volume and Rolling 30-Day Average"
	DefaultYAxisTitle   = "Volume"

	// File Paths (relative to the working directory)
	DefaultDataDir     = "."
	DefaultDownloadDir = "Download"
	DefaultFinalDir    = "Final"
	DefaultLogsDir     = "logs"

	// Analysis
	DefaultLookbackDays    = 365
	DefaultLowVolumeCutoff = 1.0
	AnalysisFileSuffix     = "_Trading_Average.csv"

	// Market data
	DefaultMarketDataURL  = "https://pro-api.coinmarketcap.com/v1"
	DefaultHTTPTimeout    = 30 * time.Second
	DefaultRatePerSecond  = 0.5
	MaxHistoricalDays     = 364
	FetchTimestampLayout  = "2006-01-02_15-04-05"
	FetchFileInfix        = "_volume_"
)
