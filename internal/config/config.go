package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Logging    LoggingConfig    `yaml:"logging" envconfig:"LOGGING"`
	Paths      PathsConfig      `yaml:"paths" envconfig:"PATHS"`
	Columns    ColumnsConfig    `yaml:"columns" envconfig:"COLUMNS"`
	Chart      ChartConfig      `yaml:"chart" envconfig:"CHART"`
	Analysis   AnalysisConfig   `yaml:"analysis" envconfig:"ANALYSIS"`
	MarketData MarketDataConfig `yaml:"market_data" envconfig:"MARKET_DATA"`
	Telemetry  TelemetryConfig  `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"eq=json"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	DataDir     string `yaml:"data_dir" envconfig:"DATA_DIR" validate:"required"`
	DownloadDir string `yaml:"download_dir" envconfig:"DOWNLOAD_DIR" validate:"required"`
	FinalDir    string `yaml:"final_dir" envconfig:"FINAL_DIR" validate:"required"`
	LogsDir     string `yaml:"logs_dir" envconfig:"LOGS_DIR" validate:"required"`
}

// ColumnsConfig names the CSV header columns the chart is built from and
// the zero-based positions used when a name is absent.
type ColumnsConfig struct {
	Date            string `yaml:"date" envconfig:"DATE" validate:"required"`
	Volume          string `yaml:"volume" envconfig:"VOLUME" validate:"required"`
	Average         string `yaml:"average" envconfig:"AVERAGE" validate:"required"`
	DateFallback    int    `yaml:"date_fallback" envconfig:"DATE_FALLBACK" validate:"gte=0"`
	VolumeFallback  int    `yaml:"volume_fallback" envconfig:"VOLUME_FALLBACK" validate:"gte=0"`
	AverageFallback int    `yaml:"average_fallback" envconfig:"AVERAGE_FALLBACK" validate:"gte=0"`
}

// ChartConfig contains the chart sheet presentation settings
type ChartConfig struct {
	Width          uint    `yaml:"width" envconfig:"WIDTH" validate:"gt=0"`
	Height         uint    `yaml:"height" envconfig:"HEIGHT" validate:"gt=0"`
	VolumeColor    string  `yaml:"volume_color" envconfig:"VOLUME_COLOR" validate:"hexcolor"`
	AverageColor   string  `yaml:"average_color" envconfig:"AVERAGE_COLOR" validate:"hexcolor"`
	LineWidth      float64 `yaml:"line_width" envconfig:"LINE_WIDTH" validate:"gt=0"`
	DateNumFmt     string  `yaml:"date_num_fmt" envconfig:"DATE_NUM_FMT" validate:"required"`
	TitleSuffix    string  `yaml:"title_suffix" envconfig:"TITLE_SUFFIX" validate:"required"`
	YAxisTitle     string  `yaml:"y_axis_title" envconfig:"Y_AXIS_TITLE"`
	MetadataSheets bool    `yaml:"metadata_sheets" envconfig:"METADATA_SHEETS"`
}

// AnalysisConfig contains rolling average settings
type AnalysisConfig struct {
	LookbackDays    int     `yaml:"lookback_days" envconfig:"LOOKBACK_DAYS" validate:"gt=0"`
	LowVolumeCutoff float64 `yaml:"low_volume_cutoff" envconfig:"LOW_VOLUME_CUTOFF" validate:"gte=0"`
}

// MarketDataConfig contains CoinMarketCap client configuration
type MarketDataConfig struct {
	APIKey        string        `yaml:"api_key" envconfig:"API_KEY"`
	BaseURL       string        `yaml:"base_url" envconfig:"BASE_URL" validate:"url"`
	Timeout       time.Duration `yaml:"timeout" envconfig:"TIMEOUT" validate:"gt=0"`
	RatePerSecond float64       `yaml:"rate_per_second" envconfig:"RATE_PER_SECOND" validate:"gt=0"`
}

// TelemetryConfig contains tracing and metrics configuration
type TelemetryConfig struct {
	TraceExporter  string `yaml:"trace_exporter" envconfig:"TRACE_EXPORTER" validate:"oneof=stdout none"`
	MetricExporter string `yaml:"metric_exporter" envconfig:"METRIC_EXPORTER" validate:"oneof=prometheus none"`
	MetricsFile    string `yaml:"metrics_file" envconfig:"METRICS_FILE"`
}

// Load loads configuration from defaults, the config file and environment
// variables, in that order of precedence (env wins). An empty configFile
// searches the usual locations.
func Load(configFile string) (*Config, error) {
	cfg := Default()

	if configFile == "" {
		configFile = getConfigFilePath()
	}
	if configFile != "" {
		if err := loadFromFile(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file %s: %w", configFile, err)
		}
	}

	// envconfig leaves fields untouched when their variable is unset
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromFile overlays the YAML file onto cfg
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}

	return yaml.Unmarshal(data, cfg)
}

// validate validates the configuration
func (c *Config) validate() error {
	if c.Logging.Output == "file" || c.Logging.Output == "both" {
		if c.Logging.FilePath == "" {
			c.Logging.FilePath = filepath.Join(c.Paths.LogsDir, AppName+".log")
		}
	}

	return validator.New().Struct(c)
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	locations := []string{
		ConfigFile,
		filepath.Join("configs", ConfigFile),
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "console",
		},
		Paths: PathsConfig{
			DataDir:     DefaultDataDir,
			DownloadDir: DefaultDownloadDir,
			FinalDir:    DefaultFinalDir,
			LogsDir:     DefaultLogsDir,
		},
		Columns: ColumnsConfig{
			Date:            DateColumnName,
			Volume:          VolumeColumnName,
			Average:         AverageColumnName,
			DateFallback:    DateColumnFallback,
			VolumeFallback:  VolumeColumnFallback,
			AverageFallback: AverageColumnFallback,
		},
		Chart: ChartConfig{
			Width:          DefaultChartWidth,
			Height:         DefaultChartHeight,
			VolumeColor:    DefaultVolumeColor,
			AverageColor:   DefaultAverageColor,
			LineWidth:      DefaultLineWidth,
			DateNumFmt:     DefaultDateNumFmt,
			TitleSuffix:    DefaultTitleSuffix,
			YAxisTitle:     DefaultYAxisTitle,
			MetadataSheets: true,
		},
		Analysis: AnalysisConfig{
			LookbackDays:    DefaultLookbackDays,
			LowVolumeCutoff: DefaultLowVolumeCutoff,
		},
		MarketData: MarketDataConfig{
			BaseURL:       DefaultMarketDataURL,
			Timeout:       DefaultHTTPTimeout,
			RatePerSecond: DefaultRatePerSecond,
		},
		Telemetry: TelemetryConfig{
			TraceExporter:  "none",
			MetricExporter: "prometheus",
		},
	}
}
