// Package config provides centralized configuration management for volchart.
// It handles loading configuration from multiple sources, validation, and
// resolution of the directories the tool reads from and writes to.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. YAML configuration file (volchart.yaml or configs/volchart.yaml)
//	3. Default values (lowest priority)
//
// A .env file, when present, is loaded into the process environment by the
// CLI before Load runs.
//
// # Environment Variables
//
// All environment variables follow the pattern VOLCHART_<SECTION>_<FIELD>:
//
//	VOLCHART_LOGGING_LEVEL=debug
//	VOLCHART_CHART_VOLUME_COLOR=#0F3D5E
//	VOLCHART_COLUMNS_AVERAGE=30DayAvg
//	VOLCHART_MARKET_DATA_API_KEY=...
//	VOLCHART_TELEMETRY_METRICS_FILE=/var/lib/node_exporter/volchart.prom
//
// # Validation
//
// Configuration is validated at load time with struct tags: colors must be
// hex, sizes positive, column fallbacks non-negative and log levels known.
//
// # Usage
//
//	cfg, err := config.Load("")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	paths, err := config.ResolvePaths(cfg.Paths, "")
package config
