package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"volchart/internal/config"
	"volchart/internal/infrastructure"
	"volchart/pkg/contracts"
)

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code
func run(args []string, stdout, stderr io.Writer) int {
	app := newApp(stdout, stderr)
	if err := app.Run(args); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		var coder cli.ExitCoder
		if errors.As(err, &coder) {
			return coder.ExitCode()
		}
		return 1
	}
	return 0
}

// runtime carries the state shared by every command once Before has run
type runtime struct {
	stdout io.Writer
	stderr io.Writer

	cfg       *config.Config
	paths     *config.Paths
	logger    *slog.Logger
	providers *infrastructure.OTelProviders
	metrics   *infrastructure.Metrics
}

func newApp(stdout, stderr io.Writer) *cli.App {
	rt := &runtime{stdout: stdout, stderr: stderr}

	return &cli.App{
		Name:      config.AppName,
		Usage:     "convert trading volume CSV files into Excel workbooks with a volume chart",
		Version:   contracts.Version,
		Writer:    stdout,
		ErrWriter: stderr,
		// errors are reported by run so tests never hit os.Exit
		ExitErrHandler: func(*cli.Context, error) {},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to a YAML config file",
			},
			&cli.StringFlag{
				Name:  "env",
				Usage: "path to a .env file loaded before the configuration",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "override the configured log level (debug, info, warn, error)",
			},
			&cli.StringFlag{
				Name:    "dir",
				Aliases: []string{"d"},
				Usage:   "directory scanned for CSV files (defaults to the configured data dir)",
			},
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "convert a single CSV file",
			},
		},
		Before: rt.setup,
		After:  rt.teardown,
		Action: rt.convert,
		Commands: []*cli.Command{
			{
				Name:  "analyze",
				Usage: "compute rolling volume averages from downloaded histories",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "input",
						Aliases: []string{"i"},
						Usage:   "process a single history file",
					},
					&cli.StringFlag{
						Name:    "token",
						Aliases: []string{"t"},
						Usage:   "process the latest fetched history for a token",
					},
					&cli.StringFlag{
						Name:  "in-dir",
						Usage: "directory of raw histories (defaults to the configured download dir)",
					},
					&cli.StringFlag{
						Name:  "out-dir",
						Usage: "directory for analysis files (defaults to the configured final dir)",
					},
					&cli.BoolFlag{
						Name:  "chart",
						Usage: "also convert every written analysis file into a workbook",
					},
				},
				Action: rt.analyze,
			},
			{
				Name:  "fetch",
				Usage: "download a daily volume history from CoinMarketCap",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "token",
						Aliases:  []string{"t"},
						Usage:    "token symbol, e.g. BTC",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "days",
						Usage: "number of days to fetch (at most 364)",
						Value: 7,
					},
				},
				Action: rt.fetch,
			},
		},
	}
}

// setup loads the environment and configuration and starts logging and
// telemetry
func (rt *runtime) setup(c *cli.Context) error {
	if err := loadEnv(c.String("env")); err != nil {
		return cli.Exit(err.Error(), 1)
	}

	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	if level := c.String("log-level"); level != "" {
		cfg.Logging.Level = level
	}
	rt.cfg = cfg

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return cli.Exit(fmt.Sprintf("failed to initialize logger: %v", err), 1)
	}
	rt.logger = logger

	paths, err := config.ResolvePaths(cfg.Paths, "")
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	paths.LogPathResolution(logger)
	rt.paths = paths

	providers, err := infrastructure.InitializeOTel(infrastructure.NewOTelConfig(cfg.Telemetry), logger)
	if err != nil {
		return cli.Exit(fmt.Sprintf("failed to initialize telemetry: %v", err), 1)
	}
	rt.providers = providers

	metrics, err := infrastructure.CreateMetrics(providers.Meter)
	if err != nil {
		return cli.Exit(fmt.Sprintf("failed to create metrics: %v", err), 1)
	}
	rt.metrics = metrics

	ctx := c.Context
	if ctx == nil {
		ctx = context.Background()
	}
	c.Context = infrastructure.EnsureRunID(ctx)

	logger.DebugContext(c.Context, "volchart starting",
		slog.String("version", contracts.Version),
		slog.String("run_id", infrastructure.GetRunID(c.Context)))

	return nil
}

// teardown flushes metrics and closes telemetry and the log file
func (rt *runtime) teardown(c *cli.Context) error {
	if rt.cfg == nil {
		return nil
	}
	logger := rt.logger
	if logger == nil {
		logger = slog.Default()
	}

	if err := infrastructure.WriteMetricsFile(rt.cfg.Telemetry.MetricsFile); err != nil {
		logger.Warn("failed to write metrics file", slog.String("error", err.Error()))
	}

	if rt.providers != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rt.providers.Shutdown(ctx); err != nil {
			logger.Warn("telemetry shutdown failed", slog.String("error", err.Error()))
		}
	}

	return infrastructure.CloseLogFile()
}

// loadEnv loads an explicit .env file, or ./.env when present
func loadEnv(path string) error {
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("failed to load env file %s: %w", path, err)
		}
		return nil
	}

	if _, err := os.Stat(".env"); err == nil {
		return godotenv.Load(".env")
	}
	return nil
}
