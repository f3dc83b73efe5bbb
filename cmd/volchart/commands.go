package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/urfave/cli/v2"

	"volchart/internal/analysis"
	"volchart/internal/config"
	apperrors "volchart/internal/errors"
	"volchart/internal/files"
	"volchart/internal/marketdata"
	"volchart/internal/report"
	"volchart/internal/validation"
	"volchart/internal/workbook"
)

func (rt *runtime) newConverter() *workbook.Converter {
	return workbook.NewConverter(workbook.Options{
		Columns: rt.cfg.Columns,
		Chart:   rt.cfg.Chart,
		Logger:  rt.logger,
		Console: rt.stdout,
		Metrics: rt.metrics,
		Tracer:  rt.providers.Tracer,
	})
}

// convert turns one CSV file, or every CSV file in a directory, into a
// charted workbook
func (rt *runtime) convert(c *cli.Context) error {
	if c.NArg() > 0 {
		return cli.Exit(fmt.Sprintf("unknown command %q", c.Args().First()), 2)
	}

	ctx := c.Context
	converter := rt.newConverter()
	validator := validation.NewFileValidator(rt.logger)

	if file := c.String("file"); file != "" {
		if err := validator.ValidateCSVFile(file); err != nil {
			return cli.Exit(err.Error(), 1)
		}
		if _, err := converter.Convert(ctx, file); err != nil {
			return cli.Exit(err.Error(), 1)
		}
		return nil
	}

	dir := c.String("dir")
	if dir == "" {
		dir = rt.paths.DataDir
	}
	if err := validator.ValidateInputDirectory(dir); err != nil {
		return cli.Exit(err.Error(), 1)
	}

	batch, err := converter.ConvertDirectory(ctx, dir)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	report.Conversions(rt.stdout, batch)

	if n := len(batch.Failed); n > 0 {
		return cli.Exit(fmt.Sprintf("%d of %d files failed to convert", n, n+len(batch.Converted)), 1)
	}
	return nil
}

// analyze writes rolling average files for one history or a whole directory
func (rt *runtime) analyze(c *cli.Context) error {
	ctx := c.Context

	inDir := c.String("in-dir")
	if inDir == "" {
		inDir = rt.paths.DownloadDir
	}
	outDir := c.String("out-dir")
	if outDir == "" {
		outDir = rt.paths.FinalDir
	}

	calculator := analysis.NewCalculator(analysis.Options{
		Config:  rt.cfg.Analysis,
		Logger:  rt.logger,
		Console: rt.stdout,
		Metrics: rt.metrics,
	})
	validator := validation.NewFileValidator(rt.logger)

	input := c.String("input")
	if token := strings.TrimSpace(c.String("token")); token != "" && input == "" {
		latest, err := latestHistory(inDir, token)
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}
		input = latest
	}

	var summaries []*analysis.Summary
	if input != "" {
		if err := validator.ValidateCSVFile(input); err != nil {
			return cli.Exit(err.Error(), 1)
		}
		if err := validator.ValidateOutputDirectory(outDir); err != nil {
			return cli.Exit(err.Error(), 1)
		}

		summary, err := calculator.Process(ctx, input, analysis.OutputPath(outDir, input))
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}
		fmt.Fprintf(rt.stdout, "Successfully wrote analysis to %s\n", summary.OutputPath)
		summaries = append(summaries, summary)
	} else {
		if err := validator.ValidateInputDirectory(inDir); err != nil {
			return cli.Exit(err.Error(), 1)
		}

		fmt.Fprintf(rt.stdout, "Processing all files in %s...\n", inDir)
		var err error
		summaries, err = calculator.ProcessAll(ctx, inDir, outDir)
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}
	}

	report.Analyses(rt.stdout, summaries)

	if !c.Bool("chart") {
		return nil
	}

	converter := rt.newConverter()
	failed := 0
	for _, s := range summaries {
		if _, err := converter.Convert(ctx, s.OutputPath); err != nil {
			failed++
			fmt.Fprintf(rt.stdout, "Error: %s: %v\n", s.OutputPath, err)
			rt.logger.ErrorContext(ctx, "conversion failed",
				slog.String("file", s.OutputPath),
				slog.String("error", err.Error()))
		}
	}
	if failed > 0 {
		return cli.Exit(fmt.Sprintf("%d of %d files failed to convert", failed, len(summaries)), 1)
	}
	return nil
}

// latestHistory returns the most recently fetched history for token in dir
func latestHistory(dir, token string) (string, error) {
	pattern := token + config.FetchFileInfix + "*.csv"
	found, err := files.NewDiscovery("").FindFilesByPattern(dir, pattern)
	if err != nil {
		return "", apperrors.NewStorageError("error reading input directory", err).
			WithContext("dir", dir)
	}

	latest, ok := files.GetLatestFile(found)
	if !ok {
		return "", apperrors.NewNotFoundError(fmt.Sprintf("fetched history for %s in %s", token, dir))
	}
	return latest.Path, nil
}

// fetch downloads a token's daily volume history into the download dir
func (rt *runtime) fetch(c *cli.Context) error {
	if err := rt.paths.EnsureDirectories(); err != nil {
		return cli.Exit(err.Error(), 1)
	}

	client, err := marketdata.NewClient(rt.cfg.MarketData,
		marketdata.WithLogger(rt.logger),
		marketdata.WithMetrics(rt.metrics))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	fetcher := marketdata.NewFetcher(client, rt.paths.DownloadDir, rt.stdout, rt.logger)
	if _, err := fetcher.Fetch(c.Context, c.String("token"), c.Int("days")); err != nil {
		return cli.Exit(err.Error(), 1)
	}
	return nil
}
