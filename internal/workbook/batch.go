package workbook

import (
	"context"
	"fmt"
	"log/slog"

	"volchart/internal/files"
)

// Failure is a CSV file that could not be converted
type Failure struct {
	CSVPath string
	Err     error
}

// BatchResult is the outcome of converting a directory
type BatchResult struct {
	Dir       string
	Converted []*Result
	Failed    []Failure
}

// Found reports whether the directory held any CSV files
func (b *BatchResult) Found() bool {
	return len(b.Converted)+len(b.Failed) > 0
}

// ConvertDirectory converts every CSV file directly inside dir, in name
// order. A file that fails is recorded and the rest are still converted.
func (c *Converter) ConvertDirectory(ctx context.Context, dir string) (*BatchResult, error) {
	csvFiles, err := files.NewDiscovery("").FindCSVFiles(dir)
	if err != nil {
		return nil, err
	}

	batch := &BatchResult{Dir: dir}
	if len(csvFiles) == 0 {
		fmt.Fprintf(c.console, "No CSV files found in %s.\n", dir)
		c.logger.InfoContext(ctx, "no csv files found", slog.String("dir", dir))
		return batch, nil
	}

	for _, file := range csvFiles {
		if err := ctx.Err(); err != nil {
			return batch, err
		}

		result, err := c.Convert(ctx, file.Path)
		if err != nil {
			fmt.Fprintf(c.console, "Error: %s: %v\n", file.Path, err)
			c.logger.ErrorContext(ctx, "conversion failed",
				slog.String("file", file.Path),
				slog.String("error", err.Error()))
			batch.Failed = append(batch.Failed, Failure{CSVPath: file.Path, Err: err})
			continue
		}
		batch.Converted = append(batch.Converted, result)
	}

	c.logger.InfoContext(ctx, "directory converted",
		slog.String("dir", dir),
		slog.Int("converted", len(batch.Converted)),
		slog.Int("failed", len(batch.Failed)))
	return batch, nil
}
