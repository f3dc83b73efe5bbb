package marketdata

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"volchart/internal/config"
	apperrors "volchart/internal/errors"
	"volchart/internal/exporter"
	"volchart/pkg/contracts/domain"
)

// VolumeSource is anything that serves daily volume histories
type VolumeSource interface {
	HistoricalVolume(ctx context.Context, symbol string, days int, end time.Time) ([]domain.VolumeRecord, error)
}

// Fetcher downloads a volume history and stores it as Date,Volume CSV
type Fetcher struct {
	source      VolumeSource
	downloadDir string
	exporter    *exporter.VolumeExporter
	console     io.Writer
	logger      *slog.Logger
	now         func() time.Time
}

// FetchResult describes one stored history
type FetchResult struct {
	Token   string
	Days    int
	Records int
	Path    string
}

// NewFetcher creates a fetcher writing into downloadDir
func NewFetcher(source VolumeSource, downloadDir string, console io.Writer, logger *slog.Logger) *Fetcher {
	if console == nil {
		console = os.Stdout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{
		source:      source,
		downloadDir: downloadDir,
		exporter:    exporter.NewVolumeExporter(downloadDir, logger),
		console:     console,
		logger:      logger,
		now:         time.Now,
	}
}

// Fetch downloads days of history for token up to yesterday, the last full
// day, and writes <TOKEN>_volume_<timestamp>.csv into the download directory.
func (f *Fetcher) Fetch(ctx context.Context, token string, days int) (*FetchResult, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, apperrors.NewAppValidationError("token symbol is required")
	}

	days = ClampDays(days)
	now := f.now()
	end := now.AddDate(0, 0, -1)

	fmt.Fprintf(f.console, "Fetching %d days of historical volume data for %s (up to %s)...\n",
		days, token, end.Format(exporter.DateLayout))

	records, err := f.source.HistoricalVolume(ctx, token, days, end)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		f.logger.WarnContext(ctx, "no volume records returned", slog.String("token", token))
	}

	name := config.GetFetchFileName(token, now)
	if err := f.exporter.ExportVolumeHistory(records, name); err != nil {
		return nil, apperrors.NewStorageError("error writing data", err).
			WithContext("dir", f.downloadDir)
	}

	result := &FetchResult{
		Token:   token,
		Days:    days,
		Records: len(records),
		Path:    filepath.Join(f.downloadDir, name),
	}
	fmt.Fprintf(f.console, "Successfully wrote data to %s\n", result.Path)
	return result, nil
}
