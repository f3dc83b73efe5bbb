package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// Paths contains the resolved application paths.
// Relative entries in PathsConfig are resolved against a base directory,
// normally the working directory the tool was started in.
type Paths struct {
	BaseDir     string
	DataDir     string
	DownloadDir string
	FinalDir    string
	LogsDir     string
}

// ResolvePaths resolves the configured directories against baseDir.
// An empty baseDir means the current working directory.
func ResolvePaths(cfg PathsConfig, baseDir string) (*Paths, error) {
	if baseDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		baseDir = wd
	}

	abs, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base directory %s: %w", baseDir, err)
	}

	resolve := func(p string) string {
		if filepath.IsAbs(p) {
			return filepath.Clean(p)
		}
		return filepath.Join(abs, p)
	}

	return &Paths{
		BaseDir:     abs,
		DataDir:     resolve(cfg.DataDir),
		DownloadDir: resolve(cfg.DownloadDir),
		FinalDir:    resolve(cfg.FinalDir),
		LogsDir:     resolve(cfg.LogsDir),
	}, nil
}

// EnsureDirectories creates the output directories if they don't exist.
// The data directory is input only and is never created.
func (p *Paths) EnsureDirectories() error {
	dirs := []string{
		p.DownloadDir,
		p.FinalDir,
		p.LogsDir,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// GetFetchFileName returns the file name used for a fetched token history,
// e.g. BTC_volume_2024-01-02_15-04-05.csv
func GetFetchFileName(token string, at time.Time) string {
	return token + FetchFileInfix + at.Format(FetchTimestampLayout) + ".csv"
}

// GetAnalysisFileName returns the analysis output file name for a token
func GetAnalysisFileName(token string) string {
	return token + AnalysisFileSuffix
}

// LogPathResolution logs all resolved paths for debugging
func (p *Paths) LogPathResolution(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug("Resolved paths",
		slog.String("base_dir", p.BaseDir),
		slog.String("data_dir", p.DataDir),
		slog.String("download_dir", p.DownloadDir),
		slog.String("final_dir", p.FinalDir),
		slog.String("logs_dir", p.LogsDir))
}
