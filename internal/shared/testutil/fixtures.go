package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// WriteFile writes lines joined by newlines to dir/name and returns the path
func WriteFile(t *testing.T, dir, name string, lines ...string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	content := strings.Join(lines, "\n")
	if len(lines) > 0 {
		content += "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write fixture %s: %v", path, err)
	}
	return path
}

// SampleTradingCSV is a two-day analysis file in the layout the converter
// charts
var SampleTradingCSV = []string{
	"Date,Volume,30DayAvg",
	"2024-01-01,100,90",
	"2024-01-02,110,95",
}
