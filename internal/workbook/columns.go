package workbook

import (
	"fmt"

	"volchart/internal/config"
)

// Columns holds the zero-based header positions the chart is built from
type Columns struct {
	Date    int
	Volume  int
	Average int

	// Fallbacks lists the expected names that were missing from the header
	// and resolved by position instead.
	Fallbacks []string
	Warnings  []string
}

// ResolveColumns finds the date, volume and average columns by exact header
// name. Each column resolves on its own: a missing name falls back to its
// configured position and is reported, never rejected.
func ResolveColumns(header []string, cfg config.ColumnsConfig) Columns {
	var cols Columns
	cols.Date = cols.lookup(header, cfg.Date, cfg.DateFallback)
	cols.Volume = cols.lookup(header, cfg.Volume, cfg.VolumeFallback)
	cols.Average = cols.lookup(header, cfg.Average, cfg.AverageFallback)
	return cols
}

func (c *Columns) lookup(header []string, name string, fallback int) int {
	for i, h := range header {
		if h == name {
			return i
		}
	}
	c.Fallbacks = append(c.Fallbacks, name)
	c.Warnings = append(c.Warnings,
		fmt.Sprintf("No '%s' column found, using column %d", name, fallback+1))
	return fallback
}
