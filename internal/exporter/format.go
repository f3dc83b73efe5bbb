package exporter

import (
	"strconv"
	"time"
)

// DateLayout is the calendar-day format used in every CSV volchart writes
const DateLayout = "2006-01-02"

// formatFloat formats a float64 value for CSV output with exactly 2 decimal places
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}

// formatInt formats an int value for CSV output
func formatInt(i int) string {
	return strconv.Itoa(i)
}

// formatDate formats a day for CSV output
func formatDate(t time.Time) string {
	return t.Format(DateLayout)
}
