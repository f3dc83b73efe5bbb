package workbook

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// CellKind is how a CSV value is stored in the data sheet
type CellKind int

const (
	KindText CellKind = iota
	KindNumber
	KindDate
)

// String implements fmt.Stringer
func (k CellKind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindDate:
		return "date"
	default:
		return "text"
	}
}

// dateLayout accepts both zero-padded and bare month/day values
const dateLayout = "2006-1-2"

// Cell is a classified CSV value
type Cell struct {
	Kind   CellKind
	Text   string
	Number float64
	Date   time.Time
}

// Classify decides how value is stored. Values in the date column that
// parse as YYYY-MM-DD become dates at UTC midnight; other values that parse
// as a finite float become numbers. Anything else is kept as the original
// text.
func Classify(value string, isDateColumn bool) Cell {
	if isDateColumn {
		if t, err := time.Parse(dateLayout, value); err == nil {
			return Cell{Kind: KindDate, Date: t.UTC()}
		}
		return Cell{Kind: KindText, Text: value}
	}

	n, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return Cell{Kind: KindText, Text: value}
	}
	return Cell{Kind: KindNumber, Number: n}
}
