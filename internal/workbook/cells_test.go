package workbook

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		value      string
		dateColumn bool
		want       Cell
	}{
		{"iso date", "2024-01-01", true, Cell{Kind: KindDate, Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}},
		{"unpadded date", "2024-3-7", true, Cell{Kind: KindDate, Date: time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC)}},
		{"leap day", "2024-02-29", true, Cell{Kind: KindDate, Date: time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)}},
		{"invalid day", "2023-02-29", true, Cell{Kind: KindText, Text: "2023-02-29"}},
		{"wrong layout", "01/02/2024", true, Cell{Kind: KindText, Text: "01/02/2024"}},
		{"number in date column stays text", "100", true, Cell{Kind: KindText, Text: "100"}},
		{"integer", "100", false, Cell{Kind: KindNumber, Number: 100}},
		{"decimal", "105.228", false, Cell{Kind: KindNumber, Number: 105.228}},
		{"negative", "-12.5", false, Cell{Kind: KindNumber, Number: -12.5}},
		{"exponent", "1e3", false, Cell{Kind: KindNumber, Number: 1000}},
		{"surrounding spaces", " 42 ", false, Cell{Kind: KindNumber, Number: 42}},
		{"date outside date column", "2024-01-01", false, Cell{Kind: KindText, Text: "2024-01-01"}},
		{"word", "n/a", false, Cell{Kind: KindText, Text: "n/a"}},
		{"thousands separator", "1,000", false, Cell{Kind: KindText, Text: "1,000"}},
		{"not a number", "NaN", false, Cell{Kind: KindText, Text: "NaN"}},
		{"infinity", "Inf", false, Cell{Kind: KindText, Text: "Inf"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.value, tt.dateColumn))
		})
	}
}

func TestCellKind_String(t *testing.T) {
	assert.Equal(t, "text", KindText.String())
	assert.Equal(t, "number", KindNumber.String())
	assert.Equal(t, "date", KindDate.String())
}
