package report

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"volchart/internal/analysis"
	"volchart/internal/workbook"
)

func newTable(w io.Writer, title string) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle(title)
	t.SetStyle(table.StyleRounded)
	return t
}

// Conversions renders one row per converted or failed CSV file
func Conversions(w io.Writer, batch *workbook.BatchResult) {
	if batch == nil || !batch.Found() {
		return
	}

	t := newTable(w, "WORKBOOKS")
	t.AppendHeader(table.Row{"File", "Token", "Rows", "Text Cells", "Fallbacks", "Status"})

	for _, r := range batch.Converted {
		fallbacks := "-"
		if len(r.Columns.Fallbacks) > 0 {
			fallbacks = strings.Join(r.Columns.Fallbacks, ", ")
		}
		t.AppendRow(table.Row{
			filepath.Base(r.CSVPath), r.Token, r.Rows, r.TextCells, fallbacks, "created",
		})
	}
	for _, f := range batch.Failed {
		t.AppendRow(table.Row{filepath.Base(f.CSVPath), "-", "-", "-", "-", "failed"})
	}

	t.AppendFooter(table.Row{"", "", "", "", "Converted", len(batch.Converted)})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})
	t.Render()
}

// Analyses renders one row per written analysis file
func Analyses(w io.Writer, summaries []*analysis.Summary) {
	if len(summaries) == 0 {
		return
	}

	t := newTable(w, "ANALYSIS")
	t.AppendHeader(table.Row{"Input", "Source", "Days", "Output"})
	for _, s := range summaries {
		t.AppendRow(table.Row{
			filepath.Base(s.InputPath), string(s.Source), s.Days, filepath.Base(s.OutputPath),
		})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight},
	})
	t.Render()
}
