// Package workbook converts trading CSV files into charted Excel workbooks.
//
// Each CSV becomes a workbook next to it with the same base name:
//
//	Chart          line chart of Volume and 30DayAvg against Date (first tab)
//	Data           the CSV with typed cells
//	Token Info     bold labels to fill in by hand
//	Exchange Info  bordered header row to fill in by hand
//
// Columns are found by header name and fall back to fixed positions with a
// warning. Date column values that parse as YYYY-MM-DD are stored as dates,
// other values that parse as numbers are stored as numbers, and everything
// else is stored as the original text.
//
// Example usage:
//
//	conv := workbook.NewConverter(workbook.Options{
//		Columns: cfg.Columns,
//		Chart:   cfg.Chart,
//		Logger:  logger,
//	})
//	result, err := conv.Convert(ctx, "BTC_Trading_Average.csv")
package workbook
