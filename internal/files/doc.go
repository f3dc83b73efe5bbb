// Package files provides file discovery and naming utilities for volchart.
//
// Discovery finds the input files a run works on: CSV files in a directory
// (never recursing), workbooks, or files matching a glob. Results are sorted
// by name so runs are reproducible.
//
// The naming helpers derive everything volchart needs from a file name:
//
//	files.TokenName("BTC_Trading_Average.csv")    // "BTC"
//	files.WorkbookPath("data/BTC_Trading_Average.csv") // "data/BTC_Trading_Average.xlsx"
package files
