package files

import (
	"path/filepath"
	"strings"
)

// BaseName returns the file name of path without its extension
func BaseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// TokenName returns the token a data file belongs to: the part of the
// base name before the first underscore.
//
//	BTC_Trading_Average.csv -> BTC
//	ETH.csv                 -> ETH
func TokenName(path string) string {
	base := BaseName(path)
	if i := strings.Index(base, "_"); i >= 0 {
		return base[:i]
	}
	return base
}

// WorkbookPath returns the workbook written for a CSV: same directory, same
// base name, .xlsx extension.
func WorkbookPath(csvPath string) string {
	return filepath.Join(filepath.Dir(csvPath), BaseName(csvPath)+".xlsx")
}
