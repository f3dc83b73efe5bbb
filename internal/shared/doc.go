// Package shared holds helpers used across volchart packages that belong to
// no single domain.
//
// The testutil subpackage provides:
//
//	- BufferedSlogHandler, a slog.Handler that captures records for assertions
//	- CSV fixture writers and sample data
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    logger, logs := testutil.NewTestLogger(t)
//	    path := testutil.WriteFile(t, t.TempDir(), "BTC.csv", testutil.SampleTradingCSV...)
//	    // ...
//	    testutil.AssertLogContains(t, logs, slog.LevelWarn, "column")
//	}
package shared
