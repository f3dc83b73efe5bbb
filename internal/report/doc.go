// Package report renders console summary tables for batch runs.
package report
