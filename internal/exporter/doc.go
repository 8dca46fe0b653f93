// Package exporter writes the derived QLFS tables to CSV and JSON files for
// downstream dashboard consumption.
//
// Undefined rates are written as empty cells, never as zero, so spreadsheet
// consumers cannot mistake a missing denominator for a measured value.
package exporter
