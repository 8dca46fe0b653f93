// Package dataprocessing reads the cleaned QLFS dataset into typed
// observations.
//
// Two input formats share one column contract (domain.ObservationColumns):
// an Excel workbook parsed with excelize, and a plain CSV export. Header
// names are matched lower-cased and trimmed, so the loader is insensitive to
// column order and capitalisation.
//
// # Malformed row policy
//
// The policy is fixed, not configurable:
//
//   - a row missing either category key is skipped and counted
//   - a row with a non-numeric count cell is skipped and counted
//   - an EMPTY count cell is a structural zero (survey tables leave true
//     zeros blank)
//
// Skips are reported in ParseStats and logged; they never fail the run.
package dataprocessing
