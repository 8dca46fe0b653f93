package dataprocessing

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"qlfscli/pkg/contracts/domain"
)

// Sheet names tried before scanning the whole workbook.
var preferredSheets = []string{"QLFS", "qlfs_clean", "Cleaned", "Data", "Sheet1"}

// Column names that must be present before parsing proceeds. The remaining
// count columns default to zero when absent.
var requiredColumns = []string{"province", "population_group", "unemployed_total", "active_total"}

// ParseWorkbook reads the cleaned QLFS workbook and extracts one observation
// per data row. The data sheet is located by name first, then by scanning
// for a header row that matches the column contract.
func ParseWorkbook(filePath string) ([]domain.Observation, ParseStats, error) {
	var stats ParseStats

	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, stats, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	rows, sheetName, err := findDataSheet(f)
	if err != nil {
		return nil, stats, err
	}

	slog.Info("found survey data sheet",
		slog.String("sheet_name", sheetName),
		slog.Int("total_rows", len(rows)))

	headerRow, columns, err := findHeader(rows)
	if err != nil {
		return nil, stats, err
	}

	observations := parseRows(rows[headerRow+1:], columns, &stats)

	slog.Info("workbook parsing complete",
		slog.Int("rows_read", stats.RowsRead),
		slog.Int("rows_kept", stats.RowsKept),
		slog.Int("skipped_missing_key", stats.SkippedMissingKey),
		slog.Int("skipped_bad_count", stats.SkippedBadCount))

	return observations, stats, nil
}

// findDataSheet returns the rows of the sheet holding the survey table.
func findDataSheet(f *excelize.File) ([][]string, string, error) {
	for _, name := range preferredSheets {
		if rows, err := f.GetRows(name); err == nil && len(rows) > 1 {
			if _, _, headerErr := findHeader(rows); headerErr == nil {
				return rows, name, nil
			}
		}
	}

	// Fall back to scanning every sheet for the column contract.
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil || len(rows) <= 1 {
			continue
		}
		if _, _, headerErr := findHeader(rows); headerErr == nil {
			return rows, name, nil
		}
	}

	return nil, "", fmt.Errorf("could not find survey data sheet in workbook")
}

// findHeader locates the header row and maps column positions by the
// lower-cased column contract.
func findHeader(rows [][]string) (int, map[string]int, error) {
	for i, row := range rows {
		if len(row) < 2 {
			continue
		}

		columns := make(map[string]int, len(row))
		for j, header := range row {
			columns[strings.ToLower(strings.TrimSpace(header))] = j
		}

		complete := true
		for _, col := range requiredColumns {
			if _, ok := columns[col]; !ok {
				complete = false
				break
			}
		}
		if complete {
			return i, columns, nil
		}
	}
	return -1, nil, fmt.Errorf("could not find header row matching the column contract")
}

// parseRows converts data rows into observations under the fixed
// malformed-row policy.
func parseRows(rows [][]string, columns map[string]int, stats *ParseStats) []domain.Observation {
	observations := make([]domain.Observation, 0, len(rows))

	for _, row := range rows {
		if isBlank(row) {
			continue
		}
		stats.RowsRead++

		obs, ok := convertRow(row, columns, stats)
		if !ok {
			continue
		}
		observations = append(observations, obs)
		stats.RowsKept++
	}

	return observations
}

// convertRow builds one observation from a raw row. A missing category key
// or a non-numeric count excludes the row and bumps the matching counter.
func convertRow(row []string, columns map[string]int, stats *ParseStats) (domain.Observation, bool) {
	cell := func(name string) string {
		if idx, ok := columns[name]; ok && idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}

	obs := domain.Observation{
		Province:        cell("province"),
		PopulationGroup: cell("population_group"),
	}
	if !obs.HasKey() {
		stats.SkippedMissingKey++
		return domain.Observation{}, false
	}

	counts := []struct {
		name string
		dst  *float64
	}{
		{"employed_male", &obs.EmployedMale},
		{"employed_female", &obs.EmployedFemale},
		{"employed_total", &obs.EmployedTotal},
		{"unemployed_male", &obs.UnemployedMale},
		{"unemployed_female", &obs.UnemployedFemale},
		{"unemployed_total", &obs.UnemployedTotal},
		{"active_male", &obs.ActiveMale},
		{"active_female", &obs.ActiveFemale},
		{"active_total", &obs.ActiveTotal},
	}

	for _, c := range counts {
		value, err := parseCount(cell(c.name))
		if err != nil {
			slog.Debug("excluding row with malformed count",
				slog.String("province", obs.Province),
				slog.String("population_group", obs.PopulationGroup),
				slog.String("column", c.name),
				slog.String("cell", cell(c.name)))
			stats.SkippedBadCount++
			return domain.Observation{}, false
		}
		*c.dst = value
	}

	return obs, true
}

// parseCount converts a count cell. Empty cells are structural zeros;
// thousands separators are tolerated; anything else non-numeric, and any
// negative value, is malformed.
func parseCount(cell string) (float64, error) {
	if cell == "" {
		return 0, nil
	}
	cleaned := strings.ReplaceAll(strings.ReplaceAll(cell, ",", ""), " ", "")
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("non-numeric count %q: %w", cell, err)
	}
	if value < 0 {
		return 0, fmt.Errorf("negative count %q", cell)
	}
	return value, nil
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
