package dataprocessing

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"

	"qlfscli/pkg/contracts/domain"
)

// ParseCSV reads a CSV export of the cleaned dataset. The first record is
// the header and must satisfy the same column contract as the workbook;
// data rows follow the same malformed-row policy.
func ParseCSV(filePath string) ([]domain.Observation, ParseStats, error) {
	var stats ParseStats

	file, err := os.Open(filePath)
	if err != nil {
		return nil, stats, fmt.Errorf("failed to open csv: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // ragged rows are handled per cell

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, stats, fmt.Errorf("failed to read csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, stats, fmt.Errorf("csv file is empty")
	}

	headerRow, columns, err := findHeader(rows[:1])
	if err != nil {
		return nil, stats, fmt.Errorf("csv header does not match the column contract: %w", err)
	}

	observations := parseRows(rows[headerRow+1:], columns, &stats)

	slog.Info("csv parsing complete",
		slog.String("file_path", filePath),
		slog.Int("rows_read", stats.RowsRead),
		slog.Int("rows_kept", stats.RowsKept),
		slog.Int("skipped", stats.Skipped()))

	return observations, stats, nil
}
