package exporter

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qlfscli/internal/labour"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	content := strings.TrimPrefix(string(data), "\xef\xbb\xbf")
	rows, err := csv.NewReader(strings.NewReader(content)).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriteProvinceTable(t *testing.T) {
	dir := t.TempDir()
	writer := NewCSVWriter(dir)

	aggregates := []labour.Aggregate{
		{
			Key:              "North West",
			EmployedTotal:    879353,
			UnemployedTotal:  596071,
			ActiveTotal:      1475424,
			UnemploymentRate: labour.Rate{Value: 40.4, Valid: true},
			EmploymentRate:   labour.Rate{Value: 59.6, Valid: true},
			GenderGap:        labour.Rate{Value: 11.5, Valid: true},
		},
		{
			Key: "Unknown", // all rates undefined
		},
	}

	require.NoError(t, writer.WriteProvinceTable("provinces.csv", aggregates))

	rows := readCSV(t, filepath.Join(dir, "provinces.csv"))
	require.Len(t, rows, 3)
	assert.Equal(t, "province", rows[0][0])

	nw := rows[1]
	assert.Equal(t, "North West", nw[0])
	assert.Equal(t, "596071", nw[2])
	assert.Equal(t, "40.4", nw[4])
	assert.Equal(t, "11.5", nw[8])

	// Undefined rates are blank cells, never "0".
	unknown := rows[2]
	assert.Equal(t, "", unknown[4])
	assert.Equal(t, "", unknown[8])
}

func TestWriteGenderGapTableRankColumn(t *testing.T) {
	dir := t.TempDir()
	writer := NewCSVWriter(dir)

	ranked := []labour.Aggregate{
		{Key: "Eastern Cape", GenderGap: labour.Rate{Value: 11.5, Valid: true}},
		{Key: "Gauteng", GenderGap: labour.Rate{Value: 4.2, Valid: true}},
	}

	require.NoError(t, writer.WriteGenderGapTable("gender_gap.csv", ranked))

	rows := readCSV(t, filepath.Join(dir, "gender_gap.csv"))
	require.Len(t, rows, 3)
	assert.Equal(t, "rank", rows[0][0])
	assert.Equal(t, []string{"1", "Eastern Cape"}, rows[1][:2])
	assert.Equal(t, []string{"2", "Gauteng"}, rows[2][:2])
}

func TestWriteGroupSummaryTable(t *testing.T) {
	dir := t.TempDir()
	writer := NewCSVWriter(dir)

	summaries := []labour.GroupSummary{
		{
			Group:            "Black African",
			Employed:         10000000,
			Unemployed:       5800000,
			Active:           15800000,
			UnemploymentRate: labour.Rate{Value: 36.7, Valid: true},
			EmploymentRate:   labour.Rate{Value: 63.3, Valid: true},
		},
	}

	require.NoError(t, writer.WriteGroupSummaryTable("groups.csv", summaries))

	rows := readCSV(t, filepath.Join(dir, "groups.csv"))
	require.Len(t, rows, 2)
	assert.Equal(t, "Black African", rows[1][0])
	assert.Equal(t, "36.7", rows[1][4])
}

func TestWriteJSON(t *testing.T) {
	dir := t.TempDir()
	writer := NewCSVWriter(dir)

	require.NoError(t, writer.WriteJSON("report.json", map[string]string{"status": "ok"}))

	data, err := os.ReadFile(filepath.Join(dir, "report.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"status": "ok"`)
}

func TestWriteCSVWithBOM(t *testing.T) {
	dir := t.TempDir()
	writer := NewCSVWriter(dir)

	require.NoError(t, writer.WriteCSV("bom.csv", WriteOptions{
		Headers:   []string{"a"},
		Records:   [][]string{{"1"}},
		BOMPrefix: true,
	}))

	data, err := os.ReadFile(filepath.Join(dir, "bom.csv"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "\xef\xbb\xbf"))
}
